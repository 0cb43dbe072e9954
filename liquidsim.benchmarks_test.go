package liquidsim

import (
	"context"
	"testing"
)

func BenchmarkParse_Render(b *testing.B) {
	engine := MustNew()
	MustRegisterShopify(engine)
	source := `{% render 'card', title: product.title, price: product.price %}`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Parse(source)
	}
}

func BenchmarkRender_Loop(b *testing.B) {
	engine := MustNew(WithSnippetResolver(NewMapResolver(map[string]string{
		"row": "{{ forloop.index }}:{{ item }}",
	})))
	MustRegisterShopify(engine)

	tmpl, err := engine.Parse("{% render 'row' for items as item %}")
	if err != nil {
		b.Fatal(err)
	}
	items := make([]any, 100)
	for i := range items {
		items[i] = i
	}
	data := map[string]any{"items": items}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Render(ctx, data)
	}
}

func BenchmarkRender_CachedResolver(b *testing.B) {
	cache := NewCachingResolver(NewMapResolver(map[string]string{
		"simple": "Hello, {{ name }}!",
	}), DefaultCacheConfig(), nil)
	engine := MustNew(WithSnippetResolver(cache))
	MustRegisterShopify(engine)

	tmpl, err := engine.Parse("{% render 'simple', name: 'World' %}")
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Render(ctx, nil)
	}
}

func BenchmarkCapture(b *testing.B) {
	engine := MustNew()
	MustRegisterShopify(engine)

	tmpl, err := engine.Parse("{% capture x %}{{ a }}-{{ b }}{% endcapture %}{{ x }}")
	if err != nil {
		b.Fatal(err)
	}
	data := map[string]any{"a": 1, "b": 2}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Render(ctx, data)
	}
}
