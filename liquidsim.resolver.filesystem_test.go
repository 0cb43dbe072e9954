package liquidsim

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnippet(t *testing.T, dir, name, source string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644))
}

func TestNewFilesystemResolver(t *testing.T) {
	dir := t.TempDir()

	resolver, err := NewFilesystemResolver(FilesystemResolverConfig{Root: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, resolver.Root())

	t.Run("empty root", func(t *testing.T) {
		_, err := NewFilesystemResolver(FilesystemResolverConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgSnippetsDirMissing)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := NewFilesystemResolver(FilesystemResolverConfig{Root: filepath.Join(dir, "nope")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgSnippetsDirMissing)
	})

	t.Run("root is a file", func(t *testing.T) {
		writeSnippet(t, dir, "file.txt", "x")
		_, err := NewFilesystemResolver(FilesystemResolverConfig{Root: filepath.Join(dir, "file.txt")})
		require.Error(t, err)
	})
}

func TestFilesystemResolver_ResolveSnippet(t *testing.T) {
	dir := t.TempDir()
	writeSnippet(t, dir, "card.liquid", "Card: {{ title }}")
	writeSnippet(t, dir, "other.html", "html")

	resolver, err := NewFilesystemResolver(FilesystemResolverConfig{Root: dir})
	require.NoError(t, err)

	source, found, err := resolver.ResolveSnippet(context.Background(), "card")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Card: {{ title }}", source)

	_, found, err = resolver.ResolveSnippet(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, found)

	htmlResolver, err := NewFilesystemResolver(FilesystemResolverConfig{Root: dir, Extension: ".html"})
	require.NoError(t, err)
	source, found, err = htmlResolver.ResolveSnippet(context.Background(), "other")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "html", source)
}

func TestFilesystemResolver_InvalidNames(t *testing.T) {
	resolver, err := NewFilesystemResolver(FilesystemResolverConfig{Root: t.TempDir()})
	require.NoError(t, err)

	for _, name := range []string{"", "../secret", "a/b", `a\b`, "c:d", "what?", "a|b"} {
		_, found, err := resolver.ResolveSnippet(context.Background(), name)
		require.Error(t, err, name)
		assert.False(t, found)
		assert.Contains(t, err.Error(), ErrMsgInvalidSnippetName)
	}
}

func TestFilesystemResolver_SnippetName(t *testing.T) {
	dir := t.TempDir()
	resolver, err := NewFilesystemResolver(FilesystemResolverConfig{Root: dir})
	require.NoError(t, err)

	name, ok := resolver.SnippetName(filepath.Join(dir, "card.liquid"))
	assert.True(t, ok)
	assert.Equal(t, "card", name)

	_, ok = resolver.SnippetName(filepath.Join(dir, "card.txt"))
	assert.False(t, ok)

	_, ok = resolver.SnippetName(filepath.Join(dir, ".liquid"))
	assert.False(t, ok)

	_, ok = resolver.SnippetName(filepath.Join(dir, "nested", "card.liquid"))
	assert.False(t, ok)
}

func TestFilesystemResolver_RenderFromDisk(t *testing.T) {
	dir := t.TempDir()
	writeSnippet(t, dir, "product-card.liquid", "<li>{{ product.title }}</li>")

	resolver, err := NewFilesystemResolver(FilesystemResolverConfig{Root: dir})
	require.NoError(t, err)
	engine := MustNew(WithSnippetResolver(resolver))
	MustRegisterShopify(engine)

	result, err := engine.Render(context.Background(),
		"<ul>{% render 'product-card' for products as product %}</ul>",
		map[string]any{"products": []any{
			map[string]any{"title": "Hat"},
			map[string]any{"title": "Scarf"},
		}})
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>Hat</li><li>Scarf</li></ul>", result)

	_, err = engine.Render(context.Background(), "{% render '../escape' %}", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgResolverFailed)
}

func TestFilesystemResolver_WatchInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	writeSnippet(t, dir, "banner.liquid", "v1")

	fsResolver, err := NewFilesystemResolver(FilesystemResolverConfig{Root: dir})
	require.NoError(t, err)
	cache := NewCachingResolver(fsResolver, CacheConfig{TTL: time.Hour}, nil)

	var (
		mu      sync.Mutex
		changed []string
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, fsResolver.Watch(ctx, func(name string) {
		cache.Invalidate(name)
		mu.Lock()
		changed = append(changed, name)
		mu.Unlock()
	}))

	source, _, err := cache.ResolveSnippet(context.Background(), "banner")
	require.NoError(t, err)
	assert.Equal(t, "v1", source)

	writeSnippet(t, dir, "banner.liquid", "v2")

	require.Eventually(t, func() bool {
		source, _, err := cache.ResolveSnippet(context.Background(), "banner")
		return err == nil && source == "v2"
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Contains(t, changed, "banner")
	mu.Unlock()
}

func TestFilesystemResolver_WatchMissingRoot(t *testing.T) {
	dir := t.TempDir()
	resolver, err := NewFilesystemResolver(FilesystemResolverConfig{Root: dir})
	require.NoError(t, err)
	require.NoError(t, os.Remove(dir))

	err = resolver.Watch(context.Background(), func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgWatcherFailed)
}
