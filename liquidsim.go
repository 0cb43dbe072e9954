// Package liquidsim renders Liquid templates that use the storefront-only
// render and capture tags, without the hosted storefront runtime.
//
// # Basic Usage
//
// Create an engine, register the tags and point it at your snippets:
//
//	engine := liquidsim.MustNew(liquidsim.WithSnippetResolver(
//	    liquidsim.NewMapResolver(map[string]string{
//	        "greeting": "Hello, {{ name }}!",
//	    }),
//	))
//	liquidsim.MustRegisterShopify(engine)
//
//	result, err := engine.Render(ctx, "{% render 'greeting', name: 'World' %}", nil)
//	// result: "Hello, World!"
//
// # The render Tag
//
// render includes a snippet in an isolated scope. The snippet sees only the
// values passed to it; nothing assigned by the caller leaks in and nothing
// assigned inside the snippet leaks out.
//
//	{% render 'card', title: product.title, price: product.price %}
//	{% render 'card' with product as item %}
//	{% render 'card' for products as item %}
//
// With a for clause the snippet renders once per element and can read the
// loop position from forloop:
//
//	{{ forloop.index }} {{ forloop.index0 }} {{ forloop.first }} {{ forloop.last }}
//	{{ forloop.length }} {{ forloop.rindex }} {{ forloop.rindex0 }}
//
// A for clause and a with clause cannot be combined. Malformed arguments
// fail at parse time with a SyntaxError (see IsSyntaxError).
//
// # The capture Tag
//
// capture renders its body in the current scope and stores the output in a
// variable instead of emitting it:
//
//	{% capture heading %}{{ shop.name }} | {{ page.title }}{% endcapture %}
//	<title>{{ heading }}</title>
//
// # Snippet Resolvers
//
// Snippet sources come from a SnippetResolver: MapResolver for tests,
// FilesystemResolver for a theme's snippets directory, PostgresResolver for
// snippets stored in a database, and CachingResolver in front of any of them.
// FilesystemResolver.Watch invalidates a cache as files change.
//
// # Globals
//
// WithGlobals makes application-level values visible to every top-level
// render. They are not visible inside snippets unless named with
// WithExposedGlobals.
//
// # Errors
//
// All errors are *cuserr.CustomError values. IsSyntaxError, IsSnippetNotFound,
// IsTypeError and IsDepthExceeded classify them.
package liquidsim
