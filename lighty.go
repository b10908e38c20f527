// Package lighty provides a small text template engine with Django-style
// syntax, block inheritance and pluggable tags and filters.
//
// Templates mix literal text with two kinds of markup:
//
//	Hello, {{ user.name|upper }}!
//	{% for item in items %}{{ item }} {% endfor %}
//
// # Basic Usage
//
// Create an engine and execute a one-off template:
//
//	engine := lighty.MustNew()
//	result, err := engine.Execute(ctx, "Hello, {{ name }}!", map[string]any{
//	    "name": "Alice",
//	})
//	// result: "Hello, Alice!"
//
// # Built-in Tags
//
//	{% if a %}...{% endif %}
//	{% for x in xs %}...{% endfor %}        (forloop.Counter, forloop.Last, ...)
//	{% with a.b as c %}...{% endwith %}
//	{% spaceless %}...{% endspaceless %}
//	{% include "header.html" %}
//	{% block name %}...{% endblock %}
//	{% extend "base.html" %}
//
// # Inheritance
//
// Templates that extend or include each other live in a Loader:
//
//	loader := engine.NewLoader()
//	loader.AddLazy("base.html", `<title>{% block title %}{% endblock %}</title>`)
//	loader.AddLazy("page.html", `{% extend "base.html" %}{% block title %}Home{% endblock %}`)
//	page, err := loader.GetTemplate("page.html")
//	out, err := page.Execute(ctx, nil) // <title>Home</title>
//
// # Custom Tags and Filters
//
//	engine.RegisterFilter("shout", func(v any, args ...any) (any, error) {
//	    return fmt.Sprint(v) + "!", nil
//	})
//
//	engine.RegisterTag(lighty.TagSpec{
//	    Name:         "now",
//	    Lazy:         true,
//	    NeedsContext: true,
//	    Handler: func(ctx context.Context, args *lighty.TagArgs) (any, error) {
//	        return time.Now().Format(time.RFC3339), nil
//	    },
//	})
//
// # Error Handling
//
// Errors are *cuserr.CustomError values carrying a code (see Code) and
// metadata such as the line and column of the offending markup.
package lighty
