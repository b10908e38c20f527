package lighty

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Defaults(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	assert.Equal(t, 7, engine.Tags().Count())
	assert.Equal(t, 18, engine.Filters().Count())
	assert.NotNil(t, engine.logger)
}

func TestNew_InvalidRegistration(t *testing.T) {
	_, err := New(WithTags(TagSpec{Name: "endx", Handler: noopTag}))
	require.Error(t, err)
	assert.Equal(t, ErrCodeRegistry, Code(err))

	_, err = New(WithFilters(Filter{Name: "x"}))
	require.Error(t, err)
	assert.Equal(t, ErrCodeRegistry, Code(err))

	assert.Panics(t, func() { MustNew(WithFilters(Filter{})) })
}

func TestEngine_RegistriesAreIndependent(t *testing.T) {
	a := MustNew()
	b := MustNew()
	require.NoError(t, a.RegisterFilter("only_a", func(v any, _ ...any) (any, error) { return v, nil }))
	require.NoError(t, a.RegisterTag(TagSpec{Name: "only_a", Handler: noopTag}))

	assert.True(t, a.Filters().Has("only_a"))
	assert.False(t, b.Filters().Has("only_a"))
	assert.True(t, a.Tags().Has("only_a"))
	assert.False(t, b.Tags().Has("only_a"))

	_, err := b.Execute(context.Background(), "{{ 1|only_a }}", nil)
	assert.Equal(t, ErrCodeLookup, Code(err))
}

func TestEngine_ParseUsesDefaultName(t *testing.T) {
	engine := MustNew()
	tmpl, err := engine.Parse("x")
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplateName, tmpl.Name())

	_, err = engine.Execute(context.Background(), `{% extend "base.html" %}`, nil)
	assert.Equal(t, ErrCodeLookup, Code(err))
}

func TestEngine_Load(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.html"), []byte("A"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("{% if %}"), 0o644))

	engine := MustNew(WithRoots(root), WithExtensions(".html"), WithPreload(true))
	loader, err := engine.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.html"}, loader.List())

	a, err := loader.GetTemplate("a.html")
	require.NoError(t, err)
	assert.True(t, a.Parsed())

	// Without the extension filter the broken file fails the preload
	_, err = MustNew(WithRoots(root), WithPreload(true)).Load()
	require.Error(t, err)
	assert.Equal(t, "b.txt", metadata(t, err, MetaKeyTemplate))

	// Without preload it only fails on use
	loader, err = MustNew(WithRoots(root)).Load()
	require.NoError(t, err)
	_, err = loader.GetTemplate("b.txt")
	assert.Error(t, err)
}

func TestEngine_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	engine := MustNew(WithLogger(zap.New(core)))

	loader := engine.NewLoader()
	loader.MustParse("base.html", "{% block a %}{% endblock %}")
	loader.MustParse("child.html", `{% extend "base.html" %}{% block a %}x{% endblock %}`)
	require.NoError(t, engine.RegisterFilter("upper", func(v any, _ ...any) (any, error) { return v, nil }))

	assert.NotZero(t, logs.FilterMessage(LogMsgEngineCreated).Len())
	assert.NotZero(t, logs.FilterMessage(LogMsgTemplateRegistered).Len())
	assert.NotZero(t, logs.FilterMessage(LogMsgParseEnd).Len())
	assert.NotZero(t, logs.FilterMessage(LogMsgBlockOverridden).Len())

	extended := logs.FilterMessage(LogMsgTemplateExtended).All()
	require.Len(t, extended, 1)
	assert.Equal(t, "base.html", extended[0].ContextMap()[LogFieldParent])

	overwritten := logs.FilterMessage(LogMsgFilterOverwritten).All()
	require.Len(t, overwritten, 1)
	assert.Equal(t, zap.WarnLevel, overwritten[0].Level)
}
