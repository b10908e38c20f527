package lighty

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
roots: [templates, /abs/shared]
extensions: [.html, .txt]
preload: true
log_level: warn
`))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Roots:      []string{"templates", "/abs/shared"},
		Extensions: []string{".html", ".txt"},
		Preload:    true,
		LogLevel:   "warn",
	}, cfg)

	empty, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, empty)
}

func TestParseConfig_Invalid(t *testing.T) {
	for _, data := range []string{
		"unknown_key: 1",
		"roots: [\"\"]",
		"preload: [",
	} {
		_, err := ParseConfig([]byte(data))
		require.Error(t, err, data)
		assert.Equal(t, ErrCodeConfig, Code(err))
	}
}

func TestLoadConfig_ResolvesRootsRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lighty.yaml", "roots: [views]\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "views")}, cfg.Roots)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, ErrCodeConfig, Code(err))
}

func TestConfig_Options(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.html", "{{ x }}")

	cfg := &Config{Roots: []string{dir}, Extensions: []string{".html"}, Preload: true, LogLevel: "error"}
	opts, err := cfg.Options()
	require.NoError(t, err)

	engine := MustNew(opts...)
	assert.True(t, engine.config.preload)
	assert.Equal(t, []string{dir}, engine.config.roots)
	assert.NotNil(t, engine.config.logger)

	loader, err := engine.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.html"}, loader.List())

	_, err = (&Config{LogLevel: "loud"}).Options()
	require.Error(t, err)
	assert.Equal(t, "loud", metadata(t, err, MetaKeyReason))
}

func TestDecodeData(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{FormatJSON, `{"name": "Ann", "tags": ["a", "b"], "n": 2}`},
		{FormatYAML, "name: Ann\ntags: [a, b]\nn: 2\n"},
		{FormatTOML, "name = \"Ann\"\ntags = [\"a\", \"b\"]\nn = 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := DecodeData(tt.format, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, "Ann", data["name"])

			out := render(t, `{{ name }}:{{ tags|join:"," }}:{{ n|sum:1 }}`, data)
			assert.Equal(t, "Ann:a,b:3", out)
		})
	}

	_, err := DecodeData("ini", nil)
	assert.Equal(t, ErrCodeConfig, Code(err))
	_, err = DecodeData(FormatJSON, []byte("{"))
	assert.Equal(t, ErrCodeConfig, Code(err))
}

func TestLoadData(t *testing.T) {
	dir := t.TempDir()

	data, err := LoadData(writeFile(t, dir, "ctx.yml", "title: Hi\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hi", data["title"])

	data, err = LoadData(writeFile(t, dir, "ctx.TOML", "title = \"Hi\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hi", data["title"])

	_, err = LoadData(writeFile(t, dir, "ctx.ini", "title=Hi"))
	require.Error(t, err)
	assert.Equal(t, ".ini", metadata(t, err, MetaKeyFormat))

	_, err = LoadData(filepath.Join(dir, "missing.json"))
	assert.Equal(t, ErrCodeConfig, Code(err))
}
