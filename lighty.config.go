package lighty

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the engine options.
//
//	roots: [templates]
//	extensions: [.html]
//	preload: true
//	log_level: debug
type Config struct {
	Roots      []string `yaml:"roots"`
	Extensions []string `yaml:"extensions"`
	Preload    bool     `yaml:"preload"`
	// LogLevel builds a zap production logger when set (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads and decodes a YAML config file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewTemplateLoadError(ErrMsgReadFailed, path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	// Relative roots are relative to the config file
	dir := filepath.Dir(path)
	for i, root := range cfg.Roots {
		if !filepath.IsAbs(root) {
			cfg.Roots[i] = filepath.Join(dir, root)
		}
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigError(ErrMsgInvalidConfig, err.Error(), err)
	}
	for _, root := range cfg.Roots {
		if strings.TrimSpace(root) == "" {
			return nil, NewConfigError(ErrMsgInvalidConfig, ErrMsgEmptyRoot, nil)
		}
	}
	return &cfg, nil
}

// Options converts the config into engine options
func (c *Config) Options() ([]Option, error) {
	opts := []Option{
		WithRoots(c.Roots...),
		WithExtensions(c.Extensions...),
		WithPreload(c.Preload),
	}
	if c.LogLevel == "" {
		return opts, nil
	}

	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, NewConfigError(ErrMsgInvalidLogLvl, c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	logger, err := zc.Build()
	if err != nil {
		return nil, NewConfigError(ErrMsgLoggerFailed, c.LogLevel, err)
	}
	return append(opts, WithLogger(logger)), nil
}

// LoadData reads a render context from a .json, .yaml, .yml or .toml file
func LoadData(path string) (map[string]any, error) {
	format, ok := formatForExt(strings.ToLower(filepath.Ext(path)))
	if !ok {
		return nil, NewDataFormatError(path, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewTemplateLoadError(ErrMsgReadFailed, path, err)
	}
	out, err := DecodeData(format, data)
	if err != nil {
		return nil, NewTemplateLoadError(ErrMsgDecodeFailed, path, err)
	}
	return out, nil
}

// DecodeData decodes a render context in the given format (json, yaml or toml)
func DecodeData(format string, data []byte) (map[string]any, error) {
	out := make(map[string]any)
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &out)
	case FormatYAML:
		err = yaml.Unmarshal(data, &out)
	case FormatTOML:
		_, err = toml.Decode(string(data), &out)
	default:
		return nil, NewDataFormatError("", format)
	}
	if err != nil {
		return nil, NewConfigError(ErrMsgDecodeFailed, format, err)
	}
	return out, nil
}

func formatForExt(ext string) (string, bool) {
	switch ext {
	case ExtJSON:
		return FormatJSON, true
	case ExtYAML, ExtYML:
		return FormatYAML, true
	case ExtTOML:
		return FormatTOML, true
	}
	return "", false
}
