// Package config loads the kgrep configuration file. The file is decoded into
// a generic document (map[string]any) so that consumers can tolerate shape
// deviations key by key instead of failing the whole load.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name inside the kgrep config directory.
const FileName = "config.toml"

// ParseError reports a config file that exists but cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefaultPath returns <UserConfigDir>/kgrep/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "kgrep", FileName), nil
}

// Load reads and decodes the config file at path. A missing file yields an
// empty document and no error. Files ending in .yaml or .yml are decoded as
// YAML, everything else as TOML.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// No config file - that's fine, start empty
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	doc, err := decode(path, data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func decode(path string, data []byte) (map[string]any, error) {
	var doc map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
