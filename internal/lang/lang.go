// Package lang resolves user-facing strings from YAML language files.
package lang

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when no language is configured
const DefaultLanguage = "en_US"

//go:embed *.yaml
var files embed.FS

// Lang is a flattened table of dotted keys to strings
type Lang struct {
	name    string
	strings map[string]string
}

// Load reads the embedded language file for name, falling back to
// DefaultLanguage when it does not exist.
func Load(name string) (*Lang, error) {
	if name == "" {
		name = DefaultLanguage
	}
	data, err := files.ReadFile(name + ".yaml")
	if err != nil {
		if name == DefaultLanguage {
			return nil, fmt.Errorf("read language %s: %w", name, err)
		}
		slog.Warn("unknown language, using default", "lang", name)
		return Load(DefaultLanguage)
	}
	return Parse(name, data)
}

// Parse builds a Lang from YAML data
func Parse(name string, data []byte) (*Lang, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse language %s: %w", name, err)
	}
	l := &Lang{name: name, strings: make(map[string]string)}
	flatten("", tree, l.strings)
	return l, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Name returns the language name
func (l *Lang) Name() string {
	return l.name
}

// Query returns the string for key, or the key itself when missing
func (l *Lang) Query(key string) string {
	if l == nil {
		return key
	}
	if s, ok := l.strings[key]; ok {
		return s
	}
	slog.Debug("missing language key", "key", key, "lang", l.name)
	return key
}

// Queryf formats the string for key with args
func (l *Lang) Queryf(key string, args ...any) string {
	return fmt.Sprintf(l.Query(key), args...)
}

// Has reports whether key is defined
func (l *Lang) Has(key string) bool {
	if l == nil {
		return false
	}
	_, ok := l.strings[strings.TrimSpace(key)]
	return ok
}
