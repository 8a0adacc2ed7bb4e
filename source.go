// File: envgrove/config/source.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SourceMapping is the flat merged key→raw-value table for one resolution
// pass. Values are strings for dotenv and environment sources, and native
// typed values for structured formats.
type SourceMapping map[string]any

// MergeSources loads each existing file in listed order, overlaying keys
// last-writer-wins, then overlays the environment snapshot unconditionally.
// A missing file contributes nothing; a malformed file is a FormatError.
func MergeSources(files []string, environ map[string]string) (SourceMapping, error) {
	merged := make(SourceMapping)

	for _, path := range files {
		raw, err := loadSourceFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for key, value := range raw {
			merged[key] = value
		}
	}

	for key, value := range environ {
		merged[key] = value
	}

	return merged, nil
}

// environSnapshot captures the process environment once per resolution pass.
func environSnapshot() map[string]string {
	env := os.Environ()
	snap := make(map[string]string, len(env))
	for _, kv := range env {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			snap[kv[:i]] = kv[i+1:]
		}
	}
	return snap
}

// loadSourceFile reads and parses one source file via the adapter matching
// its detected format.
func loadSourceFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch detectFormat(path, data) {
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		raw := make(map[string]any)
		if err := decoder.Decode(&raw); err != nil {
			return nil, &FormatError{Path: path, Err: err}
		}
		return flattenRaw(raw), nil

	case "toml":
		raw := make(map[string]any)
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, &FormatError{Path: path, Err: err}
		}
		return flattenRaw(raw), nil

	case "yaml":
		raw := make(map[string]any)
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &FormatError{Path: path, Err: err}
		}
		return flattenRaw(raw), nil

	default:
		return parseDotenv(data), nil
	}
}

// detectFormat determines the adapter from the file extension, falling back
// to content detection for unknown extensions.
func detectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".toml", ".tml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	case ".env":
		return "dotenv"
	}
	if strings.HasPrefix(filepath.Base(path), ".env") {
		return "dotenv"
	}
	return detectFormatFromContent(data)
}

// detectFormatFromContent attempts structured formats by parsing. Dotenv is
// the fallback: a flat KEY=value file is what this package expects by
// default.
func detectFormatFromContent(data []byte) string {
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil && len(tomlTest) > 0 {
		return "toml"
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil && len(yamlTest) > 0 {
		return "yaml"
	}

	return "dotenv"
}

// flattenRaw flattens nested tables from structured formats into top-level
// keys, joining segments with '_' so a [DB] table's HOST matches the DB_HOST
// source key.
func flattenRaw(nested map[string]any) map[string]any {
	flat := make(map[string]any, len(nested))
	flattenInto(flat, "", nested)
	return flat
}

func flattenInto(flat map[string]any, prefix string, nested map[string]any) {
	for key, value := range nested {
		full := prefix + key
		if sub, isMap := value.(map[string]any); isMap {
			flattenInto(flat, full+"_", sub)
			continue
		}
		flat[full] = value
	}
}

// parseDotenv parses KEY=value lines. Blank lines and lines beginning with
// '#' are ignored, trailing inline comments outside quotes are stripped, and
// surrounding matching quotes are removed from values.
func parseDotenv(data []byte) map[string]any {
	vars := make(map[string]any)

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		i := strings.IndexByte(line, '=')
		if i < 0 {
			continue
		}

		key := strings.TrimSpace(line[:i])
		if key == "" {
			continue
		}

		value := strings.TrimSpace(line[i+1:])
		value = strings.TrimSpace(stripInlineComment(value))
		vars[key] = unquote(value)
	}

	return vars
}

// stripInlineComment cuts the value at the first '#' that is not inside a
// quoted region.
func stripInlineComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return s[:i]
		}
	}
	return s
}

// unquote strips one pair of surrounding matching quotes, preserving inner
// whitespace.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
