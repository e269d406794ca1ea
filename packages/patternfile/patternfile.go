// Package patternfile loads actual documents and expected patterns from
// JSON or YAML files.
//
// Files are plain data, so two string forms carry extra meaning:
//
//	"ObjectId(5a1d2f0c9b1e8a3c4d5e6f70)"  an identifier
//	"/^John/i"                            a regular expression (patterns only)
package patternfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a document file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	objectIDPattern = regexp.MustCompile(`^ObjectId\(([0-9a-f]{24})\)$`)
	regexPattern    = regexp.MustCompile(`^/(.+)/([imsU]*)$`)
)

// ErrInvalidJSON is returned for malformed JSON input.
var ErrInvalidJSON = errors.New("invalid JSON")

// FormatOf picks the format from a file extension. Unknown extensions
// are treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// LoadDocument reads an actual document. Identifier strings are converted.
func LoadDocument(path string) (any, error) {
	return load(path, false)
}

// LoadPattern reads an expected pattern. Identifier and regular
// expression strings are converted.
func LoadPattern(path string) (any, error) {
	return load(path, true)
}

func load(path string, pattern bool) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := Parse(data, FormatOf(path), pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return v, nil
}

// Parse decodes data. With pattern set, "/.../" strings become regular
// expressions.
func Parse(data []byte, format Format, pattern bool) (any, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil, nil
		}
		if !gjson.ValidBytes(data) {
			return nil, ErrInvalidJSON
		}
		raw = gjson.ParseBytes(data).Value()
	}
	return convert(raw, pattern)
}

func convert(v any, pattern bool) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			c, err := convert(val, pattern)
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			c, err := convert(val, pattern)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = c
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			c, err := convert(val, pattern)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case string:
		return convertString(x, pattern)
	}
	return v, nil
}

func convertString(s string, pattern bool) (any, error) {
	if m := objectIDPattern.FindStringSubmatch(s); m != nil {
		id, err := matcher.ParseID(m[1])
		if err != nil {
			return nil, err
		}
		return id, nil
	}
	if !pattern {
		return s, nil
	}
	m := regexPattern.FindStringSubmatch(s)
	if m == nil {
		return s, nil
	}
	expr := m[1]
	if m[2] != "" {
		expr = "(?" + m[2] + ")" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression %s: %w", s, err)
	}
	return re, nil
}
