package patternfile

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hexID = "5a1d2f0c9b1e8a3c4d5e6f70"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("users.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("USERS.YML"))
	assert.Equal(t, FormatJSON, FormatOf("users.json"))
	assert.Equal(t, FormatJSON, FormatOf("users"))
}

func TestLoadPattern_JSON(t *testing.T) {
	path := writeFile(t, "expected.json", `{
		"_id": "ObjectId(`+hexID+`)",
		"name": "/^john/i",
		"tags": ["a", "/b+/"],
		"age": 30
	}`)

	got, err := LoadPattern(path)
	require.NoError(t, err)

	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, matcher.MustParseID(hexID), m["_id"])

	re, ok := m["name"].(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, re.MatchString("John Smith"))

	tags := m["tags"].([]any)
	assert.Equal(t, "a", tags[0])
	assert.IsType(t, &regexp.Regexp{}, tags[1])
	assert.Equal(t, float64(30), m["age"])
}

func TestLoadDocument_KeepsRegexStrings(t *testing.T) {
	path := writeFile(t, "actual.json", `{"_id": "ObjectId(`+hexID+`)", "name": "/^john/"}`)

	got, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"_id": matcher.MustParseID(hexID), "name": "/^john/"}, got)
}

func TestLoadPattern_YAML(t *testing.T) {
	path := writeFile(t, "expected.yaml", `
name: /^John/
__v: _mock_
phones:
  - type: mobile
    number: _mock_
1: one
`)

	got, err := LoadPattern(path)
	require.NoError(t, err)

	m := got.(map[string]any)
	assert.IsType(t, &regexp.Regexp{}, m["name"])
	assert.Equal(t, "_mock_", m["__v"])
	assert.Equal(t, "one", m["1"])

	actual := map[string]any{
		"name":   "John Smith",
		"__v":    3,
		"phones": []any{map[string]any{"type": "mobile", "number": 12345}},
	}
	assert.NoError(t, matcher.Match(actual, map[string]any{
		"name":   m["name"],
		"__v":    m["__v"],
		"phones": m["phones"],
	}))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{"a":`), FormatJSON, true)
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = Parse([]byte(`{"a": "/(/"}`), FormatJSON, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regular expression")

	_, err = Parse([]byte("a: [1, 2"), FormatYAML, true)
	assert.Error(t, err)

	_, err = LoadPattern(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(nil, FormatJSON, false)
	require.NoError(t, err)
	assert.Nil(t, got)
}
