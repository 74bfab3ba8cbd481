package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/models"
)

func TestConvertSameFormatIsIdentity(t *testing.T) {
	input := "{'not even': valid}"
	out, err := Convert(input, models.FormatJSON, models.FormatJSON, 2)
	require.NoError(t, err)
	assert.Equal(t, input, out, "same-format conversion must not touch the input")
}

func TestConvertAutodetect(t *testing.T) {
	out, err := Convert(`{"name": "Bob"}`, "", models.FormatYAML, 2)
	require.NoError(t, err)
	assert.Equal(t, "name: Bob\n", out)

	_, err = Convert("no structure here", "", models.FormatJSON, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
}

func TestJSONToYAML(t *testing.T) {
	out, err := JSONToYAML(`{"name": "Bob", "age": 30, "tags": ["a", "b"]}`, 2)
	require.NoError(t, err)
	assert.Equal(t, "age: 30\nname: Bob\ntags:\n  - a\n  - b\n", out)
}

func TestYAMLToJSON(t *testing.T) {
	out, err := YAMLToJSON("name: Bob\nage: 30\n", 2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"age\": 30,\n  \"name\": \"Bob\"\n}", out)
}

func TestJSONToXML(t *testing.T) {
	out, err := JSONToXML(`{"name": "Bob"}`, 2)
	require.NoError(t, err)
	assert.Contains(t, out, "<root>")
	assert.Contains(t, out, "<name>Bob</name>")

	out, err = JSONToXML(`[1, 2, 3]`, 2)
	require.NoError(t, err)
	assert.Contains(t, out, "<item>1</item>")
	assert.Contains(t, out, "<item>3</item>")
}

func TestJSONToXMLNestedArrays(t *testing.T) {
	out, err := JSONToXML(`{"a": {"b": 1}, "c": [1, 2]}`, 2)
	require.NoError(t, err)
	assert.Contains(t, out, "<c>1</c>")
	assert.Contains(t, out, "<c>2</c>")
	assert.NotContains(t, out, "[1 2]")

	back, err := XMLToJSON(out, 2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": {\n    \"b\": 1\n  },\n  \"c\": [\n    1,\n    2\n  ]\n}", back)
}

func TestXMLToJSON(t *testing.T) {
	out, err := XMLToJSON(`<root><name>Bob</name><age>30</age></root>`, 2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"age\": 30,\n  \"name\": \"Bob\"\n}", out)
}

func TestXMLRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"object", "{\n  \"age\": 30,\n  \"name\": \"Bob\"\n}"},
		{"array", "[\n  1,\n  2,\n  3\n]"},
		{"nested object", "{\n  \"user\": {\n    \"active\": true,\n    \"name\": \"Bob\"\n  }\n}"},
		{"scalar number", "42"},
		{"scalar bool", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xml, err := JSONToXML(tt.json, 2)
			require.NoError(t, err)
			back, err := XMLToJSON(xml, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.json, back)
		})
	}
}

func TestYAMLRoundTripThroughJSON(t *testing.T) {
	yaml := "active: true\nage: 30\nname: Bob\n"
	json, err := YAMLToJSON(yaml, 2)
	require.NoError(t, err)
	back, err := JSONToYAML(json, 2)
	require.NoError(t, err)
	assert.Equal(t, yaml, back)
}

func TestConvertErrorWrapping(t *testing.T) {
	_, err := Convert(`{broken`, models.FormatJSON, models.FormatYAML, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing json input failed")
}
