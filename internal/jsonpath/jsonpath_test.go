package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		nodeCount int
		depth     int
	}{
		{
			// root object, two keys, array with two elements
			name:      "object with nested array",
			input:     `{"a":1,"b":[2,3]}`,
			nodeCount: 5,
			depth:     2,
		},
		{
			name:      "scalar root",
			input:     `42`,
			nodeCount: 1,
			depth:     0,
		},
		{
			name:      "flat array",
			input:     `[1,2,3]`,
			nodeCount: 4,
			depth:     1,
		},
		{
			name:      "deep nesting",
			input:     `{"a":{"b":{"c":1}}}`,
			nodeCount: 4,
			depth:     3,
		},
		{
			name:      "empty object",
			input:     `{}`,
			nodeCount: 1,
			depth:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := Stats(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.nodeCount, stats.NodeCount, "node count")
			assert.Equal(t, tt.depth, stats.Depth, "depth")
			assert.Equal(t, len(tt.input), stats.ByteSize, "byte size")
		})
	}

	_, err := Stats(`{broken`)
	assert.Error(t, err)
}

func TestPathAtOffset(t *testing.T) {
	doc := `{"a": 1, "b": [10, 20, 30], "c": {"d": true}}`

	tests := []struct {
		name     string
		offset   int
		expected string
	}{
		{"start of document", 0, "$"},
		{"inside first value", 7, "$.a"},
		{"inside first array element", 16, "$.b[0]"},
		{"inside second array element", 20, "$.b[1]"},
		{"inside third array element", 24, "$.b[2]"},
		{"inside nested object value", 40, "$.c.d"},
		{"past end clamps", 1000, "$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PathAtOffset(doc, tt.offset))
		})
	}
}

func TestPathAtOffsetIgnoresBracketsInStrings(t *testing.T) {
	doc := `{"a": "[{", "b": 1}`
	// offset inside the value of "b": the bracket characters in the
	// string literal must not open frames
	assert.Equal(t, "$.b", PathAtOffset(doc, 18))
}

func TestQuery(t *testing.T) {
	doc := `{"user": {"name": "Bob", "emails": ["a@x.test", "b@x.test"]}}`

	t.Run("object member", func(t *testing.T) {
		out, err := Query(doc, "user.name")
		require.NoError(t, err)
		assert.Equal(t, `"Bob"`, out)
	})

	t.Run("array element", func(t *testing.T) {
		out, err := Query(doc, "user.emails.1")
		require.NoError(t, err)
		assert.Equal(t, `"b@x.test"`, out)
	})

	t.Run("subtree is raw JSON", func(t *testing.T) {
		out, err := Query(doc, "user.emails")
		require.NoError(t, err)
		assert.Equal(t, `["a@x.test", "b@x.test"]`, out)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Query(doc, "user.phone")
		assert.Error(t, err)
	})

	t.Run("invalid document", func(t *testing.T) {
		_, err := Query(`{broken`, "a")
		assert.Error(t, err)
	})
}

func TestSetPath(t *testing.T) {
	t.Run("json value spliced raw", func(t *testing.T) {
		out, err := SetPath(`{"a":1}`, "b", "2")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1,"b":2}`, out)
	})

	t.Run("non-json value stored as string", func(t *testing.T) {
		out, err := SetPath(`{"a":1}`, "b", "hello world")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1,"b":"hello world"}`, out)
	})

	t.Run("replace nested", func(t *testing.T) {
		out, err := SetPath(`{"user":{"name":"Bob"}}`, "user.name", `"Ann"`)
		require.NoError(t, err)
		assert.Equal(t, `{"user":{"name":"Ann"}}`, out)
	})

	t.Run("invalid document", func(t *testing.T) {
		_, err := SetPath(`{broken`, "a", "1")
		assert.Error(t, err)
	})
}
