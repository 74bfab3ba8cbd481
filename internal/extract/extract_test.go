package extract

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphkit/morph/internal/errors"
)

func TestSmartDirectJSON(t *testing.T) {
	res, err := Smart(`{"a": 1}`, 2, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "JSON", res.DetectedType)
	assert.Equal(t, "{\n  \"a\": 1\n}", res.Result)
}

func TestSmartRepairedJSON(t *testing.T) {
	res, err := Smart(`{a: 1, b: 'two'}`, 2, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Repaired JSON", res.DetectedType)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": \"two\"\n}", res.Result)
}

func TestSmartBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"name":"Bob","age":30}`))
	res, err := Smart(encoded, 2, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Base64", res.DetectedType)
	assert.Equal(t, "{\n  \"age\": 30,\n  \"name\": \"Bob\"\n}", res.Result)
}

func TestSmartURLEncoded(t *testing.T) {
	res, err := Smart(`%7B%22a%22%3A%201%7D`, 2, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "URL-encoded", res.DetectedType)
	assert.Equal(t, "{\n  \"a\": 1\n}", res.Result)
}

func TestSmartLogLine(t *testing.T) {
	res, err := Smart(`2026-01-02T10:00:00Z ERROR worker failed {"event":"boom","code":500}`, 2, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Log line", res.DetectedType)
	assert.Equal(t, "{\n  \"code\": 500,\n  \"event\": \"boom\"\n}", res.Result)
}

func TestSmartCodeFence(t *testing.T) {
	t.Run("strict body", func(t *testing.T) {
		res, err := Smart("```json\n{\"a\": 1}\n```", 2, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "Markdown", res.DetectedType)
		assert.Equal(t, "{\n  \"a\": 1\n}", res.Result)
	})

	t.Run("malformed body is repaired", func(t *testing.T) {
		res, err := Smart("```\n{a: 1}\n```", 2, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "Markdown", res.DetectedType)
		assert.Equal(t, "{\n  \"a\": 1\n}", res.Result)
	})
}

func TestSmartNothingExtractable(t *testing.T) {
	_, err := Smart("nothing to see here", 2, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNothingExtracted)
}

func TestSmartEmptyInput(t *testing.T) {
	_, err := Smart("   \n ", 2, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestSmartDisabledStrategies(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"name":"Bob","age":30}`))
	_, err := Smart(encoded, 2, Options{})
	assert.Error(t, err, "with every strategy off, a Base64 blob is just text")
}

func TestFromBase64(t *testing.T) {
	t.Run("data uri prefix", func(t *testing.T) {
		encoded := "data:application/json;base64," + base64.StdEncoding.EncodeToString([]byte(`{"name":"Bob","age":30}`))
		res, err := FromBase64(encoded, 2)
		require.NoError(t, err)
		assert.Equal(t, "Base64", res.DetectedType)
		assert.Contains(t, res.Result, `"name": "Bob"`)
	})

	t.Run("non-json payload returned verbatim", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("hello there, plain text payload"))
		res, err := FromBase64(encoded, 2)
		require.NoError(t, err)
		assert.Equal(t, "hello there, plain text payload", res.Result)
	})

	t.Run("too short to be confident", func(t *testing.T) {
		_, err := FromBase64("aGk=", 2)
		assert.Error(t, err)
	})

	t.Run("plain text rejected", func(t *testing.T) {
		_, err := FromBase64(`{"a": 1}`, 2)
		assert.Error(t, err)
	})
}

func TestFormatRepaired(t *testing.T) {
	out, err := FormatRepaired(`{"b":2,"a":1}`, 2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}", out)

	_, err = FormatRepaired(`still broken`, 2)
	assert.Error(t, err)
}
