package serializer

import (
	"encoding/json"
	"fmt"
	"strings"

	stderrors "errors"

	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/models"
)

// ParseJSON parses strict JSON text into a generic Value. Trailing commas,
// comments and unquoted keys are rejected; such inputs belong to the repair
// engine, not the serializer.
func ParseJSON(text string) (models.Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var root models.Value
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewParseError(
				fmt.Sprintf("JSON syntax error at position %d: %v", syntaxError.Offset, err),
				errors.ErrInvalidJSON,
			)
		}
		return nil, errors.NewParseError("failed to decode JSON", err)
	}

	return normalizeValue(root), nil
}

// normalizeValue converts raw decoded containers into our model types
func normalizeValue(val models.Value) models.Value {
	switch v := val.(type) {
	case map[string]models.Value:
		obj := make(models.Object, len(v))
		for key, value := range v {
			obj[key] = normalizeValue(value)
		}
		return obj
	case []models.Value:
		arr := make(models.Array, len(v))
		for i, value := range v {
			arr[i] = normalizeValue(value)
		}
		return arr
	default:
		return v // string, float64, bool and nil are returned as is
	}
}

// PrintJSON pretty-prints a Value with the given indent width. Key order is
// deterministic (lexicographic).
func PrintJSON(value models.Value, indentWidth int) (string, error) {
	out, err := json.MarshalIndent(value, "", strings.Repeat(" ", indentWidth))
	if err != nil {
		return "", errors.NewConversionError("failed to encode JSON", err)
	}
	return string(out), nil
}

// CompactJSON prints a Value with no insignificant whitespace.
func CompactJSON(value models.Value) (string, error) {
	out, err := json.Marshal(value)
	if err != nil {
		return "", errors.NewConversionError("failed to encode JSON", err)
	}
	return string(out), nil
}

// ValidJSON reports whether text is a complete, strict JSON document.
func ValidJSON(text string) bool {
	return json.Valid([]byte(text))
}
