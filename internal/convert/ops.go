package convert

import (
	"encoding/json"
	"strings"

	stderrors "errors"

	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/serializer"
)

// FormatJSON re-serializes a JSON document with the given indent width.
func FormatJSON(text string, indentWidth int) (string, error) {
	value, err := serializer.ParseJSON(text)
	if err != nil {
		return "", err
	}
	return serializer.PrintJSON(value, indentWidth)
}

// FormatXML re-serializes an XML document with the given indent width,
// preserving attributes and text content.
func FormatXML(text string, indentWidth int) (string, error) {
	if !strings.Contains(text, "<") || !strings.Contains(text, ">") {
		return "", errors.NewStructuralError("input has no XML element structure", errors.ErrNoRootElement)
	}
	node, err := serializer.ParseXML(text)
	if err != nil {
		return "", err
	}
	return serializer.PrintXML(node, indentWidth)
}

// FormatYAML re-serializes a YAML document in block style with the given
// indent width.
func FormatYAML(text string, indentWidth int) (string, error) {
	value, err := serializer.ParseYAML(text)
	if err != nil {
		return "", err
	}
	return serializer.PrintYAML(value, indentWidth)
}

// CompressJSON minifies a JSON document and reports the size change.
func CompressJSON(text string) (models.CompressResult, error) {
	value, err := serializer.ParseJSON(text)
	if err != nil {
		return models.CompressResult{}, err
	}
	out, err := serializer.CompactJSON(value)
	if err != nil {
		return models.CompressResult{}, err
	}
	return models.CompressResult{
		Result:         out,
		OriginalSize:   len(text),
		CompressedSize: len(out),
	}, nil
}

// ValidateJSON checks text against strict JSON and reports the first syntax
// error with its character position when the parser exposes one.
func ValidateJSON(text string) models.Validation {
	if strings.TrimSpace(text) == "" {
		return models.Validation{Valid: false, Error: "input is empty", Position: -1}
	}
	var v models.Value
	err := json.Unmarshal([]byte(text), &v)
	if err == nil {
		return models.Validation{Valid: true, Position: -1}
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return models.Validation{Valid: false, Error: err.Error(), Position: syntaxError.Offset}
	}
	return models.Validation{Valid: false, Error: err.Error(), Position: -1}
}

// EscapeString wraps arbitrary text in the JSON string-escaping grammar,
// quotes included.
func EscapeString(text string) string {
	out, err := json.Marshal(text)
	if err != nil {
		// a Go string always marshals; invalid UTF-8 is replaced
		return text
	}
	return string(out)
}

var lenientUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\"`, `"`,
	`\'`, `'`,
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
)

// UnescapeString unwraps a JSON-escaped string. When strict unescaping
// fails it falls back to a lenient substitution table, stripping a single
// layer of surrounding quotes if present.
func UnescapeString(text string) string {
	var out string
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return out
	}
	s := text
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return lenientUnescaper.Replace(s)
}
