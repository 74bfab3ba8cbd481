// Package detect classifies raw text as one of the supported notations
// using a fixed-order structural heuristic.
package detect

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/serializer"
)

// Detect classifies text as json, xml, yaml or unknown. XML requires a
// closing tag so that a lone self-closing fragment falls through. JSON wins
// over YAML whenever both parse: JSON's grammar is a syntactic subset of
// YAML's, so the stricter grammar is the more specific signal.
func Detect(text string) models.Format {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.FormatUnknown
	}

	if strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">") && strings.Contains(trimmed, "</") {
		return models.FormatXML
	}

	if strings.Contains(text, ":") && (strings.Contains(text, "\n") || strings.Contains(text, "  ")) {
		if yamlParses(trimmed) && !serializer.ValidJSON(trimmed) {
			return models.FormatYAML
		}
	}

	if serializer.ValidJSON(trimmed) {
		return models.FormatJSON
	}

	return models.FormatUnknown
}

func yamlParses(text string) bool {
	var v models.Value
	return yaml.Unmarshal([]byte(text), &v) == nil
}
