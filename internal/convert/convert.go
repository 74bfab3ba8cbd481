// Package convert orchestrates the serializers and the normalizer to move
// documents between notations, always pivoting through the generic Value
// tree, never directly source to target.
package convert

import (
	"fmt"

	"github.com/morphkit/morph/internal/detect"
	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/normalizer"
	"github.com/morphkit/morph/internal/serializer"
)

// Convert converts text from one notation to another. An empty or unknown
// source format is autodetected. When source and target match, the input is
// returned untouched so original formatting survives.
func Convert(text string, from, to models.Format, indentWidth int) (string, error) {
	if from == "" || from == models.FormatUnknown {
		from = detect.Detect(text)
		if from == models.FormatUnknown {
			return "", errors.NewUnsupportedError("could not detect the input format", errors.ErrUnsupportedFormat)
		}
	}
	if from == to {
		return text, nil
	}

	value, err := parseAs(text, from)
	if err != nil {
		return "", errors.NewConversionError(fmt.Sprintf("parsing %s input failed", from), err)
	}
	out, err := printAs(value, to, indentWidth)
	if err != nil {
		return "", errors.NewConversionError(fmt.Sprintf("printing %s output failed", to), err)
	}
	return out, nil
}

func parseAs(text string, format models.Format) (models.Value, error) {
	switch format {
	case models.FormatJSON:
		return serializer.ParseJSON(text)
	case models.FormatYAML:
		return serializer.ParseYAML(text)
	case models.FormatXML:
		node, err := serializer.ParseXML(text)
		if err != nil {
			return nil, err
		}
		return normalizer.UnwrapRoot(normalizer.ToGeneric(node)), nil
	default:
		return nil, errors.NewUnsupportedError(fmt.Sprintf("unsupported source format %q", format), errors.ErrUnsupportedFormat)
	}
}

func printAs(value models.Value, format models.Format, indentWidth int) (string, error) {
	switch format {
	case models.FormatJSON:
		return serializer.PrintJSON(value, indentWidth)
	case models.FormatYAML:
		return serializer.PrintYAML(value, indentWidth)
	case models.FormatXML:
		return serializer.PrintXML(normalizer.ToXMLShape(value), indentWidth)
	default:
		return "", errors.NewUnsupportedError(fmt.Sprintf("unsupported target format %q", format), errors.ErrUnsupportedFormat)
	}
}

// JSONToXML converts a JSON document to XML using the root/item wrapping
// rules.
func JSONToXML(text string, indentWidth int) (string, error) {
	return Convert(text, models.FormatJSON, models.FormatXML, indentWidth)
}

// XMLToJSON converts an XML document to JSON, dropping attributes and
// unwrapping the synthetic root element.
func XMLToJSON(text string, indentWidth int) (string, error) {
	return Convert(text, models.FormatXML, models.FormatJSON, indentWidth)
}

// JSONToYAML converts a JSON document to block-style YAML.
func JSONToYAML(text string, indentWidth int) (string, error) {
	return Convert(text, models.FormatJSON, models.FormatYAML, indentWidth)
}

// YAMLToJSON converts a YAML document to pretty-printed JSON.
func YAMLToJSON(text string, indentWidth int) (string, error) {
	return Convert(text, models.FormatYAML, models.FormatJSON, indentWidth)
}
