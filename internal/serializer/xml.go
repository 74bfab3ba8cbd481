package serializer

import (
	"fmt"
	"strings"

	"github.com/clbanning/mxj/v2"

	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/models"
)

// Sentinel keys produced by the mxj codec at the XML boundary: attribute
// keys carry the "-" prefix, direct text content lives under "#text". These
// keys never leave the XML serializer/normalizer boundary.
const (
	AttrPrefix = "-"
	TextKey    = "#text"
	CdataKey   = "#cdata"
)

// ParseXML parses a well-formed XML document into its intermediate map
// shape. Element values stay strings; scalar resolution happens in the
// normalizer. Fails when no single root element is present.
func ParseXML(text string) (models.Object, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if !strings.HasPrefix(trimmed, "<") {
		return nil, errors.NewStructuralError("document has no root element", errors.ErrNoRootElement)
	}

	m, err := mxj.NewMapXml([]byte(trimmed))
	if err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("XML parse failed: %v", err), err)
	}
	if len(m) == 0 {
		return nil, errors.NewStructuralError("document has no root element", errors.ErrNoRootElement)
	}
	return models.Object(m), nil
}

// PrintXML emits an intermediate-shaped map as indented XML. The map must
// already be in the shape the XML printer expects (see the normalizer);
// printing an arbitrary generic map produces attribute-free elements named
// after each key.
func PrintXML(node models.Object, indentWidth int) (string, error) {
	out, err := mxj.Map(denormalizeObject(node)).XmlIndent("", strings.Repeat(" ", indentWidth))
	if err != nil {
		return "", errors.NewConversionError("failed to encode XML", err)
	}
	return string(out), nil
}

// denormalizeObject rewrites a Value tree with plain map/slice containers.
// mxj type-switches on map[string]interface{} and []interface{}; the named
// Object/Array types fall through to its fmt.Sprint default, which would
// stringify a nested array into a single element.
func denormalizeObject(obj models.Object) map[string]models.Value {
	out := make(map[string]models.Value, len(obj))
	for key, child := range obj {
		out[key] = denormalizeValue(child)
	}
	return out
}

func denormalizeValue(value models.Value) models.Value {
	switch v := value.(type) {
	case models.Object:
		return denormalizeObject(v)
	case map[string]models.Value:
		return denormalizeObject(models.Object(v))
	case models.Array:
		return denormalizeSlice(v)
	case []models.Value:
		return denormalizeSlice(models.Array(v))
	default:
		return v
	}
}

func denormalizeSlice(arr models.Array) []models.Value {
	out := make([]models.Value, len(arr))
	for i, child := range arr {
		out[i] = denormalizeValue(child)
	}
	return out
}
