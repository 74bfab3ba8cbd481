// Package normalizer bridges the XML intermediate shape and the generic
// Value model. Parsed XML keeps attributes and text content under sentinel
// keys; ToGeneric collapses that shape into plain values, and ToXMLShape
// wraps plain values back into something the XML printer can emit.
package normalizer

import (
	"math"
	"strconv"
	"strings"

	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/serializer"
)

// ToGeneric post-processes a parsed XML map into the shape the JSON
// serializer would have produced natively. Attribute and cdata keys are
// dropped (attributes have no place in the generic model), and an element
// carrying only text content collapses into a resolved scalar. Text content
// next to sibling elements is discarded; mixed-content XML is a known lossy
// case.
func ToGeneric(value models.Value) models.Value {
	switch v := value.(type) {
	case models.Object:
		return objectToGeneric(v)
	case map[string]models.Value:
		return objectToGeneric(models.Object(v))
	case models.Array:
		return arrayToGeneric(v)
	case []models.Value:
		return arrayToGeneric(models.Array(v))
	case string:
		return ResolveScalar(v)
	default:
		return v
	}
}

func objectToGeneric(obj models.Object) models.Value {
	out := make(models.Object, len(obj))
	var text models.Value
	hasText := false
	for key, child := range obj {
		switch {
		case strings.HasPrefix(key, serializer.AttrPrefix):
			// attributes are not representable in the generic model
		case key == serializer.CdataKey:
			// likewise cdata
		case key == serializer.TextKey:
			hasText = true
			text = child
		default:
			out[key] = ToGeneric(child)
		}
	}
	if hasText && len(out) == 0 {
		return ToGeneric(text)
	}
	return out
}

func arrayToGeneric(arr models.Array) models.Array {
	out := make(models.Array, len(arr))
	for i, child := range arr {
		out[i] = ToGeneric(child)
	}
	return out
}

// ResolveScalar applies YAML-style scalar resolution to an XML text value:
// "true"/"false" become bool, "null" becomes nil, numerals become numbers,
// anything else stays a string.
func ResolveScalar(s string) models.Value {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// ToXMLShape wraps a generic Value for XML printing. Arrays become repeated
// <item> elements under <root>, scalars become a single <text> element, and
// an object already wrapped in a lone "root" key passes through so repeated
// round trips do not nest.
func ToXMLShape(value models.Value) models.Object {
	switch v := value.(type) {
	case models.Object:
		if len(v) == 1 {
			if _, ok := v["root"]; ok {
				return v
			}
		}
		return models.Object{"root": v}
	case map[string]models.Value:
		return ToXMLShape(models.Object(v))
	case models.Array:
		return models.Object{"root": models.Object{"item": v}}
	case []models.Value:
		return models.Object{"root": models.Object{"item": models.Array(v)}}
	default:
		return models.Object{"root": models.Object{"text": formatScalar(v)}}
	}
}

// UnwrapRoot inverts the ToXMLShape wrapping after an XML parse: a lone
// "root" key is removed, a root holding only an "item" array yields the
// array itself, and a root holding only a scalar "text" member yields the
// scalar. This makes XML-to-JSON the inverse of JSON-to-XML for
// array-rooted and scalar-rooted documents. A real document shaped
// {"root": {"text": scalar}} collides with the scalar wrapping and
// unwraps too; the synthetic names win.
func UnwrapRoot(value models.Value) models.Value {
	obj, ok := value.(models.Object)
	if !ok || len(obj) != 1 {
		return value
	}
	inner, ok := obj["root"]
	if !ok {
		return value
	}
	if innerObj, ok := inner.(models.Object); ok && len(innerObj) == 1 {
		if arr, ok := innerObj["item"].(models.Array); ok {
			return arr
		}
		if text, ok := innerObj["text"]; ok && isScalar(text) {
			return text
		}
	}
	return inner
}

func isScalar(value models.Value) bool {
	switch value.(type) {
	case models.Object, map[string]models.Value, models.Array, []models.Value:
		return false
	}
	return true
}

func formatScalar(value models.Value) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	default:
		return ""
	}
}
