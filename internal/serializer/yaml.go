package serializer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/models"
)

// ParseYAML parses YAML text (block or flow style) into a generic Value.
// Scalars are resolved to bool/number/string/null by YAML's own resolution
// rules; integers are widened to float64 to match the Value model.
func ParseYAML(text string) (models.Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var root models.Value
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("YAML parse failed: %v", err), err)
	}

	return yamlToValue(root), nil
}

// yamlToValue converts yaml.v3 output into the Value model
func yamlToValue(val models.Value) models.Value {
	switch v := val.(type) {
	case map[string]models.Value:
		obj := make(models.Object, len(v))
		for key, value := range v {
			obj[key] = yamlToValue(value)
		}
		return obj
	case map[models.Value]models.Value:
		// non-string mapping keys are stringified
		obj := make(models.Object, len(v))
		for key, value := range v {
			obj[fmt.Sprint(key)] = yamlToValue(value)
		}
		return obj
	case []models.Value:
		arr := make(models.Array, len(v))
		for i, value := range v {
			arr[i] = yamlToValue(value)
		}
		return arr
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return v // string, float64, bool and nil are returned as is
	}
}

// PrintYAML emits a Value in block style with the given indent width.
func PrintYAML(value models.Value, indentWidth int) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indentWidth)
	if err := enc.Encode(value); err != nil {
		return "", errors.NewConversionError("failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return "", errors.NewConversionError("failed to encode YAML", err)
	}
	return buf.String(), nil
}
