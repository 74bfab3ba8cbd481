package convert

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/serializer"
)

// JSONToCSV converts a JSON array of objects (or a single object) into CSV
// text. Columns come from the first object's keys in sorted order; nested
// values are embedded as compact JSON.
func JSONToCSV(text string) (string, error) {
	value, err := serializer.ParseJSON(text)
	if err != nil {
		return "", err
	}

	var rows models.Array
	switch v := value.(type) {
	case models.Array:
		if len(v) == 0 {
			return "", errors.NewStructuralError("cannot convert an empty array to CSV", errors.ErrEmptyArray)
		}
		rows = v
	case models.Object:
		rows = models.Array{v}
	default:
		return "", errors.NewStructuralError("CSV conversion requires an object or an array of objects", nil)
	}

	first, ok := rows[0].(models.Object)
	if !ok {
		return "", errors.NewStructuralError("CSV conversion requires array elements to be objects", nil)
	}
	headers := make([]string, 0, len(first))
	for key := range first {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(csvQuote(h))
	}
	b.WriteByte('\n')
	for _, row := range rows {
		obj, ok := row.(models.Object)
		if !ok {
			return "", errors.NewStructuralError("CSV conversion requires array elements to be objects", nil)
		}
		for i, h := range headers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvQuote(csvCell(obj[h])))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func csvCell(value models.Value) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		// nested containers are embedded as compact JSON
		out, err := serializer.CompactJSON(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return out
	}
}

func csvQuote(cell string) string {
	if strings.ContainsAny(cell, ",\"\n") {
		return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return cell
}

// CSVToJSON converts CSV text (header row plus at least one data row) into
// a pretty-printed JSON array of objects. Cells are split on commas with no
// quoted-comma support; boolean- and numeric-looking cells are coerced.
// headerKey maps each header to its JSON key (see Config.HeaderKey); nil
// keeps headers as-is.
func CSVToJSON(text string, indentWidth int, headerKey func(string) string) (string, error) {
	lines := splitCSVLines(text)
	if len(lines) < 2 {
		return "", errors.NewStructuralError("CSV input needs a header row and at least one data row", errors.ErrEmptyCSV)
	}

	headers := strings.Split(lines[0], ",")
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if headerKey != nil {
			h = headerKey(h)
		}
		headers[i] = h
	}

	out := make(models.Array, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := strings.Split(line, ",")
		obj := make(models.Object, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				obj[h] = coerceCell(strings.TrimSpace(cells[i]))
			} else {
				obj[h] = ""
			}
		}
		out = append(out, obj)
	}
	return serializer.PrintJSON(out, indentWidth)
}

func splitCSVLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := raw[:0]
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func coerceCell(cell string) models.Value {
	switch cell {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return cell
}
