package models

// Value is the generic, notation-independent tree every conversion pivots
// through. A Value is one of: nil, bool, float64, string, Array, or Object.
// Numeric literals are never distinguished integer/float; anything that
// parses as a number is stored as a float64.
type Value = any

// Object represents a mapping node. Keys are unique within a node; print
// order is deterministic (lexicographic) across all serializers.
type Object map[string]Value

// Array represents an ordered sequence node.
type Array []Value

// Format identifies one of the supported text notations.
type Format string

const (
	FormatJSON    Format = "json"
	FormatXML     Format = "xml"
	FormatYAML    Format = "yaml"
	FormatUnknown Format = "unknown"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatJSON, FormatXML, FormatYAML:
		return Format(s), true
	}
	return FormatUnknown, false
}

// FixResult is the outcome of a repair attempt. Fixes lists a description of
// every rewrite that fired, in application order. When the final parse fails
// the caller receives both the error and the Fixes applied up to that point.
type FixResult struct {
	Result string
	Fixes  []string
}

// CompressResult carries a minified document plus the byte sizes before and
// after minification.
type CompressResult struct {
	Result         string
	OriginalSize   int
	CompressedSize int
}

// Validation reports whether a document is strict JSON. Position is the
// character offset of the first syntax error when the parser exposes one,
// and -1 otherwise.
type Validation struct {
	Valid    bool
	Error    string
	Position int64
}

// ExtractResult is the outcome of envelope extraction. DetectedType names
// the strategy that produced the result. URL and Headers are populated only
// by the cURL strategy.
type ExtractResult struct {
	Result       string
	DetectedType string
	URL          string
	Headers      map[string]string
}

// Stats summarizes a JSON document: NodeCount counts every container and
// leaf visited in a pre-order traversal, Depth is the maximum nesting depth
// with the root at 0, and ByteSize is the UTF-8 length of the source text.
type Stats struct {
	NodeCount int
	Depth     int
	ByteSize  int
}
