package jsonpath

import (
	"fmt"
	"strings"
)

type frame struct {
	isArray bool
	key     string
	keyed   bool
	index   int
}

// PathAtOffset returns the structural path (for example $.a.b[2])
// corresponding to a character offset, using a single left-to-right scan
// that tracks open container frames. It does not fully re-parse the
// document, so positions inside deeply escaped strings can be
// mis-attributed; it is a UI hint, not a correctness-critical computation.
func PathAtOffset(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}

	var stack []frame
	var lastString []byte
	var cur []byte
	inString := false
	escaped := false

	for i := 0; i < offset; i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
				cur = append(cur, c)
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				lastString = append(lastString[:0], cur...)
			default:
				cur = append(cur, c)
			}
			continue
		}
		switch c {
		case '"':
			inString = true
			cur = cur[:0]
		case '{':
			stack = append(stack, frame{})
		case '[':
			stack = append(stack, frame{isArray: true})
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case ':':
			if n := len(stack); n > 0 && !stack[n-1].isArray {
				stack[n-1].key = string(lastString)
				stack[n-1].keyed = true
			}
		case ',':
			if n := len(stack); n > 0 {
				if stack[n-1].isArray {
					stack[n-1].index++
				} else {
					stack[n-1].keyed = false
				}
			}
		}
	}

	var b strings.Builder
	b.WriteByte('$')
	for _, f := range stack {
		if f.isArray {
			fmt.Fprintf(&b, "[%d]", f.index)
		} else if f.keyed {
			b.WriteByte('.')
			b.WriteString(f.key)
		}
	}
	return b.String()
}
