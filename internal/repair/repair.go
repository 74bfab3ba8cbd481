// Package repair applies an ordered sequence of textual rewrites to
// malformed JSON-like text until it parses, recording which rewrites fired.
// The rewrites are best-effort heuristics, not a correct parser: bracket
// balancing in particular counts characters globally, so a brace inside a
// string literal still contributes to the balance.
package repair

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/serializer"
)

// Fix descriptions appended to FixResult.Fixes, in rewrite order.
const (
	FixSingleQuotes   = "replaced single quotes with double quotes"
	FixTrailingCommas = "removed trailing commas"
	FixBareKeys       = "quoted bare keys"
	FixComments       = "stripped comments"
)

var (
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// TryFix attempts to repair malformed JSON text. Already-valid input is
// re-serialized with no fixes recorded. Otherwise the rewrites run in fixed
// order and the rewritten text is parsed strictly; on failure the fixes
// applied so far are still reported alongside the parse error.
func TryFix(text string, indentWidth int) (models.FixResult, error) {
	trimmed := strings.TrimSpace(text)
	if value, err := serializer.ParseJSON(trimmed); err == nil {
		out, err := serializer.PrintJSON(value, indentWidth)
		if err != nil {
			return models.FixResult{}, err
		}
		return models.FixResult{Result: out}, nil
	}

	s := trimmed
	var fixes []string

	if out, changed := replaceSingleQuotes(s); changed {
		s = out
		fixes = append(fixes, FixSingleQuotes)
	}
	if out := trailingCommaRe.ReplaceAllString(s, "$1"); out != s {
		s = out
		fixes = append(fixes, FixTrailingCommas)
	}
	if out := bareKeyRe.ReplaceAllString(s, `$1"$2":`); out != s {
		s = out
		fixes = append(fixes, FixBareKeys)
	}
	s, balanceFixes := balanceBrackets(s)
	fixes = append(fixes, balanceFixes...)
	if out, changed := stripComments(s); changed {
		s = out
		fixes = append(fixes, FixComments)
	}

	value, err := serializer.ParseJSON(s)
	if err != nil {
		return models.FixResult{Fixes: fixes}, err
	}
	out, err := serializer.PrintJSON(value, indentWidth)
	if err != nil {
		return models.FixResult{Fixes: fixes}, err
	}
	return models.FixResult{Result: out, Fixes: fixes}, nil
}

// replaceSingleQuotes rewrites single-quoted string literals as
// double-quoted ones, leaving single quotes inside double-quoted strings
// alone. Escaped single quotes become plain quotes; embedded double quotes
// gain an escape.
func replaceSingleQuotes(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	inDouble := false
	inSingle := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			if inSingle && s[i+1] == '\'' {
				b.WriteByte('\'')
				changed = true
			} else {
				b.WriteByte(c)
				b.WriteByte(s[i+1])
			}
			i++
		case c == '"' && inSingle:
			b.WriteString(`\"`)
			changed = true
		case c == '"':
			inDouble = !inDouble
			b.WriteByte(c)
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			b.WriteByte('"')
			changed = true
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), changed
}

// balanceBrackets appends closing braces/brackets for any excess of opens
// over closes. The scan tracks opener order so mixed nesting closes from
// the inside out, but it is blind to string context.
func balanceBrackets(s string) (string, []string) {
	var stack []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '[':
			stack = append(stack, s[i])
		case '}':
			if n := len(stack); n > 0 && stack[n-1] == '{' {
				stack = stack[:n-1]
			}
		case ']':
			if n := len(stack); n > 0 && stack[n-1] == '[' {
				stack = stack[:n-1]
			}
		}
	}
	if len(stack) == 0 {
		return s, nil
	}

	var b strings.Builder
	b.WriteString(s)
	braces, brackets := 0, 0
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
			braces++
		} else {
			b.WriteByte(']')
			brackets++
		}
	}
	var fixes []string
	if brackets > 0 {
		fixes = append(fixes, fmt.Sprintf("added %d missing closing bracket%s", brackets, plural(brackets)))
	}
	if braces > 0 {
		fixes = append(fixes, fmt.Sprintf("added %d missing closing brace%s", braces, plural(braces)))
	}
	return b.String(), fixes
}

// stripComments removes //line and /* block */ comments outside string
// literals.
func stripComments(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			changed = true
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			changed = true
			if end := strings.Index(s[i+2:], "*/"); end >= 0 {
				i = i + 2 + end + 1
			} else {
				i = len(s) - 1
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), changed
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
