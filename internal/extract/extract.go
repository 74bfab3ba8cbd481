// Package extract recognizes and strips foreign envelopes around embedded
// JSON: cURL invocations, Base64 blobs, URL-encoded strings, markdown code
// fences and free-text log lines. Strategies run in fixed order and the
// first success wins; each one degrades from strict parsing to repair
// before giving up.
package extract

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/repair"
	"github.com/morphkit/morph/internal/serializer"
)

// Options toggles individual extraction strategies. The zero value disables
// everything; use DefaultOptions for the full set.
type Options struct {
	Curl       bool
	Base64     bool
	URLDecode  bool
	CodeFences bool
}

// DefaultOptions enables every extraction strategy.
func DefaultOptions() Options {
	return Options{Curl: true, Base64: true, URLDecode: true, CodeFences: true}
}

// Smart tries every extraction strategy in order and returns the first
// result. It fails only when no strategy produces parseable (or repairable)
// JSON.
func Smart(text string, indentWidth int, opts Options) (models.ExtractResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.ExtractResult{}, errors.NewInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	if opts.Curl {
		if res, err := FromCurl(text, indentWidth); err == nil {
			return res, nil
		}
	}
	if opts.Base64 {
		if res, err := FromBase64(text, indentWidth); err == nil {
			return res, nil
		}
	}
	if opts.URLDecode {
		if res, err := fromURLEncoded(text, indentWidth); err == nil {
			return res, nil
		}
	}
	if opts.CodeFences {
		if res, err := fromCodeFence(text, indentWidth); err == nil {
			return res, nil
		}
	}
	if res, err := fromLogLine(text, indentWidth); err == nil {
		return res, nil
	}
	if value, err := serializer.ParseJSON(trimmed); err == nil {
		out, err := serializer.PrintJSON(value, indentWidth)
		if err == nil {
			return models.ExtractResult{Result: out, DetectedType: "JSON"}, nil
		}
	}
	if fixed, err := repair.TryFix(trimmed, indentWidth); err == nil {
		return models.ExtractResult{Result: fixed.Result, DetectedType: "Repaired JSON"}, nil
	}

	return models.ExtractResult{}, errors.NewParseError("no strategy produced parseable JSON", errors.ErrNothingExtracted)
}

var base64Re = regexp.MustCompile(`^[A-Za-z0-9+/]{20,}={0,2}$`)

// FromBase64 decodes a Base64 blob (optionally behind a data: URI prefix)
// and extracts the JSON inside. The decoded text is returned verbatim when
// it is not JSON at all.
func FromBase64(text string, indentWidth int) (models.ExtractResult, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Join(strings.Fields(s), "")
	if !base64Re.MatchString(s) {
		return models.ExtractResult{}, errors.NewInputError("input does not look like Base64", nil)
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return models.ExtractResult{}, errors.NewParseError("Base64 decode failed", err)
		}
	}
	decoded := string(raw)

	result := decoded
	if value, err := serializer.ParseJSON(decoded); err == nil {
		if out, err := serializer.PrintJSON(value, indentWidth); err == nil {
			result = out
		}
	} else if fixed, err := repair.TryFix(decoded, indentWidth); err == nil {
		result = fixed.Result
	}
	return models.ExtractResult{Result: result, DetectedType: "Base64"}, nil
}

// fromURLEncoded percent-decodes text containing an encoded { or [ and
// parses the result strictly.
func fromURLEncoded(text string, indentWidth int) (models.ExtractResult, error) {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "%7b") && !strings.Contains(lower, "%5b") {
		return models.ExtractResult{}, errors.NewInputError("input has no percent-encoded JSON markers", nil)
	}
	decoded, err := url.QueryUnescape(strings.TrimSpace(text))
	if err != nil {
		return models.ExtractResult{}, errors.NewParseError("percent-decoding failed", err)
	}
	value, err := serializer.ParseJSON(decoded)
	if err != nil {
		return models.ExtractResult{}, err
	}
	out, err := serializer.PrintJSON(value, indentWidth)
	if err != nil {
		return models.ExtractResult{}, err
	}
	return models.ExtractResult{Result: out, DetectedType: "URL-encoded"}, nil
}

// fromCodeFence strips a markdown code fence (with optional language tag)
// and extracts the JSON inside, degrading from strict parse to the rewrite
// heuristics to a full jsonrepair pass.
func fromCodeFence(text string, indentWidth int) (models.ExtractResult, error) {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return models.ExtractResult{}, errors.NewInputError("input is not fenced", nil)
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && strings.EqualFold(strings.TrimSpace(s[:nl]), "json") {
		s = s[nl+1:]
	}
	s = strings.TrimSpace(s)

	if value, err := serializer.ParseJSON(s); err == nil {
		out, err := serializer.PrintJSON(value, indentWidth)
		if err != nil {
			return models.ExtractResult{}, err
		}
		return models.ExtractResult{Result: out, DetectedType: "Markdown"}, nil
	}
	if fixed, err := repair.TryFix(s, indentWidth); err == nil {
		return models.ExtractResult{Result: fixed.Result, DetectedType: "Markdown"}, nil
	}
	repaired, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return models.ExtractResult{}, errors.NewParseError("fenced block is not repairable JSON", err)
	}
	out, err := FormatRepaired(repaired, indentWidth)
	if err != nil {
		return models.ExtractResult{}, err
	}
	return models.ExtractResult{Result: out, DetectedType: "Markdown"}, nil
}

// FormatRepaired pretty-prints the output of a repair pass.
func FormatRepaired(text string, indentWidth int) (string, error) {
	value, err := serializer.ParseJSON(text)
	if err != nil {
		return "", err
	}
	return serializer.PrintJSON(value, indentWidth)
}

// fromLogLine extracts JSON embedded in a log line: everything from the
// first { or [ after position 0 through end of text, repaired when a strict
// parse fails.
func fromLogLine(text string, indentWidth int) (models.ExtractResult, error) {
	idx := -1
	for i := 1; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			idx = i
			break
		}
	}
	if idx < 1 {
		return models.ExtractResult{}, errors.NewInputError("no embedded JSON marker found", nil)
	}
	sub := text[idx:]
	if value, err := serializer.ParseJSON(sub); err == nil {
		out, err := serializer.PrintJSON(value, indentWidth)
		if err != nil {
			return models.ExtractResult{}, err
		}
		return models.ExtractResult{Result: out, DetectedType: "Log line"}, nil
	}
	fixed, err := repair.TryFix(sub, indentWidth)
	if err != nil {
		return models.ExtractResult{}, err
	}
	return models.ExtractResult{Result: fixed.Result, DetectedType: "Log line"}, nil
}
