package extract

import (
	"strings"

	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/repair"
	"github.com/morphkit/morph/internal/serializer"
)

// FromCurl extracts the JSON request body from a cURL invocation, along
// with the request URL and any -H header pairs. The body is parsed
// strictly, repaired when that fails, and returned verbatim as a last
// resort.
func FromCurl(text string, indentWidth int) (models.ExtractResult, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(strings.ToLower(trimmed), "curl") {
		return models.ExtractResult{}, errors.NewInputError("input is not a cURL command", nil)
	}

	tokens := tokenize(trimmed)
	var body, url string
	headers := make(map[string]string)
	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case isDataFlag(tok):
			if i+1 < len(tokens) {
				if body == "" {
					body = tokens[i+1]
				}
				i++
			}
		case hasDataFlagPrefix(tok):
			if body == "" {
				_, body, _ = strings.Cut(tok, "=")
			}
		case tok == "-H" || tok == "--header":
			if i+1 < len(tokens) {
				if key, value, ok := strings.Cut(tokens[i+1], ":"); ok {
					headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
				}
				i++
			}
		case tok == "-X" || tok == "--request" || tok == "-u" || tok == "--user" || tok == "-o" || tok == "--output":
			i++ // flag consumes the next token
		case strings.HasPrefix(tok, "http://") || strings.HasPrefix(tok, "https://"):
			if url == "" {
				url = tok
			}
		}
	}
	if body == "" {
		return models.ExtractResult{}, errors.NewStructuralError("cURL command has no data argument", nil)
	}

	result := body
	if value, err := serializer.ParseJSON(body); err == nil {
		if out, err := serializer.PrintJSON(value, indentWidth); err == nil {
			result = out
		}
	} else if fixed, err := repair.TryFix(body, indentWidth); err == nil {
		result = fixed.Result
	}

	return models.ExtractResult{
		Result:       result,
		DetectedType: "cURL",
		URL:          url,
		Headers:      headers,
	}, nil
}

func isDataFlag(tok string) bool {
	switch tok {
	case "-d", "--data", "--data-raw", "--data-binary":
		return true
	}
	return false
}

func hasDataFlagPrefix(tok string) bool {
	for _, flag := range []string{"--data=", "--data-raw=", "--data-binary="} {
		if strings.HasPrefix(tok, flag) {
			return true
		}
	}
	return false
}

// tokenize splits a shell command line into tokens, honoring single and
// double quotes and dropping backslash line continuations.
func tokenize(s string) []string {
	s = strings.ReplaceAll(s, "\\\n", " ")
	var tokens []string
	var cur strings.Builder
	var quote byte
	inToken := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else if c == '\\' && quote == '"' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
				cur.WriteByte(s[i+1])
				i++
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		case c == ' ' || c == '\t' || c == '\n':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteByte(c)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
