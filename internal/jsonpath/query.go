package jsonpath

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/serializer"
)

// Query evaluates a path expression against a JSON document and returns
// the raw JSON of the match.
func Query(text, path string) (string, error) {
	if _, err := serializer.ParseJSON(text); err != nil {
		return "", err
	}
	res := gjson.Get(text, path)
	if !res.Exists() {
		return "", errors.NewStructuralError(fmt.Sprintf("path %q matched nothing", path), nil)
	}
	return res.Raw, nil
}

// SetPath writes a value at a path and returns the updated document. A
// value that is itself valid JSON is spliced in raw; anything else is
// stored as a string.
func SetPath(text, path, value string) (string, error) {
	if _, err := serializer.ParseJSON(text); err != nil {
		return "", err
	}
	var (
		out string
		err error
	)
	if json.Valid([]byte(value)) {
		out, err = sjson.SetRaw(text, path, value)
	} else {
		out, err = sjson.Set(text, path, value)
	}
	if err != nil {
		return "", errors.NewStructuralError(fmt.Sprintf("cannot set path %q", path), err)
	}
	return out, nil
}
