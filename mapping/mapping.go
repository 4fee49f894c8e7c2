// Package mapping turns raw JSON API payloads into typed domain objects.
//
// The dynamic attribute dispatch of the historical client (clean_<field>
// callables plus a nested-class table) becomes a static declaration here:
// the struct definition itself is the per-type table, with normalizers
// expressed as dedicated field types (Date, TimeOfDay, DateTime, LooseBool)
// and nested bindings as nested struct fields.
package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DecodeError reports a response body that is not the JSON shape the
// operation expects.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Unpack validates body as JSON and returns it as a raw message.
func Unpack(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, &DecodeError{Err: fmt.Errorf("invalid JSON (%d bytes)", len(body))}
	}
	return json.RawMessage(trimmed), nil
}

// Decode unmarshals body into v, wrapping failures as DecodeError.
func Decode(body []byte, v any) error {
	if err := json.Unmarshal(bytes.TrimSpace(body), v); err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			return fe
		}
		return &DecodeError{Err: err}
	}
	return nil
}

// Build constructs one domain object from a raw JSON mapping. When raw is
// null, absent, or not an object at all, it returns (nil, nil): "no object"
// is an explicit result the caller handles, not a failure.
func Build[T any](raw []byte) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return nil, nil
	}

	var v T
	if err := Decode(trimmed, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// BuildList maps Build over a raw JSON array. A null or absent sequence
// yields an empty, never-nil slice.
func BuildList[T any](raw []byte) ([]*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []*T{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, &DecodeError{Err: err}
	}

	out := make([]*T, 0, len(elems))
	for _, el := range elems {
		v, err := Build[T](el)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Int coerces a count endpoint body (a bare integer or a quoted one) to int.
func Int(body []byte) (int, error) {
	s := strings.TrimSpace(string(body))
	s = strings.Trim(s, `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &DecodeError{Err: fmt.Errorf("not an integer body: %q", s)}
	}
	return n, nil
}
