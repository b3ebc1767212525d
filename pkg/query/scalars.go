package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Coder converts a custom scalar between its wire form and a Go value.
// Either function may be nil. Encode returns a GraphQL literal.
type Coder struct {
	Encode func(v any) (string, error)
	Decode func(v any) (any, error)
}

// Scalars maps custom scalar names to their coders. A scalar without an
// entry is treated as a plain JSON value.
type Scalars map[string]Coder

// DateTime encodes time.Time as an RFC 3339 string literal and decodes
// RFC 3339 strings into time.Time.
func DateTime() Coder {
	return Coder{
		Encode: func(v any) (string, error) {
			switch t := v.(type) {
			case time.Time:
				return jsonLiteral(t.Format(time.RFC3339Nano))
			case string:
				if _, err := time.Parse(time.RFC3339, t); err != nil {
					return "", fmt.Errorf("DateTime: %w", err)
				}
				return jsonLiteral(t)
			}
			return "", fmt.Errorf("DateTime: cannot encode %T", v)
		},
		Decode: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("DateTime: expected string, got %T", v)
			}
			return time.Parse(time.RFC3339, s)
		},
	}
}

// UUID encodes and decodes uuid.UUID values.
func UUID() Coder {
	return Coder{
		Encode: func(v any) (string, error) {
			switch id := v.(type) {
			case uuid.UUID:
				return jsonLiteral(id.String())
			case string:
				if _, err := uuid.Parse(id); err != nil {
					return "", err
				}
				return jsonLiteral(id)
			}
			return "", fmt.Errorf("UUID: cannot encode %T", v)
		},
		Decode: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("UUID: expected string, got %T", v)
			}
			return uuid.Parse(s)
		},
	}
}

// Builtin returns coders for the DateTime and UUID scalars.
func Builtin() Scalars {
	return Scalars{
		"DateTime": DateTime(),
		"UUID":     UUID(),
	}
}

// jsonLiteral encodes v as JSON without HTML escaping. JSON strings are
// valid GraphQL string literals.
func jsonLiteral(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
