// Package schema holds the read-only lookup tables the query builder walks:
// the operation table, the argument-side props table and the result-side
// returns table.
package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownOperation is returned when an operation name has no root type.
var ErrUnknownOperation = errors.New("unknown operation")

// Kind classifies a props table entry.
type Kind int

const (
	KindObject Kind = iota
	KindEnum
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindScalar:
		return "scalar"
	default:
		return "object"
	}
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// PropsField describes one field of a props object. Input object fields
// point at a type name; output fields with arguments carry an argument map.
type PropsField struct {
	Type string            `json:"type,omitempty"`
	Args map[string]string `json:"args,omitempty"`
}

// PropsType is the argument-side description of a named type.
type PropsType struct {
	Kind   Kind                  `json:"kind"`
	Scalar string                `json:"scalar,omitempty"`
	Fields map[string]PropsField `json:"fields,omitempty"`
}

// ReturnsType is the result-side description of a named type. Exactly one of
// Scalar or Fields is set.
type ReturnsType struct {
	Scalar string            `json:"scalar,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Enum marks a props entry as an enum.
func Enum() PropsType {
	return PropsType{Kind: KindEnum}
}

// Scalar marks a props entry as the custom scalar name.
func Scalar(name string) PropsType {
	return PropsType{Kind: KindScalar, Scalar: name}
}

// Object describes a props entry with fields.
func Object(fields map[string]PropsField) PropsType {
	return PropsType{Kind: KindObject, Fields: fields}
}

// Ref is a props field pointing at another type.
func Ref(typeName string) PropsField {
	return PropsField{Type: typeName}
}

// Args is a props field describing a field's argument types.
func Args(args map[string]string) PropsField {
	return PropsField{Args: args}
}

// Returns describes a result type by its field result types.
func Returns(fields map[string]string) ReturnsType {
	return ReturnsType{Fields: fields}
}

// ScalarReturn marks a result type as the custom scalar name.
func ScalarReturn(name string) ReturnsType {
	return ReturnsType{Scalar: name}
}

// Tables bundles the three schema lookups. Tables is never mutated once
// built and may be shared between goroutines.
type Tables struct {
	Ops     map[string]string      `json:"ops"`
	Props   map[string]PropsType   `json:"props"`
	Returns map[string]ReturnsType `json:"returns"`
}

// RootType returns the root type name of an operation such as "query".
func (t *Tables) RootType(op string) (string, error) {
	if root, ok := t.Ops[op]; ok {
		return root, nil
	}
	var names []string
	for name := range t.Ops {
		names = append(names, name)
	}
	sort.Strings(names)
	if suggestion := FindClosest(op, names); suggestion != "" {
		return "", fmt.Errorf("%w '%s', did you mean '%s'?", ErrUnknownOperation, op, suggestion)
	}
	return "", fmt.Errorf("%w '%s'", ErrUnknownOperation, op)
}

// TypeFor maps a path head to a type name: operation names resolve through
// Ops, anything else is taken as a type name.
func (t *Tables) TypeFor(head string) string {
	if root, ok := t.Ops[head]; ok {
		return root
	}
	return head
}

const maxSuggestionDistance = 5

// FindClosest returns the candidate nearest to input by edit distance, or ""
// when nothing is close enough.
func FindClosest(input string, candidates []string) string {
	minDist := -1
	closest := ""
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = c
		}
	}
	if minDist > maxSuggestionDistance {
		return ""
	}
	return closest
}
