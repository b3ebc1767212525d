package query

import "github.com/samwightt/gqlz/pkg/schema"

// ClassKind is the outcome of resolving a path.
type ClassKind int

const (
	// Not means the position is a plain value, or could not be resolved.
	Not ClassKind = iota
	Enum
	Scalar
)

// Class classifies the value at a path.
type Class struct {
	Kind   ClassKind
	Scalar string
}

func (c Class) String() string {
	switch c.Kind {
	case Enum:
		return "enum"
	case Scalar:
		return "scalar." + c.Scalar
	default:
		return "not"
	}
}

// Resolver classifies paths by walking the props and returns tables in
// tandem. Unknown names resolve to Not rather than failing, so tables that
// lag behind a live schema degrade to plain JSON literals.
type Resolver struct {
	tables *schema.Tables
}

// NewResolver returns a resolver over t.
func NewResolver(t *schema.Tables) *Resolver {
	return &Resolver{tables: t}
}

// Resolve classifies the terminal position of p.
func (r *Resolver) Resolve(p Path) Class {
	if len(p) == 0 {
		return Class{}
	}
	if c, ok := r.viaProps(p); ok {
		return c
	}
	if c, ok := r.viaReturns(p); ok {
		return c
	}
	return Class{}
}

// replay restarts resolution at typeName with the unconsumed segments.
func (r *Resolver) replay(typeName string, rest Path) Class {
	return r.Resolve(Path{FieldSegment(typeName)}.Append(rest...))
}

func (r *Resolver) viaProps(p Path) (Class, bool) {
	entry, ok := r.tables.Props[r.tables.TypeFor(p[0].Name)]
	if !ok {
		return Class{}, false
	}

	switch entry.Kind {
	case schema.KindEnum:
		if len(p) == 1 {
			return Class{Kind: Enum}, true
		}
		return Class{}, false
	case schema.KindScalar:
		if len(p) == 1 {
			return Class{Kind: Scalar, Scalar: entry.Scalar}, true
		}
		return Class{}, false
	}

	if len(p) < 2 {
		return Class{}, true
	}
	if p[1].Kind != Arg {
		return Class{}, false
	}
	field, ok := entry.Fields[p[1].Name]
	if !ok {
		return Class{}, false
	}
	if field.Type != "" {
		return r.replay(field.Type, p[2:]), true
	}
	if len(p) < 3 {
		return Class{}, true
	}
	if argType, ok := field.Args[p[2].Name]; ok && p[2].Kind == Arg {
		return r.replay(argType, p[3:]), true
	}
	return Class{}, false
}

func (r *Resolver) viaReturns(p Path) (Class, bool) {
	entry, ok := r.tables.Returns[r.tables.TypeFor(p[0].Name)]
	if !ok || entry.Fields == nil {
		return Class{}, false
	}
	if len(p) < 2 {
		return Class{}, true
	}
	if p[1].Kind != Field {
		return Class{}, false
	}
	result, ok := entry.Fields[p[1].Name]
	if !ok {
		return Class{}, false
	}
	return r.replay(result, p[2:]), true
}
