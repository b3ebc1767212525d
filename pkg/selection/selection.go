// Package selection describes what to fetch: a tree of fields, calls with
// arguments, aliases and directives that the query builder turns into a
// GraphQL document.
package selection

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is one position of a selection tree. A nil Node omits the field.
type Node interface {
	isNode()
}

// Leaf includes a field without arguments or sub-selection.
type Leaf struct{}

// Directive is emitted verbatim after the field name. Under the
// "__directives" key of Fields it decorates the enclosing field instead.
type Directive struct {
	Text string
}

// Call pairs a field's arguments with its sub-selection.
type Call struct {
	Args any
	Sub  Node
}

// Entry is a keyed child of Fields or Alias.
type Entry struct {
	Key  string
	Node Node
}

// Fields selects child fields in order.
type Fields []Entry

// Alias maps alias labels to single-entry Fields naming the aliased field.
type Alias []Entry

func (Leaf) isNode()      {}
func (Directive) isNode() {}
func (Call) isNode()      {}
func (Fields) isNode()    {}
func (Alias) isNode()     {}

// Reserved keys with special meaning inside Fields.
const (
	AliasKey      = "__alias"
	DirectivesKey = "__directives"
)

// Field returns an Entry, keeping call sites terse.
func Field(key string, n Node) Entry {
	return Entry{Key: key, Node: n}
}

// Directives returns the __directives text of f, if any.
func (f Fields) Directives() string {
	for _, e := range f {
		if e.Key != DirectivesKey {
			continue
		}
		if d, ok := e.Node.(Directive); ok {
			return d.Text
		}
	}
	return ""
}

// Markers wrapping a bound variable inside an argument string.
const (
	VarPrefix     = "$ZEUS_VAR"
	TypeSeparator = "__$GRAPHQL__"
)

// Var returns the argument placeholder binding variable name with the given
// GraphQL type, e.g. Var("id", "ID!").
func Var(name, graphQLType string) string {
	return VarPrefix + name + TypeSeparator + graphQLType
}

// ParseVar splits a variable placeholder. ok is false for plain strings.
func ParseVar(s string) (name, graphQLType string, ok bool) {
	if !strings.HasPrefix(s, VarPrefix) {
		return "", "", false
	}
	name, graphQLType, _ = strings.Cut(strings.TrimPrefix(s, VarPrefix), TypeSeparator)
	return name, graphQLType, true
}

type undefined struct{}

// Undefined drops an argument object entry from the serialized output.
var Undefined = undefined{}

// Object builds an ordered argument object from alternating keys and values.
func Object(kv ...any) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	for i := 0; i+1 < len(kv); i += 2 {
		om.Set(kv[i].(string), kv[i+1])
	}
	return om
}
