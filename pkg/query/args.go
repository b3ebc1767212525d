package query

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/samwightt/gqlz/pkg/selection"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Variable is a GraphQL variable declaration collected while building.
type Variable struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (v Variable) String() string {
	return "$" + v.Name + ": " + v.Type
}

type argsBuilder struct {
	resolver *Resolver
	scalars  Scalars
	vars     []Variable
}

// register records a bound variable, rejecting a second declaration of the
// same name with a different type.
func (b *argsBuilder) register(name, graphQLType string) error {
	for _, v := range b.vars {
		if v.Name != name {
			continue
		}
		if v.Type != graphQLType {
			return fmt.Errorf("%w: $%s is declared as both %q and %q", ErrVariableTypeMismatch, name, v.Type, graphQLType)
		}
		return nil
	}
	b.vars = append(b.vars, Variable{Name: name, Type: graphQLType})
	return nil
}

// build renders a as a GraphQL argument literal at path p. The root
// argument object is returned without braces, ready to be wrapped in the
// field's parentheses.
func (b *argsBuilder) build(a any, p Path, root bool) (string, error) {
	if s, ok := a.(string); ok {
		if name, graphQLType, ok := selection.ParseVar(s); ok {
			if err := b.register(name, graphQLType); err != nil {
				return "", err
			}
			return "$" + name, nil
		}
	}

	if a == nil {
		return "null", nil
	}

	class := b.resolver.Resolve(p)
	if class.Kind == Scalar {
		if items, ok := listItems(a); ok {
			return b.list(items, p)
		}
		if coder, ok := b.scalars[class.Scalar]; ok && coder.Encode != nil {
			encoded, err := coder.Encode(a)
			if err != nil {
				return "", fmt.Errorf("encode %s at %s: %w", class.Scalar, p, err)
			}
			if encoded != "" {
				return encoded, nil
			}
		}
		return jsonLiteral(a)
	}

	switch v := a.(type) {
	case string:
		if class.Kind == Enum {
			return v, nil
		}
		return jsonLiteral(v)
	case []any:
		return b.list(v, p)
	case *orderedmap.OrderedMap[string, any]:
		var entries []string
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			entry, ok, err := b.entry(pair.Key, pair.Value, p)
			if err != nil {
				return "", err
			}
			if ok {
				entries = append(entries, entry)
			}
		}
		return wrapObject(entries, root), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var entries []string
		for _, k := range keys {
			entry, ok, err := b.entry(k, v[k], p)
			if err != nil {
				return "", err
			}
			if ok {
				entries = append(entries, entry)
			}
		}
		return wrapObject(entries, root), nil
	}

	switch rv := reflect.ValueOf(a); rv.Kind() {
	case reflect.String:
		return b.build(rv.String(), p, root)
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return b.list(items, p)
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			for iter := rv.MapRange(); iter.Next(); {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return b.build(m, p, root)
		}
	}
	return fmt.Sprint(a), nil
}

// listItems unpacks slices so list arguments of a custom scalar are encoded
// element by element. Arrays such as uuid.UUID are values, not lists.
func listItems(a any) ([]any, bool) {
	if items, ok := a.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(a)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func (b *argsBuilder) list(items []any, p Path) (string, error) {
	out := make([]string, len(items))
	for i, item := range items {
		s, err := b.build(item, p, false)
		if err != nil {
			return "", err
		}
		out[i] = s
	}
	return "[" + strings.Join(out, ", ") + "]", nil
}

func (b *argsBuilder) entry(k string, v any, p Path) (string, bool, error) {
	if v == selection.Undefined {
		return "", false, nil
	}
	s, err := b.build(v, p.Append(ArgSegment(k)), false)
	if err != nil {
		return "", false, err
	}
	return k + ": " + s, true, nil
}

func wrapObject(entries []string, root bool) string {
	body := strings.Join(entries, ", ")
	if root {
		return body
	}
	return "{" + body + "}"
}
