// Package query turns selection trees into GraphQL documents and decodes
// custom scalars in the responses those documents produce.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samwightt/gqlz/pkg/schema"
	"github.com/samwightt/gqlz/pkg/selection"
)

var (
	// ErrInvalidAlias is returned when an alias does not hold exactly one field.
	ErrInvalidAlias = errors.New("invalid alias, it should be __alias: { ALIAS: { FIELD: { ...selection } } }")
	// ErrVariableTypeMismatch is returned when one variable is bound with two types.
	ErrVariableTypeMismatch = errors.New("variable declared with two different GraphQL types")
)

// Options tune a single Build call.
type Options struct {
	// OperationName names the emitted operation.
	OperationName string
}

// Document is a built GraphQL operation.
type Document struct {
	Text      string     `json:"query"`
	Variables []Variable `json:"variables,omitempty"`
}

// Builder builds documents and scalar path maps against one set of tables.
// It holds no per-call state and is safe for concurrent use.
type Builder struct {
	tables   *schema.Tables
	resolver *Resolver
	scalars  Scalars
}

// NewBuilder returns a Builder. scalars may be nil.
func NewBuilder(t *schema.Tables, scalars Scalars) *Builder {
	return &Builder{tables: t, resolver: NewResolver(t), scalars: scalars}
}

// Tables returns the tables the builder walks.
func (b *Builder) Tables() *schema.Tables {
	return b.tables
}

// Build renders sel as the document for operation op ("query",
// "mutation", "subscription").
func (b *Builder) Build(op string, sel selection.Node, opts Options) (Document, error) {
	if _, err := b.tables.RootType(op); err != nil {
		return Document{}, err
	}
	w := &walker{
		args:          &argsBuilder{resolver: b.resolver, scalars: b.scalars},
		operationName: opts.OperationName,
	}
	text, err := w.node(op, op, sel, nil, true)
	if err != nil {
		return Document{}, err
	}
	return Document{Text: text, Variables: w.args.vars}, nil
}

type walker struct {
	args          *argsBuilder
	operationName string
}

// node renders the field key selecting n. name is the schema field name
// behind key, which may carry an alias or rendered arguments. parent is the
// path of the enclosing selection set.
func (w *walker) node(key, name string, n selection.Node, parent Path, root bool) (string, error) {
	switch n := n.(type) {
	case nil:
		return "", nil
	case selection.Leaf:
		return key, nil
	case selection.Directive:
		return key + " " + n.Text, nil
	case selection.Call:
		if n.Args != nil {
			args, err := w.args.build(n.Args, parent.Append(ArgSegment(name)), true)
			if err != nil {
				return "", err
			}
			if args != "" {
				key = key + "(" + args + ")"
			}
		}
		return w.node(key, name, n.Sub, parent, false)
	case selection.Alias:
		var lines []string
		for _, e := range n {
			field, sub, err := aliased(e)
			if err != nil {
				return "", err
			}
			line, err := w.node(e.Key+":"+field, PurifyKey(field), sub, parent, false)
			if err != nil {
				return "", err
			}
			if line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, "\n"), nil
	case selection.Fields:
		return w.fields(key, name, n, parent, root)
	default:
		return "", fmt.Errorf("unsupported selection node %T", n)
	}
}

func (w *walker) fields(key, name string, n selection.Fields, parent Path, root bool) (string, error) {
	path := parent.Append(FieldSegment(name))
	if typ, ok := FragmentType(name); ok {
		path = Path{FieldSegment(typ)}
	}

	var children []string
	for _, e := range n {
		if e.Key == selection.DirectivesKey {
			continue
		}
		child, err := w.node(e.Key, PurifyKey(e.Key), e.Node, path, false)
		if err != nil {
			return "", err
		}
		if child != "" {
			children = append(children, child)
		}
	}

	head := key
	if root {
		if w.operationName != "" {
			head += " " + w.operationName
		}
		if vars := w.args.vars; len(vars) > 0 {
			decls := make([]string, len(vars))
			for i, v := range vars {
				decls[i] = v.String()
			}
			head += "(" + strings.Join(decls, ", ") + ")"
		}
	}
	if d := n.Directives(); d != "" {
		head += " " + d
	}
	return head + " {" + strings.Join(children, "\n") + "}", nil
}

// aliased unpacks an alias entry, which must hold exactly one field.
func aliased(e selection.Entry) (string, selection.Node, error) {
	inner, ok := e.Node.(selection.Fields)
	if !ok || len(inner) != 1 {
		return "", nil, fmt.Errorf("%w: %q must hold exactly one field", ErrInvalidAlias, e.Key)
	}
	return inner[0].Key, inner[0].Node, nil
}
