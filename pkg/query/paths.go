package query

import "github.com/samwightt/gqlz/pkg/selection"

// ScalarPaths maps a response path, such as "Query|user|createdAt", to the
// custom scalar found there.
type ScalarPaths map[string]string

// ScalarPaths walks sel like Build does and records every requested leaf
// whose result type is a custom scalar. Paths use response keys (alias
// labels included) and have no array indexes.
func (b *Builder) ScalarPaths(op string, sel selection.Node) (ScalarPaths, error) {
	root, err := b.tables.RootType(op)
	if err != nil {
		return nil, err
	}
	out := ScalarPaths{}
	if err := b.collect(out, op, root, sel, nil, nil, true); err != nil {
		return nil, err
	}
	return out, nil
}

// collect records scalar leaves below n. p holds response keys, orig the
// schema names used for type lookups.
func (b *Builder) collect(out ScalarPaths, key, originalKey string, n selection.Node, p, orig []string, root bool) error {
	switch n := n.(type) {
	case nil:
		return nil
	case selection.Leaf, selection.Directive:
		if name, ok := b.extractScalar(appendKey(orig, PurifyKey(originalKey))); ok {
			out[joinPath(appendKey(p, ResponseKey(key)))] = name
		}
		return nil
	case selection.Call:
		return b.collect(out, key, originalKey, n.Sub, p, orig, false)
	case selection.Alias:
		for _, e := range n {
			field, sub, err := aliased(e)
			if err != nil {
				return err
			}
			if err := b.collect(out, e.Key, field, sub, p, orig, false); err != nil {
				return err
			}
		}
		return nil
	case selection.Fields:
		var childP, childOrig []string
		if root {
			childP, childOrig = []string{originalKey}, []string{originalKey}
		} else if typ, ok := FragmentType(originalKey); ok {
			// inline fragments add no response key but narrow the type
			childP, childOrig = p, []string{typ}
		} else {
			childP, childOrig = appendKey(p, ResponseKey(key)), appendKey(orig, PurifyKey(originalKey))
		}
		for _, e := range n {
			if e.Key == selection.DirectivesKey {
				continue
			}
			if err := b.collect(out, e.Key, e.Key, e.Node, childP, childOrig, false); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// extractScalar follows field names through the returns table starting at
// parts[0], a type name.
func (b *Builder) extractScalar(parts []string) (string, bool) {
	if len(parts) == 0 {
		return "", false
	}
	entry, ok := b.tables.Returns[parts[0]]
	if !ok {
		return "", false
	}
	if entry.Fields == nil {
		return entry.Scalar, entry.Scalar != ""
	}
	if len(parts) < 2 {
		return "", false
	}
	next, ok := entry.Fields[parts[1]]
	if !ok {
		return "", false
	}
	return b.extractScalar(append([]string{next}, parts[2:]...))
}
