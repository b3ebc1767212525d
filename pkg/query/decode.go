package query

import "fmt"

// Decode rebuilds response, a decoded JSON value rooted at rootType,
// replacing every value found at a scalar path with the output of that
// scalar's decoder. Values without a decoder are passed through unchanged.
func Decode(paths ScalarPaths, scalars Scalars, rootType string, response any) (any, error) {
	d := decoder{paths: paths, scalars: scalars}
	return d.value(response, []string{rootType})
}

type decoder struct {
	paths   ScalarPaths
	scalars Scalars
}

func (d decoder) value(v any, p []string) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			decoded, err := d.value(elem, p)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	}

	path := joinPath(p)
	if name, ok := d.paths[path]; ok {
		if coder, ok := d.scalars[name]; ok && coder.Decode != nil {
			decoded, err := coder.Decode(v)
			if err != nil {
				return nil, fmt.Errorf("decode %s at %s: %w", name, path, err)
			}
			return decoded, nil
		}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return v, nil
	}
	out := make(map[string]any, len(obj))
	for k, elem := range obj {
		decoded, err := d.value(elem, appendKey(p, PurifyKey(k)))
		if err != nil {
			return nil, err
		}
		out[k] = decoded
	}
	return out, nil
}
