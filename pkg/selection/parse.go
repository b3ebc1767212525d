package selection

import (
	"fmt"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParseJSON reads the JSON rendition of a selection, keeping key order:
//
//	true, non-zero numbers   Leaf
//	false, 0, null           omitted
//	"text"                   Directive
//	[args, sub]              Call
//	{...}                    Fields ("__alias" holds an Alias)
func ParseJSON(data []byte) (Node, error) {
	value, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("invalid selection JSON: %w", err)
	}
	return parseNode(value, typ)
}

func parseNode(value []byte, typ jsonparser.ValueType) (Node, error) {
	switch typ {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil || !b {
			return nil, err
		}
		return Leaf{}, nil
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		if err != nil || f == 0 {
			return nil, err
		}
		return Leaf{}, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, err
		}
		return Directive{Text: s}, nil
	case jsonparser.Array:
		return parseCall(value)
	case jsonparser.Object:
		return parseFields(value)
	default:
		return nil, fmt.Errorf("unsupported selection value %q", value)
	}
}

func parseCall(value []byte) (Node, error) {
	var (
		elems    [][]byte
		types    []jsonparser.ValueType
		innerErr error
	)
	_, err := jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, err error) {
		if err != nil && innerErr == nil {
			innerErr = err
		}
		elems = append(elems, v)
		types = append(types, t)
	})
	if err == nil {
		err = innerErr
	}
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 || len(elems) > 2 {
		return nil, fmt.Errorf("a call must be [arguments, selection], got %d elements", len(elems))
	}

	args, err := parseValue(elems[0], types[0])
	if err != nil {
		return nil, err
	}
	call := Call{Args: args, Sub: Leaf{}}
	if len(elems) == 2 {
		if call.Sub, err = parseNode(elems[1], types[1]); err != nil {
			return nil, err
		}
	}
	return call, nil
}

func parseFields(value []byte) (Node, error) {
	var fields Fields
	err := jsonparser.ObjectEach(value, func(k []byte, v []byte, t jsonparser.ValueType, _ int) error {
		key := string(k)
		switch key {
		case AliasKey:
			if t != jsonparser.Object {
				return fmt.Errorf("%s must be an object", AliasKey)
			}
			alias, err := parseAlias(v)
			if err != nil {
				return err
			}
			fields = append(fields, Field(key, alias))
		case DirectivesKey:
			if t != jsonparser.String {
				return fmt.Errorf("%s must be a string", DirectivesKey)
			}
			text, err := jsonparser.ParseString(v)
			if err != nil {
				return err
			}
			fields = append(fields, Field(key, Directive{Text: text}))
		default:
			n, err := parseNode(v, t)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			fields = append(fields, Field(key, n))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func parseAlias(value []byte) (Alias, error) {
	var alias Alias
	err := jsonparser.ObjectEach(value, func(k []byte, v []byte, t jsonparser.ValueType, _ int) error {
		label := string(k)
		n, err := parseNode(v, t)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		alias = append(alias, Field(label, n))
		return nil
	})
	return alias, err
}

// parseValue reads an argument value. Objects keep their key order.
func parseValue(value []byte, typ jsonparser.ValueType) (any, error) {
	switch typ {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Number:
		if i, err := jsonparser.ParseInt(value); err == nil {
			return i, nil
		}
		return jsonparser.ParseFloat(value)
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Array:
		list := []any{}
		var innerErr error
		_, err := jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, err error) {
			if innerErr != nil {
				return
			}
			if err != nil {
				innerErr = err
				return
			}
			elem, err := parseValue(v, t)
			if err != nil {
				innerErr = err
				return
			}
			list = append(list, elem)
		})
		if err == nil {
			err = innerErr
		}
		return list, err
	case jsonparser.Object:
		om := orderedmap.New[string, any]()
		err := jsonparser.ObjectEach(value, func(k []byte, v []byte, t jsonparser.ValueType, _ int) error {
			elem, err := parseValue(v, t)
			if err != nil {
				return err
			}
			om.Set(string(k), elem)
			return nil
		})
		return om, err
	default:
		return nil, fmt.Errorf("unsupported argument value %q", value)
	}
}
