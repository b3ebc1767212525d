package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// LoadFile reads and parses the SDL file at path.
func LoadFile(path string) (*ast.Schema, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	bytes, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("schema file does not exist: %s", path)
		}
		return nil, err
	}

	return Parse(filepath.Base(abs), string(bytes))
}

// Parse parses SDL source into a validated schema.
func Parse(name, sdl string) (*ast.Schema, error) {
	s, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		var parsingError *gqlerror.Error
		if errors.As(err, &parsingError) {
			return nil, fmt.Errorf("GraphQL schema parsing error: %v", parsingError)
		}
		return nil, err
	}
	return s, nil
}

// FromAST derives the lookup tables from a parsed schema. Props only keeps
// what argument classification needs: enums, custom scalars, input objects
// and fields whose arguments reference one of those.
func FromAST(s *ast.Schema) *Tables {
	t := &Tables{
		Ops:     map[string]string{},
		Props:   map[string]PropsType{},
		Returns: map[string]ReturnsType{},
	}
	if s.Query != nil {
		t.Ops["query"] = s.Query.Name
	}
	if s.Mutation != nil {
		t.Ops["mutation"] = s.Mutation.Name
	}
	if s.Subscription != nil {
		t.Ops["subscription"] = s.Subscription.Name
	}

	classified := func(name string) bool {
		def := s.Types[name]
		if def == nil || def.BuiltIn {
			return false
		}
		return def.Kind == ast.Enum || def.Kind == ast.Scalar || def.Kind == ast.InputObject
	}

	for name, def := range s.Types {
		if def.BuiltIn {
			continue
		}
		switch def.Kind {
		case ast.Enum:
			t.Props[name] = Enum()
		case ast.Scalar:
			t.Props[name] = Scalar(name)
			t.Returns[name] = ScalarReturn(name)
		case ast.InputObject:
			fields := map[string]PropsField{}
			for _, f := range def.Fields {
				if base := f.Type.Name(); classified(base) {
					fields[f.Name] = Ref(base)
				}
			}
			t.Props[name] = Object(fields)
		case ast.Object, ast.Interface:
			fields := map[string]PropsField{}
			results := map[string]string{}
			for _, f := range def.Fields {
				if strings.HasPrefix(f.Name, "__") {
					continue
				}
				results[f.Name] = f.Type.Name()
				args := map[string]string{}
				for _, arg := range f.Arguments {
					if base := arg.Type.Name(); classified(base) {
						args[arg.Name] = base
					}
				}
				if len(args) > 0 {
					fields[f.Name] = Args(args)
				}
			}
			if len(fields) > 0 {
				t.Props[name] = Object(fields)
			}
			t.Returns[name] = Returns(results)
		}
	}

	return t
}

// Load reads an SDL file and derives its tables.
func Load(path string) (*Tables, *ast.Schema, error) {
	s, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return FromAST(s), s, nil
}
