package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/samwightt/gqlz/pkg/schema"
	"github.com/samwightt/gqlz/pkg/selection"
	"github.com/samwightt/gqlz/pkg/transport"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
)

const stdinSource = "stdin"

// loadCliForSchema loads the schema named by --schema and derives its tables.
func loadCliForSchema() (*schema.Tables, *ast.Schema, error) {
	return schema.Load(schemaFilePath)
}

// readInput reads the file named by args[0], or stdin when there is none.
// It returns the source name alongside the content.
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 1 {
		bytes, err := os.ReadFile(args[0])
		if err != nil {
			return "", nil, fmt.Errorf("failed to read selection file: %w", err)
		}
		return args[0], bytes, nil
	}
	bytes, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	return stdinSource, bytes, nil
}

func readSelection(cmd *cobra.Command, args []string) (string, selection.Node, error) {
	name, bytes, err := readInput(cmd, args)
	if err != nil {
		return "", nil, err
	}
	sel, err := selection.ParseJSON(bytes)
	if err != nil {
		err = fmt.Errorf("invalid selection in %s: %w", name, err)
		if help := detectZshEscapeIssue(name, bytes); help != "" {
			err = fmt.Errorf("%w\n  = help: %s", err, help)
		}
		return "", nil, err
	}
	return name, sel, nil
}

// validateTypeExists checks if a type has any table entry and returns a helpful
// error with a "did you mean" suggestion if it doesn't.
func validateTypeExists(t *schema.Tables, typeName string) error {
	names := tableTypeNames(t)
	if slices.Contains(names, typeName) {
		return nil
	}
	if suggestion := schema.FindClosest(typeName, names); suggestion != "" {
		return fmt.Errorf("type '%s' does not exist in schema, did you mean '%s'?", typeName, suggestion)
	}
	return fmt.Errorf("type '%s' does not exist in schema", typeName)
}

// tableTypeNames lists every type named in the props or returns table, sorted.
func tableTypeNames(t *schema.Tables) []string {
	seen := map[string]bool{}
	for name := range t.Props {
		seen[name] = true
	}
	for name := range t.Returns {
		seen[name] = true
	}
	return sortedKeys(seen)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// transportOptions turns the endpoint flags into transport options.
func transportOptions() ([]transport.Option, error) {
	var opts []transport.Option
	if endpoint.Method != "" {
		opts = append(opts, transport.WithMethod(endpoint.Method))
	}
	if endpoint.WSURL != "" {
		opts = append(opts, transport.WithWebSocketURL(endpoint.WSURL))
	}
	for _, h := range endpoint.Headers {
		if strings.TrimSpace(h) == "" {
			continue
		}
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, expected 'Name: value'", h)
		}
		opts = append(opts, transport.WithHeader(strings.TrimSpace(name), strings.TrimSpace(value)))
	}
	return opts, nil
}

func requireHost() error {
	if endpoint.Host == "" {
		return fmt.Errorf("no endpoint configured, set --host or GQLZ_HOST")
	}
	return nil
}
