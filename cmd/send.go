/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samwightt/gqlz/pkg/client"
	"github.com/samwightt/gqlz/pkg/query"
	"github.com/samwightt/gqlz/pkg/render"
	"github.com/spf13/cobra"
)

// parseVariables reads name=json pairs. A value that is not JSON is an error,
// strings must be quoted.
func parseVariables(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q, expected name=json", pair)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("invalid value for variable %s: %w", name, err)
		}
		vars[strings.TrimPrefix(name, "$")] = value
	}
	return vars, nil
}

func clientOptions() ([]client.Option, error) {
	topts, err := transportOptions()
	if err != nil {
		return nil, err
	}
	return []client.Option{
		client.WithScalars(query.Builtin()),
		client.WithLogger(logger),
		client.WithTransport(topts...),
	}, nil
}

func NewSendCmd() *cobra.Command {
	var (
		op   string
		name string
		vars []string
	)

	cmd := &cobra.Command{
		Use:   "send [selection.json]",
		Short: "Run a query or mutation over HTTP",
		Long: `Builds the document for a selection, sends it to --host and prints the
response data as JSON. DateTime and UUID fields are decoded on the way back,
so they come out normalised.

Variables declared in the selection get their values from --var, written as
name=json.`,
		Example: `  # Run a query
  gqlz send selection.json --host https://api.example.com/graphql

  # Run a mutation with a variable and an auth header
  gqlz send mutation.json --op mutation --var 'id="42"' -H 'Authorization: Bearer token'

  # Use GET instead of POST
  gqlz send selection.json --method GET`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireHost(); err != nil {
				return err
			}
			variables, err := parseVariables(vars)
			if err != nil {
				return err
			}
			opts, err := clientOptions()
			if err != nil {
				return err
			}

			tables, _, err := loadCliForSchema()
			if err != nil {
				return err
			}

			_, sel, err := readSelection(cmd, args)
			if err != nil {
				return err
			}

			data, err := client.Chain(tables, endpoint.Host, opts...).Run(cmd.Context(), op, sel,
				client.WithOperationName(name),
				client.WithVariables(variables),
			)
			if err != nil {
				return err
			}

			output, err := render.Value[any]{Data: data}.Render(outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&op, "op", "o", "query", "Operation: query or mutation")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Operation name")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "Variable as name=json (repeatable)")

	return cmd
}
