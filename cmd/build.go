/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/samwightt/gqlz/pkg/query"
	"github.com/samwightt/gqlz/pkg/render"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
	"go.uber.org/zap"
)

// formatDocument re-indents a built document with gqlparser's formatter.
func formatDocument(text string) (string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: documentSource, Input: text})
	if err != nil {
		return "", fmt.Errorf("failed to parse built document: %w", err)
	}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc)
	return strings.TrimRight(buf.String(), "\n"), nil
}

func NewBuildCmd() *cobra.Command {
	var (
		op       string
		name     string
		pretty   bool
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "build [selection.json]",
		Short: "Print the GraphQL document for a selection",
		Long: `Builds the GraphQL document for a JSON selection against the schema.

The selection can be provided as a file path argument or piped via stdin.
Arguments are written the way the schema types them: enum values stay bare,
DateTime and UUID go through their scalar coders, everything else is a JSON
literal. Variables used anywhere in the selection are declared on the
operation.

Output formats:
  text    The document as built (re-indented with --pretty)
  pretty  The document re-indented
  json    {"query": "...", "variables": [...], "validation": {...}}`,
		Example: `  # Build a query from a file
  gqlz build selection.json

  # Build a named mutation from stdin
  echo '{"deleteUser": [{"id": "1"}]}' | gqlz build --op mutation --name Cleanup

  # Check the document against the schema
  gqlz build selection.json --validate`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, s, err := loadCliForSchema()
			if err != nil {
				return err
			}

			_, sel, err := readSelection(cmd, args)
			if err != nil {
				return err
			}

			doc, err := query.NewBuilder(tables, query.Builtin()).Build(op, sel, query.Options{OperationName: name})
			if err != nil {
				return err
			}
			logger.Debug("built document", zap.String("operation", op), zap.Int("variables", len(doc.Variables)))

			if pretty || outputFormat == render.FormatPretty {
				if doc.Text, err = formatDocument(doc.Text); err != nil {
					return err
				}
			}

			result := BuildResult{Document: doc}
			if validate {
				result.Validation = validateDocument(doc.Text, s)
			}

			output, err := render.Value[BuildResult]{
				Data: result,
				Text: func(r BuildResult) (string, error) {
					if r.Validation == nil {
						return r.Text, nil
					}
					return r.Text + "\n\n" + formatValidationResultText(r.Validation, r.Text, s), nil
				},
			}.Render(outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(output, "\n"))

			if result.Validation != nil && !result.Validation.Valid {
				return ErrValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&op, "op", "o", "query", "Operation: query, mutation or subscription")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Operation name")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Re-indent the document")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate the document against the schema")

	return cmd
}
