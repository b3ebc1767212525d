/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/samwightt/gqlz/pkg/query"
	"github.com/samwightt/gqlz/pkg/render"
	"github.com/spf13/cobra"
)

func NewPathsCmd() *cobra.Command {
	var op string

	cmd := &cobra.Command{
		Use:   "paths [selection.json]",
		Short: "List response paths that hold custom scalars",
		Long: `Walks a selection the way build does and lists every requested field whose
result type is a custom scalar, keyed by its response path.

Paths start at the root type and use response keys, so aliased fields
appear under their alias and inline fragments add no segment. Lists add no
index: one path covers every element.`,
		Example: `  # Scalar paths of a query
  gqlz paths selection.json

  # Scalar paths of a subscription as JSON
  gqlz paths selection.json --op subscription -f json`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, _, err := loadCliForSchema()
			if err != nil {
				return err
			}

			_, sel, err := readSelection(cmd, args)
			if err != nil {
				return err
			}

			paths, err := query.NewBuilder(tables, nil).ScalarPaths(op, sel)
			if err != nil {
				return err
			}

			infos := make([]PathInfo, 0, len(paths))
			for _, p := range sortedKeys(paths) {
				infos = append(infos, PathInfo{Path: p, Scalar: paths[p]})
			}

			output, err := render.Rows[PathInfo]{
				Data:    infos,
				Headers: []string{"Path", "Scalar"},
				Text: func(p PathInfo) string {
					return p.Path + ": " + p.Scalar
				},
				Cells: func(p PathInfo) []string {
					return []string{p.Path, p.Scalar}
				},
			}.Render(outputFormat)
			if err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintln(cmd.OutOrStdout(), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&op, "op", "o", "query", "Operation: query, mutation or subscription")

	return cmd
}
