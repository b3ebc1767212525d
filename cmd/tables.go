/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samwightt/gqlz/pkg/render"
	"github.com/samwightt/gqlz/pkg/schema"
	"github.com/spf13/cobra"
)

var tableNames = []string{"ops", "props", "returns"}

func tableEntries(t *schema.Tables) []TableEntry {
	var entries []TableEntry

	for _, op := range sortedKeys(t.Ops) {
		entries = append(entries, TableEntry{Table: "ops", Name: op, Kind: "operation", Detail: t.Ops[op]})
	}

	for _, name := range sortedKeys(t.Props) {
		p := t.Props[name]
		entry := TableEntry{Table: "props", Name: name, Kind: p.Kind.String()}
		switch p.Kind {
		case schema.KindScalar:
			entry.Detail = p.Scalar
		case schema.KindObject:
			var parts []string
			for _, field := range sortedKeys(p.Fields) {
				f := p.Fields[field]
				if f.Args != nil {
					var args []string
					for _, arg := range sortedKeys(f.Args) {
						args = append(args, arg+": "+f.Args[arg])
					}
					parts = append(parts, field+"("+strings.Join(args, ", ")+")")
					continue
				}
				parts = append(parts, field+": "+f.Type)
			}
			entry.Detail = strings.Join(parts, ", ")
		}
		entries = append(entries, entry)
	}

	for _, name := range sortedKeys(t.Returns) {
		r := t.Returns[name]
		if r.Fields == nil {
			entries = append(entries, TableEntry{Table: "returns", Name: name, Kind: "scalar", Detail: r.Scalar})
			continue
		}
		var parts []string
		for _, field := range sortedKeys(r.Fields) {
			parts = append(parts, field+": "+r.Fields[field])
		}
		entries = append(entries, TableEntry{Table: "returns", Name: name, Kind: "object", Detail: strings.Join(parts, ", ")})
	}

	return entries
}

func NewTablesCmd() *cobra.Command {
	var tablesFilter []string

	cmd := &cobra.Command{
		Use:   "tables [type]",
		Short: "Show the lookup tables derived from the schema",
		Long: `Shows the three tables the builder walks:

  ops      operation name to root type
  props    enums, custom scalars, input objects and fields whose
           arguments need one of those to be written
  returns  result types of every output field, and custom scalars

Pass a type name to show only its entries.`,
		Example: `  # Everything
  gqlz tables

  # How arguments of Query fields are classified
  gqlz tables Query --table props

  # Result types as JSON
  gqlz tables -t returns -f json`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range tablesFilter {
				if !slices.Contains(tableNames, name) {
					return fmt.Errorf("unknown table '%s' (valid: %s)", name, strings.Join(tableNames, ", "))
				}
			}

			tables, _, err := loadCliForSchema()
			if err != nil {
				return err
			}

			entries := tableEntries(tables)

			if len(args) == 1 {
				typeName := args[0]
				if _, isOp := tables.Ops[typeName]; !isOp {
					if err := validateTypeExists(tables, typeName); err != nil {
						return err
					}
				}
				entries = filterSlice(entries, func(e TableEntry) bool { return e.Name == typeName })
			}
			if len(tablesFilter) > 0 {
				entries = filterSlice(entries, func(e TableEntry) bool { return slices.Contains(tablesFilter, e.Table) })
			}

			output, err := render.Rows[TableEntry]{
				Data:    entries,
				Headers: []string{"Table", "Name", "Kind", "Detail"},
				Text: func(e TableEntry) string {
					line := e.Table + " " + e.Name + " " + e.Kind
					if e.Detail != "" {
						line += " " + e.Detail
					}
					return line
				},
				Cells: func(e TableEntry) []string {
					return []string{e.Table, e.Name, e.Kind, e.Detail}
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

	cmd.Flags().StringSliceVarP(&tablesFilter, "table", "t", nil, "Only show these tables: ops, props, returns (repeatable)")

	return cmd
}

// filterSlice returns a new slice containing only the elements that satisfy the predicate.
func filterSlice[T any](items []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range items {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}
