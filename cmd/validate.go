/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/samwightt/gqlz/pkg/diagnostic"
	"github.com/samwightt/gqlz/pkg/schema"
	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
)

// ErrValidationFailed is returned when a built document fails validation.
// This is a sentinel error that indicates the selection produced an invalid
// document, not that the command itself failed.
var ErrValidationFailed = errors.New("validation failed")

// documentSource names the built document in diagnostics.
const documentSource = "document"

func convertGQLErrors(errs gqlerror.List) []ValidationError {
	var result []ValidationError
	for _, err := range errs {
		valErr := ValidationError{
			Message: err.Message,
			Rule:    err.Rule,
		}
		for _, loc := range err.Locations {
			valErr.Locations = append(valErr.Locations, Location{
				Line:   loc.Line,
				Column: loc.Column,
			})
		}
		result = append(result, valErr)
	}
	return result
}

func validateDocument(document string, s *ast.Schema) *ValidationResult {
	doc, parseErr := gqlparser.LoadQuery(s, document)
	if parseErr != nil {
		return &ValidationResult{Valid: false, Errors: convertGQLErrors(parseErr)}
	}

	errs := validator.Validate(s, doc)
	if len(errs) > 0 {
		return &ValidationResult{Valid: false, Errors: convertGQLErrors(errs)}
	}

	return &ValidationResult{Valid: true}
}

// Validation Error Display
//
// gqlparser reports a Rule name (e.g., "FieldsOnCorrectType") and a start
// Location but no span length. For known rules the message is parsed to
// recover the field name, which gives the underline length and a "did you
// mean" suggestion. Anything else gets a single caret.

// Example: Cannot query field "badField" on type "Query".
var fieldsOnCorrectTypeRegex = regexp.MustCompile(`Cannot query field "([^"]+)" on type "([^"]+)"`)

// parseFieldsOnCorrectTypeError extracts field name and type name from the error message.
// Returns empty strings if the message doesn't match.
func parseFieldsOnCorrectTypeError(message string) (fieldName, typeName string) {
	matches := fieldsOnCorrectTypeRegex.FindStringSubmatch(message)
	if len(matches) == 3 {
		return matches[1], matches[2]
	}
	return "", ""
}

// errorSpanLength returns the length to underline for a given error.
func errorSpanLength(err ValidationError) int {
	switch err.Rule {
	case "FieldsOnCorrectType":
		fieldName, _ := parseFieldsOnCorrectTypeError(err.Message)
		if fieldName != "" {
			return len(fieldName)
		}
	}
	return 1
}

// detectZshEscapeIssue checks whether a selection read from stdin failed to
// parse because zsh's history expansion escaped `!` as `\!`, which is not a
// valid JSON escape. Returns a help message if detected.
func detectZshEscapeIssue(sourceName string, content []byte) string {
	if sourceName != stdinSource {
		return ""
	}
	if !bytes.Contains(content, []byte(`\!`)) {
		return ""
	}
	return "it looks like zsh escaped `!` as `\\!`. Try using a heredoc instead:\n" +
		"       cat <<'EOF' | gqlz build\n" +
		"       {\"user\": [{\"id\": \"$ZEUS_VARid__$GRAPHQL__ID!\"}, {\"name\": true}]}\n" +
		"       EOF"
}

// errorSuggestion returns a "did you mean" suggestion for the error, if applicable.
func errorSuggestion(err ValidationError, s *ast.Schema) string {
	switch err.Rule {
	case "FieldsOnCorrectType":
		fieldName, typeName := parseFieldsOnCorrectTypeError(err.Message)
		if fieldName == "" || typeName == "" {
			return ""
		}

		typeDef := s.Types[typeName]
		if typeDef == nil {
			return ""
		}

		names := make([]string, 0, len(typeDef.Fields))
		for _, f := range typeDef.Fields {
			names = append(names, f.Name)
		}
		if closest := schema.FindClosest(fieldName, names); closest != "" {
			return fmt.Sprintf("did you mean `%s`?", closest)
		}
	}
	return ""
}

func formatValidationResultText(result *ValidationResult, document string, s *ast.Schema) string {
	if result.Valid {
		return "✓ Document is valid"
	}

	var output strings.Builder
	if len(result.Errors) == 1 {
		output.WriteString("✗ Document has 1 error:\n")
	} else {
		fmt.Fprintf(&output, "✗ Document has %d errors:\n", len(result.Errors))
	}

	for _, err := range result.Errors {
		if len(err.Locations) == 0 {
			fmt.Fprintf(&output, "  %s\n", err.Message)
			continue
		}
		loc := err.Locations[0]
		span := diagnostic.Span{Line: loc.Line, Column: loc.Column, Length: errorSpanLength(err)}
		output.WriteString(diagnostic.Render(documentSource, document, span, err.Message) + "\n")
		if suggestion := errorSuggestion(err, s); suggestion != "" {
			output.WriteString("  = help: " + suggestion + "\n")
		}
	}

	return output.String()
}
