// Package diagnostic renders errors against the generated document with the
// offending line and an underline.
package diagnostic

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Span is a 1-based position in a document plus the number of characters to
// underline.
type Span struct {
	Line   int
	Column int
	Length int
}

// Snippet renders one source line with its line number and an underline:
//
//	3 | query { user }
//	  |         ^^^^ error message here
func Snippet(source string, span Span, message string) string {
	length, column := max(span.Length, 1), max(span.Column, 1)

	numStr := strconv.Itoa(span.Line)
	pipe := gutterStyle.Render("|")
	emptyGutter := strings.Repeat(" ", len(numStr))

	codeLine := gutterStyle.Render(numStr) + " " + pipe + " " + source

	msgRendered := ""
	if message != "" {
		msgRendered = " " + messageStyle.Render(message)
	}
	underLine := emptyGutter + " " + pipe + " " +
		strings.Repeat(" ", column-1) +
		caretStyle.Render(strings.Repeat("^", length)) +
		msgRendered

	return codeLine + "\n" + underLine
}

// Location renders a header like "--> query.graphql:3:9".
func Location(name string, span Span) string {
	loc := name + ":" + strconv.Itoa(span.Line) + ":" + strconv.Itoa(span.Column)
	return gutterStyle.Render("-->") + " " + loc
}

// Render picks the line span points at out of document and renders the
// location header above its snippet. A span past the end of the document
// renders the header alone.
func Render(name, document string, span Span, message string) string {
	header := Location(name, span)
	lines := strings.Split(document, "\n")
	if span.Line < 1 || span.Line > len(lines) {
		if message == "" {
			return header
		}
		return header + " " + messageStyle.Render(message)
	}
	return header + "\n" + Snippet(lines[span.Line-1], span, message)
}
