package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatText   Format = "text"
	FormatPretty Format = "pretty"
)

var ValidFormats = []Format{FormatJSON, FormatText, FormatPretty}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "pretty":
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("invalid format: %s (valid: json, text, pretty)", s)
	}
}

// Rows renders a list of records: one line per record as text, a table
// when pretty, an array when json.
type Rows[T any] struct {
	Data    []T
	Headers []string
	Text    func(T) string
	Cells   func(T) []string
}

func (r Rows[T]) Render(format Format) (string, error) {
	switch format {
	case FormatJSON:
		return JSON(r.Data)
	case FormatPretty:
		if r.Cells == nil {
			return "", fmt.Errorf("pretty format not defined for this type")
		}
		rows := make([][]string, len(r.Data))
		for i, item := range r.Data {
			rows[i] = r.Cells(item)
		}
		return Table(r.Headers, rows), nil
	case FormatText:
		if r.Text == nil {
			return "", fmt.Errorf("text format not defined for this type")
		}
		lines := make([]string, len(r.Data))
		for i, item := range r.Data {
			lines[i] = r.Text(item)
		}
		return strings.Join(lines, "\n"), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Value renders a single value: JSON for json, the text callback otherwise.
// pretty falls back to text when no pretty callback is given.
type Value[T any] struct {
	Data   T
	Text   func(T) (string, error)
	Pretty func(T) (string, error)
}

func (v Value[T]) Render(format Format) (string, error) {
	switch format {
	case FormatJSON:
		return JSON(v.Data)
	case FormatPretty:
		if v.Pretty != nil {
			return v.Pretty(v.Data)
		}
		fallthrough
	case FormatText:
		if v.Text == nil {
			return JSON(v.Data)
		}
		return v.Text(v.Data)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// JSON indents v.
func JSON(v any) (string, error) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

var cellStyle = lipgloss.NewStyle().PaddingRight(1)

// Table lays rows out under headers with lipgloss borders.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Width(120).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		})
	for _, row := range rows {
		t.Row(row...)
	}
	t.Headers(headers...)
	return t.String()
}
