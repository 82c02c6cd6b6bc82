package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Terminal prints list views and status messages. Colors are dropped
// automatically when out is not a terminal.
type Terminal struct {
	out io.Writer

	headerStyle      lipgloss.Style
	metaStyle        lipgloss.Style
	notesStyle       lipgloss.Style
	idStyle          lipgloss.Style
	placeholderStyle lipgloss.Style
	successStyle     lipgloss.Style
	errorStyle       lipgloss.Style
}

// NewTerminal creates a Terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	r := lipgloss.NewRenderer(out)
	return &Terminal{
		out: out,
		headerStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51")),
		metaStyle: r.NewStyle().
			Foreground(lipgloss.Color("243")),
		notesStyle: r.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("250")),
		idStyle: r.NewStyle().
			Foreground(lipgloss.Color("240")),
		placeholderStyle: r.NewStyle().
			Foreground(lipgloss.Color("201")).
			Padding(1, 0),
		successStyle: r.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
		errorStyle: r.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// PrintList writes every row of v, or its placeholder. A list that was never
// loaded prints nothing.
func (t *Terminal) PrintList(v ListView) {
	if !v.Loaded() {
		return
	}
	if len(v.Rows) == 0 {
		fmt.Fprintln(t.out, t.placeholderStyle.Render(v.Placeholder))
		return
	}

	for _, row := range v.Rows {
		fmt.Fprintln(t.out, t.headerStyle.Render(row.Header))
		fmt.Fprintln(t.out, "  "+t.metaStyle.Render(fmt.Sprintf("⏱ %s   📅 %s", row.Duration, row.Timestamp)))
		if row.HasNotes() {
			fmt.Fprintln(t.out, "  "+t.notesStyle.Render("📝 "+row.Notes))
		}
		fmt.Fprintln(t.out, "  "+t.idStyle.Render(fmt.Sprintf("[ DELETE ] workoutlog delete %s", row.ID)))
		fmt.Fprintln(t.out)
	}
}

// PrintStatus writes a status message line.
func (t *Terminal) PrintStatus(m StatusMessage) {
	style := t.successStyle
	if m.IsError {
		style = t.errorStyle
	}
	fmt.Fprintln(t.out, style.Render(m.Text))
}
