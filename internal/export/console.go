package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/apastel/secret-santa-generator/internal/assignment"
	"github.com/apastel/secret-santa-generator/internal/config"
	"github.com/apastel/secret-santa-generator/internal/log"
	"github.com/apastel/secret-santa-generator/internal/participant"
)

// Console renders the pairings as styled terminal lines.
type Console struct {
	w      io.Writer
	header lipgloss.Style
	name   lipgloss.Style
	subtle lipgloss.Style
}

// NewConsole creates a console exporter writing to w with theme colors.
func NewConsole(w io.Writer, theme config.ThemeConfig) *Console {
	return &Console{
		w:      w,
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight)),
		name:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Highlight)),
		subtle: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)),
	}
}

// Export implements Exporter. Pairings print in roster order, one line per
// giver, with giver names padded to a common display width.
func (c *Console) Export(a *assignment.Assignment, reg *participant.Registry) error {
	width := 0
	for _, name := range reg.Names() {
		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString(c.header.Render("Secret Santa Pairings"))
	b.WriteString("\n\n")
	for _, pair := range a.Pairs() {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(pair.Giver))
		b.WriteString(c.name.Render(pair.Giver))
		b.WriteString(pad)
		b.WriteString(c.subtle.Render(" is "))
		b.WriteString(c.name.Render(pair.Receiver))
		b.WriteString(c.subtle.Render("'s secret Santa"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if _, err := io.WriteString(c.w, b.String()); err != nil {
		log.ErrorErr(log.CatExport, "Console export failed", err)
		return fmt.Errorf("writing pairings to console: %w", err)
	}
	return nil
}
