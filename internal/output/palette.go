package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/videvian/log-in-with-ethos/internal/score"
)

// Palette styles text for one writer.
type Palette struct {
	renderer *lipgloss.Renderer
}

// NewPalette creates a palette for w. With color disabled every style
// renders plain text; otherwise the terminal's color profile decides.
func NewPalette(w io.Writer, color bool) *Palette {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Palette{renderer: r}
}

// Style returns a new style bound to the palette's writer.
func (p *Palette) Style() lipgloss.Style {
	return p.renderer.NewStyle()
}

// Tier colors text with the tier's color.
func (p *Palette) Tier(t score.Tier, text string) string {
	return p.Style().Foreground(lipgloss.Color(t.TerminalColor())).Render(text)
}

// Bold renders text in bold.
func (p *Palette) Bold(text string) string {
	return p.Style().Bold(true).Render(text)
}

// Faint renders de-emphasized text.
func (p *Palette) Faint(text string) string {
	return p.Style().Faint(true).Render(text)
}
