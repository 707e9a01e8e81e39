package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/corenotes/internal/client/services"
	"github.com/dmitrijs2005/corenotes/internal/models"
	"golang.org/x/term"
)

const (
	defaultWidth = 60
	maxWidth     = 100
)

var tints = map[models.Color]lipgloss.Color{
	models.ColorYellow: lipgloss.Color("#FFF3A3"),
	models.ColorBlue:   lipgloss.Color("#BFDFFF"),
	models.ColorGreen:  lipgloss.Color("#C6F1C8"),
	models.ColorPeach:  lipgloss.Color("#FFD3BD"),
}

// Renderer draws a View as text cards. Colors are dropped automatically
// when the output is not a terminal.
type Renderer struct {
	lg    *lipgloss.Renderer
	width int
}

func NewRenderer(w io.Writer) *Renderer {
	width := defaultWidth
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 4 {
			width = min(cols-4, maxWidth)
		}
	}
	return &Renderer{lg: lipgloss.NewRenderer(w), width: width}
}

func (r *Renderer) Render(v services.View) string {
	var b strings.Builder

	title := r.lg.NewStyle().Bold(true).Render("Core Notes")
	if v.SearchQuery != "" {
		title += r.lg.NewStyle().Faint(true).Render(fmt.Sprintf("  search: %q", v.SearchQuery))
	}
	b.WriteString(title + "\n")

	if v.Loading {
		b.WriteString("Loading notes...\n")
	}
	if v.LastError != "" {
		b.WriteString(r.lg.NewStyle().Foreground(lipgloss.Color("#D7263D")).Render("! "+v.LastError) + "\n")
	}
	if v.Empty {
		b.WriteString("No notes found.\n")
		return b.String()
	}

	r.section(&b, "Favorites", v.Favorites)
	r.section(&b, "Others", v.Others)
	return b.String()
}

func (r *Renderer) section(b *strings.Builder, name string, notes []models.Task) {
	if len(notes) == 0 {
		return
	}
	b.WriteString("\n" + r.lg.NewStyle().Underline(true).Render(name) + "\n")
	for _, n := range notes {
		b.WriteString(r.Card(n) + "\n")
	}
}

// Card renders one note tinted with its color.
func (r *Renderer) Card(t models.Task) string {
	star := "☆"
	if t.IsFavorite {
		star = "★"
	}

	body := r.lg.NewStyle().Bold(true).Render(fmt.Sprintf("%s #%d %s", star, t.ID, t.Title))
	if d := t.DescriptionText(); d != "" {
		body += "\n" + d
	}

	tint, ok := tints[t.Color]
	if !ok {
		tint = tints[models.DefaultColor]
	}

	return r.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tint).
		Background(tint).
		Foreground(lipgloss.Color("#1F1F1F")).
		Padding(0, 1).
		Width(r.width).
		Render(body)
}
