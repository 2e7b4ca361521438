package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilegame/internal/core"
)

// halfBlock draws the top pixel of a cell in the foreground color and the
// bottom pixel in the background color.
const halfBlock = "▀"

type cellColors struct {
	top, bottom core.Color
}

// Presenter turns a pixel surface into terminal text, two pixels per cell.
// It caches one lipgloss style per color pair.
type Presenter struct {
	r      *lipgloss.Renderer
	styles map[cellColors]lipgloss.Style
}

// NewPresenter creates a presenter that renders styles with r.
// A nil renderer uses the lipgloss default (the local terminal).
func NewPresenter(r *lipgloss.Renderer) *Presenter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Presenter{r: r, styles: make(map[cellColors]lipgloss.Style)}
}

func (p *Presenter) style(c cellColors) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	s := p.r.NewStyle().
		Foreground(lipgloss.Color(c.top.Hex())).
		Background(lipgloss.Color(c.bottom.Hex()))
	p.styles[c] = s
	return s
}

// Present converts the surface to a styled string with Height()/2 lines.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Presenter) Present(s *core.Surface) string {
	rows := s.Height() / 2
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*rows*4 + rows)

	for row := range rows {
		if row > 0 {
			sb.WriteRune('\n')
		}
		y := row * 2

		x := 0
		for x < s.Width() {
			start := cellColors{top: s.Get(x, y), bottom: s.Get(x, y+1)}

			// Collect consecutive cells with the same colors
			n := 0
			for x < s.Width() && (cellColors{top: s.Get(x, y), bottom: s.Get(x, y+1)}) == start {
				n++
				x++
			}
			sb.WriteString(p.style(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}
