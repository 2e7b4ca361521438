package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/render"
)

// hudLines is the number of terminal rows below the game surface: three
// HUD lines and the help footer.
const hudLines = 4

// HUD is the text shown under the game surface.
type HUD struct {
	Title    string
	State    core.GameState
	TickRate float64
	Pointer  *PointerInfo
	Report   render.Report
}

// PointerInfo is the pointer position in render and world space.
type PointerInfo struct {
	Pixel core.Pixel
	World core.World
}

var (
	hudTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hudWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// Lines returns exactly three lines. The debug lines are blank unless the
// debug overlay is on.
func (h HUD) Lines() []string {
	status := hudTitleStyle.Render(h.Title)
	if h.State.Status != "" {
		status += "  " + h.State.Status
	}
	if h.State.Dirty {
		status += hudWarnStyle.Render("  [unsaved]")
	}
	if h.State.Clamped {
		status += hudWarnStyle.Render("  [size limit]")
	}

	lines := []string{status, "", ""}
	if !h.State.Debug {
		return lines
	}

	ptr := "pointer: none"
	if h.Pointer != nil {
		ptr = fmt.Sprintf("pointer: render %s world %s", h.Pointer.Pixel, h.Pointer.World)
	}
	lines[1] = hudDimStyle.Render(fmt.Sprintf("%.0f ticks/s  %s", h.TickRate, ptr))

	summary := strings.Join(h.Report.Summary(), "  ")
	if h.Report.Complete() {
		lines[2] = hudDimStyle.Render(summary)
	} else {
		lines[2] = hudWarnStyle.Render(summary)
	}
	return lines
}
