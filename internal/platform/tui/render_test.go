package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tilegame/internal/core"
)

func TestPresentHalfBlocks(t *testing.T) {
	s := core.NewSurface(4, 4)
	s.Fill(core.ColorGrey)
	s.Set(0, 0, core.ColorRed)
	s.Set(3, 3, core.ColorWhite)

	p := NewPresenter(nil)
	out := p.Present(s)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Present() has %d lines, expected 2", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, halfBlock); n != 4 {
			t.Errorf("line %d has %d half blocks, expected 4", i, n)
		}
	}

	// grey/grey, red/grey and grey/white
	if len(p.styles) != 3 {
		t.Errorf("cached %d styles, expected 3", len(p.styles))
	}
}

func TestPresentReusesStyles(t *testing.T) {
	s := core.NewSurface(8, 6)
	s.Fill(core.ColorWhite)

	p := NewPresenter(nil)
	p.Present(s)
	p.Present(s)

	if len(p.styles) != 1 {
		t.Errorf("cached %d styles, expected 1", len(p.styles))
	}
}

func TestPresentEmpty(t *testing.T) {
	if out := NewPresenter(nil).Present(core.NewSurface(0, 0)); out != "" {
		t.Errorf("Present() = %q, expected empty", out)
	}
}
