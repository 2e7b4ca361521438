package core

import "testing"

func TestInputFrameKeepsOrderAndRepeats(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionNone)
	f.Set(ActionRight)
	f.Set(ActionGrow)

	got := f.Actions()
	expected := []Action{ActionRight, ActionRight, ActionGrow}
	if len(got) != len(expected) {
		t.Fatalf("Actions() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Actions()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
	if !f.Has(ActionGrow) || f.Has(ActionShrink) {
		t.Error("Has() reports wrong membership")
	}
}

func TestInputFrameClearKeepsPointer(t *testing.T) {
	f := NewInputFrame()
	f.SetPointer(W(1.5, -2))
	f.SelectStyle(3)
	f.Clear()

	if len(f.Actions()) != 0 {
		t.Errorf("Actions() after Clear = %v, expected none", f.Actions())
	}
	if f.Style != 0 {
		t.Errorf("Style after Clear = %d, expected 0", f.Style)
	}
	p, ok := f.Pointer()
	if !ok || p != W(1.5, -2) {
		t.Errorf("Pointer() = %v, %v; expected (1.5, -2), true", p, ok)
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	c := f.Clone()
	f.Set(ActionDown)

	if len(c.Actions()) != 1 {
		t.Errorf("clone shares storage with original: %v", c.Actions())
	}
}

func TestActionString(t *testing.T) {
	if ActionGrow.String() != "Grow" {
		t.Errorf("ActionGrow.String() = %q", ActionGrow.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
