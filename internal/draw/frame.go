package draw

import (
	"sort"
)

// Drawable is implemented by entities that publish art for the renderer.
// Draw must write world-space data only.
type Drawable interface {
	Draw(frame *Frame)
}

// Entry is a named payload in a Frame.
type Entry struct {
	Name    string
	Payload Payload
}

// Frame maps entity names to their payload for one frame. The game loop
// owns it, passes it explicitly to entities and then to the renderer, and
// resets it before the next frame. Nothing in a Frame survives a Reset.
type Frame struct {
	entries map[string]Payload
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{entries: make(map[string]Payload)}
}

// Publish stores the payload under name, replacing any earlier one.
// A nil payload removes the entry.
func (f *Frame) Publish(name string, p Payload) {
	if p == nil {
		delete(f.entries, name)
		return
	}
	f.entries[name] = p
}

// Get returns the payload published under name.
func (f *Frame) Get(name string) (Payload, bool) {
	p, ok := f.entries[name]
	return p, ok
}

// Len returns the number of entries.
func (f *Frame) Len() int {
	return len(f.entries)
}

// Names returns all entry names, sorted.
func (f *Frame) Names() []string {
	names := make([]string, 0, len(f.entries))
	for name := range f.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns all entries in render order: by kind priority, then name.
func (f *Frame) Entries() []Entry {
	out := make([]Entry, 0, len(f.entries))
	for name, p := range f.entries {
		out = append(out, Entry{Name: name, Payload: p})
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Payload.Kind().Priority(), out[j].Payload.Kind().Priority()
		if pi != pj {
			return pi < pj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset empties the frame for reuse.
func (f *Frame) Reset() {
	clear(f.entries)
}
