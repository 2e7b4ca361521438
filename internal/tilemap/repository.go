package tilemap

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Repository is where a game loads and saves its level.
type Repository interface {
	Name() string
	Load() (*TileMap, error)
	Save(m *TileMap) error
}

// SnapshotRecorder keeps a history of saved maps.
type SnapshotRecorder interface {
	RecordSnapshot(name string, data []byte, tiles int) error
}

// File is a Repository backed by one map file.
type File struct {
	Path string
	// Snapshots, when set, receives a copy of every successful save.
	Snapshots SnapshotRecorder
	Logger    *log.Logger
}

func (f *File) Name() string {
	return filepath.Base(f.Path)
}

func (f *File) logger() *log.Logger {
	if f.Logger == nil {
		return log.Default()
	}
	return f.Logger
}

// Load reads the file. A missing file is reported as a *LoadError wrapping
// fs.ErrNotExist; see LoadOrEmpty.
func (f *File) Load() (*TileMap, error) {
	m, err := Load(f.Path)
	if err != nil {
		return nil, err
	}
	f.logger().Info("loaded tile map", "path", f.Path, "tiles", m.Len())
	return m, nil
}

func (f *File) Save(m *TileMap) error {
	data, err := Encode(m, FormatFor(f.Path))
	if err != nil {
		return err
	}
	if err := writeFile(f.Path, data); err != nil {
		return err
	}
	f.logger().Info("saved tile map", "path", f.Path, "tiles", m.Len())

	if f.Snapshots != nil {
		if err := f.Snapshots.RecordSnapshot(f.Name(), data, m.Len()); err != nil {
			// History is best effort.
			f.logger().Warn("failed to record snapshot", "path", f.Path, "error", err)
		}
	}
	return nil
}

// LoadOrEmpty loads from r, starting with an empty map when the file does
// not exist yet. Any other failure is returned.
func LoadOrEmpty(r Repository) (*TileMap, error) {
	m, err := r.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return m, err
}

// Memory is an in-process Repository, used by SSH sessions that must not
// write to the host's map file.
type Memory struct {
	Label string
	m     *TileMap
}

// NewMemory seeds a repository with a copy of m. A nil map starts empty.
func NewMemory(label string, m *TileMap) *Memory {
	if m == nil {
		m = New()
	}
	return &Memory{Label: label, m: m.Clone()}
}

func (r *Memory) Name() string { return r.Label }

func (r *Memory) Load() (*TileMap, error) {
	return r.m.Clone(), nil
}

func (r *Memory) Save(m *TileMap) error {
	r.m = m.Clone()
	return nil
}
