// Package level holds the tile map a game mode edits, together with the
// repository it came from and whether it has unsaved changes.
package level

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilegame/internal/tilemap"
)

// ErrReadOnly is returned by Save in sessions that may not write the map.
var ErrReadOnly = errors.New("level: session is read-only")

// Level is the live tile map of a session.
type Level struct {
	Map      *tilemap.TileMap
	Dirty    bool
	ReadOnly bool

	repo   tilemap.Repository
	logger *log.Logger
}

// New creates an empty level. A nil repository keeps the map in memory
// only.
func New(repo tilemap.Repository, logger *log.Logger) *Level {
	if repo == nil {
		repo = tilemap.NewMemory("scratch", nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Level{Map: tilemap.New(), repo: repo, logger: logger}
}

// Name returns the repository name.
func (l *Level) Name() string {
	return l.repo.Name()
}

// Load replaces the map with the stored one. A missing file yields an
// empty map. On error the current map is kept.
func (l *Level) Load() error {
	m, err := tilemap.LoadOrEmpty(l.repo)
	if err != nil {
		return err
	}
	l.Map = m
	l.Dirty = false
	return nil
}

// Save writes the map back.
func (l *Level) Save() error {
	if l.ReadOnly {
		return ErrReadOnly
	}
	if err := l.repo.Save(l.Map); err != nil {
		return err
	}
	l.Dirty = false
	return nil
}

// Changed marks the map as edited.
func (l *Level) Changed() {
	l.Dirty = true
}

// Logger returns the level's logger.
func (l *Level) Logger() *log.Logger {
	return l.logger
}
