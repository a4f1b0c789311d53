// Package level decodes level documents and turns them into boards.
package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zyedidia/generic/mapset"

	"github.com/RayZh-hs/neutronic/internal/board"
)

// Container types
const (
	TypeBoard  = "board"
	TypePortal = "portal"
)

var (
	ErrInvalidLevel       = errors.New("invalid level document")
	ErrUnknownContainer   = errors.New("unknown container type")
	ErrMissingPortalIndex = errors.New("portal container has no index")
	ErrDuplicateCell      = errors.New("cell listed more than once")
)

// Level is a level document.
type Level struct {
	Meta     Meta      `json:"meta"`
	Content  Content   `json:"content"`
	Appendix *Appendix `json:"appendix,omitempty"`
}

// Meta carries the level's dimensions and catalogue information.
type Meta struct {
	LevelID string `json:"levelId,omitempty"`
	Name    string `json:"name,omitempty"`
	Author  string `json:"author,omitempty"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// Content lists the open cells and the particles.
type Content struct {
	Containers []Container `json:"containers"`
	Particles  []Particle  `json:"particles"`
}

// Container is an open cell. Portal containers carry a pairing index.
type Container struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Type   string `json:"type"`
	Index  *int   `json:"index,omitempty"`
}

// Particle is a particle's starting cell and color name.
type Particle struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Color  string `json:"color"`
}

// Appendix holds optional extras such as a recorded solution.
type Appendix struct {
	Recording []Segment `json:"recording,omitempty"`
}

// Load reads a level document from a file.
func Load(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level: %w", err)
	}
	defer f.Close()

	lvl, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}

// Decode parses a level document.
func Decode(r io.Reader) (*Level, error) {
	var lvl Level
	if err := json.NewDecoder(r).Decode(&lvl); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}
	return &lvl, nil
}

// Encode writes the level as indented JSON.
func (l *Level) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

// Save writes the level to a file.
func (l *Level) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create level file: %w", err)
	}
	defer f.Close()

	return l.Encode(f)
}

// ParseColor maps a color name to a particle color.
// "blue" is Blue; every other name is Red.
func ParseColor(name string) board.Color {
	if name == "blue" {
		return board.Blue
	}
	return board.Red
}

// Build creates a sealed board from the level.
// Columns map to x and rows to y. Particles get IDs in document order.
func (l *Level) Build() (*board.Board, error) {
	b, err := board.New(l.Meta.Rows, l.Meta.Columns)
	if err != nil {
		return nil, err
	}

	seen := mapset.New[[2]int]()
	for i, c := range l.Content.Containers {
		cell := [2]int{c.Column, c.Row}
		if seen.Has(cell) {
			return nil, fmt.Errorf("%w: container %d at row %d column %d", ErrDuplicateCell, i, c.Row, c.Column)
		}
		seen.Put(cell)

		switch c.Type {
		case TypeBoard:
			err = b.OpenCell(c.Column, c.Row)
		case TypePortal:
			if c.Index == nil {
				return nil, fmt.Errorf("%w: container %d at row %d column %d", ErrMissingPortalIndex, i, c.Row, c.Column)
			}
			err = b.AddPortal(c.Column, c.Row, *c.Index)
		default:
			return nil, fmt.Errorf("%w: %q in container %d", ErrUnknownContainer, c.Type, i)
		}
		if err != nil {
			return nil, fmt.Errorf("container %d: %w", i, err)
		}
	}

	for i, p := range l.Content.Particles {
		if _, err := b.AddParticle(p.Column, p.Row, ParseColor(p.Color)); err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
	}

	if err := b.Seal(); err != nil {
		return nil, err
	}
	return b, nil
}
