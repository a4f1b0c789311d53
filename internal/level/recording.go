package level

import (
	"fmt"

	"github.com/RayZh-hs/neutronic/internal/board"
)

// Segment is a run of consecutive moves of one particle.
type Segment struct {
	ID        int      `json:"id"`
	Direction []string `json:"direction"`
}

// Recording returns the level's recorded solution as a flat action list,
// or nil when the level has none.
func (l *Level) Recording() ([]board.Action, error) {
	if l.Appendix == nil {
		return nil, nil
	}
	return Actions(l.Appendix.Recording)
}

// Actions flattens segments into single-cell actions.
func Actions(segments []Segment) ([]board.Action, error) {
	var actions []board.Action
	for i, seg := range segments {
		for _, name := range seg.Direction {
			dir, err := board.ParseDirection(name)
			if err != nil {
				return nil, fmt.Errorf("%w: segment %d: %w", ErrInvalidLevel, i, err)
			}
			actions = append(actions, board.Action{Particle: seg.ID, Dir: dir})
		}
	}
	return actions, nil
}

// RecordingFrom groups moves into segments, starting a new segment
// whenever the moving particle changes.
func RecordingFrom(moves []board.Move) []Segment {
	var segments []Segment
	for _, m := range moves {
		if n := len(segments); n > 0 && segments[n-1].ID == m.Particle {
			segments[n-1].Direction = append(segments[n-1].Direction, m.Dir.String())
			continue
		}
		segments = append(segments, Segment{ID: m.Particle, Direction: []string{m.Dir.String()}})
	}
	return segments
}

// FromBoard describes a freshly sealed board as a level document.
// Only the board's starting state is meaningful; it must not have been moved.
func FromBoard(b *board.Board) *Level {
	lvl := &Level{
		Meta: Meta{Rows: b.Rows(), Columns: b.Cols()},
	}
	for y, n := 0, b.Rows(); y < n; y++ {
		for x, n := 0, b.Cols(); x < n; x++ {
			c := b.Cell(x, y)
			if !c.Open {
				continue
			}
			container := Container{Row: y, Column: x, Type: TypeBoard}
			if c.Portal != board.None {
				id := b.Portal(c.Portal).ID
				container.Type = TypePortal
				container.Index = &id
			}
			lvl.Content.Containers = append(lvl.Content.Containers, container)
		}
	}
	for _, p := range b.Particles() {
		lvl.Content.Particles = append(lvl.Content.Particles, Particle{Row: p.Y, Column: p.X, Color: p.Color.String()})
	}
	return lvl
}
