package solver

import (
	"errors"
	"fmt"

	"github.com/RayZh-hs/neutronic/internal/board"
)

var ErrIllegalStep = errors.New("recorded step cannot be played")

// Trace is the outcome of replaying a recorded sequence.
type Trace struct {
	Moves  []board.Move
	Hashes []uint64 // board hash after each move
	Status board.Status
}

// Replay plays actions on a private copy of b and checks that each one is a
// legal move. A rejected move, a move of an eliminated or unknown particle,
// a move into a dead state and any move after the board is solved are all
// reported as ErrIllegalStep, together with the trace up to that point.
func Replay(b *board.Board, actions []board.Action) (*Trace, error) {
	g := b.Clone()
	trace := &Trace{Status: g.Status()}

	for n, a := range actions {
		if g.Status() != board.Ongoing {
			return trace, fmt.Errorf("%w: step %d: board is already %s", ErrIllegalStep, n, g.Status())
		}
		if a.Particle < 0 || a.Particle >= g.NumParticles() {
			return trace, fmt.Errorf("%w: step %d: no particle %d", ErrIllegalStep, n, a.Particle)
		}

		m := g.Apply(a.Particle, a.Dir)
		if m.Outcome == board.Rejected {
			return trace, fmt.Errorf("%w: step %d: particle %d cannot move %s", ErrIllegalStep, n, a.Particle, a.Dir)
		}
		trace.Moves = append(trace.Moves, m)
		trace.Hashes = append(trace.Hashes, g.Hash())
		trace.Status = g.Status()
		if g.Status() == board.Dead {
			return trace, fmt.Errorf("%w: step %d: particle %d moving %s disconnects the board", ErrIllegalStep, n, a.Particle, a.Dir)
		}
	}
	return trace, nil
}
