package solver

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RayZh-hs/neutronic/internal/board"
)

var (
	ErrStateLimit  = errors.New("memo table exceeded its capacity")
	ErrTimeout     = errors.New("solver timeout exceeded")
	ErrNotPlayable = errors.New("board is not in an ongoing state")
)

// Result is the outcome of a search.
type Result struct {
	// Moves is the shortest clearing sequence found, empty when none was
	// found below the step bound.
	Moves []board.Move
	// Found distinguishes an empty solution on an already cleared board from
	// no solution at all.
	Found bool
	// States is the number of distinct board hashes memoized.
	States int
}

// Solver runs a depth-first branch-and-bound search for a shortest
// sequence of moves that clears the board.
//
// States are memoized by board hash. Two distinct boards sharing a hash
// are treated as the same state, so a colliding state may be pruned
// wrongly; the 64-bit positional hash makes this unlikely but possible.
type Solver struct {
	board   *board.Board
	options *Options
	log     logrus.FieldLogger

	memo     map[uint64]int
	best     int
	bestSeq  []board.Move
	found    bool
	sequence []board.Move
}

// New creates a solver for a private copy of the given sealed board.
func New(b *board.Board, options *Options) *Solver {
	if options == nil {
		options = DefaultOptions()
	}
	log := options.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Solver{
		board:   b.Clone(),
		options: options,
		log:     log,
	}
}

// Solve searches for the shortest clearing sequence shorter than
// Options.MaxSteps.
//
// ErrStateLimit and ErrTimeout abort the search; the returned Result then
// still carries the best sequence found so far.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	s.memo = map[uint64]int{s.board.Hash(): 0}
	s.best = s.options.MaxSteps
	s.bestSeq = nil
	s.found = false
	s.sequence = s.sequence[:0]

	switch s.board.Status() {
	case board.Solved:
		s.found = true
		return s.result(), nil
	case board.Dead:
		return s.result(), ErrNotPlayable
	}
	if !s.board.IsConnected() {
		s.log.Warn("starting board is disconnected; no clearing sequence exists")
	}

	ctx, cancel := s.makeContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.search(ctx, 0)
	fields := logrus.Fields{
		"states":  len(s.memo),
		"best":    len(s.bestSeq),
		"found":   s.found,
		"elapsed": time.Since(start),
	}
	if err != nil {
		s.log.WithFields(fields).WithError(err).Warn("search aborted")
		return s.result(), err
	}
	s.log.WithFields(fields).Debug("search finished")
	return s.result(), nil
}

func (s *Solver) result() *Result {
	return &Result{
		Moves:  append([]board.Move(nil), s.bestSeq...),
		Found:  s.found,
		States: len(s.memo),
	}
}

func (s *Solver) makeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.options.Timeout > 0 {
		return context.WithTimeout(ctx, s.options.Timeout)
	}
	return context.WithCancel(ctx)
}

// search explores every move from the current board at the given depth.
// Every move it applies is undone before it returns.
func (s *Solver) search(ctx context.Context, depth int) error {
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ctx.Err()
	default:
	}

	if len(s.memo) > s.options.MaxStates {
		return ErrStateLimit
	}
	if depth >= s.best {
		return nil
	}

	b := s.board
	for i, n := 0, b.NumParticles(); i < n; i++ {
		if !b.Particle(i).Alive {
			continue
		}
		for _, dir := range board.Directions {
			m := b.Apply(i, dir)
			if m.Outcome == board.Rejected {
				continue
			}

			switch b.Status() {
			case board.Dead:
				b.Undo(m)
				continue
			case board.Solved:
				if depth+1 < s.best {
					s.record(m, depth+1)
				}
				b.Undo(m)
				continue
			}

			h := b.Hash()
			if seen, ok := s.memo[h]; ok && seen <= depth+1 {
				b.Undo(m)
				continue
			}
			s.memo[h] = depth + 1

			s.sequence = append(s.sequence, m)
			err := s.search(ctx, depth+1)
			s.sequence = s.sequence[:len(s.sequence)-1]
			b.Undo(m)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// record stores the current sequence plus the final move m as the new best.
func (s *Solver) record(m board.Move, length int) {
	s.best = length
	s.found = true
	s.bestSeq = append(append(s.bestSeq[:0], s.sequence...), m)
	s.log.WithFields(logrus.Fields{
		"steps":  length,
		"states": len(s.memo),
	}).Debug("found shorter solution")
}

// Solve is a convenience wrapper running a fresh Solver over b.
func Solve(ctx context.Context, b *board.Board, options *Options) (*Result, error) {
	return New(b, options).Solve(ctx)
}
