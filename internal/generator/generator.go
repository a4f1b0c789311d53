package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/RayZh-hs/neutronic/internal/board"
	"github.com/RayZh-hs/neutronic/internal/level"
	"github.com/RayZh-hs/neutronic/internal/solver"
)

const (
	DefaultMinSteps = 4
	DefaultMaxSteps = 12
)

var (
	ErrGenerationFailed = errors.New("failed to generate a level in time")
	ErrInvalidOptions   = errors.New("invalid generator options")
)

// Generator creates random levels whose shortest solution length falls in
// a requested range.
type Generator struct {
	options *Options
	rng     *rand.Rand
	log     logrus.FieldLogger
}

// New creates a level generator with the given options.
func New(options *Options) *Generator {
	if options == nil {
		options = DefaultOptions(5, 5)
	}

	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := options.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Generator{
		options: options,
		rng:     rand.New(rand.NewSource(seed)),
		log:     log,
	}
}

// Generate creates a new level with its shortest solution attached as the
// appendix recording. It also returns the solver's result.
func (g *Generator) Generate(ctx context.Context) (*level.Level, *solver.Result, error) {
	if err := g.validate(); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.options.Timeout)
	defer cancel()

	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return nil, nil, ErrGenerationFailed
		}

		b, err := g.generateBoard()
		if err != nil {
			return nil, nil, err
		}
		if !b.IsConnected() {
			continue
		}

		res, err := solver.Solve(ctx, b, &solver.Options{
			MaxSteps:  g.options.MaxSteps + 1,
			MaxStates: g.options.MaxStates,
			Logger:    g.log,
		})
		switch {
		case errors.Is(err, solver.ErrStateLimit):
			continue
		case err != nil:
			return nil, nil, ErrGenerationFailed
		case !res.Found || len(res.Moves) < g.options.MinSteps:
			continue
		}

		g.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"steps":   len(res.Moves),
			"states":  res.States,
		}).Debug("generated level")

		lvl := level.FromBoard(b)
		lvl.Appendix = &level.Appendix{Recording: level.RecordingFrom(res.Moves)}
		return lvl, res, nil
	}
}

func (g *Generator) validate() error {
	o := g.options
	cells := o.Rows * o.Cols
	switch {
	case o.Rows < 1 || o.Rows > board.MaxSide || o.Cols < 1 || o.Cols > board.MaxSide:
		return fmt.Errorf("%w: board %dx%d", ErrInvalidOptions, o.Rows, o.Cols)
	case o.Density <= 0 || o.Density > 1:
		return fmt.Errorf("%w: density %.2f must be in (0, 1]", ErrInvalidOptions, o.Density)
	case o.Pairs < 1 || 2*o.Pairs > board.MaxParticles:
		return fmt.Errorf("%w: %d particle pairs", ErrInvalidOptions, o.Pairs)
	case o.Portals < 0 || o.Portals > board.MaxPortalPairs:
		return fmt.Errorf("%w: %d portal pairs", ErrInvalidOptions, o.Portals)
	case 2*(o.Pairs+o.Portals) > cells:
		return fmt.Errorf("%w: %d particles and %d portal cells do not fit on %d cells", ErrInvalidOptions, 2*o.Pairs, 2*o.Portals, cells)
	case o.MinSteps < 1 || o.MinSteps > o.MaxSteps:
		return fmt.Errorf("%w: step range %d:%d", ErrInvalidOptions, o.MinSteps, o.MaxSteps)
	case o.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidOptions)
	}
	return nil
}

// generateBoard carves a connected region of open cells, then scatters
// portal pairs and particle pairs over distinct open cells.
func (g *Generator) generateBoard() (*board.Board, error) {
	o := g.options
	b, err := board.New(o.Rows, o.Cols)
	if err != nil {
		return nil, err
	}

	open := g.carve()
	for _, c := range open {
		if err := b.OpenCell(c[0], c[1]); err != nil {
			return nil, err
		}
	}

	order := g.rng.Perm(len(open))
	next := 0
	take := func() [2]int {
		c := open[order[next]]
		next++
		return c
	}

	for id, n := 0, o.Portals; id < n; id++ {
		for k := 0; k < 2; k++ {
			c := take()
			if err := b.AddPortal(c[0], c[1], id); err != nil {
				return nil, err
			}
		}
	}
	for k, n := 0, o.Pairs; k < n; k++ {
		for _, color := range []board.Color{board.Red, board.Blue} {
			c := take()
			if _, err := b.AddParticle(c[0], c[1], color); err != nil {
				return nil, err
			}
		}
	}

	if err := b.Seal(); err != nil {
		return nil, err
	}
	return b, nil
}

// carve grows a random 4-connected region from a random cell until it
// covers the requested density and can host every particle and portal.
func (g *Generator) carve() [][2]int {
	o := g.options
	total := o.Rows * o.Cols
	target := int(o.Density*float64(total) + 0.5)
	target = min(max(target, 2*(o.Pairs+o.Portals)), total)

	start := [2]int{g.rng.Intn(o.Cols), g.rng.Intn(o.Rows)}
	opened := mapset.New[[2]int]()
	opened.Put(start)
	region := [][2]int{start}

	var frontier [][2]int
	queued := mapset.New[[2]int]()
	grow := func(c [2]int) {
		for _, dir := range board.Directions {
			dx, dy := dir.Offset()
			n := [2]int{c[0] + dx, c[1] + dy}
			if n[0] < 0 || n[0] >= o.Cols || n[1] < 0 || n[1] >= o.Rows {
				continue
			}
			if opened.Has(n) || queued.Has(n) {
				continue
			}
			queued.Put(n)
			frontier = append(frontier, n)
		}
	}
	grow(start)

	for len(region) < target && len(frontier) > 0 {
		i := g.rng.Intn(len(frontier))
		c := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		opened.Put(c)
		region = append(region, c)
		grow(c)
	}
	return region
}
