package generator

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RayZh-hs/neutronic/internal/board"
)

// Options configures level generation behavior.
type Options struct {
	Rows, Cols int           // Board size
	Density    float64       // Fraction of cells that are open, (0, 1]
	Pairs      int           // Number of red/blue particle pairs
	Portals    int           // Number of portal pairs
	MinSteps   int           // Shortest accepted solution length
	MaxSteps   int           // Longest accepted solution length
	MaxStates  int           // Memo capacity for each candidate's search
	Timeout    time.Duration // Timeout limits generation time
	Seed       int64         // Seed for reproducible levels (0 = random)
	Logger     logrus.FieldLogger
}

// DefaultOptions returns standard generator options for a board size.
func DefaultOptions(rows, cols int) *Options {
	rows = min(max(rows, 1), board.MaxSide)
	cols = min(max(cols, 1), board.MaxSide)
	return &Options{
		Rows:      rows,
		Cols:      cols,
		Density:   0.75,
		Pairs:     2,
		Portals:   0,
		MinSteps:  DefaultMinSteps,
		MaxSteps:  DefaultMaxSteps,
		MaxStates: 1_000_000,
		Timeout:   10 * time.Second,
		Seed:      0,
		Logger:    logrus.StandardLogger(),
	}
}
