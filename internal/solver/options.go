package solver

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Defaults
const (
	DefaultMaxSteps  = 30
	DefaultMaxStates = 100_000_000
)

// Options configures a search.
type Options struct {
	MaxSteps  int           // Only solutions shorter than MaxSteps are reported
	MaxStates int           // Memo capacity; exceeding it aborts the search
	Timeout   time.Duration // Timeout limits search time (0 = none)
	Logger    logrus.FieldLogger
}

// DefaultOptions returns standard solver options.
func DefaultOptions() *Options {
	return &Options{
		MaxSteps:  DefaultMaxSteps,
		MaxStates: DefaultMaxStates,
		Timeout:   0,
		Logger:    logrus.StandardLogger(),
	}
}
