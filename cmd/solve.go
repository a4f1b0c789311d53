package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/RayZh-hs/neutronic/internal/board"
	"github.com/RayZh-hs/neutronic/internal/level"
	"github.com/RayZh-hs/neutronic/internal/solver"
)

var (
	maxSteps     int
	maxStates    int
	solveTimeout time.Duration
	outputFormat string
	showBoard    bool
	writeLevel   string
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve LEVEL",
		Short: "Find a shortest clearing sequence for a level",
		Long: `Search for the shortest sequence of moves that clears every particle.

Only solutions shorter than --max-steps are reported. When the memo table
outgrows --max-states or --timeout expires, the best sequence found so far
is still printed before the command fails.

Examples:
  neutronic solve levels/big1.json
  neutronic solve --max-steps 20 --format json level.json
  neutronic solve --write solved.json level.json`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}

	solveCmd.Flags().IntVarP(&maxSteps, "max-steps", "s", solver.DefaultMaxSteps, "Report only solutions shorter than this")
	solveCmd.Flags().IntVar(&maxStates, "max-states", solver.DefaultMaxStates, "Abort when more states than this are memoized")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Abort the search after this long (0 = no limit)")
	solveCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	solveCmd.Flags().BoolVar(&showBoard, "show", false, "Print the starting board")
	solveCmd.Flags().StringVarP(&writeLevel, "write", "w", "", "Write the level with the solution recorded to this file")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("unknown format %q (use text or json)", outputFormat)
	}

	lvl, err := level.Load(args[0])
	if err != nil {
		return err
	}
	b, err := lvl.Build()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if showBoard {
		fmt.Fprint(out, b.Format())
	}

	opts := solver.DefaultOptions()
	opts.MaxSteps = maxSteps
	opts.MaxStates = maxStates
	opts.Timeout = solveTimeout

	start := time.Now()
	res, solveErr := solver.New(b, opts).Solve(cmd.Context())
	log.WithFields(log.Fields{
		"level":   args[0],
		"states":  res.States,
		"elapsed": time.Since(start),
	}).Info("search complete")

	if outputFormat == "json" {
		err = writeJSONReport(out, res)
	} else {
		err = writeTextReport(out, res)
	}
	if err != nil {
		return err
	}

	if solveErr != nil {
		if errors.Is(solveErr, solver.ErrStateLimit) || errors.Is(solveErr, solver.ErrTimeout) {
			return fmt.Errorf("search incomplete: %w", solveErr)
		}
		return solveErr
	}

	if writeLevel != "" && res.Found {
		lvl.Appendix = &level.Appendix{Recording: level.RecordingFrom(res.Moves)}
		if err := lvl.Save(writeLevel); err != nil {
			return err
		}
		log.WithField("file", writeLevel).Info("level written")
	}
	return nil
}

// writeTextReport prints the solution one move per line.
func writeTextReport(w io.Writer, res *solver.Result) error {
	if !res.Found {
		_, err := fmt.Fprintf(w, "No solution found.\nStates explored: %d\n", res.States)
		return err
	}

	if _, err := fmt.Fprintf(w, "Best steps: %d\n", len(res.Moves)); err != nil {
		return err
	}
	for _, m := range res.Moves {
		if _, err := fmt.Fprintln(w, formatMove(m)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "States explored: %d\n", res.States)
	return err
}

func formatMove(m board.Move) string {
	s := fmt.Sprintf("Move particle %d %-5s from (%d,%d) to (%d,%d)", m.Particle, m.Dir, m.FromX, m.FromY, m.ToX, m.ToY)
	if m.Collision() {
		s += " collision"
	}
	return s
}

type moveReport struct {
	Particle  int    `json:"particle"`
	Direction string `json:"direction"`
	From      [2]int `json:"from"`
	To        [2]int `json:"to"`
	Collision bool   `json:"collision"`
}

type solveReport struct {
	Found     bool            `json:"found"`
	Steps     int             `json:"steps"`
	States    int             `json:"states"`
	Moves     []moveReport    `json:"moves"`
	Recording []level.Segment `json:"recording"`
}

// writeJSONReport prints the solution as a JSON document. Coordinates are
// [column, row].
func writeJSONReport(w io.Writer, res *solver.Result) error {
	report := solveReport{
		Found:     res.Found,
		Steps:     len(res.Moves),
		States:    res.States,
		Moves:     make([]moveReport, 0, len(res.Moves)),
		Recording: level.RecordingFrom(res.Moves),
	}
	if report.Recording == nil {
		report.Recording = []level.Segment{}
	}
	for _, m := range res.Moves {
		report.Moves = append(report.Moves, moveReport{
			Particle:  m.Particle,
			Direction: m.Dir.String(),
			From:      [2]int{m.FromX, m.FromY},
			To:        [2]int{m.ToX, m.ToY},
			Collision: m.Collision(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
