package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RayZh-hs/neutronic/internal/level"
	"github.com/RayZh-hs/neutronic/internal/solver"
)

func init() {
	replayCmd := &cobra.Command{
		Use:   "replay LEVEL",
		Short: "Check the solution recorded in a level",
		Long: `Replay the recording stored in the level's appendix, printing every move
and the board hash after it, and fail if a move is illegal.

Example:
  neutronic replay solved.json`,
		Args: cobra.ExactArgs(1),
		RunE: runReplay,
	}
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	lvl, err := level.Load(args[0])
	if err != nil {
		return err
	}
	b, err := lvl.Build()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	actions, err := lvl.Recording()
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		return errors.New("level has no recording")
	}

	out := cmd.OutOrStdout()
	trace, replayErr := solver.Replay(b, actions)
	for i, m := range trace.Moves {
		fmt.Fprintf(out, "%3d: %s hash=%d\n", i+1, formatMove(m), trace.Hashes[i])
	}
	if replayErr != nil {
		return replayErr
	}

	fmt.Fprintf(out, "Final status: %s after %d steps\n", trace.Status, len(trace.Moves))
	return nil
}
