package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/RayZh-hs/neutronic/internal/generator"
)

var (
	numLevels  int
	genRows    int
	genCols    int
	density    float64
	pairs      int
	portals    int
	stepRange  string
	outputFile string
	timeout    time.Duration
	seed       int64
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate puzzle levels",
		Long: `Generate one or more random levels whose shortest solution length lies
in the requested range. Each level carries its solution as a recording.

Examples:
  neutronic gen --rows 5 --cols 5 --steps 6
  neutronic gen -n 3 --pairs 3 --portals 1 --steps 8:12 -o level-*.json
  neutronic gen --steps 10 --timeout 1m --seed 7`,
		RunE: runGen,
	}

	genCmd.Flags().IntVarP(&numLevels, "number", "n", 1, "Number of levels to generate")
	genCmd.Flags().IntVar(&genRows, "rows", 5, "Board rows")
	genCmd.Flags().IntVar(&genCols, "cols", 5, "Board columns")
	genCmd.Flags().Float64Var(&density, "density", 0.75, "Fraction of open cells")
	genCmd.Flags().IntVar(&pairs, "pairs", 2, "Number of red/blue particle pairs")
	genCmd.Flags().IntVar(&portals, "portals", 0, "Number of portal pairs")
	genCmd.Flags().StringVar(&stepRange, "steps", fmt.Sprintf("%d:%d", generator.DefaultMinSteps, generator.DefaultMaxSteps), "Solution length, a number or a range like 6:10")
	genCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (e.g., level.json or level-*.json)")
	genCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Generation timeout per level")
	genCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = random)")

	rootCmd.AddCommand(genCmd)
}

// parseStepRange parses a step count string which can be:
// - A single number: "8"
// - A range: "6:10"
// Returns min, max, and an error
func parseStepRange(s string) (min, max int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) == 1 {
		val, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid step count: %w", err)
		}
		return val, val, nil
	} else if len(parts) == 2 {
		minVal, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid step count min: %w", err)
		}
		maxVal, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid step count max: %w", err)
		}
		if minVal > maxVal {
			return 0, 0, fmt.Errorf("step count min (%d) cannot be greater than max (%d)", minVal, maxVal)
		}
		return minVal, maxVal, nil
	}
	return 0, 0, fmt.Errorf("invalid step count format: %s (use format like '8' or '6:10')", s)
}

// levelFilename names the i-th (1-based) of n output files.
// A '*' in the pattern is replaced by the index; otherwise the index is
// appended before the extension when more than one level is written.
func levelFilename(pattern string, i, n int) string {
	if filepath.Ext(pattern) != ".json" {
		pattern += ".json"
	}
	if strings.Contains(pattern, "*") {
		return strings.ReplaceAll(pattern, "*", strconv.Itoa(i))
	}
	if n == 1 {
		return pattern
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(pattern, ext), i, ext)
}

func runGen(cmd *cobra.Command, args []string) error {
	minSteps, maxSteps, err := parseStepRange(stepRange)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i := 1; i <= numLevels; i++ {
		opts := generator.DefaultOptions(genRows, genCols)
		opts.Rows, opts.Cols = genRows, genCols
		opts.Density = density
		opts.Pairs = pairs
		opts.Portals = portals
		opts.MinSteps = minSteps
		opts.MaxSteps = maxSteps
		opts.Timeout = timeout
		if seed != 0 {
			opts.Seed = seed + int64(i-1)
		}

		lvl, res, err := generator.New(opts).Generate(cmd.Context())
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
		lvl.Meta.Name = fmt.Sprintf("Generated #%d", i)

		if outputFile != "" {
			filename := levelFilename(outputFile, i, numLevels)
			if err := lvl.Save(filename); err != nil {
				return fmt.Errorf("failed to write level: %w", err)
			}
			log.WithFields(log.Fields{
				"file":   filename,
				"steps":  len(res.Moves),
				"states": res.States,
			}).Info("level written")
			fmt.Fprintf(out, "Generated %s (%d steps)\n", filename, len(res.Moves))
			continue
		}

		b, err := lvl.Build()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Level #%d (%d steps):\n", i, len(res.Moves))
		fmt.Fprint(out, b.Format())
		if err := lvl.Encode(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}
