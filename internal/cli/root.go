// Package cli wires register-placer's Cobra command tree: flag/config
// parsing, dataset discovery, solving with both latency assigners, and
// scorecard emission. It is the one external collaborator spec.md §6
// names; the pure solve path it calls into lives in the assign package.
package cli

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ni/delaygraph/internal/config"
)

// NewRootCommand builds the register-placer command tree.
func NewRootCommand() *cobra.Command {
	var (
		verbose        bool
		configPath     string
		assignerFlag   string
		targetOverride int64
		dotDir         string
		render         bool
		redisAddr      string
	)

	root := &cobra.Command{
		Use:          "register-placer <dataset-root> <scorecard-dir>",
		Short:        "Assign pipeline registers across a dataset of delay graphs",
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})

			run, err := resolveRun(configPath, args, assignerFlag, targetOverride, dotDir, render, redisAddr)
			if err != nil {
				return err
			}

			return runSolve(cmd.Context(), logger, run)
		},
	}

	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVarP(&configPath, "config", "c", "", "TOML run descriptor (alternative to positional args)")
	root.Flags().StringVar(&assignerFlag, "assigner", "", "restrict to one strategy: asap|greedy (default: run both, keep the better)")
	root.Flags().Int64Var(&targetOverride, "target-ps", 0, "override each graph's target clock period, in picoseconds")
	root.Flags().StringVar(&dotDir, "dot-dir", "", "optional directory to write per-solution DOT files into")
	root.Flags().BoolVar(&render, "render", false, "also rasterize each DOT file to SVG (requires --dot-dir)")
	root.Flags().StringVar(&redisAddr, "redis-addr", "", "optional Redis address for scorecard caching")

	return root
}

func resolveRun(configPath string, args []string, assignerFlag string, targetOverride int64, dotDir string, render bool, redisAddr string) (*config.Run, error) {
	if configPath != "" {
		run, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		if assignerFlag != "" {
			run.Assigner = config.Assigner(assignerFlag)
		}
		if targetOverride > 0 {
			run.TargetPeriodPS = targetOverride
		}
		if dotDir != "" {
			run.DotDir = dotDir
		}
		if render {
			run.Render = true
		}
		if redisAddr != "" {
			run.RedisAddr = redisAddr
		}

		return run, nil
	}

	if len(args) < 2 {
		return nil, fmt.Errorf("register-placer: need <dataset-root> <scorecard-dir>, or --config")
	}

	run := &config.Run{
		DatasetRoot:    args[0],
		ScorecardDir:   args[1],
		Assigner:       config.Assigner(assignerFlag),
		TargetPeriodPS: targetOverride,
		DotDir:         dotDir,
		Render:         render,
		RedisAddr:      redisAddr,
	}

	return run, run.Validate()
}
