package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"
	"github.com/google/uuid"

	"github.com/ni/delaygraph/asap"
	"github.com/ni/delaygraph/core"
	"github.com/ni/delaygraph/evaluate"
	"github.com/ni/delaygraph/greedy"
	"github.com/ni/delaygraph/internal/config"
	"github.com/ni/delaygraph/internal/dataset"
	"github.com/ni/delaygraph/internal/dot"
	"github.com/ni/delaygraph/internal/graphml"
	"github.com/ni/delaygraph/internal/scorecard"
)

// runSolve discovers every graph/goal pair under run.DatasetRoot, solves
// each, and appends one scorecard row per graph to scorecard.csv under
// run.ScorecardDir.
func runSolve(ctx context.Context, logger *charmlog.Logger, run *config.Run) error {
	pairs, err := dataset.Walk(run.DatasetRoot)
	if err != nil {
		return err
	}
	logger.Info("discovered dataset", "pairs", len(pairs))

	if err := os.MkdirAll(run.ScorecardDir, 0o755); err != nil {
		return fmt.Errorf("register-placer: create scorecard dir: %w", err)
	}
	csvFile, err := os.Create(filepath.Join(run.ScorecardDir, "scorecard.csv"))
	if err != nil {
		return fmt.Errorf("register-placer: create scorecard file: %w", err)
	}
	defer csvFile.Close()

	writer := scorecard.NewCSVWriter(csvFile)

	var cache *scorecard.Cache
	if run.RedisAddr != "" {
		cache = scorecard.NewCache(run.RedisAddr, 24*time.Hour)
		defer cache.Close()
	}

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := solveOne(ctx, logger, run, writer, cache, pair); err != nil {
			logger.Warn("skipping graph after error", "graph", pair.GraphPath, "err", err)
		}
	}

	return writer.Flush()
}

func solveOne(ctx context.Context, logger *charmlog.Logger, run *config.Run, writer *scorecard.CSVWriter, cache *scorecard.Cache, pair dataset.Pair) error {
	content, err := os.ReadFile(pair.GraphPath)
	if err != nil {
		return fmt.Errorf("read graph: %w", err)
	}

	g, err := graphml.Load(strings.NewReader(string(content)))
	if err != nil {
		return fmt.Errorf("parse graph: %w", err)
	}
	g.PruneParallelEdges() // §4.1: applied once before solving

	goalFile, err := os.Open(pair.GoalPath)
	if err != nil {
		return fmt.Errorf("open goal: %w", err)
	}
	defer goalFile.Close()

	target, err := graphml.LoadGoal(goalFile, g)
	if err != nil {
		return fmt.Errorf("parse goal: %w", err)
	}
	if run.TargetPeriodPS > 0 {
		target = run.TargetPeriodPS
	}

	runID := uuid.New()

	if cache != nil {
		if best, name, hit, err := lookupCache(ctx, cache, content, run, target); err == nil && hit {
			logger.Debug("cache hit", "graph", pair.GraphPath)
			return writer.WriteRow(scorecard.RowFromScore(runID, pair.GraphPath, name, evaluate.ScoreCard{
				Throughput: best.Throughput, Latency: best.Latency, Registers: best.Registers,
			}, best.SlackPS, best.FoundComboCycle))
		}
	}

	best, name, err := solveBest(g, target, run.Assigner, logger)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	if run.DotDir != "" {
		if err := writeDOT(ctx, run.DotDir, pair.GraphPath, g, best.Solution, run.Render); err != nil {
			logger.Warn("dot export failed", "graph", pair.GraphPath, "err", err)
		}
	}

	if cache != nil {
		key := scorecard.Key(content, name, target)
		_ = cache.Set(ctx, key, scorecard.CachedResult{
			Throughput:      best.Score.Throughput,
			Latency:         best.Score.Latency,
			Registers:       best.Score.Registers,
			SlackPS:         best.Solution.SlackPS,
			FoundComboCycle: best.Solution.FoundComboCycle,
		})
	}

	return writer.WriteRow(scorecard.RowFromScore(runID, pair.GraphPath, name, best.Score, best.Solution.SlackPS, best.Solution.FoundComboCycle))
}

// solveBest runs whichever assigners run.Assigner selects and returns the
// winning Evaluator plus the name under which it should be recorded.
func solveBest(g *core.Graph, target int64, which config.Assigner, logger *charmlog.Logger) (*evaluate.Evaluator, string, error) {
	runASAP := which.RunsBoth() || which == config.AssignerASAP
	runGreedy := which.RunsBoth() || which == config.AssignerGreedy

	var best *evaluate.Evaluator
	var bestName string

	if runASAP {
		ev, err := evaluateWith(g, target, "asap", asap.Assigner{})
		if err != nil {
			return nil, "", err
		}
		best, bestName = ev, "asap"
	}

	if runGreedy {
		ev, err := evaluateWith(g, target, "greedy", greedy.New(greedy.WithLogger(logger)))
		if err != nil {
			return nil, "", err
		}
		if best == nil || evaluate.IsBetter(ev, best) {
			best, bestName = ev, "greedy"
		}
	}

	if best == nil {
		return nil, "", fmt.Errorf("no assigner selected (%q)", which)
	}

	return best, bestName, nil
}

func evaluateWith(g *core.Graph, target int64, name string, a assignerFunc) (*evaluate.Evaluator, error) {
	sol := a.Assign(g, target)

	return evaluate.NewEvaluator(name, g, sol, target)
}

// assignerFunc is the subset of assign.Assigner this package needs; kept
// local so cli does not have to import assign for what is, here, a thin
// evaluate.NewEvaluator wrapper rather than the full Solve pipeline.
type assignerFunc interface {
	Assign(g *core.Graph, targetPeriodPS int64) *core.Solution
}

func lookupCache(ctx context.Context, cache *scorecard.Cache, content []byte, run *config.Run, target int64) (scorecard.CachedResult, string, bool, error) {
	for _, name := range []string{"asap", "greedy"} {
		if !run.Assigner.RunsBoth() && string(run.Assigner) != name {
			continue
		}
		result, hit, err := cache.Get(ctx, scorecard.Key(content, name, target))
		if err != nil {
			return scorecard.CachedResult{}, "", false, err
		}
		if hit {
			return result, name, true, nil
		}
	}

	return scorecard.CachedResult{}, "", false, nil
}

func writeDOT(ctx context.Context, dotDir, graphPath string, g *core.Graph, sol *core.Solution, render bool) error {
	if err := os.MkdirAll(dotDir, 0o755); err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(graphPath), filepath.Ext(graphPath))
	source := dot.ToDOT(g, sol)
	out := filepath.Join(dotDir, base+".dot")
	if err := os.WriteFile(out, []byte(source), 0o644); err != nil {
		return err
	}

	if !render {
		return nil
	}

	svg, err := dot.Render(ctx, source, graphviz.SVG)
	if err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}

	return os.WriteFile(filepath.Join(dotDir, base+".svg"), svg, 0o644)
}
