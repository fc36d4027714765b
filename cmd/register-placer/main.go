// Command register-placer is the CLI collaborator from spec.md §6:
// register-placer <dataset-root> <scorecard-dir>. It discovers
// GraphML/goal pairs, solves each with both latency assigners, keeps the
// better per evaluate.IsBetter, and appends one scorecard row per graph.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ni/delaygraph/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cli.NewRootCommand()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
