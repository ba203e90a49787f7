package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/wippyai/resource-core/dependency"
	"github.com/wippyai/resource-core/group"
	"github.com/wippyai/resource-core/runtime"
)

type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var scenarios listFlag
	flag.Var(&scenarios, "scenario", "Scenario file to run (repeatable)")
	var (
		interactive = flag.Bool("i", false, "Browse a scenario in an interactive TUI")
		verbose     = flag.Bool("v", false, "Development logging to stderr")
		withMetrics = flag.Bool("metrics", false, "Collect and print lifecycle metrics")
	)
	flag.Parse()
	scenarios = append(scenarios, flag.Args()...)

	if len(scenarios) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: restrack -scenario <file.yaml> [-scenario ...] [-v] [-metrics]")
		fmt.Fprintln(os.Stderr, "       restrack -scenario <file.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}
	dependency.SetLogger(logger)
	group.SetLogger(logger)
	runtime.SetLogger(logger)

	if *interactive {
		if err := runInteractive(scenarios[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	failed, err := run(context.Background(), scenarios, RunOptions{Logger: logger, Metrics: *withMetrics})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(2)
	}
}

// run executes every scenario in its own runtime, in parallel, and prints
// the reports in argument order. It returns the total number of failed steps.
func run(ctx context.Context, paths []string, opts RunOptions) (int, error) {
	reports := make([]*Report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			sc, err := LoadScenario(path)
			if err != nil {
				return err
			}
			report, err := Run(ctx, sc, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	p := printer{w: os.Stdout, styled: term.IsTerminal(int(os.Stdout.Fd()))}
	failed := 0
	for _, r := range reports {
		p.Render(r)
		failed += r.Failed()
	}
	return failed, nil
}
