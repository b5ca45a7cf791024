package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/grid"
	"github.com/pdrpinto/gridastar/internal/layout"
)

var (
	version = "--- set from makefile ---"

	help        = flag.Bool("help", false, "show help message")
	showVersion = flag.Bool("version", false, "show command version")
	logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")

	width     = flag.Int("width", 10, "grid width")
	height    = flag.Int("height", 10, "grid height")
	obstacles = flag.Int("obstacles", 20, "number of random obstacle picks (repeats allowed)")
	density   = flag.Int("density", -1, "obstacle percentage; overrides -obstacles when >= 0")
	wall      = flag.String("wall", "", "obstacle expression over x, y, w, h, e.g. 'x == 5 && y < 8'")
	seed      = flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
	start     = flag.String("start", "0,0", "start cell as x,y")
	goal      = flag.String("goal", "", "goal cell as x,y (default bottom-right corner)")

	maxExpansions = flag.Int("max-expansions", 0, "stop a search after this many expansions (0 = unbounded)")
	workers       = flag.Int("workers", 0, "concurrent searches in -sweep (0 = NumCPU)")

	sweep     = flag.Bool("sweep", false, "run random problems at densities 10%..90% instead of a single search")
	sweepSize = flag.Int("sweep-size", 100, "square grid size for -sweep")
	trials    = flag.Int("trials", 8, "queries per density in -sweep")
)

func init() {
	flag.Parse()
}

func main() {
	if *help {
		flag.Usage()
		return
	}

	if *showVersion {
		fmt.Println(version)
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	logger.Info("starting", "seed", *seed)

	var err error
	if *sweep {
		err = runSweep(ctx, logger, rng)
	} else {
		err = runSingle(ctx, logger, rng, os.Stdout)
	}
	if err != nil {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}
}

func searchOptions(logger *slog.Logger) []astar.Option {
	options := []astar.Option{
		astar.WithLogger(logger),
		astar.WithMaxExpansions(*maxExpansions),
	}
	if *workers > 0 {
		options = append(options, astar.WithWorkers(*workers))
	}
	return options
}

func runSingle(ctx context.Context, logger *slog.Logger, rng *rand.Rand, out io.Writer) error {
	g, err := grid.New(*width, *height)
	if err != nil {
		return err
	}

	from, err := parseCell(*start)
	if err != nil {
		return fmt.Errorf("-start: %w", err)
	}
	to := grid.Cell{X: *width - 1, Y: *height - 1}
	if *goal != "" {
		if to, err = parseCell(*goal); err != nil {
			return fmt.Errorf("-goal: %w", err)
		}
	}

	if *density >= 0 {
		g.FillPercent(rng, *density)
	} else {
		g.Scatter(rng, *obstacles)
	}
	if *wall != "" {
		l, err := layout.Compile(*wall)
		if err != nil {
			return err
		}
		n, err := l.Apply(g)
		if err != nil {
			return err
		}
		logger.Debug("wall applied", "expr", l.Source, "blocked", n)
	}

	// Start and goal are kept free, as the random layout may have hit them.
	if err := g.SetObstacle(from.X, from.Y, false); err != nil {
		return fmt.Errorf("-start: %w", err)
	}
	if err := g.SetObstacle(to.X, to.Y, false); err != nil {
		return fmt.Errorf("-goal: %w", err)
	}

	began := time.Now()
	result, err := astar.FindPath(ctx, g, from, to, searchOptions(logger)...)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	elapsed := time.Since(began)

	if err := grid.Render(out, g, result.Path); err != nil {
		return err
	}
	switch {
	case result.Found:
		fmt.Fprintf(out, "Path found! Length: %d\n", len(result.Path))
		fmt.Fprintln(out, "F(n) values along the path:")
		for i, c := range result.Path {
			fmt.Fprintf(out, "Node %v: F(n) = %.4f\n", c, result.Scores[i].F)
		}
		fmt.Fprintf(out, "Path cost: %.4f\n", result.TotalCost)
	case result.Truncated:
		fmt.Fprintf(out, "Search stopped after %d expansions.\n", result.ExpandedNodes)
	default:
		fmt.Fprintln(out, "No path found.")
	}

	logger.Info("search done",
		"found", result.Found,
		"expanded", result.ExpandedNodes,
		"elapsed", elapsed,
	)
	return nil
}

func runSweep(ctx context.Context, logger *slog.Logger, rng *rand.Rand) error {
	size := *sweepSize
	for percent := 10; percent <= 90; percent += 10 {
		g, err := grid.New(size, size)
		if err != nil {
			return err
		}
		g.FillPercent(rng, percent)

		queries := make([]astar.Query[grid.Cell], 0, max(*trials, 1))
		queries = append(queries, astar.Query[grid.Cell]{
			Start: grid.Cell{X: 0, Y: 0},
			Goal:  grid.Cell{X: size - 1, Y: size - 1},
		})
		for len(queries) < *trials {
			queries = append(queries, astar.Query[grid.Cell]{
				Start: grid.Cell{X: rng.Intn(size), Y: rng.Intn(size)},
				Goal:  grid.Cell{X: rng.Intn(size), Y: rng.Intn(size)},
			})
		}
		for _, q := range queries {
			_ = g.SetObstacle(q.Start.X, q.Start.Y, false)
			_ = g.SetObstacle(q.Goal.X, q.Goal.Y, false)
		}

		began := time.Now()
		results, err := astar.FindPaths(ctx, g, queries, searchOptions(logger)...)
		if err != nil {
			return fmt.Errorf("density %d%%: %w", percent, err)
		}

		found, cells, expanded := 0, 0, 0
		for _, r := range results {
			expanded += r.ExpandedNodes
			if r.Found {
				found++
				cells += len(r.Path)
			}
		}
		corner := "no path"
		if results[0].Found {
			corner = strconv.Itoa(len(results[0].Path))
		}
		logger.Info("density done",
			"obstacles_pct", percent,
			"corner_path_length", corner,
			"found", found,
			"queries", len(queries),
			"path_cells", cells,
			"expanded", expanded,
			"elapsed", time.Since(began),
		)
	}
	return nil
}

func parseCell(s string) (grid.Cell, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Cell{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("y: %w", err)
	}
	return grid.Cell{X: x, Y: y}, nil
}
