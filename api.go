package astar

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Graph is generic over node type N.
// N must be comparable so it can key the discovered-map.
type Graph[NodeType comparable] interface {
	Neighbors(node NodeType) []Neighbor[NodeType]
}

// Neighbor represents a reachable node with the cost of the step to it.
type Neighbor[NodeType comparable] struct {
	ID   NodeType
	Cost float64
}

// Heuristic returns the estimated cost from node a to node b.
// Search only guarantees optimal paths for admissible, consistent heuristics.
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) float64

// Score holds the bookkeeping of one node on a returned path.
type Score struct {
	G float64
	H float64
	F float64
}

// Result contains the outcome of a search.
//
// Found is false both when the goal is unreachable and when the search was
// cut short by WithMaxExpansions; Truncated tells the two apart.
type Result[NodeType comparable] struct {
	Path          []NodeType
	Scores        []Score // parallel to Path
	TotalCost     float64
	ExpandedNodes int
	Found         bool
	Truncated     bool
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	MaxExpansions   int
	Logger          *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many searches SearchBatch and FindPaths run at
// once. A single search always runs on the calling goroutine.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithMaxExpansions stops a search after n node expansions and reports it
// as truncated. Zero or less means unbounded.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithLogger sets the logger used for per-search debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.Default()
	}
	return searchOptions
}

// cancelCheckInterval is how many expansions run between context checks.
const cancelCheckInterval = 256

// Search runs A* from startNode to goalNode on the calling goroutine.
//
// An unreachable goal is not an error: the Result has Found == false. The
// only error returned is the context's, when it is done before the search
// finishes.
//
// Nodes are indexed by int32, so one search can discover at most 2^31 nodes.
func Search[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	searchOptions := applyOptions(options)

	contextObject, span := startSpan(contextObject)
	defer span.End()
	began := time.Now()

	state := newSearch(graph, startNode, goalNode, heuristic)
	for !state.done {
		if state.overLimit(searchOptions.MaxExpansions) {
			state.truncate()
			break
		}
		if state.expanded%cancelCheckInterval == 0 {
			if err := contextObject.Err(); err != nil {
				observeCanceled(span, searchOptions.Logger, state.expanded, err)
				return Result[NodeType]{ExpandedNodes: state.expanded}, err
			}
		}
		state.expand()
	}

	result := state.result()
	observe(contextObject, span, searchOptions.Logger, outcomeOf(result), len(result.Path), result.TotalCost, result.ExpandedNodes, time.Since(began))
	return result, nil
}
