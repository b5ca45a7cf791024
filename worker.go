package astar

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Query is one start/goal pair of a batch.
type Query[NodeType comparable] struct {
	Start NodeType
	Goal  NodeType
}

// SearchBatch runs one independent search per query on a pool of
// WithWorkers goroutines and returns the results in query order. The graph
// is shared read-only; every search owns its own state.
//
// The first error cancels the remaining searches and is returned.
func SearchBatch[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	queries []Query[NodeType],
	heuristic Heuristic[NodeType],
	options ...Option,
) ([]Result[NodeType], error) {
	return runBatch(contextObject, queries, options, func(ctx context.Context, query Query[NodeType]) (Result[NodeType], error) {
		return Search(ctx, graph, query.Start, query.Goal, heuristic, options...)
	})
}

func runBatch[NodeType comparable](
	contextObject context.Context,
	queries []Query[NodeType],
	options []Option,
	run func(context.Context, Query[NodeType]) (Result[NodeType], error),
) ([]Result[NodeType], error) {
	searchOptions := applyOptions(options)
	results := make([]Result[NodeType], len(queries))

	group, ctx := errgroup.WithContext(contextObject)
	group.SetLimit(searchOptions.NumberOfWorkers)
	for i, query := range queries {
		group.Go(func() error {
			result, err := run(ctx, query)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
