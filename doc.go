// Package astar finds lowest-cost paths with A*.
//
// It exposes three entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - SearchBatch: run many independent queries over a shared graph on a worker pool.
//
// The engine is generic over the node type. FindPath and GridGraph bind it to
// the 8-connected grids of package grid, with unit orthogonal steps, √2
// diagonal steps and the octile distance as heuristic.
//
// Every discovered node has exactly one record, found through a map keyed by
// the node itself; parents are indices into the record arena. The open set is
// a binary heap that tolerates duplicate entries and drops stale ones on pop.
// Ties on f are broken by lower h and then by insertion order, so a search is
// reproducible.
package astar
