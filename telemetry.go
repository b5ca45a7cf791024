package astar

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Search outcomes, used as the "result" metric label.
const (
	outcomeFound     = "found"
	outcomeNoPath    = "no_path"
	outcomeTruncated = "truncated"
	outcomeCanceled  = "canceled"
	outcomeInvalid   = "invalid"
)

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "astar_searches_total",
		Help: "Total searches by result",
	}, []string{"result"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "astar_search_duration_seconds",
		Help:    "Wall time of one search",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})

	searchExpansions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "astar_search_expanded_nodes",
		Help:    "Nodes expanded per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	pathLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "astar_path_length",
		Help:    "Cells on found paths, both endpoints included",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

var (
	tracerOnce  sync.Once
	astarTracer trace.Tracer
)

// getTracer returns the package tracer. Without a configured provider it is
// the otel no-op tracer.
func getTracer() trace.Tracer {
	tracerOnce.Do(func() {
		astarTracer = otel.Tracer("github.com/pdrpinto/gridastar")
	})
	return astarTracer
}

func startSpan(ctx context.Context) (context.Context, trace.Span) {
	return getTracer().Start(ctx, "astar.Search")
}

func outcomeOf[NodeType comparable](result Result[NodeType]) string {
	switch {
	case result.Found:
		return outcomeFound
	case result.Truncated:
		return outcomeTruncated
	default:
		return outcomeNoPath
	}
}

func observe(ctx context.Context, span trace.Span, logger *slog.Logger, outcome string, length int, cost float64, expanded int, elapsed time.Duration) {
	searchesTotal.WithLabelValues(outcome).Inc()
	searchDuration.Observe(elapsed.Seconds())
	searchExpansions.Observe(float64(expanded))
	if outcome == outcomeFound {
		pathLength.Observe(float64(length))
	}

	span.SetAttributes(
		attribute.String("astar.result", outcome),
		attribute.Int("astar.expanded_nodes", expanded),
		attribute.Int("astar.path_length", length),
		attribute.Float64("astar.total_cost", cost),
	)
	span.SetStatus(codes.Ok, outcome)

	logger.DebugContext(ctx, "search finished",
		"result", outcome,
		"expanded", expanded,
		"length", length,
		"cost", cost,
		"elapsed", elapsed,
	)
}

func observeCanceled(span trace.Span, logger *slog.Logger, expanded int, err error) {
	searchesTotal.WithLabelValues(outcomeCanceled).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, "context done")
	logger.Debug("search canceled", "expanded", expanded, "error", err)
}
