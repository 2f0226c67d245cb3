package graphnav

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxDepth is the depth ceiling of the recursive reachability query.
// Nodes further than this many hops from the origin are silently dropped by
// ReachableViaQuery; ReachableViaTraversal has no ceiling.
const DefaultMaxDepth = 100

var tracer = otel.Tracer("github.com/meikuraledutech/graphnav")

// Engine computes reachability and renders graphs on top of a Reader.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	store    Reader
	maxDepth int
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets the depth ceiling used by ReachableViaQuery.
// Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.maxDepth = n
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine reading from store.
func NewEngine(store Reader, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDepth returns the depth ceiling used by ReachableViaQuery.
func (e *Engine) MaxDepth() int {
	return e.maxDepth
}

// ReachableViaQuery pushes the transitive closure into the store as a single
// recursive query. An origin that does not exist yields an empty result;
// checking existence is up to the caller.
func (e *Engine) ReachableViaQuery(ctx context.Context, originID int64) (*Reachability, error) {
	ctx, span := tracer.Start(ctx, "Engine.ReachableViaQuery", trace.WithAttributes(
		attribute.Int64("graphnav.origin_id", originID),
		attribute.Int("graphnav.max_depth", e.maxDepth),
	))
	defer span.End()

	start := time.Now()
	ids, err := e.store.ReachableIDs(ctx, originID, e.maxDepth)
	if err != nil {
		return nil, spanError(span, err)
	}

	r := newReachability(originID, normalize(ids, originID))
	e.observe(span, engineQuery, start, r)
	return r, nil
}

// ReachableViaTraversal fetches every edge once and runs a depth-first
// search in memory. It has no depth ceiling.
func (e *Engine) ReachableViaTraversal(ctx context.Context, originID int64) (*Reachability, error) {
	ctx, span := tracer.Start(ctx, "Engine.ReachableViaTraversal", trace.WithAttributes(
		attribute.Int64("graphnav.origin_id", originID),
	))
	defer span.End()

	start := time.Now()
	edges, err := e.store.ListEdges(ctx)
	if err != nil {
		return nil, spanError(span, err)
	}

	r := newReachability(originID, BuildAdjacency(edges).Reachable(originID))
	e.observe(span, engineTraversal, start, r)
	return r, nil
}

// Comparison holds the results of both engines for one origin.
type Comparison struct {
	Query      *Reachability `json:"cte"`
	Traversal  *Reachability `json:"dfs"`
	Equivalent bool          `json:"equivalent"`
}

// Compare runs both engines concurrently. Results differ only when some node
// lies deeper than MaxDepth hops from the origin.
func (e *Engine) Compare(ctx context.Context, originID int64) (*Comparison, error) {
	var c Comparison
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := e.ReachableViaQuery(gctx, originID)
		c.Query = r
		return err
	})
	g.Go(func() error {
		r, err := e.ReachableViaTraversal(gctx, originID)
		c.Traversal = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.Equivalent = slices.Equal(c.Query.ReachableIDs, c.Traversal.ReachableIDs)
	return &c, nil
}

// RenderGraph reads the whole graph in one snapshot and renders it with Render.
func (e *Engine) RenderGraph(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "Engine.RenderGraph")
	defer span.End()

	start := time.Now()
	g, err := e.store.ReadGraph(ctx)
	if err != nil {
		return "", spanError(span, err)
	}
	nodes, edges := g.Nodes, g.Edges

	out := Render(nodes, edges)
	renderDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("graphnav.nodes", len(nodes)),
		attribute.Int("graphnav.edges", len(edges)),
	)
	e.logger.Debug("graph rendered", "nodes", len(nodes), "edges", len(edges))
	return out, nil
}

func (e *Engine) observe(span trace.Span, engine string, start time.Time, r *Reachability) {
	elapsed := time.Since(start)
	reachDuration.WithLabelValues(engine).Observe(elapsed.Seconds())
	reachSize.WithLabelValues(engine).Observe(float64(r.Count))
	span.SetAttributes(attribute.Int("graphnav.count", r.Count))
	e.logger.Debug("reachability computed",
		"engine", engine,
		"origin_id", r.OriginID,
		"count", r.Count,
		"elapsed", elapsed,
	)
}

// normalize sorts, deduplicates and drops the origin, so the result contract
// holds whatever order the store returned rows in.
func normalize(ids []int64, origin int64) []int64 {
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if i, found := slices.BinarySearch(ids, origin); found {
		ids = slices.Delete(ids, i, i+1)
	}
	return ids
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
