package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bluele/gcache"

	"github.com/gyaneshwarpardhi/greenwave/internal/config"
	"github.com/gyaneshwarpardhi/greenwave/internal/graph"
	"github.com/gyaneshwarpardhi/greenwave/internal/metrics"
	"github.com/gyaneshwarpardhi/greenwave/internal/query"
	"github.com/gyaneshwarpardhi/greenwave/internal/route"
)

var (
	// ErrQueueFull is returned when the query queue has no free slot.
	ErrQueueFull = errors.New("engine: query queue full")

	// ErrTimeout is returned when a query does not finish within the configured timeout.
	ErrTimeout = errors.New("engine: query timed out")
)

// QueryResult is the outcome of processing a single query.
type QueryResult struct {
	QueryID    string       `json:"query_id"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Reachable  bool         `json:"reachable"`
	TotalTime  *float64     `json:"total_time"` // null when unreachable
	Path       []string     `json:"path"`
	Steps      []route.Step `json:"steps"`
	Generation uint64       `json:"network_generation"`
	Cached     bool         `json:"cached"`
	DurationMs float64      `json:"duration_ms"`
	Error      string       `json:"error,omitempty"`
}

// NetworkInfo describes the network currently serving queries.
type NetworkInfo struct {
	Version    string    `json:"version"`
	Generation uint64    `json:"generation"`
	Nodes      int       `json:"nodes"`
	Segments   int       `json:"segments"`
	Speed      float64   `json:"speed"`
	MaxArrival float64   `json:"max_arrival"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// snapshot pairs a network with the routing settings it was loaded with.
// It is replaced as a whole on reload.
type snapshot struct {
	network    *graph.Network
	routing    config.RoutingConf
	opts       []route.Option
	version    string
	generation uint64
	loadedAt   time.Time
}

// Engine answers route queries against the active network.
type Engine struct {
	swapMu     sync.Mutex // orders generation bumps with snapshot stores
	snap       atomic.Pointer[snapshot]
	generation atomic.Uint64
	pool       *workerPool[*queryWork]
	cache      gcache.Cache // nil when disabled
	conf       config.EngineConf
}

type queryWork struct {
	ctx     context.Context
	q       *query.Query
	snap    *snapshot
	resultC chan outcome
}

type outcome struct {
	res *route.Result
	err error
}

// New creates an Engine serving n with the settings in cfg and starts the worker pool.
func New(ctx context.Context, cfg *config.ServiceConfig, n *graph.Network) *Engine {
	e := &Engine{conf: cfg.Engine}
	if cfg.Cache.Size > 0 {
		b := gcache.New(cfg.Cache.Size).LRU()
		if cfg.Cache.TTLSeconds > 0 {
			b = b.Expiration(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
		}
		e.cache = b.Build()
	}
	e.Swap(cfg, n)

	e.pool = newWorkerPool[*queryWork](
		ctx,
		cfg.Engine.Workers,
		cfg.Engine.QueueDepth,
		func(ctx context.Context, w *queryWork) {
			w.resultC <- e.process(w)
		},
	)
	return e
}

// Swap atomically replaces the network and routing settings (used on hot-reload).
// Cached routes from the previous network are discarded.
func (e *Engine) Swap(cfg *config.ServiceConfig, n *graph.Network) {
	opts := []route.Option{route.WithSpeed(cfg.Routing.Speed)}
	if cfg.Routing.MaxArrival > 0 {
		opts = append(opts, route.WithMaxArrival(cfg.Routing.MaxArrival))
	}

	e.swapMu.Lock()
	s := &snapshot{
		network:    n,
		routing:    cfg.Routing,
		opts:       opts,
		version:    cfg.Version,
		generation: e.generation.Add(1),
		loadedAt:   time.Now(),
	}
	e.snap.Store(s)
	if e.cache != nil {
		e.cache.Purge()
	}
	metrics.NetworkNodes.Set(float64(n.NodeCount()))
	metrics.NetworkSegments.Set(float64(n.SegmentCount()))
	e.swapMu.Unlock()

	slog.Info("network active", "generation", s.generation, "nodes", n.NodeCount(), "segments", n.SegmentCount())
}

// Reload validates cfg, rebuilds the network it names and swaps it in.
// On any error the current network keeps serving.
func (e *Engine) Reload(cfg *config.ServiceConfig) error {
	if err := config.Validate(cfg); err != nil {
		metrics.NetworkReloads.WithLabelValues("invalid").Inc()
		return err
	}
	n, err := graph.Load(cfg)
	if err != nil {
		metrics.NetworkReloads.WithLabelValues("failed").Inc()
		return err
	}
	e.Swap(cfg, n)
	metrics.NetworkReloads.WithLabelValues("success").Inc()
	return nil
}

// Network describes the active network.
func (e *Engine) Network() NetworkInfo {
	s := e.snap.Load()
	return NetworkInfo{
		Version:    s.version,
		Generation: s.generation,
		Nodes:      s.network.NodeCount(),
		Segments:   s.network.SegmentCount(),
		Speed:      s.routing.Speed,
		MaxArrival: s.routing.MaxArrival,
		LoadedAt:   s.loadedAt,
	}
}

// Query answers q on the worker pool and waits for the result.
// Returns ErrQueueFull if the queue is full and ErrTimeout if the
// configured query timeout elapses first.
func (e *Engine) Query(ctx context.Context, q *query.Query) (*QueryResult, error) {
	start := time.Now()
	s := e.snap.Load()

	key := cacheKey(s.generation, q.From, q.To)
	if e.cache != nil {
		if v, err := e.cache.Get(key); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			res := newQueryResult(q, s, v.(*route.Result), start)
			res.Cached = true
			metrics.QueryDuration.Observe(res.DurationMs)
			return res, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	timeout := time.Duration(e.conf.QueryTimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	w := &queryWork{ctx: ctx, q: q, snap: s, resultC: make(chan outcome, 1)}
	if !e.pool.Submit(w) {
		metrics.QueriesDropped.Inc()
		return nil, fmt.Errorf("%w (capacity %d)", ErrQueueFull, e.conf.QueueDepth)
	}
	metrics.QueriesEnqueued.Inc()

	var out outcome
	select {
	case out = <-w.resultC:
	case <-ctx.Done():
		out.err = ctx.Err()
	}
	if out.err != nil {
		metrics.QueriesFailed.Inc()
		if errors.Is(out.err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, timeout)
		}
		return nil, out.err
	}

	if e.cache != nil {
		_ = e.cache.Set(key, out.res)
	}
	res := newQueryResult(q, s, out.res, start)
	metrics.QueryDuration.Observe(res.DurationMs)
	return res, nil
}

// QueryBatch answers every query concurrently. Results keep the input order;
// a query that could not be answered carries its error in QueryResult.Error.
func (e *Engine) QueryBatch(ctx context.Context, qs []*query.Query) []*QueryResult {
	results := make([]*QueryResult, len(qs))
	var wg sync.WaitGroup
	for i, q := range qs {
		wg.Add(1)
		go func(i int, q *query.Query) {
			defer wg.Done()
			res, err := e.Query(ctx, q)
			if err != nil {
				res = &QueryResult{
					QueryID: q.ID,
					From:    q.From,
					To:      q.To,
					Path:    []string{},
					Steps:   []route.Step{},
					Error:   err.Error(),
				}
			}
			results[i] = res
		}(i, q)
	}
	wg.Wait()
	return results
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if e.pool.QueueCap() == 0 {
		return 0
	}
	return float64(e.pool.QueueLen()) / float64(e.pool.QueueCap())
}

func (e *Engine) process(w *queryWork) outcome {
	if err := w.ctx.Err(); err != nil {
		return outcome{err: err}
	}
	res, err := route.FindFastest(w.ctx, w.snap.network, w.q.From, w.q.To, w.snap.opts...)
	if err != nil {
		return outcome{err: err}
	}
	metrics.QueriesProcessed.Inc()
	if !res.Reachable() {
		metrics.RoutesUnreachable.Inc()
	}
	return outcome{res: res}
}

func newQueryResult(q *query.Query, s *snapshot, r *route.Result, start time.Time) *QueryResult {
	res := &QueryResult{
		QueryID:    q.ID,
		From:       q.From,
		To:         q.To,
		Reachable:  r.Reachable(),
		Path:       []string{},
		Steps:      []route.Step{},
		Generation: s.generation,
	}
	if res.Reachable {
		total := r.TotalTime
		res.TotalTime = &total
		res.Path = r.Path
		if r.Steps != nil {
			res.Steps = r.Steps
		}
	}
	res.DurationMs = float64(time.Since(start).Microseconds()) / 1000
	return res
}

func cacheKey(generation uint64, from, to string) string {
	return fmt.Sprintf("%d\x00%s\x00%s", generation, from, to)
}

// Shutdown drains the worker pool gracefully.
func (e *Engine) Shutdown() {
	e.pool.Drain()
}
