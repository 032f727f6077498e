// Package route finds the fastest route between two intersections of a
// signalised road network.
//
// Edge cost depends on the clock: a traveller reaching a segment while its
// signal is red waits for the next green phase before driving on. The search
// is Dijkstra over arrival times. Waiting is never negative and travel is
// always positive, so arrival times only grow along a route and finalizing
// nodes in order of increasing arrival stays correct.
//
// Complexity:
//
//   - Time:  O((V + E) log E) with lazy decrease-key.
//   - Space: O(V + E) for the visited and trace maps and the heap.
package route

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/gyaneshwarpardhi/greenwave/internal/graph"
)

// FindFastest computes the earliest arrival at end when leaving start at
// clock time 0, together with the route and its per-hop timing.
//
// An unreachable end (including an end or start unknown to g) is not an
// error: the Result has TotalTime +Inf and no path. start == end always
// yields TotalTime 0 and Path [start].
//
// The only runtime error is ctx being cancelled; it is checked once per
// popped state. g is only read and may be shared by concurrent calls.
func FindFastest(ctx context.Context, g *graph.Network, start, end string, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if start == "" || end == "" {
		return nil, ErrEmptyNode
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: speed=%g max_arrival=%g", err, cfg.Speed, cfg.MaxArrival)
	}

	s := &search{
		g:       g,
		opts:    cfg,
		start:   start,
		end:     end,
		visited: make(map[string]float64),
		trace:   make(map[string]hop),
	}
	return s.run(ctx)
}

// hop records how a node was most recently reached.
type hop struct {
	prev    string
	wait    float64
	travel  float64
	arrival float64
}

// search holds the mutable state of a single query.
type search struct {
	g       *graph.Network
	opts    Options
	start   string
	end     string
	visited map[string]float64 // finalized arrival per node
	trace   map[string]hop     // best pending or finalized hop per node
	pq      arrivalPQ
	seq     uint64
}

func (s *search) run(ctx context.Context) (*Result, error) {
	s.push(s.start, 0)

	for s.pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st := heap.Pop(&s.pq).(*state)

		// Stale entry: the node was finalized at an equal or earlier time.
		if t, ok := s.visited[st.node]; ok && t <= st.arrival {
			continue
		}
		// The heap minimum is past the cap; nothing later can be explored.
		if st.arrival > s.opts.MaxArrival {
			break
		}

		s.visited[st.node] = st.arrival
		if st.node == s.end {
			return s.result(st.arrival), nil
		}
		s.relax(st.node, st.arrival)
	}
	return unreachable(s.start, s.end), nil
}

// relax pushes every neighbor of u whose arrival improves on what is known.
func (s *search) relax(u string, now float64) {
	for _, e := range s.g.Edges(u) {
		wait := e.Signal.Wait(now)
		travel := e.Distance / s.opts.Speed
		arrival := now + wait + travel
		// Overflowed travel times cannot be ordered or waited out.
		if math.IsInf(arrival, 0) || math.IsNaN(arrival) {
			continue
		}

		if t, ok := s.visited[e.To]; ok && t <= arrival {
			continue
		}
		// Keep the first relaxation among equals so the trace matches the
		// state that will be popped first.
		if h, ok := s.trace[e.To]; ok && h.arrival <= arrival {
			continue
		}
		s.trace[e.To] = hop{prev: u, wait: wait, travel: travel, arrival: arrival}
		s.push(e.To, arrival)
	}
}

func (s *search) push(node string, arrival float64) {
	s.seq++
	heap.Push(&s.pq, &state{node: node, arrival: arrival, seq: s.seq})
}

// result walks predecessors back from the finalized end node.
func (s *search) result(total float64) *Result {
	var steps []Step
	for node := s.end; node != s.start; {
		h := s.trace[node]
		steps = append(steps, Step{
			From:    h.prev,
			To:      node,
			Wait:    h.wait,
			Travel:  h.travel,
			Arrival: h.arrival,
		})
		node = h.prev
	}
	slices.Reverse(steps)

	path := make([]string, 0, len(steps)+1)
	path = append(path, s.start)
	for _, st := range steps {
		path = append(path, st.To)
	}
	return &Result{
		Start:     s.start,
		End:       s.end,
		TotalTime: total,
		Path:      path,
		Steps:     steps,
	}
}
