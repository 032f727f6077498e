package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/gyaneshwarpardhi/greenwave/internal/config"
	"github.com/gyaneshwarpardhi/greenwave/internal/road"
)

// ErrInvalidSegment is wrapped by every SegmentError.
var ErrInvalidSegment = errors.New("graph: invalid road segment")

// SegmentError reports a road record that cannot be part of a network.
type SegmentError struct {
	Index  int // position in the input slice
	From   string
	To     string
	Reason string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d (%s-%s): %s", e.Index, e.From, e.To, e.Reason)
}

func (e *SegmentError) Unwrap() error { return ErrInvalidSegment }

// Build constructs a Network from road segments. Every segment is added in
// both directions; none is merged or dropped. The first invalid segment
// rejects the whole build.
func Build(segs []road.Segment) (*Network, error) {
	for i, s := range segs {
		if reason := check(s); reason != "" {
			return nil, &SegmentError{Index: i, From: s.From, To: s.To, Reason: reason}
		}
	}
	n := NewNetwork()
	for _, s := range segs {
		n.AddSegment(s.From, s.To, Signal{Green: s.Green, Red: s.Red, Offset: s.Offset}, s.Distance)
	}
	return n, nil
}

func check(s road.Segment) string {
	switch {
	case s.From == "" || s.To == "":
		return "missing node id"
	case !finite(s.Green, s.Red, s.Offset, s.Distance):
		return "non-finite value"
	case s.Distance <= 0:
		return fmt.Sprintf("distance must be positive, got %g", s.Distance)
	case s.Green <= 0:
		return fmt.Sprintf("green time must be positive, got %g", s.Green)
	case s.Red < 0:
		return fmt.Sprintf("red time must not be negative, got %g", s.Red)
	}
	return ""
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Load reads the road table named by cfg and builds a Network from it.
func Load(cfg *config.ServiceConfig) (*Network, error) {
	segs, err := readSegments(cfg.Network)
	if err != nil {
		return nil, err
	}
	n, err := Build(segs)
	if err != nil {
		return nil, fmt.Errorf("build network from %s: %w", cfg.Network.Path, err)
	}
	return n, nil
}

func readSegments(nc config.NetworkConf) ([]road.Segment, error) {
	switch nc.Source {
	case config.SourceCSV, "":
		return road.LoadCSV(nc.Path)
	case config.SourceSQLite:
		return road.LoadSQLite(nc.Path, nc.Table)
	default:
		return nil, fmt.Errorf("unknown network source %q", nc.Source)
	}
}
