package route

import (
	"errors"
	"math"
)

// Sentinel errors returned by FindFastest.
var (
	// ErrNilGraph indicates that a nil *graph.Network was passed.
	ErrNilGraph = errors.New("route: network is nil")

	// ErrEmptyNode indicates an empty start or end node id.
	ErrEmptyNode = errors.New("route: start and end node ids are required")

	// ErrBadSpeed indicates a speed that is not a positive finite number.
	ErrBadSpeed = errors.New("route: speed must be positive and finite")

	// ErrBadMaxArrival indicates a negative or NaN arrival cap.
	ErrBadMaxArrival = errors.New("route: max arrival must be non-negative")
)

// DefaultSpeed is the travel speed used when no WithSpeed option is given,
// in distance units per second.
const DefaultSpeed = 3.0

// Options configures one search.
type Options struct {
	Speed      float64 // distance units per second, shared by every edge; must be > 0
	MaxArrival float64 // states arriving later are not explored; +Inf means no cap
}

// Option represents a functional option for FindFastest.
type Option func(*Options)

// WithSpeed sets the travel speed.
func WithSpeed(speed float64) Option {
	return func(o *Options) {
		o.Speed = speed
	}
}

// WithMaxArrival caps the arrival time explored by the search.
func WithMaxArrival(t float64) Option {
	return func(o *Options) {
		o.MaxArrival = t
	}
}

// DefaultOptions returns DefaultSpeed and no arrival cap.
func DefaultOptions() Options {
	return Options{
		Speed:      DefaultSpeed,
		MaxArrival: math.Inf(1),
	}
}

func (o Options) validate() error {
	if !(o.Speed > 0) || math.IsInf(o.Speed, 1) {
		return ErrBadSpeed
	}
	if !(o.MaxArrival >= 0) {
		return ErrBadMaxArrival
	}
	return nil
}

// Step is one hop of a realized route.
type Step struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Wait    float64 `json:"wait"`    // seconds spent at the signal before entering the segment
	Travel  float64 `json:"travel"`  // seconds spent on the segment
	Arrival float64 `json:"arrival"` // clock time on reaching To
}

// Result is the outcome of one query.
// An unreachable destination has TotalTime = +Inf and no Path or Steps.
type Result struct {
	Start     string
	End       string
	TotalTime float64
	Path      []string
	Steps     []Step
}

// Reachable reports whether a route to End was found.
// Callers must check it before using Path.
func (r *Result) Reachable() bool {
	return !math.IsInf(r.TotalTime, 1)
}

func unreachable(start, end string) *Result {
	return &Result{Start: start, End: end, TotalTime: math.Inf(1)}
}
