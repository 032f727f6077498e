package graph

import "math"

// Signal is the periodic green/red timing attached to a road segment.
// A traveller may enter the segment only while the signal is green.
type Signal struct {
	Green  float64 `json:"green"`
	Red    float64 `json:"red"`
	Offset float64 `json:"offset"`
}

// Cycle returns the period after which the signal repeats.
func (s Signal) Cycle() float64 {
	return s.Green + s.Red
}

// Phase returns the position within the cycle at clock time t, in [0, Cycle).
// Negative offsets wrap around like any other.
func (s Signal) Phase(t float64) float64 {
	cycle := s.Cycle()
	p := math.Mod(t+s.Offset, cycle)
	if p < 0 {
		p += cycle
	}
	return p
}

// Wait returns how long a traveller arriving at clock time t must wait
// before the signal turns green. It is zero during the green phase.
func (s Signal) Wait(t float64) float64 {
	p := s.Phase(t)
	if p < s.Green {
		return 0
	}
	return s.Cycle() - p
}
