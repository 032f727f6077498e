// Package report renders route results as the human-readable timing trace.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gyaneshwarpardhi/greenwave/internal/route"
)

// PathSeparator joins node ids in the summary line.
const PathSeparator = " → "

// StepLine formats one hop of a route.
func StepLine(s route.Step) string {
	return fmt.Sprintf("→ %s to %s: wait %.2fs, travel %.2fs → arrived at %.2fs",
		s.From, s.To, s.Wait, s.Travel, s.Arrival)
}

// Summary formats the total time and joined path, or the no-route line.
func Summary(res *route.Result) string {
	if !res.Reachable() {
		return fmt.Sprintf("No route from %s to %s", res.Start, res.End)
	}
	return fmt.Sprintf("Fastest time from %s to %s: %.2f seconds\nPath: %s",
		res.Start, res.End, res.TotalTime, strings.Join(res.Path, PathSeparator))
}

// Write prints the per-hop trace followed by the summary.
func Write(w io.Writer, res *route.Result) error {
	var b strings.Builder
	if res.Reachable() && len(res.Steps) > 0 {
		b.WriteString("Path trace with timing:\n")
		for _, s := range res.Steps {
			b.WriteString(StepLine(s))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString(Summary(res))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
