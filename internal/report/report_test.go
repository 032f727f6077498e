package report_test

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/greenwave/internal/graph"
	"github.com/gyaneshwarpardhi/greenwave/internal/report"
	"github.com/gyaneshwarpardhi/greenwave/internal/road"
	"github.com/gyaneshwarpardhi/greenwave/internal/route"
)

func TestWrite_Reachable(t *testing.T) {
	res := &route.Result{
		Start:     "A",
		End:       "C",
		TotalTime: 15,
		Path:      []string{"A", "B", "C"},
		Steps: []route.Step{
			{From: "A", To: "B", Wait: 0, Travel: 10, Arrival: 10},
			{From: "B", To: "C", Wait: 0, Travel: 5, Arrival: 15},
		},
	}
	var b strings.Builder
	require.NoError(t, report.Write(&b, res))

	want := "Path trace with timing:\n" +
		"→ A to B: wait 0.00s, travel 10.00s → arrived at 10.00s\n" +
		"→ B to C: wait 0.00s, travel 5.00s → arrived at 15.00s\n" +
		"\n" +
		"Fastest time from A to C: 15.00 seconds\n" +
		"Path: A → B → C\n"
	assert.Equal(t, want, b.String())
}

func TestWrite_Unreachable(t *testing.T) {
	res := &route.Result{Start: "A", End: "Z", TotalTime: math.Inf(1)}
	var b strings.Builder
	require.NoError(t, report.Write(&b, res))
	assert.Equal(t, "No route from A to Z\n", b.String())
}

func TestWrite_SameNode(t *testing.T) {
	res := &route.Result{Start: "A", End: "A", Path: []string{"A"}}
	var b strings.Builder
	require.NoError(t, report.Write(&b, res))
	assert.Equal(t, "Fastest time from A to A: 0.00 seconds\nPath: A\n", b.String())
}

func TestStepLine(t *testing.T) {
	line := report.StepLine(route.Step{From: "B", To: "C", Wait: 2.5, Travel: 1.25, Arrival: 13.75})
	assert.Equal(t, "→ B to C: wait 2.50s, travel 1.25s → arrived at 13.75s", line)
}

func ExampleWrite() {
	g, err := graph.Build([]road.Segment{
		{From: "A", To: "B", Green: 5, Red: 5, Offset: 5, Distance: 3},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := route.FindFastest(context.Background(), g, "A", "B", route.WithSpeed(3))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = report.Write(os.Stdout, res)
	// Output:
	// Path trace with timing:
	// → A to B: wait 5.00s, travel 1.00s → arrived at 6.00s
	//
	// Fastest time from A to B: 6.00 seconds
	// Path: A → B
}
