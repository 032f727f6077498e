// Command fastest loads a road table and prints the fastest route between
// two intersections with its per-hop signal timing.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/gyaneshwarpardhi/greenwave/internal/config"
	"github.com/gyaneshwarpardhi/greenwave/internal/graph"
	"github.com/gyaneshwarpardhi/greenwave/internal/report"
	"github.com/gyaneshwarpardhi/greenwave/internal/route"
)

func main() {
	roads := flag.String("roads", "road.csv", "Path to the road table (CSV file or SQLite database)")
	source := flag.String("source", config.SourceCSV, "Road table format: csv or sqlite")
	table := flag.String("table", "roads", "Table name when -source=sqlite")
	from := flag.String("from", "A", "Start intersection")
	to := flag.String("to", "F", "Destination intersection")
	speed := flag.Float64("speed", route.DefaultSpeed, "Travel speed in distance units per second")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := &config.ServiceConfig{
		Network: config.NetworkConf{Source: *source, Path: *roads, Table: *table},
	}
	network, err := graph.Load(cfg)
	if err != nil {
		slog.Error("failed to build network", "err", err)
		os.Exit(1)
	}
	slog.Debug("network built", "nodes", network.NodeCount(), "segments", network.SegmentCount())

	res, err := route.FindFastest(context.Background(), network, *from, *to, route.WithSpeed(*speed))
	if err != nil {
		slog.Error("route search failed", "err", err)
		os.Exit(1)
	}
	if err := report.Write(os.Stdout, res); err != nil {
		slog.Error("failed to write report", "err", err)
		os.Exit(1)
	}
	if !res.Reachable() {
		os.Exit(2)
	}
}
