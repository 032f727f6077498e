package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/greenwave/internal/config"
)

func validConfig() *config.ServiceConfig {
	return &config.ServiceConfig{
		Version:  "v1",
		LogLevel: "info",
		Routing:  config.RoutingConf{Speed: 3},
		Network:  config.NetworkConf{Source: config.SourceCSV, Path: "road.csv"},
		Engine:   config.EngineConf{Workers: 2, QueueDepth: 10, QueryTimeoutMs: 100},
		Cache:    config.CacheConf{Size: 10, TTLSeconds: 60},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, config.Validate(validConfig()))

	cfg := validConfig()
	cfg.Network = config.NetworkConf{Source: config.SourceSQLite, Path: "roads.db", Table: "roads"}
	require.NoError(t, config.Validate(cfg))
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.ServiceConfig)
		want   string
	}{
		{"missing version", func(c *config.ServiceConfig) { c.Version = "" }, "version: is required"},
		{"bad log level", func(c *config.ServiceConfig) { c.LogLevel = "loud" }, "log_level: must be one of"},
		{"zero speed", func(c *config.ServiceConfig) { c.Routing.Speed = 0 }, "routing.speed: must be greater than 0"},
		{"negative cap", func(c *config.ServiceConfig) { c.Routing.MaxArrival = -1 }, "routing.max_arrival: must be at least 0"},
		{"unknown source", func(c *config.ServiceConfig) { c.Network.Source = "xml" }, "network.source: must be one of [csv sqlite]"},
		{"missing path", func(c *config.ServiceConfig) { c.Network.Path = "" }, "network.path: is required"},
		{"sqlite without table", func(c *config.ServiceConfig) { c.Network.Source = config.SourceSQLite }, "network.table: required"},
		{"no workers", func(c *config.ServiceConfig) { c.Engine.Workers = 0 }, "engine.workers: must be greater than 0"},
		{"negative cache", func(c *config.ServiceConfig) { c.Cache.Size = -1 }, "cache.size: must be at least 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := config.Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Version = ""
	cfg.Routing.Speed = -2
	cfg.Engine.QueueDepth = 0

	err := config.Validate(cfg)
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 3)
	assert.Contains(t, err.Error(), "version")
	assert.Contains(t, err.Error(), "routing.speed")
	assert.Contains(t, err.Error(), "engine.queue_depth")
}

func TestValidate_Nil(t *testing.T) {
	require.Error(t, config.Validate(nil))
}
