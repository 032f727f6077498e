package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/greenwave/internal/config"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestNewLoader_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greenwave.yaml")
	writeFile(t, path, "version: v1\nnetwork:\n  path: road.csv\n")

	l, err := config.NewLoader(path)
	require.NoError(t, err)
	cfg := l.Config()

	assert.Equal(t, "v1", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3.0, cfg.Routing.Speed)
	assert.Equal(t, config.SourceCSV, cfg.Network.Source)
	assert.Equal(t, filepath.Join(dir, "road.csv"), cfg.Network.Path)
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.Equal(t, 1000, cfg.Engine.QueueDepth)
	assert.Equal(t, 5000, cfg.Engine.QueryTimeoutMs)
	assert.Equal(t, 0, cfg.Cache.Size)
	require.NoError(t, config.Validate(cfg))
}

func TestNewLoader_AbsoluteNetworkPath(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere.db")
	path := filepath.Join(dir, "greenwave.yaml")
	writeFile(t, path, "version: v1\nnetwork:\n  source: sqlite\n  table: roads\n  path: "+abs+"\n")

	l, err := config.NewLoader(path)
	require.NoError(t, err)
	assert.Equal(t, abs, l.Config().Network.Path)
}

func TestNewLoader_Errors(t *testing.T) {
	_, err := config.NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "version: [unclosed\n")
	_, err = config.NewLoader(path)
	require.Error(t, err)
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greenwave.yaml")
	writeFile(t, path, "version: v1\nnetwork:\n  path: road.csv\n")

	l, err := config.NewLoader(path)
	require.NoError(t, err)

	called := false
	l.OnChange(func(*config.ServiceConfig) { called = true })

	writeFile(t, path, "version: v2\nrouting:\n  speed: 5\nnetwork:\n  path: road.csv\n")
	cfg, err := l.Reload()
	require.NoError(t, err)
	assert.Equal(t, "v2", cfg.Version)
	assert.Equal(t, 5.0, cfg.Routing.Speed)
	assert.Same(t, cfg, l.Config())
	assert.False(t, called, "Reload leaves applying the config to the caller")
}

func TestReload_InvalidKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greenwave.yaml")
	writeFile(t, path, "version: v1\nnetwork:\n  path: road.csv\n")

	l, err := config.NewLoader(path)
	require.NoError(t, err)
	before := l.Config()

	writeFile(t, path, "version: v2\nrouting:\n  speed: -5\nnetwork:\n  path: road.csv\n")
	cfg, err := l.Reload()
	require.Error(t, err)
	assert.Nil(t, cfg)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "routing.speed")

	assert.Same(t, before, l.Config())
	assert.Equal(t, "v1", l.Config().Version)
	assert.Equal(t, 3.0, l.Config().Routing.Speed)
}

func TestWatch_NetworkFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greenwave.yaml")
	roads := filepath.Join(dir, "road.csv")
	writeFile(t, path, "version: v1\nnetwork:\n  path: road.csv\n")
	writeFile(t, roads, "From,To,Green_Time,Red_Time,Start_Time,Distant\n")

	l, err := config.NewLoader(path)
	require.NoError(t, err)

	changes := make(chan *config.ServiceConfig, 16)
	l.OnChange(func(c *config.ServiceConfig) { changes <- c })

	stop, err := l.Watch()
	require.NoError(t, err)
	defer stop()

	writeFile(t, roads, "From,To,Green_Time,Red_Time,Start_Time,Distant\nA,B,1,1,0,1\n")

	select {
	case c := <-changes:
		assert.Equal(t, roads, c.Network.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after network file change")
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", config.ParseLevel("debug").String())
	assert.Equal(t, "WARN", config.ParseLevel("warn").String())
	assert.Equal(t, "INFO", config.ParseLevel("bogus").String())
}
