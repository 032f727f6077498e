package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader reads a YAML config file and watches it, and the road table it
// names, for changes.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *ServiceConfig
	onChange []func(*ServiceConfig)
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Path returns the config file path.
func (l *Loader) Path() string {
	return l.path
}

// Config returns the current (latest) configuration.
func (l *Loader) Config() *ServiceConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the watcher reloads the config.
func (l *Loader) OnChange(fn func(*ServiceConfig)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that reloads the config when either the
// config file or the network file changes, then runs the OnChange callbacks.
// Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", l.path, err)
	}
	network := l.Config().Network.Path
	if err := w.Add(network); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", network, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := l.loadValid()
				if err != nil {
					slog.Warn("config reload failed, keeping previous config", "file", ev.Name, "err", err)
					continue
				}
				if cfg.Network.Path != network {
					_ = w.Remove(network)
					if err := w.Add(cfg.Network.Path); err != nil {
						slog.Warn("network file not watched", "path", cfg.Network.Path, "err", err)
					}
					network = cfg.Network.Path
				}
				l.publish(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// Reload forces an immediate re-read of the config file. Unlike the watcher
// it does not run the OnChange callbacks; the caller applies the result.
// An invalid file leaves the current config in place.
func (l *Loader) Reload() (*ServiceConfig, error) {
	cfg, err := l.loadValid()
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.current = cfg
	l.mu.Unlock()
	return cfg, nil
}

func (l *Loader) publish(cfg *ServiceConfig) {
	l.mu.Lock()
	l.current = cfg
	callbacks := make([]func(*ServiceConfig), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(cfg)
	}
}

func (l *Loader) loadValid() (*ServiceConfig, error) {
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) load() (*ServiceConfig, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}
	var cfg ServiceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", l.path, err)
	}
	applyDefaults(&cfg)
	if cfg.Network.Path != "" && !filepath.IsAbs(cfg.Network.Path) {
		cfg.Network.Path = filepath.Join(filepath.Dir(l.path), cfg.Network.Path)
	}
	return &cfg, nil
}

func applyDefaults(cfg *ServiceConfig) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Routing.Speed == 0 {
		cfg.Routing.Speed = 3
	}
	if cfg.Network.Source == "" {
		cfg.Network.Source = SourceCSV
	}
	if cfg.Engine.Workers == 0 {
		cfg.Engine.Workers = 8
	}
	if cfg.Engine.QueueDepth == 0 {
		cfg.Engine.QueueDepth = 1000
	}
	if cfg.Engine.QueryTimeoutMs == 0 {
		cfg.Engine.QueryTimeoutMs = 5000
	}
}

// ParseLevel maps a log_level value to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
