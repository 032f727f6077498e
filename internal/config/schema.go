package config

// Network sources.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// ServiceConfig is the top-level YAML structure.
type ServiceConfig struct {
	Version  string      `yaml:"version" validate:"required"`
	LogLevel string      `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Routing  RoutingConf `yaml:"routing"`
	Network  NetworkConf `yaml:"network"`
	Engine   EngineConf  `yaml:"engine"`
	Cache    CacheConf   `yaml:"cache"`
}

// RoutingConf holds the parameters passed to every search.
type RoutingConf struct {
	Speed      float64 `yaml:"speed" validate:"gt=0"`       // distance units per second
	MaxArrival float64 `yaml:"max_arrival" validate:"gte=0"` // seconds, 0 = no cap
}

// NetworkConf names the road table the network is built from.
type NetworkConf struct {
	Source string `yaml:"source" validate:"oneof=csv sqlite"`
	Path   string `yaml:"path" validate:"required"` // relative paths resolve against the config file
	Table  string `yaml:"table"`                    // sqlite only
}

// EngineConf holds tunable concurrency settings.
type EngineConf struct {
	Workers        int `yaml:"workers" validate:"gt=0"`
	QueueDepth     int `yaml:"queue_depth" validate:"gt=0"`
	QueryTimeoutMs int `yaml:"query_timeout_ms" validate:"gt=0"`
}

// CacheConf sizes the route result cache. Size 0 disables it.
type CacheConf struct {
	Size       int `yaml:"size" validate:"gte=0"`
	TTLSeconds int `yaml:"ttl_seconds" validate:"gte=0"`
}
