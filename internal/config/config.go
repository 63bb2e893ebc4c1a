// Package config holds the evbridge configuration.
//
// Configuration is built from three layers, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. The TOML file given to Load
//  3. EVBRIDGE_ environment variables
//
// Example file:
//
//	[target]
//	canvas = "#canvas"
//	thread = 2
//	events = ["mouse", "wheel", "keyboard"]
//
//	[bridge]
//	listen = ":8080"
//
//	[log]
//	debug = true
package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/evbridge/internal/config/loader"
	"github.com/dshills/evbridge/internal/html5"
	"github.com/dshills/evbridge/internal/window"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "EVBRIDGE_"

// Config is the complete configuration.
type Config struct {
	Target TargetConfig `toml:"target"`
	Bridge BridgeConfig `toml:"bridge"`
	Log    LogConfig    `toml:"log"`
}

// TargetConfig configures the listeners.
type TargetConfig struct {
	// Canvas is the selector of the element receiving mouse input.
	Canvas string `toml:"canvas"`

	// Thread is the token callbacks are delivered on. 2 is the calling
	// thread; other values get a dedicated delivery thread.
	Thread int `toml:"thread"`

	// Events lists the enabled listener groups.
	Events []string `toml:"events"`

	// QueueSize is the queue length of each delivery thread.
	QueueSize int `toml:"queueSize"`
}

// BridgeConfig configures the WebSocket source.
type BridgeConfig struct {
	// Listen is the address to serve on. Empty uses the terminal instead.
	Listen string `toml:"listen"`

	// ReadLimit is the maximum frame size in bytes.
	ReadLimit int64 `toml:"readLimit"`
}

// LogConfig configures logging.
type LogConfig struct {
	Debug  bool   `toml:"debug"`
	Prefix string `toml:"prefix"`
}

// Default returns the built-in configuration.
func Default() *Config {
	events := make([]string, len(window.AllGroups))
	for i, g := range window.AllGroups {
		events[i] = string(g)
	}
	return &Config{
		Target: TargetConfig{
			Canvas:    "#canvas",
			Thread:    int(html5.CallingThread),
			Events:    events,
			QueueSize: 1024,
		},
		Bridge: BridgeConfig{
			ReadLimit: 64 << 10,
		},
		Log: LogConfig{
			Prefix: "evbridge",
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Target.Canvas == "" {
		return ErrInvalidCanvas
	}
	if c.Target.Thread <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThread, c.Target.Thread)
	}
	if _, err := window.ParseGroups(c.Target.Events); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvents, err)
	}
	if c.Target.QueueSize < 0 {
		return fmt.Errorf("%w: queueSize %d", ErrInvalidValue, c.Target.QueueSize)
	}
	if c.Bridge.ReadLimit < 0 {
		return fmt.Errorf("%w: readLimit %d", ErrInvalidValue, c.Bridge.ReadLimit)
	}
	return nil
}

// Canvas returns the canvas selector.
func (c *Config) Canvas() html5.Selector {
	return html5.Selector(c.Target.Canvas)
}

// Thread returns the delivery thread token.
func (c *Config) Thread() html5.Thread {
	return html5.Thread(c.Target.Thread)
}

// Groups returns the enabled listener groups.
func (c *Config) Groups() []window.Group {
	groups, err := window.ParseGroups(c.Target.Events)
	if err != nil {
		return nil
	}
	return groups
}

// Load builds the configuration from defaults, the TOML file at path and
// the environment, then validates it. A missing file is not an error.
func Load(path string) (*Config, error) {
	return LoadFrom(loader.NewTOMLLoader(path), loader.NewEnvLoader(EnvPrefix))
}

// LoadFrom builds the configuration from defaults and sources, later
// sources winning, then validates it.
func LoadFrom(sources ...loader.Loader) (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}
	normalize(merged)

	data, err := toml.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func toMap(c *Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// normalize accepts a single group name where a list is expected.
func normalize(m map[string]any) {
	target, ok := m["target"].(map[string]any)
	if !ok {
		return
	}
	if s, ok := target["events"].(string); ok {
		target["events"] = []any{s}
	}
}
