// Package config loads the GeoGebra MCP server's configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the GeoGebra MCP server.
// Precedence: environment variables > config file > defaults.
type Config struct {
	Pool      PoolConfig      `toml:"pool"`
	Server    ServerConfig    `toml:"server"`
	Transport TransportConfig `toml:"transport"`
	Log       LogConfig       `toml:"log"`
	Encoder   EncoderConfig   `toml:"encoder"`
	Export    ExportConfig    `toml:"export"`
}

// Millis is a duration expressed in milliseconds in the TOML file and
// environment (matching spec.md §6.5's INSTANCE_TIMEOUT/MAX_IDLE_TIME
// convention), convertible to a time.Duration for use in code.
type Millis int64

// Duration returns the equivalent time.Duration.
func (m Millis) Duration() time.Duration { return time.Duration(m) * time.Millisecond }

// PoolConfig bounds the Instance Pool (C5).
type PoolConfig struct {
	MaxInstances  int    `toml:"max_instances"`
	InstanceTTL   Millis `toml:"instance_timeout_ms"`
	MaxIdleTime   Millis `toml:"max_idle_time_ms"`
	WarmUpCount   int    `toml:"warm_up_count"`
	ReadyTimeout  Millis `toml:"ready_timeout_ms"`
	SweepInterval Millis `toml:"sweep_interval_ms"`
	CanvasWidth   int    `toml:"canvas_width"`
	CanvasHeight  int    `toml:"canvas_height"`
	AppName       string `toml:"app_name"` // classic, graphing, geometry, 3d, suite
}

// ServerConfig holds MCP server metadata.
type ServerConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// TransportConfig holds transport-related settings.
type TransportConfig struct {
	// Mode selects the transport: "stdio" (default) or "http".
	Mode string `toml:"mode"`
	// Port is the HTTP listen port (default: 21453). Only used when Mode is "http".
	Port string `toml:"port"`
	// Host is the HTTP listen address (default: "0.0.0.0"). Only used when Mode is "http".
	Host string `toml:"host"`
	// CORSOrigins is a comma-separated list of allowed CORS origins (default: "*").
	CORSOrigins string `toml:"cors_origins"`
	// MetricsEnabled exposes the Prometheus collectors from the Performance
	// Monitor (C2/C12) on the health mux.
	MetricsEnabled bool `toml:"metrics_enabled"`
	// APIKey, if set, requires every HTTP request to present it as a Bearer
	// token. Empty means no auth (suitable for a trusted local deployment).
	APIKey string `toml:"api_key"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// EncoderConfig configures the Animation Encoder (C7).
type EncoderConfig struct {
	FFmpegPath string `toml:"ffmpeg_path"`
}

// ExportConfig configures where on-disk exports are written (owned by the
// external download surface; the core only needs to know the directory).
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// Load creates a Config by reading from a TOML config file and environment
// variables. Precedence: environment variables > config file > defaults.
//
// Config file search order (first found wins):
//  1. Path passed via configPath parameter (main passes GEOGEBRA_MCP_CONFIG)
//  2. GEOGEBRA_MCP_CONFIG environment variable
//  3. ./geogebra-mcp.toml (current directory)
//  4. ~/.config/geogebra-mcp/geogebra-mcp.toml (XDG-style)
//
// All fields are optional in the config file. Environment variables always
// override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Pool: PoolConfig{
			MaxInstances:  10,
			InstanceTTL:   Millis(30 * time.Minute / time.Millisecond),
			MaxIdleTime:   Millis(10 * time.Minute / time.Millisecond),
			WarmUpCount:   0,
			ReadyTimeout:  Millis(15 * time.Second / time.Millisecond),
			SweepInterval: Millis(60 * time.Second / time.Millisecond),
			CanvasWidth:   800,
			CanvasHeight:  600,
			AppName:       "classic",
		},
		Server: ServerConfig{
			Name:    "geogebra-mcp",
			Version: "0.1.0",
		},
		Transport: TransportConfig{
			Mode:           "stdio",
			Port:           "21453",
			Host:           "0.0.0.0",
			CORSOrigins:    "*",
			MetricsEnabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Encoder: EncoderConfig{
			FFmpegPath: "ffmpeg",
		},
		Export: ExportConfig{
			Dir: "./exports",
		},
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile finds and parses the TOML config file. If no file is found,
// this is a no-op (config file is optional).
func (c *Config) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil // no config file found; rely on defaults + env
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return nil
}

// resolveConfigPath determines which config file to use. Returns empty
// string if no config file is found (config file is optional).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit // caller wants this file; let DecodeFile report if missing
	}

	if p := os.Getenv("GEOGEBRA_MCP_CONFIG"); p != "" {
		return p
	}

	if _, err := os.Stat("geogebra-mcp.toml"); err == nil {
		return "geogebra-mcp.toml"
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/geogebra-mcp/geogebra-mcp.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnv overlays environment variables on top of existing config values.
// An env var only takes effect if it is non-empty (or, for durations/ints,
// parses cleanly).
func (c *Config) applyEnv() {
	envOverrideInt("MAX_INSTANCES", &c.Pool.MaxInstances)
	envOverrideMillis("INSTANCE_TIMEOUT", &c.Pool.InstanceTTL)
	envOverrideMillis("MAX_IDLE_TIME", &c.Pool.MaxIdleTime)
	envOverride("EXPORT_DIR", &c.Export.Dir)

	envOverride("TRANSPORT_MODE", &c.Transport.Mode)
	envOverride("TRANSPORT_PORT", &c.Transport.Port)
	envOverride("TRANSPORT_HOST", &c.Transport.Host)
	envOverride("TRANSPORT_CORS_ORIGINS", &c.Transport.CORSOrigins)
	envOverride("GEOGEBRA_MCP_API_KEY", &c.Transport.APIKey)

	envOverride("LOG_LEVEL", &c.Log.Level)
	envOverride("FFMPEG_PATH", &c.Encoder.FFmpegPath)
}

// Validate checks that required fields are present and consistent.
func (c *Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode: %q (must be \"stdio\" or \"http\")", c.Transport.Mode)
	}
	if c.Pool.MaxInstances <= 0 {
		return fmt.Errorf("pool.max_instances must be positive, got %d", c.Pool.MaxInstances)
	}
	return nil
}

// envOverride sets *dst to the value of the named env var, if it is non-empty.
func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

// envOverrideMillis reads an env var expressed in milliseconds (per
// spec.md §6.5, e.g. INSTANCE_TIMEOUT=1800000) into a Millis.
func envOverrideMillis(key string, dst *Millis) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
		*dst = Millis(ms)
	}
}
