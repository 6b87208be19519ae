package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvParseLimit      = "RATE_LIMIT_PARSE_LIMIT"
	EnvRenderLimit     = "RATE_LIMIT_RENDER_LIMIT"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// EndpointConfig is the limit for one path and method.
// A Path ending in "/" matches every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration // refill period for Limit tokens
	Burst  int           // bucket capacity, Limit when 0
}

func (e EndpointConfig) capacity() int {
	if e.Burst > 0 {
		return e.Burst
	}
	return e.Limit
}

// key groups requests sharing a bucket. Prefix rules share one bucket for all paths below them.
func (e EndpointConfig) key(path string) string {
	if e.Path != "" {
		return e.Path
	}
	return path
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the limits used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(60, 30),
	}
}

// DefaultEndpointConfigs returns per-endpoint limits. Document parsing and rendering are the
// expensive operations; everything else falls back to the default limit.
func DefaultEndpointConfigs(parsePerMinute, renderPerMinute int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/parse", Method: "POST", Limit: parsePerMinute, Window: time.Minute, Burst: max(parsePerMinute/6, 1)},
		{Path: "/parse/text", Method: "POST", Limit: parsePerMinute * 2, Window: time.Minute},
		{Path: "/render", Method: "POST", Limit: renderPerMinute, Window: time.Minute, Burst: max(renderPerMinute/6, 1)},
		{Path: "/resumes/export.xlsx", Method: "GET", Limit: 10, Window: time.Minute, Burst: 2},
		{Path: "/resumes/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// LoadConfig builds a Config from environment variables found by lookup, starting from DefaultConfig.
// Malformed values are ignored.
func LoadConfig(lookup func(string) (string, bool)) *Config {
	env := envReader{lookup: lookup}
	cfg := DefaultConfig()

	cfg.Enabled = env.bool(EnvEnabled, cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	cfg.DefaultLimit = env.int(EnvDefaultLimit, cfg.DefaultLimit)
	cfg.DefaultWindow = env.duration(EnvDefaultWindow, cfg.DefaultWindow)
	cfg.CleanupInterval = env.duration(EnvCleanupInterval, cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(env.string(EnvWhitelist))
	cfg.Blacklist = parseIPList(env.string(EnvBlacklist))
	cfg.EndpointConfigs = DefaultEndpointConfigs(env.int(EnvParseLimit, 60), env.int(EnvRenderLimit, 30))
	return &cfg
}

// LoadConfigFromEnv reads the process environment
func LoadConfigFromEnv() *Config {
	return LoadConfig(os.LookupEnv)
}

type envReader struct {
	lookup func(string) (string, bool)
}

func (r envReader) string(key string) string {
	if r.lookup == nil {
		return ""
	}
	v, _ := r.lookup(key)
	return strings.TrimSpace(v)
}

func (r envReader) int(key string, fallback int) int {
	if n, err := strconv.Atoi(r.string(key)); err == nil && n >= 0 {
		return n
	}
	return fallback
}

func (r envReader) bool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(r.string(key)); err == nil {
		return b
	}
	return fallback
}

func (r envReader) duration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(r.string(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

// parseIPList parses a comma-separated list of client addresses into a set
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
