package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all tunables for a run. Flags override the environment;
// the environment overrides the built-in defaults.
type Config struct {
	// Probing
	Timeout     time.Duration
	Concurrency int
	HeadFirst   bool
	UserAgent   string
	SkipProbe   bool

	// Politeness toward remote hosts
	Rate        int
	PerHostRate int

	// Duplicate detection
	TitleSimilarity float64

	// Reports
	OutDir string

	// Progress logging
	ProgressEvery int

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from BMORGANIZE_* environment variables.
func Load() Config {
	cfg := Config{
		Timeout:     envDuration("BMORGANIZE_TIMEOUT", 10*time.Second),
		Concurrency: envInt("BMORGANIZE_CONCURRENCY", 20),
		HeadFirst:   envBool("BMORGANIZE_HEAD_FIRST", true),
		UserAgent:   envOr("BMORGANIZE_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 bmorganize/0.1"),

		Rate:        envInt("BMORGANIZE_RATE", 20),
		PerHostRate: envInt("BMORGANIZE_PER_HOST_RATE", 4),

		TitleSimilarity: envFloat("BMORGANIZE_TITLE_SIMILARITY", 0.85),

		OutDir: envOr("BMORGANIZE_OUT_DIR", "."),

		ProgressEvery: envInt("BMORGANIZE_PROGRESS_EVERY", 10),

		LogFile:  os.Getenv("BMORGANIZE_LOG_FILE"),
		LogLevel: ParseLogLevel(envOr("BMORGANIZE_LOG_LEVEL", "INFO")),
	}

	return cfg.Clamped()
}

// Clamped returns the config with out-of-range values reset to defaults.
func (c Config) Clamped() Config {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 20
	}
	if c.Rate <= 0 {
		c.Rate = 20
	}
	if c.PerHostRate <= 0 {
		c.PerHostRate = 4
	}
	if c.TitleSimilarity <= 0 || c.TitleSimilarity > 1 {
		c.TitleSimilarity = 0.85
	}
	if c.OutDir == "" {
		c.OutDir = "."
	}
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = 10
	}
	return c
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// ParseLogLevel maps a level name to its slog value, defaulting to INFO.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
