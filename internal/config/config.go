package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application level configuration. Values come from an optional
// YAML file, environment variables, and flags, in increasing precedence.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	LoyaltyAPIAddress string
	SessionSecret     string
	SessionTTL        time.Duration
	ResendCooldown    int
	VerifyDebounce    time.Duration
	SweepInterval     time.Duration
	SweepBatch        int
	WorkerPoolSize    int
	AttemptMaxAge     time.Duration
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultSessionSecret   = "change-me-in-production"
	defaultSessionTTL      = 24 * time.Hour
	defaultResendCooldown  = 60
	defaultVerifyDebounce  = 100 * time.Millisecond
	defaultSweepInterval   = time.Minute
	defaultSweepBatch      = 32
	defaultWorkerPoolSize  = 4
	defaultAttemptMaxAge   = 10 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

// fileConfig mirrors Config for the optional YAML file. Durations are strings
// in time.ParseDuration syntax.
type fileConfig struct {
	RunAddress        string `yaml:"run_address"`
	DatabaseURI       string `yaml:"database_uri"`
	LoyaltyAPIAddress string `yaml:"loyalty_api_address"`
	SessionSecret     string `yaml:"session_secret"`
	SessionTTL        string `yaml:"session_ttl"`
	ResendCooldown    int    `yaml:"resend_cooldown"`
	VerifyDebounce    string `yaml:"verify_debounce"`
	SweepInterval     string `yaml:"sweep_interval"`
	SweepBatch        int    `yaml:"sweep_batch"`
	WorkerPoolSize    int    `yaml:"worker_pool"`
	AttemptMaxAge     string `yaml:"attempt_max_age"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
}

// Load parses configuration from the optional file, environment, and flags.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	base, err := loadFile(configPath(args, lookup))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", pick(base.RunAddress, defaultRunAddress)),
		DatabaseURI:       getString(lookup, "DATABASE_URI", base.DatabaseURI),
		LoyaltyAPIAddress: getString(lookup, "LOYALTY_API_ADDRESS", base.LoyaltyAPIAddress),
		SessionSecret:     getString(lookup, "SESSION_SECRET", pick(base.SessionSecret, defaultSessionSecret)),
		SessionTTL:        getDuration(lookup, "SESSION_TTL", fileDuration(base.SessionTTL, defaultSessionTTL)),
		ResendCooldown:    getInt(lookup, "RESEND_COOLDOWN", pickInt(base.ResendCooldown, defaultResendCooldown)),
		VerifyDebounce:    getDuration(lookup, "VERIFY_DEBOUNCE", fileDuration(base.VerifyDebounce, defaultVerifyDebounce)),
		SweepInterval:     getDuration(lookup, "SWEEP_INTERVAL", fileDuration(base.SweepInterval, defaultSweepInterval)),
		SweepBatch:        getInt(lookup, "SWEEP_BATCH_SIZE", pickInt(base.SweepBatch, defaultSweepBatch)),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", pickInt(base.WorkerPoolSize, defaultWorkerPoolSize)),
		AttemptMaxAge:     getDuration(lookup, "ATTEMPT_MAX_AGE", fileDuration(base.AttemptMaxAge, defaultAttemptMaxAge)),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", fileDuration(base.ShutdownTimeout, defaultShutdownTimeout)),
	}

	fs := flag.NewFlagSet("rewardsgate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFile         string
		sessionTTLStr      = cfg.SessionTTL.String()
		verifyDebounceStr  = cfg.VerifyDebounce.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		attemptMaxAgeStr   = cfg.AttemptMaxAge.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&configFile, "config", "", "Path to YAML configuration file")
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.LoyaltyAPIAddress, "r", cfg.LoyaltyAPIAddress, "Loyalty API base URL")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session lifetime")
	fs.IntVar(&cfg.ResendCooldown, "resend-cooldown", cfg.ResendCooldown, "OTP resend cooldown in seconds")
	fs.StringVar(&verifyDebounceStr, "verify-debounce", verifyDebounceStr, "Delay before code auto-verification")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between session sweeps")
	fs.IntVar(&cfg.SweepBatch, "sweep-batch", cfg.SweepBatch, "Maximum sessions per sweep batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.StringVar(&attemptMaxAgeStr, "attempt-max-age", attemptMaxAgeStr, "Age after which login attempts are discarded")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}
	if cfg.VerifyDebounce, err = time.ParseDuration(verifyDebounceStr); err != nil {
		return nil, fmt.Errorf("invalid verify debounce: %w", err)
	}
	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}
	if cfg.AttemptMaxAge, err = time.ParseDuration(attemptMaxAgeStr); err != nil {
		return nil, fmt.Errorf("invalid attempt max age: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.ResendCooldown <= 0 {
		cfg.ResendCooldown = defaultResendCooldown
	}
	if cfg.VerifyDebounce <= 0 {
		cfg.VerifyDebounce = defaultVerifyDebounce
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	if cfg.SweepBatch <= 0 {
		cfg.SweepBatch = defaultSweepBatch
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.AttemptMaxAge <= 0 {
		cfg.AttemptMaxAge = defaultAttemptMaxAge
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}
	if cfg.LoyaltyAPIAddress == "" {
		return nil, fmt.Errorf("loyalty API address must be provided")
	}

	return cfg, nil
}

// configPath finds the YAML file path before flag parsing so the file can be
// applied below environment and flag overrides.
func configPath(args []string, lookup envLookup) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-config" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-config="):
			return strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	if path, ok := lookup("CONFIG"); ok {
		return path
	}
	return ""
}

func loadFile(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func pick(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func pickInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func fileDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
