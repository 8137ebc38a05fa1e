package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full courtbot configuration.
type Config struct {
	Strategy StrategyConfig `yaml:"strategy"`
	Risk     RiskConfig     `yaml:"risk"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// StrategyConfig controls the decision logic.
type StrategyConfig struct {
	EdgeThreshold float64 `yaml:"edge_threshold"` // min |edge| before quoting
	CooldownMs    int     `yaml:"cooldown_ms"`    // throttle between submissions
	UnwindSeconds float64 `yaml:"unwind_seconds"` // game clock below which positions are flattened
}

// RiskConfig holds the per-game risk limits.
type RiskConfig struct {
	MaxContracts float64 `yaml:"max_contracts"`
	MaxExposure  float64 `yaml:"max_exposure"`
	MinCapital   float64 `yaml:"min_capital"`
	Tick         float64 `yaml:"tick"`
	PriceFloor   float64 `yaml:"price_floor"`
	PriceCeil    float64 `yaml:"price_ceil"`
}

// StorageConfig controls where the trade journal is written.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, or ":memory:"
}

// LogConfig controls logging format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML config file and the .env file if present.
// Env values override the YAML for the keys they cover.
func Load(path string) (*Config, error) {
	// Load .env if present (silence the error when there is none)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration with every default applied, for
// runs without a config file.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Cooldown returns the submission cooldown as a time.Duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Strategy.CooldownMs) * time.Millisecond
}

// applyEnvOverrides overrides values from environment variables when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("JOURNAL_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults fills every required value with the deployed defaults.
func setDefaults(cfg *Config) {
	if cfg.Strategy.EdgeThreshold <= 0 {
		cfg.Strategy.EdgeThreshold = 0.05
	}
	if cfg.Strategy.CooldownMs <= 0 {
		cfg.Strategy.CooldownMs = 250
	}
	if cfg.Strategy.UnwindSeconds <= 0 {
		cfg.Strategy.UnwindSeconds = 30
	}
	if cfg.Risk.MaxContracts <= 0 {
		cfg.Risk.MaxContracts = 50
	}
	if cfg.Risk.MaxExposure <= 0 {
		cfg.Risk.MaxExposure = 5000
	}
	if cfg.Risk.MinCapital <= 0 {
		cfg.Risk.MinCapital = 20
	}
	if cfg.Risk.Tick <= 0 {
		cfg.Risk.Tick = 0.5
	}
	if cfg.Risk.PriceCeil <= 0 {
		cfg.Risk.PriceCeil = 100
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "courtbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
