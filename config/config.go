package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"punter/meta"
	"punter/searcher"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PUNTER_STRATEGY.
const EnvPrefix = "PUNTER_"

// Config is the punter configuration. Values are read from an optional YAML file, then from the
// environment (a .env file fills in unset variables), then from command line flags.
type Config struct {
	Name        string        `yaml:"name"`
	Strategy    string        `yaml:"strategy"`
	Budget      time.Duration `yaml:"budget"`
	Seed        uint64        `yaml:"seed"`
	Chokepoints bool          `yaml:"chokepoints"`
	Metrics     bool          `yaml:"metrics"`
	Debug       bool          `yaml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        meta.DefaultName,
		Strategy:    "lightning",
		Budget:      meta.TurnBudget,
		Chokepoints: true,
	}
}

// Load reads the YAML file at path, if any, and applies environment overrides. A missing file or
// .env yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvPrefix + "NAME"); v != "" {
		c.Name = v
	}
	if v := os.Getenv(EnvPrefix + "STRATEGY"); v != "" {
		c.Strategy = v
	}
	if v := os.Getenv(EnvPrefix + "BUDGET"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sBUDGET: %w", EnvPrefix, err)
		}
		c.Budget = d
	}
	if v := os.Getenv(EnvPrefix + "SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Seed = seed
	}
	for name, field := range map[string]*bool{
		"CHOKEPOINTS": &c.Chokepoints,
		"METRICS":     &c.Metrics,
		"DEBUG":       &c.Debug,
	} {
		v := os.Getenv(EnvPrefix + name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*field = b
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DeciderOptions translates the configuration for searcher.NewDecider.
func (c *Config) DeciderOptions() ([]searcher.Option, error) {
	strategy, err := searcher.Lookup(c.Strategy, c.Seed)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{
		searcher.WithStrategy(strategy),
		searcher.WithBudget(c.Budget),
		searcher.WithChokepoints(c.Chokepoints),
	}
	if c.Metrics {
		options = append(options, searcher.WithMetrics())
	}
	return options, nil
}
