package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "config/config.toml"

type ScreenConfig struct {
	Threshold        float64 `toml:"threshold"`
	Workers          int     `toml:"workers"`
	ParallelEnabled  bool    `toml:"parallel_enabled"`
	ParallelMinBatch int     `toml:"parallel_min_batch"`
	GoldenSample     int     `toml:"golden_sample"`
	NegationPrefix   string  `toml:"negation_prefix"`
	Clustering       string  `toml:"clustering"` // "components" or "lpa"
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI       string `toml:"uri"`
	User      string `toml:"user"`
	Password  string `toml:"password"`
	GroupID   string `toml:"group_id"`
	FromNodes bool   `toml:"from_nodes"` // Fact nodes instead of RELATES_TO edges
}

type SQLiteConfig struct {
	Path   string `toml:"path"`
	Table  string `toml:"table"`
	Column string `toml:"column"`
}

type SourceConfig struct {
	Kind  string `toml:"kind"` // "", "memgraph", "sqlite", "jsonl" or "file"
	Path  string `toml:"path"` // jsonl or plain file
	Limit int    `toml:"limit"`
}

type RepairPrompts struct {
	Statement string `toml:"statement"`
}

type ServerConfig struct {
	Port string `toml:"port"`
	Env  string `toml:"env"`
}

type Config struct {
	Screen   ScreenConfig   `toml:"screen"`
	LLM      LLMConfig      `toml:"llm"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Source   SourceConfig   `toml:"source"`
	Repair   RepairPrompts  `toml:"repair"`
	Server   ServerConfig   `toml:"server"`
}

func Default() *Config {
	return &Config{
		Screen: ScreenConfig{
			Threshold:        0.95,
			ParallelMinBatch: 512,
			GoldenSample:     2000,
			NegationPrefix:   "Nicht",
			Clustering:       "components",
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		SQLite: SQLiteConfig{
			Table:  "facts",
			Column: "statement",
		},
		Server: ServerConfig{
			Port: "8080",
			Env:  "development",
		},
	}
}

// Load reads a TOML file on top of Default, so keys missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads .env, then the file at path (or CONFIG_PATH, or
// DefaultPath). Only a missing DefaultPath falls back to Default; a named
// file that does not exist is an error. Environment overrides are applied
// last.
func LoadOrDefault(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	implicit := path == ""
	if implicit {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if implicit && errors.Is(err, os.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when set.
func (c *Config) ApplyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.Env, "APP_ENV")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.Memgraph.URI, "MEMGRAPH_URI")
	setString(&c.Memgraph.User, "MEMGRAPH_USER")
	setString(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	setString(&c.SQLite.Path, "FACTSCREEN_SQLITE_PATH")
	setString(&c.Source.Kind, "FACTSCREEN_SOURCE")

	if v := os.Getenv("FACTSCREEN_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FACTSCREEN_THRESHOLD: %w", err)
		}
		c.Screen.Threshold = f
	}
	if v := os.Getenv("FACTSCREEN_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FACTSCREEN_WORKERS: %w", err)
		}
		c.Screen.Workers = n
	}
	if v := os.Getenv("MEMGRAPH_FROM_NODES"); v != "" {
		c.Memgraph.FromNodes = truthy(v)
	}
	if v := os.Getenv("FACTSCREEN_PARALLEL_ENABLED"); v != "" {
		c.Screen.ParallelEnabled = truthy(v)
	}
	return nil
}

func (c *Config) Validate() error {
	if math.IsNaN(c.Screen.Threshold) || math.IsInf(c.Screen.Threshold, 0) {
		return fmt.Errorf("screen.threshold must be a finite number, got %v", c.Screen.Threshold)
	}
	if c.Screen.Workers < 0 {
		return fmt.Errorf("screen.workers must not be negative, got %d", c.Screen.Workers)
	}
	switch c.Screen.Clustering {
	case "", "components", "lpa":
	default:
		return fmt.Errorf("screen.clustering must be \"components\" or \"lpa\", got %q", c.Screen.Clustering)
	}
	switch c.Source.Kind {
	case "", "memgraph", "sqlite", "jsonl", "file":
	default:
		return fmt.Errorf("source.kind must be memgraph, sqlite, jsonl or file, got %q", c.Source.Kind)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
