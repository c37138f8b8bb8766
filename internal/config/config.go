package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Defaults seed the search form on startup.
type Defaults struct {
	Query     string `yaml:"query"`
	Provider  string `yaml:"provider"`
	Limit     int    `yaml:"limit"`
	Sentences int    `yaml:"sentences"`
	Broad     bool   `yaml:"broad"`
	Sort      string `yaml:"sort,omitempty"`
}

type Config struct {
	APIBase  string   `yaml:"api_base"`
	Defaults Defaults `yaml:"defaults"`
}

// ResolvedAPIBase returns the backend base URL: FINNEWS_API_BASE wins over
// the config file, which wins over the localhost default.
func (c *Config) ResolvedAPIBase() string {
	if env := os.Getenv("FINNEWS_API_BASE"); env != "" {
		return env
	}
	if c.APIBase != "" {
		return c.APIBase
	}
	return "http://localhost:8000"
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "finnews", "config.yaml")
}

// DataPath is the sqlite file backing the local saved-search realm.
func DataPath() string {
	return filepath.Join(xdg.DataHome, "finnews", "saved.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the default location), writing the
// embedded defaults on first run. A .env file is honored for env overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	fillMissing(&cfg, defaults)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func fillMissing(cfg, defaults *Config) {
	if cfg.Defaults.Query == "" {
		cfg.Defaults.Query = defaults.Defaults.Query
	}
	if cfg.Defaults.Provider == "" {
		cfg.Defaults.Provider = defaults.Defaults.Provider
	}
	if cfg.Defaults.Limit == 0 {
		cfg.Defaults.Limit = defaults.Defaults.Limit
	}
	if cfg.Defaults.Sentences == 0 {
		cfg.Defaults.Sentences = defaults.Defaults.Sentences
	}
	if cfg.Defaults.Sort == "" {
		cfg.Defaults.Sort = defaults.Defaults.Sort
	}
}

func validate(cfg *Config) error {
	if cfg.APIBase != "" {
		u, err := url.Parse(cfg.APIBase)
		if err != nil {
			return fmt.Errorf("invalid api_base: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api_base scheme must be http or https, got %q", u.Scheme)
		}
	}
	switch cfg.Defaults.Provider {
	case "rss", "newsapi":
	default:
		return fmt.Errorf("unknown default provider %q (valid: rss, newsapi)", cfg.Defaults.Provider)
	}
	if cfg.Defaults.Limit < 1 || cfg.Defaults.Limit > 50 {
		return fmt.Errorf("default limit must be in [1,50], got %d", cfg.Defaults.Limit)
	}
	if cfg.Defaults.Sentences < 1 || cfg.Defaults.Sentences > 6 {
		return fmt.Errorf("default sentences must be in [1,6], got %d", cfg.Defaults.Sentences)
	}
	return nil
}
