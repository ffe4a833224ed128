package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "https://api.powerflex.io"
	defaultACN     = "0021"
	defaultAccount = "16"
)

// Config holds tool-wide settings. Values come from built-in defaults,
// then an optional YAML file, then SESHIS_* environment variables, each
// layer overriding the previous one.
type Config struct {
	APIBaseURL     string  `yaml:"api_base_url"`
	APIToken       string  `yaml:"api_token"`
	DefaultACN     string  `yaml:"default_acn"`
	DefaultAccount string  `yaml:"default_account"`
	Voltage        float64 `yaml:"voltage"`
	CachePath      string  `yaml:"cache_path"`
}

// Load reads configuration from the file at SESHIS_CONFIG, falling back
// to ~/.config/seshis/config.yaml. A missing file is not an error; a
// malformed one is.
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:     defaultBaseURL,
		DefaultACN:     defaultACN,
		DefaultAccount: defaultAccount,
		CachePath:      defaultCachePath(),
	}

	path := os.Getenv("SESHIS_CONFIG")
	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "seshis", "config.yaml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// No config file is fine; defaults and env apply.
		default:
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SESHIS_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("SESHIS_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("SESHIS_ACN"); v != "" {
		cfg.DefaultACN = v
	}
	if v := os.Getenv("SESHIS_ACCOUNT"); v != "" {
		cfg.DefaultAccount = v
	}
	if v := os.Getenv("SESHIS_VOLTAGE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Voltage = f
		}
	}
	if v := os.Getenv("SESHIS_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "seshis.db"
	}
	return filepath.Join(home, ".local", "share", "seshis", "runs.db")
}
