package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Store struct {
		Backend string `yaml:"backend"` // dir, sqlite or postgres
		Path    string `yaml:"path"`    // model directory or sqlite file
		DSN     string `yaml:"dsn"`     // postgres connection string
	} `yaml:"store"`
	Embedding struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"` // ollama endpoint
	} `yaml:"embedding"`
	Output struct {
		Format string `yaml:"format"` // text, markdown or json
		Locale string `yaml:"locale"` // en or es
	} `yaml:"output"`
	Scan struct {
		Extensions []string `yaml:"extensions"`
	} `yaml:"scan"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Store.Backend = "dir"
	cfg.Store.Path = "models"
	cfg.Output.Format = "text"
	cfg.Output.Locale = "en"
	cfg.Scan.Extensions = []string{".py"}
	return &cfg
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if v := os.Getenv("SNIPCHECK_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("SNIPCHECK_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("SNIPCHECK_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("SNIPCHECK_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("SNIPCHECK_LOCALE"); v != "" {
		cfg.Output.Locale = v
	}

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if len(cfg.Scan.Extensions) == 0 {
		cfg.Scan.Extensions = []string{".py"}
	}

	return cfg, nil
}
