// Package config manages koda configuration and the model catalog.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/koda-tools/koda/internal/domain"
)

// Config holds all koda configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Models    ModelsConfig    `toml:"models"`
	Pull      PullConfig      `toml:"pull"`
	Decompile DecompileConfig `toml:"decompile"`
	History   HistoryConfig   `toml:"history"`
	Render    RenderConfig    `toml:"render"`
}

// APIConfig locates the OpenAI-compatible backend.
type APIConfig struct {
	BaseURL    string `toml:"base_url"`
	Key        string `toml:"key"`
	OllamaHost string `toml:"ollama_host"`
}

// ModelsConfig is the ordered model catalog. The -m flag resolves by
// prefix against Catalog; an empty flag selects Default.
type ModelsConfig struct {
	Default string   `toml:"default"`
	Catalog []string `toml:"catalog"`
}

// PullConfig controls the external pull tool.
type PullConfig struct {
	Tool string   `toml:"tool"`
	Args []string `toml:"args"`
}

// DecompileConfig controls the decompiler enhancement pipeline.
type DecompileConfig struct {
	Model         string `toml:"model"`
	ContextLength int    `toml:"context_length"`
	Formatter     string `toml:"formatter"`
}

// HistoryConfig controls invocation history recording.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

// RenderConfig controls transcript rendering and browser preview.
type RenderConfig struct {
	Pandoc  string `toml:"pandoc"`
	Browser string `toml:"browser"` // Empty = platform opener (xdg-open / open)
	Host    string `toml:"host"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			OllamaHost: "localhost:11434",
		},
		Models: ModelsConfig{
			Default: "qwen2.5-coder:32b-instruct-q4_K_M-17k",
			Catalog: []string{
				"qwen2.5-coder:32b-instruct-q4_K_M-17k",
				"devstral:24b-small-2505-q4_K_M-61k",
				"qwen3:14b-q4_K_M-95k",
				"qwen3:30b-a3b-q4_K_M-46k",
				"deepseek-r1:32b-qwen-distill-q4_K_M-17k",
				"granite3.3:8b-128k",
			},
		},
		Pull: PullConfig{
			Tool: "ollama",
			Args: []string{"pull"},
		},
		Decompile: DecompileConfig{
			Model:         "llm4decompile:22b-v2-q6_K",
			ContextLength: 26 * 1024,
			Formatter:     "clang-format",
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Render: RenderConfig{
			Pandoc: "pandoc",
			Host:   "127.0.0.1",
		},
	}
}

// ConfigPath returns the path of the config file.
func ConfigPath() string {
	return filepath.Join(KodaHome(), "config.toml")
}

// LoadConfig reads config from $KODA_HOME/config.toml, falling back to
// defaults. Environment variables override file values for the API
// endpoint, following the conventions of the OpenAI tooling ecosystem.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if env := os.Getenv("OPENAI_BASE_URL"); env != "" {
		cfg.API.BaseURL = env
	}
	if env := os.Getenv("OPENAI_API_KEY"); env != "" {
		cfg.API.Key = env
	}
	if env := os.Getenv("OLLAMA_HOST"); env != "" {
		cfg.API.OllamaHost = env
	}

	return cfg, nil
}

// SaveConfig writes the config to $KODA_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// ResolveModel resolves a user-supplied model prefix against the catalog.
// An empty prefix selects the default model. The first catalog entry the
// prefix matches wins.
func (c Config) ResolveModel(prefix string) (string, error) {
	if prefix == "" {
		if c.Models.Default != "" {
			return c.Models.Default, nil
		}
		if len(c.Models.Catalog) > 0 {
			return c.Models.Catalog[0], nil
		}
		return "", fmt.Errorf("no models configured")
	}

	for _, model := range c.Models.Catalog {
		if strings.HasPrefix(model, prefix) {
			return model, nil
		}
	}

	return "", fmt.Errorf("%w: prefix %q matched nothing. Available models are: %s",
		domain.ErrUnknownModel, prefix, strings.Join(c.Models.Catalog, ", "))
}

// KodaHome returns the koda data directory, $KODA_HOME or ~/.koda.
func KodaHome() string {
	if env := os.Getenv("KODA_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".koda")
}
