package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/koda-tools/koda/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Pull.Tool != "ollama" {
		t.Errorf("Pull.Tool = %q, want %q", cfg.Pull.Tool, "ollama")
	}
	if len(cfg.Pull.Args) != 1 || cfg.Pull.Args[0] != "pull" {
		t.Errorf("Pull.Args = %v, want [pull]", cfg.Pull.Args)
	}
	if cfg.API.OllamaHost != "localhost:11434" {
		t.Errorf("API.OllamaHost = %q, want %q", cfg.API.OllamaHost, "localhost:11434")
	}
	if cfg.Decompile.ContextLength != 26*1024 {
		t.Errorf("Decompile.ContextLength = %d, want %d", cfg.Decompile.ContextLength, 26*1024)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled should default to true")
	}
	if cfg.Models.Default == "" || len(cfg.Models.Catalog) == 0 {
		t.Error("default model catalog should not be empty")
	}
}

func TestResolveModel(t *testing.T) {
	cfg := Config{
		Models: ModelsConfig{
			Default: "qwen2.5-coder:32b",
			Catalog: []string{"qwen2.5-coder:32b", "qwen3:14b", "granite3.3:8b"},
		},
	}

	tests := []struct {
		prefix string
		want   string
	}{
		{"", "qwen2.5-coder:32b"},      // Empty prefix selects the default
		{"qwen3", "qwen3:14b"},
		{"gra", "granite3.3:8b"},
		{"qwen", "qwen2.5-coder:32b"},  // First catalog match wins
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := cfg.ResolveModel(tt.prefix)
			if err != nil {
				t.Fatalf("ResolveModel(%q) error: %v", tt.prefix, err)
			}
			if got != tt.want {
				t.Errorf("ResolveModel(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestResolveModel_UnknownPrefix(t *testing.T) {
	cfg := DefaultConfig()

	_, err := cfg.ResolveModel("no-such-model")
	if !errors.Is(err, domain.ErrUnknownModel) {
		t.Fatalf("ResolveModel() error = %v, want ErrUnknownModel", err)
	}
	if !strings.Contains(err.Error(), "Available models") {
		t.Errorf("error should list the catalog, got %v", err)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("KODA_HOME", home)
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OLLAMA_HOST", "")

	content := `[pull]
tool = "podman-ollama"
args = ["model", "pull"]

[api]
base_url = "http://10.0.0.5:8080/v1"
`
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Pull.Tool != "podman-ollama" {
		t.Errorf("Pull.Tool = %q, want %q", cfg.Pull.Tool, "podman-ollama")
	}
	if cfg.API.BaseURL != "http://10.0.0.5:8080/v1" {
		t.Errorf("API.BaseURL = %q, want file value", cfg.API.BaseURL)
	}

	// Untouched sections keep defaults
	if cfg.Decompile.Model == "" {
		t.Error("Decompile.Model should keep its default")
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("KODA_HOME", home)
	t.Setenv("OPENAI_BASE_URL", "http://env-wins:1234/v1")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OLLAMA_HOST", "")

	content := `[api]
base_url = "http://file-loses:1/v1"
key = "sk-file"
`
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.API.BaseURL != "http://env-wins:1234/v1" {
		t.Errorf("API.BaseURL = %q, want env value", cfg.API.BaseURL)
	}
	if cfg.API.Key != "sk-env" {
		t.Errorf("API.Key = %q, want env value", cfg.API.Key)
	}
}

func TestSaveConfig_Roundtrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("KODA_HOME", home)
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OLLAMA_HOST", "")

	want := DefaultConfig()
	want.Models.Default = "granite3.3:8b-128k"

	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if got.Models.Default != "granite3.3:8b-128k" {
		t.Errorf("Models.Default = %q, want saved value", got.Models.Default)
	}
}
