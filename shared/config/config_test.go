package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GOOGLE_API_KEY", "GEMINI_API_KEY", "YOUTUBE_API_KEY", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "PORT"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", writeConfig(t, "{}\n"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.AI.Model != "gemini-2.0-flash-exp" {
		t.Errorf("AI.Model = %s, want gemini-2.0-flash-exp", cfg.AI.Model)
	}
	if cfg.AI.Tool != "duckduckgo" {
		t.Errorf("AI.Tool = %s, want duckduckgo", cfg.AI.Tool)
	}
	if !cfg.AI.MarkdownEnabled() {
		t.Error("Markdown should default to enabled")
	}
	if len(cfg.Transcript.Languages) != 2 || cfg.Transcript.Languages[0] != "en" || cfg.Transcript.Languages[1] != "hi" {
		t.Errorf("Transcript.Languages = %v, want [en hi]", cfg.Transcript.Languages)
	}
	if cfg.AI.GeminiAPIKey != "" {
		t.Error("Gemini API key should be empty when not configured")
	}
}

func TestLoadEnvFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", writeConfig(t, "ai:\n  model: gemini-2.5-flash\n"))
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AI.GeminiAPIKey != "gemini-key" {
		t.Errorf("AI.GeminiAPIKey = %s, want gemini-key", cfg.AI.GeminiAPIKey)
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("AI.Model = %s, want gemini-2.5-flash", cfg.AI.Model)
	}
	if cfg.YouTube.APIKey != "yt-key" {
		t.Errorf("YouTube.APIKey = %s, want yt-key", cfg.YouTube.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
}

func TestGoogleKeyTakesPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", writeConfig(t, "{}\n"))
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.GeminiAPIKey != "google-key" {
		t.Errorf("AI.GeminiAPIKey = %s, want google-key", cfg.AI.GeminiAPIKey)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Expected error for explicitly configured missing file")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := Config{}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults are valid", func(c *Config) {}, false},
		{"Three languages", func(c *Config) { c.Transcript.Languages = []string{"en", "hi", "fr"} }, true},
		{"One language", func(c *Config) { c.Transcript.Languages = []string{"en"} }, true},
		{"Empty language", func(c *Config) { c.Transcript.Languages = []string{"en", ""} }, true},
		{"Unknown tool", func(c *Config) { c.AI.Tool = "bing" }, true},
		{"No tool", func(c *Config) { c.AI.Tool = "none" }, false},
		{"Bad port", func(c *Config) { c.Server.Port = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
