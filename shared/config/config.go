package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "config.yaml"

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	AI         AIConfig         `yaml:"ai"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Search     SearchConfig     `yaml:"search"`
}

type ServerConfig struct {
	Port        int      `yaml:"port" env:"PORT"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GOOGLE_API_KEY"`
	Model        string `yaml:"model"`
	AgentName    string `yaml:"agent_name"`
	// Tool is one of "duckduckgo", "google" or "none".
	Tool         string `yaml:"tool"`
	MaxToolCalls int    `yaml:"max_tool_calls"`
	Markdown     *bool  `yaml:"markdown"`
}

// YouTubeConfig configures the optional Data API metadata lookup.
type YouTubeConfig struct {
	APIKey       string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile    string `yaml:"token_file"`
}

type TranscriptConfig struct {
	Languages      []string `yaml:"languages"`
	WatchURL       string   `yaml:"watch_url"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

type SearchConfig struct {
	Endpoint   string `yaml:"endpoint"`
	MaxResults int    `yaml:"max_results"`
	Region     string `yaml:"region"`
}

// MarkdownEnabled reports whether the agent should answer in markdown. Defaults to true.
func (a AIConfig) MarkdownEnabled() bool {
	return a.Markdown == nil || *a.Markdown
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	explicit := configFile != ""
	if !explicit {
		configFile = defaultConfigFile
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Every setting has a default or an env fallback.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.YouTube.APIKey == "" {
		c.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if c.YouTube.ClientID == "" {
		c.YouTube.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if c.YouTube.ClientSecret == "" {
		c.YouTube.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if c.Server.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.0-flash-exp"
	}
	if c.AI.AgentName == "" {
		c.AI.AgentName = "YouTube AI Summarizer"
	}
	if c.AI.Tool == "" {
		c.AI.Tool = "duckduckgo"
	}
	if c.AI.MaxToolCalls == 0 {
		c.AI.MaxToolCalls = 3
	}
	if c.YouTube.TokenFile == "" {
		c.YouTube.TokenFile = "youtube_token.json"
	}
	if len(c.Transcript.Languages) == 0 {
		c.Transcript.Languages = []string{"en", "hi"}
	}
	if c.Transcript.WatchURL == "" {
		c.Transcript.WatchURL = "https://www.youtube.com"
	}
	if c.Transcript.TimeoutSeconds == 0 {
		c.Transcript.TimeoutSeconds = 30
	}
	if c.Search.Endpoint == "" {
		c.Search.Endpoint = "https://html.duckduckgo.com/html/"
	}
	if c.Search.MaxResults == 0 {
		c.Search.MaxResults = 5
	}
	if c.Search.Region == "" {
		c.Search.Region = "wt-wt"
	}
}

// The Gemini key is optional here: without it only the agent actions fail.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}
	if len(c.Transcript.Languages) != 2 {
		return fmt.Errorf("transcript.languages must list exactly two languages (primary, secondary), got %d", len(c.Transcript.Languages))
	}
	for _, lang := range c.Transcript.Languages {
		if lang == "" {
			return fmt.Errorf("transcript.languages must not contain empty entries")
		}
	}
	switch c.AI.Tool {
	case "duckduckgo", "google", "none":
	default:
		return fmt.Errorf("ai.tool must be one of duckduckgo, google, none (got %q)", c.AI.Tool)
	}
	if c.AI.MaxToolCalls < 0 {
		return fmt.Errorf("ai.max_tool_calls must not be negative")
	}
	if c.Transcript.TimeoutSeconds < 0 {
		return fmt.Errorf("transcript.timeout_seconds must not be negative")
	}
	return nil
}
