package config

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// PlaceholderKey is the sample value shipped in example env files. A credential
// containing it is treated as not configured.
const PlaceholderKey = "your-api-key-here"

// KeyURL is where users obtain an OpenAI API key.
const KeyURL = "https://platform.openai.com/account/api-keys"

const (
	DefaultProvider = "openai"
	DefaultModel    = "gpt-3.5-turbo"
	DefaultAddr     = ":8080"
)

// Credential is the provider API key, read once at startup.
type Credential string

// Configured reports whether the key is present and not the placeholder.
func (c Credential) Configured() bool {
	s := strings.TrimSpace(string(c))
	return s != "" && !strings.Contains(s, PlaceholderKey)
}

// Config holds everything the server needs at startup.
type Config struct {
	LLM        LLMConfig `json:"llm"`
	ServerAddr string    `json:"server_addr,omitempty"`
	Debug      bool      `json:"debug,omitempty"`
}

// LLMConfig selects and authenticates the completion provider.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// Credential returns the configured API key.
func (c Config) Credential() Credential {
	return Credential(c.LLM.APIKey)
}

// Load builds the config from env files, an optional JSON file and the
// process environment, in that order of increasing precedence. Missing env
// files are ignored; a missing JSON file is ignored only when path is empty.
// With no envFiles, ".env" in the working directory is tried.
func Load(path string, envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.LLM.APIKey = env("OPENAI_API_KEY", env("VITE_OPENAI_API_KEY", cfg.LLM.APIKey))
	cfg.LLM.Model = env("OPENAI_MODEL", cfg.LLM.Model)
	cfg.LLM.BaseURL = env("OPENAI_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Provider = env("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.ServerAddr = env("SERVER_ADDR", cfg.ServerAddr)
	if os.Getenv("DEBUG") == "1" {
		cfg.Debug = true
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultProvider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = DefaultAddr
	}
	if cfg.LLM.Provider == "deepseek" && cfg.LLM.BaseURL == "" {
		// DeepSeek exposes an OpenAI-compatible API but has no default endpoint here.
		return Config{}, errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
	}
	return cfg, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
