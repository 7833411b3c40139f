package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envKeys = []string{
	"OPENAI_API_KEY", "VITE_OPENAI_API_KEY", "OPENAI_MODEL",
	"OPENAI_BASE_URL", "LLM_PROVIDER", "SERVER_ADDR", "DEBUG",
}

// clearEnv unsets the config variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestCredentialConfigured(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"your-api-key-here", false},
		{"sk-your-api-key-here", false},
		{"sk-live-123", true},
	}
	for _, c := range cases {
		if got := Credential(c.key).Configured(); got != c.want {
			t.Errorf("Credential(%q).Configured() = %v, want %v", c.key, got, c.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != DefaultProvider || cfg.LLM.Model != DefaultModel || cfg.ServerAddr != DefaultAddr {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Credential().Configured() {
		t.Fatal("empty credential reported as configured")
	}
}

func TestLoadJSONThenEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"llm":{"provider":"openai","model":"gpt-4o-mini","api_key":"sk-file"},"server_addr":":9000"}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "sk-env" {
		t.Errorf("api key = %q, want env override", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "gpt-4o-mini" || cfg.ServerAddr != ":9000" {
		t.Errorf("json values lost: %+v", cfg)
	}
}

func TestLoadDotEnvViteKey(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("VITE_OPENAI_API_KEY=your-api-key-here\nDEBUG=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("", envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "your-api-key-here" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
	if cfg.Credential().Configured() {
		t.Error("placeholder credential reported as configured")
	}
	if !cfg.Debug {
		t.Error("DEBUG=1 from .env not applied")
	}
}

func TestLoadDeepSeekNeedsBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "deepseek")
	if _, err := Load("", filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for deepseek without base_url")
	}
}

func TestLoadMissingJSON(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
