package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the tracker server settings.
type Config struct {
	Port      int
	DBPath    string
	PrefsPath string
	LogLevel  string
	// Summarization agent
	AgentBaseURL    string
	AgentTimeoutSec int
	SummaryEnabled  bool
	// Identity sent with workflow-end requests
	UserID        string
	WorkspacePath string
}

// Load reads the server config from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            envInt("PORT", 8742),
		DBPath:          envStr("DB_PATH", defaultDataPath("sessions.db")),
		PrefsPath:       envStr("PREFS_PATH", defaultDataPath("prefs.yaml")),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		AgentBaseURL:    envStr("AGENT_BASE_URL", "http://127.0.0.1:8000"),
		AgentTimeoutSec: envInt("AGENT_TIMEOUT_SECONDS", 120),
		SummaryEnabled:  envBool("SUMMARY_ENABLED", true),
		UserID:          envStr("USER_ID", "local"),
		WorkspacePath:   envStr("WORKSPACE_PATH", defaultWorkspace()),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if c.AgentBaseURL == "" {
		return fmt.Errorf("AGENT_BASE_URL must not be empty")
	}
	if c.AgentTimeoutSec < 1 {
		return fmt.Errorf("AGENT_TIMEOUT_SECONDS must be positive, got %d", c.AgentTimeoutSec)
	}
	if !filepath.IsAbs(c.WorkspacePath) {
		return fmt.Errorf("WORKSPACE_PATH must be absolute, got %q", c.WorkspacePath)
	}
	return nil
}

// AgentConfig holds the summarization agent settings.
type AgentConfig struct {
	Port          int
	OllamaBaseURL string
	Model         string
	LogLevel      string
}

// LoadAgent reads the agent config from the environment and validates it.
func LoadAgent() (*AgentConfig, error) {
	cfg := &AgentConfig{
		Port:          envInt("AGENT_PORT", 8000),
		OllamaBaseURL: envStr("OLLAMA_BASE_URL", "http://localhost:11434"),
		Model:         envStr("AGENT_MODEL", "qwen2.5:1.5b"),
		LogLevel:      envStr("LOG_LEVEL", "info"),
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config validation: AGENT_PORT must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.OllamaBaseURL == "" {
		return nil, fmt.Errorf("config validation: OLLAMA_BASE_URL must not be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("config validation: AGENT_MODEL must not be empty")
	}
	return cfg, nil
}

func defaultDataPath(file string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/data", file)
	}
	return filepath.Join(home, ".working-memory", file)
}

func defaultWorkspace() string {
	wd, err := os.Getwd()
	if err != nil {
		return "/"
	}
	return wd
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
