// Package config loads the torna-mcp configuration from an optional YAML
// file and environment variables. Environment always wins.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the merged torna-mcp configuration
type Config struct {
	Torna   TornaConfig   `yaml:"torna"`
	Logging LoggingConfig `yaml:"logging"`
}

type TornaConfig struct {
	URL     string   `yaml:"url"`
	Tokens  []string `yaml:"tokens"`
	Timeout string   `yaml:"timeout"` // duration string, e.g. "30s"
}

type LoggingConfig struct {
	Level      string `yaml:"level"` // trace, debug, info, warn, error
	ShowCaller bool   `yaml:"showCaller"`
}

// Load reads configuration from the config file (if present), then applies
// environment overrides, then validates. The base URL and at least one
// module token are mandatory.
func Load() (*Config, error) {
	cfg := &Config{
		Torna: TornaConfig{
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level:      "info",
			ShowCaller: true,
		},
	}

	path := DefaultPath()
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.Torna.URL == "" {
		return nil, fmt.Errorf("torna URL not configured (set TORNA_URL or torna.url in %s)", path)
	}
	if len(cfg.Torna.Tokens) == 0 {
		return nil, fmt.Errorf("no torna tokens configured (set TORNA_TOKENS or torna.tokens in %s)", path)
	}

	return cfg, nil
}

// DefaultPath returns the config file location: $TORNA_CONFIG if set,
// otherwise ~/.torna-mcp/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("TORNA_CONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".torna-mcp", "config.yaml")
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv("TORNA_URL"); v != "" {
		c.Torna.URL = v
	}
	if v := os.Getenv("TORNA_TOKENS"); v != "" {
		c.Torna.Tokens = SplitTokens(v)
	}
	if v := os.Getenv("TORNA_TIMEOUT"); v != "" {
		c.Torna.Timeout = v
	}
	if v := os.Getenv("TORNA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// SplitTokens parses a comma-separated token list, trimming whitespace and
// dropping empty entries.
func SplitTokens(s string) []string {
	var tokens []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Redacted returns a copy safe for debug logging, with tokens reduced to a
// masked suffix.
func (c *Config) Redacted() *Config {
	out := *c
	out.Torna.Tokens = make([]string, len(c.Torna.Tokens))
	for i, t := range c.Torna.Tokens {
		out.Torna.Tokens[i] = maskToken(t)
	}
	return &out
}

// maskToken keeps only the last four characters of a token
func maskToken(t string) string {
	if len(t) <= 4 {
		return "****"
	}
	return "****" + t[len(t)-4:]
}
