// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/icyhq/icy/internal/brand"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreNATS  = "nats"
	StoreRedis = "redis"
)

// MaxHistory bounds how many profile revisions a store keeps.
const MaxHistory = 64

// Config holds all configuration values for icy.
type Config struct {
	DataDir        string  `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel       string  `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string  `mapstructure:"log_file" yaml:"log_file"`
	Store          string  `mapstructure:"store" yaml:"store"`
	SessionKey     string  `mapstructure:"session_key" yaml:"session_key"`
	History        int     `mapstructure:"history" yaml:"history"`
	RedisAddr      string  `mapstructure:"redis_addr" yaml:"redis_addr"`
	MCPAddr        string  `mapstructure:"mcp_addr" yaml:"mcp_addr"`
	DiscoverySpeed float64 `mapstructure:"discovery_speed" yaml:"discovery_speed"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		DataDir:        ".icy",
		LogLevel:       "info",
		LogFile:        "",
		Store:          StoreFile,
		SessionKey:     brand.DefaultKey,
		History:        10,
		RedisAddr:      "localhost:6379",
		MCPAddr:        "127.0.0.1:0",
		DiscoverySpeed: 1.0,
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("icy")

	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("store", d.Store)
	v.SetDefault("session_key", d.SessionKey)
	v.SetDefault("history", d.History)
	v.SetDefault("redis_addr", d.RedisAddr)
	v.SetDefault("mcp_addr", d.MCPAddr)
	v.SetDefault("discovery_speed", d.DiscoverySpeed)

	// Setup ENV binding with ICY_ prefix
	v.SetEnvPrefix("ICY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so numeric values parse from the environment
	for _, key := range []string{
		"data_dir", "log_level", "log_file", "store", "session_key",
		"history", "redis_addr", "mcp_addr", "discovery_speed",
	} {
		if err := v.BindEnv(key, "ICY_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreNATS, StoreRedis:
	default:
		return fmt.Errorf("invalid store %q (want %s, %s or %s)", c.Store, StoreFile, StoreNATS, StoreRedis)
	}
	if strings.TrimSpace(c.SessionKey) == "" {
		return fmt.Errorf("session_key must not be empty")
	}
	if c.History < 1 || c.History > MaxHistory {
		return fmt.Errorf("history must be between 1 and %d, got %d", MaxHistory, c.History)
	}
	if c.DiscoverySpeed <= 0 {
		return fmt.Errorf("discovery_speed must be positive, got %v", c.DiscoverySpeed)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/icy/icy.yml or $XDG_CONFIG_HOME/icy/icy.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "icy", "icy.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "icy", "icy.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "icy.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
