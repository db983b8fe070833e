package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points XDG config and the working directory at a temp dir and
// clears every ICY_ variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range []string{
		"DATA_DIR", "LOG_LEVEL", "LOG_FILE", "STORE", "SESSION_KEY",
		"HISTORY", "REDIS_ADDR", "MCP_ADDR", "DISCOVERY_SPEED",
	} {
		t.Setenv("ICY_"+key, "")
		_ = os.Unsetenv("ICY_" + key)
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name        string
		xdgConfig   string
		wantContain string
	}{
		{
			name:        "with XDG_CONFIG_HOME set",
			xdgConfig:   "/custom/config",
			wantContain: "/custom/config/icy/icy.yml",
		},
		{
			name:        "without XDG_CONFIG_HOME",
			xdgConfig:   "",
			wantContain: ".config/icy/icy.yml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)
			if tt.xdgConfig == "" {
				_ = os.Unsetenv("XDG_CONFIG_HOME")
			}

			got := GlobalPath()
			if tt.xdgConfig != "" {
				if got != tt.wantContain {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.wantContain)
				}
				return
			}
			if !filepath.IsAbs(got) {
				t.Errorf("GlobalPath() should return absolute path, got %v", got)
			}
			if !strings.HasSuffix(got, tt.wantContain) {
				t.Errorf("GlobalPath() = %v, want suffix %v", got, tt.wantContain)
			}
		})
	}
}

func TestProjectPath(t *testing.T) {
	if got := ProjectPath(); got != "icy.yml" {
		t.Errorf("ProjectPath() = %v, want icy.yml", got)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}

	if err := os.WriteFile(ProjectPath(), []byte("store: nats\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
	_ = os.Remove(ProjectPath())

	if err := WriteGlobal(Default()); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when global config exists")
	}
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.DataDir = ".test"
	cfg.LogLevel = "debug"
	cfg.LogFile = "/tmp/test.log"
	cfg.Store = StoreRedis
	cfg.History = 5

	if err := WriteGlobal(cfg); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	data, err := os.ReadFile(GlobalPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	content := string(data)
	for _, field := range []string{
		"data_dir: .test",
		"log_level: debug",
		"log_file: /tmp/test.log",
		"store: redis",
		"session_key: icyBrandData",
		"history: 5",
	} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Store = StoreNATS
	if err := WriteProject(cfg); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}

	data, err := os.ReadFile(ProjectPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if !strings.Contains(string(data), "store: nats") {
		t.Errorf("project config missing store, got:\n%s", data)
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, *want)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	global := Default()
	global.DataDir = ".global"
	global.LogLevel = "warn"
	global.History = 3
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	if err := os.WriteFile(ProjectPath(), []byte("history: 7\nstore: nats\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}

	t.Setenv("ICY_LOG_LEVEL", "debug")
	t.Setenv("ICY_DISCOVERY_SPEED", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != ".global" {
		t.Errorf("DataDir = %v, want .global from global config", cfg.DataDir)
	}
	if cfg.History != 7 {
		t.Errorf("History = %v, want 7 from project config", cfg.History)
	}
	if cfg.Store != StoreNATS {
		t.Errorf("Store = %v, want nats from project config", cfg.Store)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug from env", cfg.LogLevel)
	}
	if cfg.DiscoverySpeed != 4 {
		t.Errorf("DiscoverySpeed = %v, want 4 from env", cfg.DiscoverySpeed)
	}
}

func TestLoad_InvalidStore(t *testing.T) {
	isolate(t)
	t.Setenv("ICY_STORE", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject an unknown store backend")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "redis store", mutate: func(c *Config) { c.Store = StoreRedis }},
		{name: "unknown store", mutate: func(c *Config) { c.Store = "sqlite" }, wantErr: true},
		{name: "blank session key", mutate: func(c *Config) { c.SessionKey = "  " }, wantErr: true},
		{name: "zero history", mutate: func(c *Config) { c.History = 0 }, wantErr: true},
		{name: "history above cap", mutate: func(c *Config) { c.History = MaxHistory + 1 }, wantErr: true},
		{name: "history at cap", mutate: func(c *Config) { c.History = MaxHistory }},
		{name: "zero speed", mutate: func(c *Config) { c.DiscoverySpeed = 0 }, wantErr: true},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
