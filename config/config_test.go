package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "trista" {
		t.Errorf("Database.Name = %q, want trista", cfg.Database.Name)
	}
	if cfg.Cloudinary.Folder != "products" {
		t.Errorf("Cloudinary.Folder = %q, want products", cfg.Cloudinary.Folder)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb+srv://cluster.example.net")
	t.Setenv("DATABASE_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.URI != "mongodb+srv://cluster.example.net" {
		t.Errorf("Database.URI = %q", cfg.Database.URI)
	}
	if cfg.Database.Timeout != 3*time.Second {
		t.Errorf("Database.Timeout = %v, want 3s", cfg.Database.Timeout)
	}
	if got := strings.Join(cfg.Security.CORSOrigins, "|"); got != "https://a.example|https://b.example" {
		t.Errorf("CORSOrigins = %q", got)
	}
	if !cfg.Cloudinary.Enabled() {
		t.Error("expected cloudinary to be enabled")
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "server:\n  port: 7070\ndatabase:\n  driver: memory\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("Database.Driver = %q, want memory", cfg.Database.Driver)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad driver", func(c *Config) { c.Database.Driver = "postgres" }, "database.driver"},
		{"bad uri", func(c *Config) { c.Database.URI = "http://localhost" }, "database.uri"},
		{"memory skips uri", func(c *Config) { c.Database.Driver = DriverMemory; c.Database.URI = "" }, ""},
		{"half auth", func(c *Config) { c.Security.AuthUser = "admin" }, "auth_pass"},
		{"rate limit", func(c *Config) { c.Security.RateLimitRequests = 0 }, "rate limit"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitRequests = 0
			c.Security.RateLimitDisabled = true
		}, ""},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
