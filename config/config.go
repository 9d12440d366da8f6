// Package config loads service configuration from built-in defaults, an
// optional YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/satheeshds/invoicing/logging"
)

// Database drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/invoicing/config.yaml",
}

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Cloudinary CloudinaryConfig `koanf:"cloudinary"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// MaxUploadBytes bounds multipart product forms, image included.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver is "mongo" or "memory". The memory driver keeps everything in
	// process and is meant for local development.
	Driver   string        `koanf:"driver"`
	URI      string        `koanf:"uri"`
	Name     string        `koanf:"name"`
	Timeout  time.Duration `koanf:"timeout"`
	Invoices string        `koanf:"invoices_collection"`
	Products string        `koanf:"products_collection"`
	Counters string        `koanf:"counters_collection"`
}

type CloudinaryConfig struct {
	CloudName string        `koanf:"cloud_name"`
	APIKey    string        `koanf:"api_key"`
	APISecret string        `koanf:"api_secret"`
	Folder    string        `koanf:"folder"`
	Timeout   time.Duration `koanf:"timeout"`
}

// Enabled reports whether image uploads can be served.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type SecurityConfig struct {
	AuthUser          string        `koanf:"auth_user"`
	AuthPass          string        `koanf:"auth_pass"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  10 << 20,
		},
		Database: DatabaseConfig{
			Driver:   DriverMongo,
			URI:      "mongodb://localhost:27017",
			Name:     "trista",
			Timeout:  10 * time.Second,
			Invoices: "invoices",
			Products: "products",
			Counters: "counters",
		},
		Cloudinary: CloudinaryConfig{
			Folder:  "products",
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads .env (if present), then layers defaults, the config file and
// environment variables, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("could not load .env file")
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := splitCommaList(k, "security.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitCommaList turns a comma-separated env value into a slice.
func splitCommaList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	return nil
}

var envMappings = map[string]string{
	"port":                  "server.port",
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"max_upload_bytes":      "server.max_upload_bytes",

	"database_driver":  "database.driver",
	"mongo_uri":        "database.uri",
	"mongo_database":   "database.name",
	"database_timeout": "database.timeout",

	"cloudinary_cloud_name": "cloudinary.cloud_name",
	"cloudinary_api_key":    "cloudinary.api_key",
	"cloudinary_api_secret": "cloudinary.api_secret",
	"cloudinary_folder":     "cloudinary.folder",
	"cloudinary_timeout":    "cloudinary.timeout",

	"auth_user":           "security.auth_user",
	"auth_pass":           "security.auth_pass",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"rate_limit_disabled": "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps known env names to koanf paths; anything else is
// ignored so unrelated variables (PATH, HOME, ...) never leak in.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("server.max_upload_bytes must be positive"))
	}

	switch c.Database.Driver {
	case DriverMongo:
		u, err := url.Parse(c.Database.URI)
		if err != nil || (u.Scheme != "mongodb" && u.Scheme != "mongodb+srv") {
			errs = append(errs, fmt.Errorf("database.uri must be a mongodb:// or mongodb+srv:// URI"))
		}
		if c.Database.Name == "" {
			errs = append(errs, errors.New("database.name is required"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be %q or %q, got %q", DriverMongo, DriverMemory, c.Database.Driver))
	}
	if c.Database.Timeout <= 0 {
		errs = append(errs, errors.New("database.timeout must be positive"))
	}

	if c.Cloudinary.Timeout <= 0 {
		errs = append(errs, errors.New("cloudinary.timeout must be positive"))
	}

	if (c.Security.AuthUser == "") != (c.Security.AuthPass == "") {
		errs = append(errs, errors.New("security.auth_user and security.auth_pass must be set together"))
	}
	if !c.Security.RateLimitDisabled && (c.Security.RateLimitRequests <= 0 || c.Security.RateLimitWindow <= 0) {
		errs = append(errs, errors.New("rate limit requests and window must be positive unless disabled"))
	}

	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level %q is not recognised", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// LoggerConfig converts the logging section for logging.Init.
func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Caller: c.Logging.Caller,
	}
}
