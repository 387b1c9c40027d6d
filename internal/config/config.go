package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Reminders ReminderConfig  `yaml:"reminders"`
	Seed      SeedConfig      `yaml:"seed"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// AllowedOrigins may call the REST API and open the notification
	// socket from a browser. "*" allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls the slog handler. An empty Path logs to the console.
type LogConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type TransportConfig struct {
	// Mode is "http" (REST + MCP over HTTP) or "stdio" (MCP only).
	Mode string `yaml:"mode"`
}

type AuthConfig struct {
	Enabled bool     `yaml:"enabled"`
	Tokens  []string `yaml:"tokens"`
}

type CalendarConfig struct {
	Timezone  string `yaml:"timezone"`
	WeekStart string `yaml:"week_start"`
}

type ReminderConfig struct {
	ScanInterval time.Duration `yaml:"scan_interval"`
	LeadTime     time.Duration `yaml:"lead_time"`
	Snooze       time.Duration `yaml:"snooze"`
}

type SeedConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "smmdesk.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Calendar: CalendarConfig{
			Timezone:  "Local",
			WeekStart: "sunday",
		},
		Reminders: ReminderConfig{
			ScanInterval: time.Minute,
			LeadTime:     5 * time.Minute,
			Snooze:       30 * time.Minute,
		},
		Seed: SeedConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional .env file, an optional YAML file
// and environment variables, in that order of precedence (lowest first).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("SMMDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("SMMDESK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("SMMDESK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid SMMDESK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if origins := os.Getenv("SMMDESK_ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = splitList(origins)
	}
	if dbPath := os.Getenv("SMMDESK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("SMMDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("SMMDESK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("SMMDESK_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if enabled := os.Getenv("SMMDESK_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid SMMDESK_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if tokens := os.Getenv("SMMDESK_AUTH_TOKENS"); tokens != "" {
		cfg.Auth.Tokens = splitList(tokens)
	}
	if tz := os.Getenv("SMMDESK_TIMEZONE"); tz != "" {
		cfg.Calendar.Timezone = tz
	}
	if snooze := os.Getenv("SMMDESK_REMINDER_SNOOZE"); snooze != "" {
		d, err := time.ParseDuration(snooze)
		if err != nil {
			return fmt.Errorf("invalid SMMDESK_REMINDER_SNOOZE: %w", err)
		}
		cfg.Reminders.Snooze = d
	}
	if seed := os.Getenv("SMMDESK_SEED"); seed != "" {
		v, err := strconv.ParseBool(seed)
		if err != nil {
			return fmt.Errorf("invalid SMMDESK_SEED: %w", err)
		}
		cfg.Seed.Enabled = v
	}
	return nil
}

// Validate checks values that cannot be defaulted silently.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Auth.Enabled && len(c.Auth.Tokens) == 0 {
		return errors.New("auth enabled but no tokens configured")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.WeekStart(); err != nil {
		return err
	}
	if c.Reminders.ScanInterval <= 0 {
		return errors.New("reminders.scan_interval must be positive")
	}
	return nil
}

// Location resolves the calendar timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar timezone: %w", err)
	}
	return loc, nil
}

// WeekStart resolves the first weekday of calendar grids.
func (c Config) WeekStart() (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(c.Calendar.WeekStart))
	if name == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid calendar week_start %q", c.Calendar.WeekStart)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
