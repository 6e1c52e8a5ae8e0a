// Package config loads the application settings shared by the web and CLI entry points.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/services/report"
	"github.com/DLICWCPA/monday-report-app/pkg/services/window"
	"github.com/DLICWCPA/monday-report-app/pkg/store/monday"
	"github.com/spf13/viper"
)

const EnvPrefix = "MONDAY_REPORT"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Profiles ProfilesConfig `mapstructure:"profiles"`
	Report   ReportConfig   `mapstructure:"report"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type ProfilesConfig struct {
	Path    string `mapstructure:"path"`
	Default string `mapstructure:"default"`
}

type ReportConfig struct {
	Title          string                  `mapstructure:"title"`
	UTCOffsetHours int                     `mapstructure:"utc_offset_hours"`
	Departments    []report.DepartmentRule `mapstructure:"departments"`
	Desks          []string                `mapstructure:"desks"`
}

// Layout returns the configured blocks, falling back to the standard ones for empty lists.
func (r ReportConfig) Layout() report.Layout {
	layout := report.Layout{Departments: r.Departments, Desks: r.Desks}
	if len(layout.Departments) == 0 {
		layout.Departments = report.DefaultDepartments()
	}
	if len(layout.Desks) == 0 {
		layout.Desks = report.DefaultDesks()
	}
	return layout
}

type FetchConfig struct {
	PageLimit  int           `mapstructure:"page_limit"`
	MaxRetries int           `mapstructure:"max_retries"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 2*time.Minute)
	v.SetDefault("profiles.path", "~/.mondaycfg")
	v.SetDefault("profiles.default", "")
	v.SetDefault("report.title", report.DefaultTitle)
	v.SetDefault("report.utc_offset_hours", window.DefaultUTCOffsetHours)
	v.SetDefault("fetch.page_limit", monday.DefaultPageLimit)
	v.SetDefault("fetch.max_retries", monday.DefaultMaxRetries)
	v.SetDefault("fetch.timeout", monday.DefaultTimeout)
}

// LoadConfig reads the settings file at path on top of the defaults. An empty path uses defaults
// and MONDAY_REPORT_* environment overrides only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	expanded, err := expandHome(cfg.Profiles.Path)
	if err != nil {
		return nil, err
	}
	cfg.Profiles.Path = expanded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and the report layout.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Report.UTCOffsetHours < -12 || c.Report.UTCOffsetHours > 14 {
		return fmt.Errorf("report.utc_offset_hours %d is out of range", c.Report.UTCOffsetHours)
	}
	if c.Fetch.PageLimit <= 0 {
		return fmt.Errorf("fetch.page_limit must be positive")
	}
	if err := c.Report.Layout().Validate(); err != nil {
		return fmt.Errorf("report layout: %w", err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
