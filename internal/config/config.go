// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Deployment modes accepted in config. Development relaxes the CORS policy
// and switches the logger to console output.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mode   string       `mapstructure:"mode"`
	Google GoogleConfig `mapstructure:"google"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Sheets SheetsConfig `mapstructure:"sheets"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// GoogleConfig identifies the service account and destination spreadsheet.
// PrivateKey is the raw secret as delivered by the environment; it may carry
// escaped newlines or surrounding quotes and is normalized by the
// credentials package before use.
type GoogleConfig struct {
	ClientEmail   string `mapstructure:"client_email"`
	PrivateKey    string `mapstructure:"private_key"`
	SpreadsheetID string `mapstructure:"spreadsheet_id"`
	SheetName     string `mapstructure:"sheet_name"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SheetsConfig bounds the outbound Sheets calls.
type SheetsConfig struct {
	AppendTimeoutSeconds int `mapstructure:"append_timeout_seconds"`
	HealthTimeoutSeconds int `mapstructure:"health_timeout_seconds"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FWG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("mode", ModeDevelopment)
	// Empty defaults register the keys so AutomaticEnv picks them up during
	// Unmarshal even when no config file is present.
	v.SetDefault("google.client_email", "")
	v.SetDefault("google.private_key", "")
	v.SetDefault("google.spreadsheet_id", "")
	v.SetDefault("google.sheet_name", "Hoja 1")
	v.SetDefault("cors.allowed_origins", []string{
		"https://fwg-apply-form.vercel.app",
		"https://fwg-form-test.vercel.app",
		"https://thefreewebsiteguys.com",
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5500",
	})
	v.SetDefault("sheets.append_timeout_seconds", 15)
	v.SetDefault("sheets.health_timeout_seconds", 5)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		return fmt.Errorf("mode must be %q or %q", ModeDevelopment, ModeProduction)
	}
	if c.Google.SpreadsheetID == "" {
		return fmt.Errorf("google.spreadsheet_id must be set")
	}
	if c.Google.SheetName == "" {
		return fmt.Errorf("google.sheet_name must be set")
	}
	if c.Sheets.AppendTimeoutSeconds <= 0 {
		return fmt.Errorf("sheets.append_timeout_seconds must be > 0")
	}
	if c.Sheets.HealthTimeoutSeconds <= 0 {
		return fmt.Errorf("sheets.health_timeout_seconds must be > 0")
	}
	return nil
}

// Development reports whether the service runs in development mode.
func (c Config) Development() bool {
	return c.Mode == ModeDevelopment
}

// AppendTimeout converts the append bound into a duration.
func (c Config) AppendTimeout() time.Duration {
	return time.Duration(c.Sheets.AppendTimeoutSeconds) * time.Second
}

// HealthTimeout converts the health-probe bound into a duration.
func (c Config) HealthTimeout() time.Duration {
	return time.Duration(c.Sheets.HealthTimeoutSeconds) * time.Second
}
