package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SQLUNLOCKER"

// Config holds all runtime configuration for sqlunlocker.
type Config struct {
	DBHost     string
	DBPort     int
	DBService  string
	DBUser     string
	DBPassword string
	Driver     string
	LogLevel   string
	DryRun     bool
}

// Load reads configuration from v, which merges flag values, env vars,
// an optional config file and defaults (set up by the cobra command in
// cmd/sqlunlocker).
func Load(v *viper.Viper) Config {
	return Config{
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetInt("db_port"),
		DBService:  v.GetString("db_service"),
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		Driver:     v.GetString("driver"),
		LogLevel:   v.GetString("log_level"),
		DryRun:     v.GetBool("dry_run"),
	}
}

// ReadFile merges the config file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("cannot read config file: %w", err)
	}
	return nil
}

// BindEnv maps SQLUNLOCKER_DB_HOST to "db_host" and so on.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
