// Package config loads ProTrack settings from an optional YAML file and
// PROTRACK_* environment variables. Environment wins over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Neoksnaman/ProTrack/internal/backup"
	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/llm"
	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Driver string `yaml:"driver"`
	// DSN is a file path for sqlite and a connection string for postgres.
	DSN string `yaml:"dsn"`
}

type Config struct {
	DB       DBConfig      `yaml:"db"`
	Addr     string        `yaml:"addr"`
	LogLevel string        `yaml:"log_level"`
	Backup   backup.Config `yaml:"backup"`
	LLM      llm.Config    `yaml:"llm"`
}

// Default places data under ~/.protrack when a home directory exists.
func Default() Config {
	dir := ".protrack"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".protrack")
	}
	return Config{
		DB:       DBConfig{Driver: string(db.DialectSQLite), DSN: filepath.Join(dir, "protrack.db")},
		Addr:     ":8080",
		LogLevel: "info",
		Backup:   backup.Config{Driver: "file", Dir: filepath.Join(dir, "backups")},
		LLM:      llm.DefaultConfig(),
	}
}

// Load reads path (or $PROTRACK_CONFIG when path is empty) over the
// defaults, then applies environment overrides. A missing file is only an
// error when a path was given.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = getenv("PROTRACK_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(&cfg, getenv)
	cfg.LLM = llm.LoadConfig(cfg.LLM)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, name string) {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			*dst = v
		}
	}
	set(&cfg.DB.Driver, "PROTRACK_DB_DRIVER")
	set(&cfg.DB.DSN, "PROTRACK_DB")
	set(&cfg.Addr, "PROTRACK_ADDR")
	set(&cfg.LogLevel, "PROTRACK_LOG_LEVEL")
	set(&cfg.Backup.Driver, "PROTRACK_BACKUP_DRIVER")
	set(&cfg.Backup.Dir, "PROTRACK_BACKUP_DIR")
	set(&cfg.Backup.S3.Bucket, "PROTRACK_BACKUP_S3_BUCKET")
	set(&cfg.Backup.S3.Region, "PROTRACK_BACKUP_S3_REGION")
	set(&cfg.Backup.S3.Endpoint, "PROTRACK_BACKUP_S3_ENDPOINT")
	if v, err := strconv.ParseBool(getenv("PROTRACK_BACKUP_S3_PATH_STYLE")); err == nil {
		cfg.Backup.S3.PathStyle = v
	}
}

// Validate rejects unknown drivers and log levels.
func (c Config) Validate() error {
	var errs []error
	if _, ok := db.ParseDialect(c.DB.Driver); !ok {
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DB.Driver))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Backup.Driver) {
	case "", "file", "s3", backup.DriverNone:
	default:
		errs = append(errs, fmt.Errorf("unknown backup driver %q", c.Backup.Driver))
	}
	return errors.Join(errs...)
}

// Dialect is the parsed database driver.
func (c Config) Dialect() db.Dialect {
	d, _ := db.ParseDialect(c.DB.Driver)
	return d
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
