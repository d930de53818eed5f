// Package config loads wb-liga settings from defaults, an optional YAML file,
// a .env file, WBLIGA_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/wbliga/wb-liga/internal/logger"
)

const (
	EnvPrefix  = "WBLIGA"
	ConfigName = "wb-liga"
)

// Keys
const (
	KeyOrigin     = "origin"
	KeyModulePath = "module_path"
	KeyBaseURL    = "base_url"
	KeyUserAgent  = "user_agent"
	KeyTimeout    = "timeout"
	KeyRetries    = "retries"
	KeyDBPath     = "db_path"
	KeyBackupDir  = "backup_dir"
	KeyWorkers    = "workers"
	KeySeason     = "season"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
)

// Config holds all runtime settings
type Config struct {
	Origin     string        `mapstructure:"origin"`
	ModulePath string        `mapstructure:"module_path"`
	BaseURL    string        `mapstructure:"base_url"` // where requests go; a proxy or the origin itself
	UserAgent  string        `mapstructure:"user_agent"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Retries    int           `mapstructure:"retries"`
	DBPath     string        `mapstructure:"db_path"`
	BackupDir  string        `mapstructure:"backup_dir"` // empty means next to the database
	Workers    int           `mapstructure:"workers"`
	Season     int           `mapstructure:"season"` // 0 means the current season
	LogLevel   string        `mapstructure:"log_level"`
	LogFormat  string        `mapstructure:"log_format"`
}

// New returns a viper instance carrying the defaults and env binding
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyOrigin, "https://dsvdaten.dsv.de")
	v.SetDefault(KeyModulePath, "/Modules/WB/")
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyUserAgent, "")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyRetries, 3)
	v.SetDefault(KeyDBPath, filepath.Join("~", ".local", "share", "wb-liga", "seasons.db"))
	v.SetDefault(KeyBackupDir, "")
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeySeason, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logger.FormatJSON)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads envFile and configFile into v and decodes the result.
// A missing envFile is ignored. An empty configFile searches for wb-liga.yaml
// in the working directory and $HOME/.config/wb-liga; not finding one is fine,
// while an explicitly named file must exist.
func Load(v *viper.Viper, configFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.Origin = strings.TrimRight(strings.TrimSpace(c.Origin), "/")
	if c.BaseURL == "" {
		c.BaseURL = c.Origin
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	var err error
	if c.DBPath, err = expandHome(c.DBPath); err != nil {
		return err
	}
	if c.BackupDir, err = expandHome(c.BackupDir); err != nil {
		return err
	}
	return nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch {
	case c.Origin == "":
		return errors.New("origin must not be empty")
	case c.DBPath == "":
		return errors.New("db_path must not be empty")
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	case c.Retries < 0:
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.Season < 0:
		return fmt.Errorf("season must not be negative, got %d", c.Season)
	case c.LogFormat != logger.FormatJSON && c.LogFormat != logger.FormatText:
		return fmt.Errorf("log_format must be %q or %q, got %q", logger.FormatJSON, logger.FormatText, c.LogFormat)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// BackupDirectory returns where snapshots are written
func (c *Config) BackupDirectory() string {
	if c.BackupDir != "" {
		return c.BackupDir
	}
	return filepath.Dir(c.DBPath)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
