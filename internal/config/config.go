package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "wastedyears"

// Config holds the settings for wastedyears
type Config struct {
	DataDir string `mapstructure:"data_dir"`
	DBURL   string `mapstructure:"db_url"`

	// File is the config file that was read, empty if none was found
	File string `mapstructure:"-"`
}

// Load reads the config file and environment overrides on top of the defaults.
// With an empty path the file is looked up as
// $XDG_CONFIG_HOME/wastedyears/wastedyears.yml; a missing file is not an error.
// Environment variables WYR_DATA_DIR and WYR_DB_URL override the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	dataHome, err := xdgDir("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return nil, err
	}
	dataDir := filepath.Join(dataHome, appName)
	v.SetDefault("data_dir", dataDir)

	v.SetEnvPrefix("WYR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		configHome, err := xdgDir("XDG_CONFIG_HOME", ".config")
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configHome, appName, appName+".yml")
	}
	v.SetConfigFile(path)

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		cfg.File = v.ConfigFileUsed()
	}

	// the database lives in the data dir unless configured otherwise, so the
	// default can only be settled once data_dir is known
	v.SetDefault("db_url", DefaultDBURL(expandHome(v.GetString("data_dir"))))

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	return cfg, nil
}

// DefaultDBURL returns the database URL for a file inside dataDir
func DefaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, appName+".sqlite")
}

// CreateDataDir makes sure the data directory exists
func (c *Config) CreateDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// xdgDir returns the directory named by envVar, falling back to a path under
// the home directory as XDG base directories do
func xdgDir(envVar string, defaultPath ...string) (string, error) {
	if dir := os.Getenv(envVar); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, defaultPath...)...), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
