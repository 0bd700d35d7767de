package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/balkashynov/gauge/internal/models"
)

// EnvPrefix is prepended to every environment override, e.g. GAUGE_DATA_DIR
const EnvPrefix = "GAUGE"

// Config holds user settings
type Config struct {
	DataDir            string `mapstructure:"data_dir"`
	DBFile             string `mapstructure:"db_file"`
	LogLevel           string `mapstructure:"log_level"`
	DefaultTag         string `mapstructure:"default_tag"`
	DefaultFocusGoal   int    `mapstructure:"default_focus_goal"`
	StreakLookbackDays int    `mapstructure:"streak_lookback_days"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		DataDir:            defaultDataDir(),
		DBFile:             "gauge.db",
		LogLevel:           "error",
		DefaultTag:         models.DefaultTag,
		DefaultFocusGoal:   models.DefaultFocusGoal,
		StreakLookbackDays: 365,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gauge"
	}
	return filepath.Join(home, ".gauge")
}

// Load merges defaults, the config file, a .env file in the working directory
// and GAUGE_* environment variables, in increasing precedence. configFile may
// be empty, in which case config.yaml in the default data directory is used if
// present.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load(".env")

	def := Default()
	v := viper.New()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("db_file", def.DBFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("default_tag", def.DefaultTag)
	v.SetDefault("default_focus_goal", def.DefaultFocusGoal)
	v.SetDefault("streak_lookback_days", def.StreakLookbackDays)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(def.DataDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.normalize(def)
	return cfg, nil
}

func (c *Config) normalize(def *Config) {
	c.DataDir = expandHome(strings.TrimSpace(c.DataDir))
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if strings.TrimSpace(c.DBFile) == "" {
		c.DBFile = def.DBFile
	}
	if strings.TrimSpace(c.DefaultTag) == "" {
		c.DefaultTag = def.DefaultTag
	}
	if c.DefaultFocusGoal <= 0 {
		c.DefaultFocusGoal = def.DefaultFocusGoal
	}
	if c.StreakLookbackDays <= 0 {
		c.StreakLookbackDays = def.StreakLookbackDays
	}
}

// DBPath returns the full path of the SQLite database
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
