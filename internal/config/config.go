// Package config loads application configuration from defaults, an
// optional YAML file, a local .env file and CODEQUIZ_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/codequiz/internal/hint"
	"github.com/abhisek/codequiz/internal/problem"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// CODEQUIZ_SESSION_PROBLEM_COUNT=5.
const EnvPrefix = "CODEQUIZ"

// Config holds all application configuration.
type Config struct {
	Session     SessionConfig     `mapstructure:"session"`
	Hint        HintConfig        `mapstructure:"hint"`
	Progression ProgressionConfig `mapstructure:"progression"`
	XP          XPConfig          `mapstructure:"xp"`
	DB          DBConfig          `mapstructure:"db"`
	Log         LogConfig         `mapstructure:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// SessionConfig controls quiz sessions.
type SessionConfig struct {
	ProblemCount int `mapstructure:"problem_count"`
}

// HintConfig controls the hint step budget and XP costs.
type HintConfig struct {
	MaxSteps           int `mapstructure:"max_steps"`
	XPPerStep          int `mapstructure:"xp_per_step"`
	DebuggingXPPerStep int `mapstructure:"debugging_xp_per_step"`
}

// ProgressionConfig controls level completion.
type ProgressionConfig struct {
	// PassAccuracy is the session accuracy (percent) that completes a level.
	PassAccuracy int `mapstructure:"pass_accuracy"`
}

// XPConfig controls the learner's XP balance.
type XPConfig struct {
	StartingBalance int `mapstructure:"starting_balance"`
	PerCorrect      int `mapstructure:"per_correct"`
}

// DBConfig locates the event journal. An empty path uses the default
// data directory.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the rotating log file. An empty file uses the
// default state directory.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// MetricsConfig controls the Prometheus endpoint. Empty Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// HintConfigFor returns the hint schedule for a problem type.
func (c *Config) HintConfigFor(t problem.Type) hint.Config {
	cfg := hint.Config{MaxSteps: c.Hint.MaxSteps, XPPerStep: c.Hint.XPPerStep}
	if t == problem.TypeDebugging {
		cfg.XPPerStep = c.Hint.DebuggingXPPerStep
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	def := hint.DefaultConfig()
	v.SetDefault("session.problem_count", 10)
	v.SetDefault("hint.max_steps", def.MaxSteps)
	v.SetDefault("hint.xp_per_step", def.XPPerStep)
	v.SetDefault("hint.debugging_xp_per_step", hint.ConfigFor(problem.TypeDebugging).XPPerStep)
	v.SetDefault("progression.pass_accuracy", 70)
	v.SetDefault("xp.starting_balance", 100)
	v.SetDefault("xp.per_correct", 10)
	v.SetDefault("db.path", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.addr", "")
}

// Default returns the configuration with every key at its default.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load builds the configuration. When configFile is empty, config.yaml is
// looked up in the working directory and $XDG_CONFIG_HOME/codequiz, and a
// missing file is not an error.
func Load(configFile string) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Session.ProblemCount <= 0 {
		return fmt.Errorf("session.problem_count must be > 0")
	}
	if c.Hint.MaxSteps <= 0 {
		return fmt.Errorf("hint.max_steps must be > 0")
	}
	if c.Hint.XPPerStep < 0 || c.Hint.DebuggingXPPerStep < 0 {
		return fmt.Errorf("hint XP costs must be >= 0")
	}
	if c.Progression.PassAccuracy < 0 || c.Progression.PassAccuracy > 100 {
		return fmt.Errorf("progression.pass_accuracy must be within 0-100")
	}
	if c.XP.PerCorrect < 0 {
		return fmt.Errorf("xp.per_correct must be >= 0")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "codequiz"), nil
}
