// Package config loads memoflow settings from defaults, an optional YAML
// file, a .env file and MEMOFLOW_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/memoflow/internal/llm"
	"github.com/abhisek/memoflow/internal/quiz"
	"github.com/abhisek/memoflow/internal/session"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "MEMOFLOW"

// Config is the resolved application configuration.
type Config struct {
	// DB is a SQLite path or a postgres:// DSN. Empty means the default path.
	DB       string         `mapstructure:"db"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	LLM      llm.Config     `mapstructure:"llm"`
}

// SessionConfig sizes practice sessions.
type SessionConfig struct {
	Cap         int `mapstructure:"cap"`
	Distractors int `mapstructure:"distractors"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReminderConfig drives memoflow watch.
type ReminderConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Options controls where Load looks for input.
type Options struct {
	// ConfigFile is an explicit YAML file. It must exist when set.
	ConfigFile string
	// EnvFile is loaded with godotenv. Defaults to ".env"; a missing file is
	// ignored.
	EnvFile string
	// Lookup reads the environment for provider discovery. Defaults to
	// os.LookupEnv.
	Lookup func(string) (string, bool)
}

// envAliases maps config keys to the short variable names users set.
var envAliases = map[string][]string{
	"llm.provider":           {"MEMOFLOW_LLM_PROVIDER"},
	"llm.anthropic.api_key":  {"MEMOFLOW_ANTHROPIC_API_KEY"},
	"llm.openai.api_key":     {"MEMOFLOW_OPENAI_API_KEY"},
	"llm.openai.base_url":    {"MEMOFLOW_OPENAI_BASE_URL"},
	"llm.gemini.api_key":     {"MEMOFLOW_GEMINI_API_KEY"},
	"llm.openrouter.api_key": {"MEMOFLOW_OPENROUTER_API_KEY"},
	"llm.timeout":            {"MEMOFLOW_LLM_TIMEOUT"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("session.cap", session.DefaultCap)
	v.SetDefault("session.distractors", quiz.DefaultDistractors)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("reminder.interval", 30*time.Minute)

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("llm.timeout", d.Timeout)
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		// The long form MEMOFLOW_LLM_GEMINI_API_KEY keeps working too.
		long := EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
		if err := v.BindEnv(append([]string{key}, append(names, long)...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.LLM, _ = llm.DiscoverConfig(cfg.LLM, lookup)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, explicit string) error {
	path := explicit
	if path == "" {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/memoflow/config.yaml, falling
// back to ~/.config.
func DefaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "memoflow", "config.yaml")
}

// Validate rejects settings the rest of the program cannot run with. LLM
// settings are checked lazily when a provider is built.
func (c *Config) Validate() error {
	if c.Session.Cap <= 0 {
		return fmt.Errorf("session.cap must be positive, got %d", c.Session.Cap)
	}
	if c.Session.Distractors < 0 {
		return fmt.Errorf("session.distractors must not be negative, got %d", c.Session.Distractors)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Reminder.Interval < time.Minute {
		return fmt.Errorf("reminder.interval must be at least 1m, got %s", c.Reminder.Interval)
	}
	return nil
}
