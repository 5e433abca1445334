// Package config loads kotoba configuration from defaults, a TOML file,
// an optional .env file and KOTOBA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/kotoba/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Learner LearnerConfig `toml:"learner"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// LLMConfig selects and tunes the generation provider.
type LLMConfig struct {
	Provider string        `toml:"provider" validate:"oneof=gemini gemini-sdk anthropic openai openrouter mock"`
	Model    string        `toml:"model"`
	BaseURL  string        `toml:"base_url" validate:"omitempty,url"`
	Timeout  time.Duration `toml:"timeout" validate:"gt=0"`

	// APIKey is the lowest-priority credential source.
	APIKey string `toml:"api_key"`
}

// LearnerConfig holds learner defaults.
type LearnerConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// ServerConfig configures the local bridge.
type ServerConfig struct {
	Addr string `toml:"addr" validate:"required,hostname_port"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider: llm.ProviderGemini,
			Timeout:  30 * time.Second,
		},
		Server: ServerConfig{Addr: "127.0.0.1:7878"},
		Log:    LogConfig{Level: "warn", Format: "text"},
	}
}

// Overrides carries command-line values. Empty fields are ignored.
type Overrides struct {
	Provider string
	Model    string
	Level    string
	Addr     string
	LogLevel string
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigPath is the TOML file. Empty means DefaultConfigPath, where a
	// missing file is fine. An explicit path must exist.
	ConfigPath string

	// EnvFile is loaded with godotenv when present. Empty means ".env".
	EnvFile string

	Overrides Overrides
}

// Load builds the configuration: defaults, then the TOML file, then the
// .env file, then KOTOBA_* variables, then overrides. The result is validated.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path, explicit := opts.ConfigPath, opts.ConfigPath != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if err := decodeFile(path, explicit, &cfg); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.apply(opts.Overrides)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeFile(path string, mustExist bool, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil
		}
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	setString("KOTOBA_LLM_PROVIDER", &cfg.LLM.Provider)
	setString("KOTOBA_LLM_MODEL", &cfg.LLM.Model)
	setString("KOTOBA_LLM_BASE_URL", &cfg.LLM.BaseURL)
	setString("KOTOBA_LEVEL", &cfg.Learner.Level)
	setString("KOTOBA_SERVER_ADDR", &cfg.Server.Addr)
	setString("KOTOBA_LOG_LEVEL", &cfg.Log.Level)
	setString("KOTOBA_LOG_FORMAT", &cfg.Log.Format)

	if v := os.Getenv("KOTOBA_LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid KOTOBA_LLM_TIMEOUT %q: %w", v, err)
		}
		cfg.LLM.Timeout = d
	}
	return nil
}

func (c *Config) apply(o Overrides) {
	if o.Provider != "" {
		c.LLM.Provider = o.Provider
	}
	if o.Model != "" {
		c.LLM.Model = o.Model
	}
	if o.Level != "" {
		c.Learner.Level = o.Level
	}
	if o.Addr != "" {
		c.Server.Addr = o.Addr
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
}

func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.Learner.Level = strings.ToLower(strings.TrimSpace(c.Learner.Level))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ProviderConfig converts the LLM section into an llm.Config. The API key
// is left empty; keys are resolved per call.
func (c Config) ProviderConfig() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	out.Timeout = c.LLM.Timeout
	return out.WithModel(c.LLM.Model).WithBaseURL(c.LLM.BaseURL)
}
