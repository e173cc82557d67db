package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const DefaultBaseURL = "https://aiagentitimedatedaybackend.vercel.app"

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type APIConfig struct {
	BaseURL        string        `toml:"base_url"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	PollInterval   time.Duration `toml:"poll_interval"`
}

type UIConfig struct {
	RevealDelay     time.Duration `toml:"reveal_delay"`
	ApologyDelay    time.Duration `toml:"apology_delay"`
	TransitionDelay time.Duration `toml:"transition_delay"`
	TypingInterval  time.Duration `toml:"typing_interval"`
}

type TelemetryConfig struct {
	Traces bool `toml:"traces"`
}

type UserConfig struct {
	API       APIConfig       `toml:"api"`
	UI        UIConfig        `toml:"ui"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// Config is the flattened runtime configuration built from settings.toml,
// config.toml and TIMECHAT_* environment overrides.
type Config struct {
	DataDirectory string `validate:"required"`

	BaseURL        string        `validate:"required,http_url"`
	RequestTimeout time.Duration `validate:"gt=0"`
	PollInterval   time.Duration `validate:"gt=0"`

	RevealDelay     time.Duration `validate:"gte=0"`
	ApologyDelay    time.Duration `validate:"gte=0"`
	TransitionDelay time.Duration `validate:"gte=0"`
	TypingInterval  time.Duration `validate:"gt=0"`

	TracesEnabled bool
	Debug         bool

	Keybindings *KeyBindingsConfig `validate:"-"`
}

// envOverrides mirrors the subset of Config that may be set from the
// environment. Zero values mean "not set".
type envOverrides struct {
	BaseURL        string        `envconfig:"BASE_URL"`
	DataDir        string        `envconfig:"DATA_DIR"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	PollInterval   time.Duration `envconfig:"POLL_INTERVAL"`
	Debug          bool          `envconfig:"DEBUG"`
	Traces         bool          `envconfig:"TRACES"`
}

const envPrefix = "TIMECHAT"

var validate = validator.New()

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyUserConfig(userCfg *UserConfig) {
	c.BaseURL = userCfg.API.BaseURL
	c.RequestTimeout = userCfg.API.RequestTimeout
	c.PollInterval = userCfg.API.PollInterval
	c.RevealDelay = userCfg.UI.RevealDelay
	c.ApologyDelay = userCfg.UI.ApologyDelay
	c.TransitionDelay = userCfg.UI.TransitionDelay
	c.TypingInterval = userCfg.UI.TypingInterval
	c.TracesEnabled = userCfg.Telemetry.Traces
}

func loadEnvOverrides() (*envOverrides, error) {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to read %s_* environment: %w", envPrefix, err)
	}
	return &env, nil
}

func (c *Config) applyEnvOverrides(env *envOverrides) {
	if env.BaseURL != "" {
		c.BaseURL = env.BaseURL
	}
	if env.RequestTimeout != 0 {
		c.RequestTimeout = env.RequestTimeout
	}
	if env.PollInterval != 0 {
		c.PollInterval = env.PollInterval
	}
	if env.Debug {
		c.Debug = true
	}
	if env.Traces {
		c.TracesEnabled = true
	}
}

// SetBaseURL overrides the base URL (used for the --base-url flag).
func (c *Config) SetBaseURL(baseURL string) {
	c.BaseURL = strings.TrimRight(baseURL, "/")
}

// Validate checks the configuration after all overrides were applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Keybindings != nil {
		if ok, warning := c.Keybindings.Validate(); !ok {
			return fmt.Errorf("invalid keybindings: %s", warning)
		}
	}
	return nil
}

func Load() (*Config, error) {
	def := DefaultUserConfig()
	cfg := &Config{DataDirectory: GetDefaultDataDir()}
	cfg.applyUserConfig(def)

	env, err := loadEnvOverrides()
	if err != nil {
		return nil, err
	}

	if env.DataDir != "" {
		cfg.DataDirectory = env.DataDir
	} else {
		systemCfg, err := LoadSystemConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load system config: %w", err)
		}
		if systemCfg.DataDirectory != "" {
			cfg.DataDirectory = systemCfg.DataDirectory
		}
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Ensure data directory has correct permissions (fix if needed)
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides(env)
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	kb, err := LoadKeybindings(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	cfg.Keybindings = kb

	return cfg, nil
}
