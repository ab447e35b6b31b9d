// Package config provides Viper-based hierarchical configuration: defaults,
// an optional config.yaml, a .env file and the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"resume-formatter/internal/usecase"
)

// Oracle providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderService   = "service"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	Server struct {
		Port                   string `mapstructure:"port"`
		BodyLimitMB            int    `mapstructure:"body_limit_mb"`
		ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
	} `mapstructure:"server"`

	Auth struct {
		Password      string `mapstructure:"password"`
		SessionSecret string `mapstructure:"session_secret"`
		CookieSecure  bool   `mapstructure:"cookie_secure"`
		SessionDays   int    `mapstructure:"session_days"`
	} `mapstructure:"auth"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Extraction struct {
		Strategy       string `mapstructure:"strategy"`
		NativeFallback bool   `mapstructure:"native_fallback"`
		MinBytes       int    `mapstructure:"min_bytes"`
	} `mapstructure:"extraction"`

	AI struct {
		Provider       string  `mapstructure:"provider"`
		Temperature    float64 `mapstructure:"temperature"`
		MaxTokens      int     `mapstructure:"max_tokens"`
		TimeoutSeconds int     `mapstructure:"timeout_seconds"`
		Gemini         struct {
			APIKey string `mapstructure:"api_key"`
			Model  string `mapstructure:"model"`
		} `mapstructure:"gemini"`
		Anthropic struct {
			APIKey string `mapstructure:"api_key"`
			Model  string `mapstructure:"model"`
		} `mapstructure:"anthropic"`
		Service struct {
			URL string `mapstructure:"url"`
		} `mapstructure:"service"`
	} `mapstructure:"ai"`

	Render struct {
		ChromePath     string `mapstructure:"chrome_path"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"render"`
}

// Load reads configuration. A missing config file or .env file is not an
// error; a malformed one is logged and skipped.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.resume-formatter")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RESUME")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	// Unprefixed variables the deployment already uses.
	bindings := map[string][]string{
		"server.port":          {"PORT"},
		"auth.password":        {"APP_PASSWORD"},
		"ai.gemini.api_key":    {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
		"ai.anthropic.api_key": {"ANTHROPIC_API_KEY"},
		"ai.service.url":       {"AI_SERVICE_URL"},
		"render.chrome_path":   {"CHROME_PATH"},
	}
	for key, envs := range bindings {
		args := append([]string{key, "RESUME_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Auth.SessionSecret == "" {
		cfg.Auth.SessionSecret = cfg.Auth.Password
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.body_limit_mb", 10)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("auth.password", "")
	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("auth.session_days", 7)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("extraction.strategy", usecase.StrategyLocal)
	v.SetDefault("extraction.native_fallback", false)
	v.SetDefault("extraction.min_bytes", 50)

	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.temperature", 0.1)
	v.SetDefault("ai.max_tokens", 8192)
	v.SetDefault("ai.timeout_seconds", 120)
	v.SetDefault("ai.gemini.api_key", "")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.anthropic.api_key", "")
	v.SetDefault("ai.anthropic.model", "claude-3-7-sonnet-latest")
	v.SetDefault("ai.service.url", "http://ai-service:8000")

	v.SetDefault("render.chrome_path", "")
	v.SetDefault("render.timeout_seconds", 60)
}

// validate rejects values no component could act on. Missing credentials are
// not rejected here: the oracle fails fast on them per request so the server
// still starts and answers health checks.
func validate(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}
	switch cfg.Extraction.Strategy {
	case usecase.StrategyLocal, usecase.StrategyNative:
	default:
		return fmt.Errorf("invalid extraction.strategy: %s (must be '%s' or '%s')", cfg.Extraction.Strategy, usecase.StrategyLocal, usecase.StrategyNative)
	}
	if cfg.Extraction.MinBytes < 0 {
		return fmt.Errorf("extraction.min_bytes must not be negative, got: %d", cfg.Extraction.MinBytes)
	}
	switch cfg.AI.Provider {
	case ProviderGemini, ProviderAnthropic, ProviderService:
	default:
		return fmt.Errorf("invalid ai.provider: %s", cfg.AI.Provider)
	}
	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2, got: %f", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens < 1 {
		return fmt.Errorf("ai.max_tokens must be positive, got: %d", cfg.AI.MaxTokens)
	}
	if cfg.AI.TimeoutSeconds < 0 || cfg.Render.TimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if cfg.Auth.SessionDays < 1 {
		return fmt.Errorf("auth.session_days must be at least 1, got: %d", cfg.Auth.SessionDays)
	}
	return nil
}

// SessionMaxAge is the lifetime of the session cookie.
func (c *Config) SessionMaxAge() time.Duration {
	return time.Duration(c.Auth.SessionDays) * 24 * time.Hour
}

// AITimeout is the deadline the HTTP layer puts on one oracle call; zero
// means none.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// RenderTimeout bounds one headless-browser print.
func (c *Config) RenderTimeout() time.Duration {
	return time.Duration(c.Render.TimeoutSeconds) * time.Second
}

// ShutdownTimeout bounds graceful server shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// BodyLimit is the maximum request body in bytes.
func (c *Config) BodyLimit() int {
	return c.Server.BodyLimitMB * 1024 * 1024
}
