// Package config loads server settings from defaults, an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alexsisay/alemu-portfolio-backend/internal/provider"
)

type Config struct {
	Port              string        `mapstructure:"port"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	AITimeout         time.Duration `mapstructure:"ai_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	GinMode           string        `mapstructure:"gin_mode"`
	ContentFile       string        `mapstructure:"content_file"`
	FallbackRulesFile string        `mapstructure:"fallback_rules_file"`

	Gemini      ProviderConfig `mapstructure:"gemini"`
	OpenAI      ProviderConfig `mapstructure:"openai"`
	HuggingFace ProviderConfig `mapstructure:"huggingface"`

	Log LogConfig `mapstructure:"log"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var envBindings = map[string]string{
	"port":                 "PORT",
	"allowed_origins":      "ALLOWED_ORIGINS",
	"ai_timeout":           "AI_TIMEOUT",
	"shutdown_timeout":     "SHUTDOWN_TIMEOUT",
	"gin_mode":             "GIN_MODE",
	"content_file":         "CONTENT_FILE",
	"fallback_rules_file":  "FALLBACK_RULES_FILE",
	"gemini.api_key":       "GEMINI_API_KEY",
	"gemini.model":         "GEMINI_MODEL",
	"gemini.base_url":      "GEMINI_BASE_URL",
	"openai.api_key":       "OPENAI_API_KEY",
	"openai.model":         "OPENAI_MODEL",
	"openai.base_url":      "OPENAI_BASE_URL",
	"huggingface.api_key":  "HUGGINGFACE_API_KEY",
	"huggingface.model":    "HUGGINGFACE_MODEL",
	"huggingface.base_url": "HUGGINGFACE_BASE_URL",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("allowed_origins", []string{"http://localhost:3000", "https://alexsisay.github.io"})
	v.SetDefault("ai_timeout", 8*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration. configPath may be empty; a missing .env file is
// not an error.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.AllowedOrigins = splitOrigins(cfg.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: port is required")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("config: ai_timeout must be positive, got %s", c.AITimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// ProviderSettings maps the configured credentials onto the provider
// selector's input.
func (c *Config) ProviderSettings() provider.Settings {
	return provider.Settings{
		Gemini:      provider.Credentials(c.Gemini),
		OpenAI:      provider.Credentials(c.OpenAI),
		HuggingFace: provider.Credentials(c.HuggingFace),
	}
}

// ALLOWED_ORIGINS arrives as one comma separated string.
func splitOrigins(in []string) []string {
	var out []string
	for _, s := range in {
		for _, o := range strings.Split(s, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
