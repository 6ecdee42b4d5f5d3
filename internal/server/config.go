package server

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/mealendar-ai/mealendar/internal/ai"
)

// Config is the top-level daemon configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Google  GoogleConfig  `mapstructure:"google"`
	Session SessionConfig `mapstructure:"session"`
	AI      ai.Config     `mapstructure:"ai"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Listen         string `mapstructure:"listen"`
	FrontendOrigin string `mapstructure:"frontend_origin"`
}

// GoogleConfig holds OAuth2 client credentials.
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"` // #nosec G117 -- config deserialization, not hardcoded
	RedirectURI  string `mapstructure:"redirect_uri"`
}

// SessionConfig holds browser session settings.
type SessionConfig struct {
	Secret  string        `mapstructure:"secret"` // #nosec G117 -- config deserialization, not hardcoded
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoadConfig reads configuration from file, env, and defaults.
func LoadConfig(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.listen", "127.0.0.1:8000")
	v.SetDefault("server.frontend_origin", "http://localhost:3000")
	v.SetDefault("session.timeout", 24*time.Hour)
	v.SetDefault("ai.model", "gemini-1.5-flash-latest")
	v.SetDefault("ai.max_tokens", 1024)
	v.SetDefault("ai.temperature", 0.0)

	v.SetConfigType("toml")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("mealendar")
		v.AddConfigPath("/etc/mealendar")
		v.AddConfigPath("$HOME/.config/mealendar")
		v.AddConfigPath(".")
	}

	v.BindEnv("google.client_id", "GOOGLE_CLIENT_ID")
	v.BindEnv("google.client_secret", "GOOGLE_CLIENT_SECRET")
	v.BindEnv("google.redirect_uri", "REDIRECT_URI")
	v.BindEnv("session.secret", "SECRET_KEY")
	v.BindEnv("ai.api_key", "GEMINI_API_KEY")

	// Config file is optional.
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ValidateForRun checks that the config is valid for serving.
func ValidateForRun(cfg Config) error {
	if cfg.Google.ClientID == "" {
		return fmt.Errorf("google.client_id is required (set via config file or GOOGLE_CLIENT_ID env var)")
	}
	if cfg.Google.ClientSecret == "" {
		return fmt.Errorf("google.client_secret is required (set via config file or GOOGLE_CLIENT_SECRET env var)")
	}
	if cfg.Google.RedirectURI == "" {
		return fmt.Errorf("google.redirect_uri is required (set via config file or REDIRECT_URI env var)")
	}
	if cfg.Session.Secret == "" {
		return fmt.Errorf("session.secret is required (set via config file or SECRET_KEY env var)")
	}
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required (set via config file or GEMINI_API_KEY env var)")
	}
	return nil
}
