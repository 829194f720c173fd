package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// QUICKAI_ prefix with underscores separating nested keys (for example
// QUICKAI_SERVER_PORT, QUICKAI_LLM_GEMINI_API_KEY) and take precedence
// over file values.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("QUICKAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment can carry everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values so viper knows every key exists,
// which is required for AutomaticEnv to pick up nested keys.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")

	v.SetDefault("identity.base_url", "")
	v.SetDefault("identity.secret_key", "")
	v.SetDefault("identity.jwt_secret", "")

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.5-flash")

	v.SetDefault("image.clipdrop_api_key", "")
	v.SetDefault("image.clipdrop_base_url", "https://clipdrop-api.co")
	v.SetDefault("image.cloudinary_url", "")
	v.SetDefault("image.upload_folder", "quickai")
}
