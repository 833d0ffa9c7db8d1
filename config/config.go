package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// OpenAI drives the planner, reviewer and review embeddings.
	OpenAIAPIKey   string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel    string `mapstructure:"OPENAI_MODEL"`
	EmbeddingModel string `mapstructure:"EMBEDDING_MODEL"`

	// Amadeus covers flight and hotel search.
	AmadeusAPIKey    string `mapstructure:"AMADEUS_API_KEY"`
	AmadeusAPISecret string `mapstructure:"AMADEUS_API_SECRET"`

	OpenWeatherAPIKey  string `mapstructure:"OPENWEATHER_API_KEY"`
	GooglePlacesAPIKey string `mapstructure:"GOOGLE_PLACES_API_KEY"`

	// ResultTTL bounds how long finished plans stay retrievable.
	ResultTTL time.Duration `mapstructure:"RESULT_TTL"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("EMBEDDING_MODEL", "text-embedding-3-small")
	viper.SetDefault("RESULT_TTL", time.Hour)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	cfg := new(Config)
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate fails on missing required keys and logs a warning for each
// optional provider that will be skipped.
func (c *Config) Validate(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.AmadeusAPIKey == "" || c.AmadeusAPISecret == "" {
		logger.Warn("amadeus credentials missing, flight and hotel search disabled")
	}
	if c.OpenWeatherAPIKey == "" {
		logger.Warn("openweather key missing, weather lookups disabled")
	}
	if c.GooglePlacesAPIKey == "" {
		logger.Warn("google places key missing, place search disabled")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
