// Package config loads process configuration from the environment, with a
// local .env file honored for development.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	HTTPAddress string `mapstructure:"HTTP_ADDRESS"`

	MongoURI            string        `mapstructure:"MONGO_URI"`
	MongoDatabase       string        `mapstructure:"MONGO_DB"`
	MongoConnectRetries int           `mapstructure:"MONGO_CONNECT_RETRIES"`
	MongoConnectBackoff time.Duration `mapstructure:"MONGO_CONNECT_BACKOFF"`

	// RegistrationPolicy selects the side effect of registering for an event:
	// "favorites" (historical behavior) or "attendance".
	RegistrationPolicy string `mapstructure:"REGISTRATION_POLICY"`

	BcryptCost int `mapstructure:"BCRYPT_COST"`
}

// Load reads the environment. Defaults keep a bare local run working.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("HTTP_ADDRESS", ":8080")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "dvizh")
	viper.SetDefault("MONGO_CONNECT_RETRIES", 5)
	viper.SetDefault("MONGO_CONNECT_BACKOFF", "2s")
	viper.SetDefault("REGISTRATION_POLICY", "favorites")
	viper.SetDefault("BCRYPT_COST", 0)

	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
