package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting the service needs. It is built once
// at startup and passed into constructors; request-handling code never
// reads configuration from the environment directly.
type Config struct {
	AppPort          string
	DatabaseURL      string
	AccessSecret     string
	AccessExpiresIn  time.Duration
	RefreshSecret    string
	RefreshExpiresIn time.Duration
	AllowedOrigins   []string
	RabbitMQURL      string
}

// Load reads configuration from environment variables via Viper,
// falling back to development defaults.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=tracku port=5432")
	viper.SetDefault("ACCESS_SECRET", "dev-access-secret")
	viper.SetDefault("ACCESS_EXPIRES_IN", "15m")
	viper.SetDefault("REFRESH_SECRET", "dev-refresh-secret")
	viper.SetDefault("REFRESH_EXPIRES_IN", "168h")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return Config{
		AppPort:          viper.GetString("APP_PORT"),
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		AccessSecret:     viper.GetString("ACCESS_SECRET"),
		AccessExpiresIn:  viper.GetDuration("ACCESS_EXPIRES_IN"),
		RefreshSecret:    viper.GetString("REFRESH_SECRET"),
		RefreshExpiresIn: viper.GetDuration("REFRESH_EXPIRES_IN"),
		AllowedOrigins:   strings.Split(viper.GetString("ALLOWED_ORIGINS"), ","),
		RabbitMQURL:      viper.GetString("RABBITMQ_URL"),
	}
}
