package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Persistence. When DATABASE_URL is set the document lives in MongoDB;
	// otherwise it is kept in the JSON file at DATA_FILE.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DataFile    string `mapstructure:"DATA_FILE"`

	// Redis configuration. Empty REDIS_ADDR disables the availability cache
	// and the reminder queue.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// ConfirmationTimeLimitMinutes is the window an unconfirmed booking is
	// held before its slot is released. A short value eases live testing.
	ConfirmationTimeLimitMinutes int `mapstructure:"CONFIRMATION_TIME_LIMIT_MINUTES"`

	// LeadTimeHours is the minimum gap between booking time and the
	// appointment instant.
	LeadTimeHours int `mapstructure:"LEAD_TIME_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATA_FILE", "data.json")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("CONFIRMATION_TIME_LIMIT_MINUTES", 30)
	viper.SetDefault("LEAD_TIME_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// ConfirmationWindow returns the configured confirmation time limit as a
// duration.
func ConfirmationWindow() time.Duration {
	return time.Duration(AppConfig.ConfirmationTimeLimitMinutes) * time.Minute
}

// LeadTime returns the configured minimum booking lead time as a duration.
func LeadTime() time.Duration {
	return time.Duration(AppConfig.LeadTimeHours) * time.Hour
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
