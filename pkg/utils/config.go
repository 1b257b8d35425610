package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Legacy   LegacyConfig
	Email    EmailConfig
	Session  SessionConfig
	Pricing  PricingConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	RequestTimeout time.Duration
	RateLimit      int
	Production     bool
	// Location is the operator's time zone; "today" for schedules is taken here.
	Location *time.Location
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	IdempotencyTTL time.Duration
}

// LegacyConfig points at the WordPress site that still owns older bookings.
type LegacyConfig struct {
	BaseURL    string
	APIKey     string
	CustomPath string
	Timeout    time.Duration
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	BCC      string
}

type SessionConfig struct {
	ExpiryHours int
}

type PricingConfig struct {
	TaxJapan          float64
	TaxThailand       float64
	FallbackBasePrice float64
	RatesURL          string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "fleet-dispatch")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("TIMEZONE", "Asia/Tokyo")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")
	viper.SetDefault("WORDPRESS_API_TIMEOUT", "15s")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_FROM_NAME", "Fleet Dispatch")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("TAX_JAPAN", 10)
	viper.SetDefault("TAX_THAILAND", 7)
	viper.SetDefault("FALLBACK_BASE_PRICE", 32000)
	viper.SetDefault("EXCHANGE_RATES_URL", "https://api.exchangerate.host/latest?base=JPY")

	// .env is optional, the process environment is enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	loc, err := time.LoadLocation(viper.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimit:      viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			Production:     strings.EqualFold(viper.GetString("APP_ENV"), "production"),
			Location:       loc,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:           viper.GetString("REDIS_ADDR"),
			Password:       viper.GetString("REDIS_PASSWORD"),
			DB:             viper.GetInt("REDIS_DB"),
			IdempotencyTTL: viper.GetDuration("IDEMPOTENCY_TTL"),
		},
		Legacy: LegacyConfig{
			BaseURL:    strings.TrimRight(viper.GetString("WORDPRESS_API_URL"), "/"),
			APIKey:     viper.GetString("WORDPRESS_API_KEY"),
			CustomPath: viper.GetString("WORDPRESS_API_CUSTOM_PATH"),
			Timeout:    viper.GetDuration("WORDPRESS_API_TIMEOUT"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
			FromName: viper.GetString("EMAIL_FROM_NAME"),
			BCC:      viper.GetString("EMAIL_BCC"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Pricing: PricingConfig{
			TaxJapan:          viper.GetFloat64("TAX_JAPAN"),
			TaxThailand:       viper.GetFloat64("TAX_THAILAND"),
			FallbackBasePrice: viper.GetFloat64("FALLBACK_BASE_PRICE"),
			RatesURL:          viper.GetString("EXCHANGE_RATES_URL"),
		},
	}

	return config, nil
}

// viper reports a missing explicit config file as a plain *fs.PathError
func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}
