package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	LogLevel string
	Shopify  ShopifyConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Session  SessionConfig
	Limits   RateLimitConfig
}

type ShopifyConfig struct {
	APIKey     string
	APISecret  string
	Scopes     string
	AppURL     string
	APIVersion string
}

type PostgresConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	EncryptionKey []byte
	CacheTTL      time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHOPIFY_SCOPES", "read_products")
	v.SetDefault("SHOPIFY_API_VERSION", "2025-01")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_CACHE_TTL", "10m")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
}

// Load reads configuration from the environment. When CONFIG_FILE is set the
// file is read first and environment variables override it.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Shopify: ShopifyConfig{
			APIKey:     strings.TrimSpace(v.GetString("SHOPIFY_API_KEY")),
			APISecret:  strings.TrimSpace(v.GetString("SHOPIFY_API_SECRET")),
			Scopes:     strings.TrimSpace(v.GetString("SHOPIFY_SCOPES")),
			AppURL:     strings.TrimRight(strings.TrimSpace(v.GetString("SHOPIFY_APP_URL")), "/"),
			APIVersion: strings.TrimSpace(v.GetString("SHOPIFY_API_VERSION")),
		},
		Postgres: PostgresConfig{URL: v.GetString("DATABASE_URL")},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{CacheTTL: v.GetDuration("SESSION_CACHE_TTL")},
		Limits: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	for key, val := range map[string]string{
		"SHOPIFY_API_KEY":    cfg.Shopify.APIKey,
		"SHOPIFY_API_SECRET": cfg.Shopify.APISecret,
		"SHOPIFY_APP_URL":    cfg.Shopify.AppURL,
	} {
		if val == "" {
			return Config{}, fmt.Errorf("missing required config: %s", key)
		}
	}

	key, err := decodeKey(v.GetString("SESSION_ENCRYPTION_KEY"))
	if err != nil {
		return Config{}, err
	}
	cfg.Session.EncryptionKey = key

	return cfg, nil
}

func decodeKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("missing required config: SESSION_ENCRYPTION_KEY")
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_ENCRYPTION_KEY: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid SESSION_ENCRYPTION_KEY: expected 32 bytes, got %d", len(key))
	}
	return key, nil
}
