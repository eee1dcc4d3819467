package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is built once at process start and handed to each component;
// nothing here is a package global.
type Config struct {
	Port       string `yaml:"port"`
	DBPath     string `yaml:"db_path"`
	AppBaseURL string `yaml:"app_base_url"`

	StripeSecretKey     string `yaml:"stripe_secret_key"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret"`
	StripeAPIBase       string `yaml:"stripe_api_base"`

	JWTSecret string `yaml:"jwt_secret"`

	SMTPAddr     string `yaml:"smtp_addr"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	EmailFrom    string `yaml:"email_from"`

	RedisAddr   string `yaml:"redis_addr"`
	KafkaBroker string `yaml:"kafka_broker"`
	KafkaTopic  string `yaml:"kafka_topic"`

	// DwellSeconds overrides the per-status auto-progression dwell.
	DwellSeconds    int                `yaml:"dwell_seconds"`
	DeliveryFee     float64            `yaml:"delivery_fee"`
	AddonSurcharges map[string]float64 `yaml:"addon_surcharges"`
}

// Load builds the configuration from environment variables, then
// overlays the optional YAML file named by CONFIG_FILE.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DBPath:              getEnv("DB_PATH", "pho_paradise.db"),
		AppBaseURL:          getEnv("APP_BASE_URL", "http://localhost:8080"),
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripeAPIBase:       getEnv("STRIPE_API_BASE", ""),
		JWTSecret:           getEnv("JWT_SECRET", "pho_paradise_super_secret_2024"),
		SMTPAddr:            getEnv("SMTP_ADDR", ""),
		SMTPUser:            getEnv("SMTP_USER", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		EmailFrom:           getEnv("EMAIL_FROM", "hello@phoparadise.com"),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		KafkaBroker:         getEnv("KAFKA_BROKER", ""),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "order-status"),
		DwellSeconds:        getEnvInt("DWELL_SECONDS", 6),
		DeliveryFee:         3.99,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	return cfg, nil
}

// Dwell is the configured per-status dwell duration.
func (c *Config) Dwell() time.Duration {
	return time.Duration(c.DwellSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
