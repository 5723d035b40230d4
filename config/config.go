package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"salonbot/models"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB holds confirmed reservations.
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	DatabaseName       string `mapstructure:"DATABASE_NAME"`
	PersistenceEnabled bool   `mapstructure:"PERSISTENCE_ENABLED"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Dialogue sessions.
	SessionBackend       string        `mapstructure:"SESSION_BACKEND"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL"`
	SessionSweepSchedule string        `mapstructure:"SESSION_SWEEP_SCHEDULE"`

	NotificationsEnabled bool `mapstructure:"NOTIFICATIONS_ENABLED"`

	// Twilio webhook signature verification; disabled when the token is empty.
	TwilioAuthToken string `mapstructure:"TWILIO_AUTH_TOKEN"`
	PublicBaseURL   string `mapstructure:"PUBLIC_BASE_URL"`

	// Admin API bearer tokens are HS256 JWTs signed with this secret.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	BusinessName         string   `mapstructure:"BUSINESS_NAME"`
	BusinessServices     []string `mapstructure:"BUSINESS_SERVICES"`
	BusinessWorkingHours string   `mapstructure:"BUSINESS_WORKING_HOURS"`
	BusinessTimeSlots    []string `mapstructure:"BUSINESS_TIME_SLOTS"`
}

var AppConfig Config

// LoadConfig reads config.yaml (if any), environment variables and defaults
// into AppConfig. Invalid configuration is fatal.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load builds a validated Config without touching AppConfig.
func Load() (Config, error) {
	v := viper.New()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.BusinessServices = cleanList(cfg.BusinessServices)
	cfg.BusinessTimeSlots = cleanList(cfg.BusinessTimeSlots)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	business := models.DefaultBusinessConfig()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "booking_system")
	v.SetDefault("PERSISTENCE_ENABLED", true)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_TTL", "0s")
	v.SetDefault("SESSION_SWEEP_SCHEDULE", "@every 1m")
	v.SetDefault("NOTIFICATIONS_ENABLED", true)
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("BUSINESS_NAME", business.Name)
	v.SetDefault("BUSINESS_SERVICES", business.Services)
	v.SetDefault("BUSINESS_WORKING_HOURS", business.WorkingHours)
	v.SetDefault("BUSINESS_TIME_SLOTS", business.TimeSlots)
}

// cleanList trims entries. A single comma-separated entry, as set through an
// environment variable, is split.
func cleanList(items []string) []string {
	if len(items) == 1 && strings.Contains(items[0], ",") {
		items = strings.Split(items[0], ",")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if len(c.BusinessServices) == 0 {
		problems = append(problems, "BUSINESS_SERVICES must list at least one service")
	}
	for i, s := range c.BusinessServices {
		if strings.TrimSpace(s) == "" {
			problems = append(problems, fmt.Sprintf("BUSINESS_SERVICES entry %d is empty", i+1))
		}
	}
	if len(c.BusinessTimeSlots) == 0 {
		problems = append(problems, "BUSINESS_TIME_SLOTS must list at least one slot")
	}
	for i, s := range c.BusinessTimeSlots {
		if strings.TrimSpace(s) == "" {
			problems = append(problems, fmt.Sprintf("BUSINESS_TIME_SLOTS entry %d is empty", i+1))
		}
	}
	if c.SessionBackend != SessionBackendMemory && c.SessionBackend != SessionBackendRedis {
		problems = append(problems, fmt.Sprintf("SESSION_BACKEND must be %q or %q, got: %q", SessionBackendMemory, SessionBackendRedis, c.SessionBackend))
	}
	if c.SessionTTL < 0 {
		problems = append(problems, fmt.Sprintf("SESSION_TTL cannot be negative, got: %s", c.SessionTTL))
	}
	if c.TwilioAuthToken != "" && strings.TrimSpace(c.PublicBaseURL) == "" {
		problems = append(problems, "PUBLIC_BASE_URL is required when TWILIO_AUTH_TOKEN is set (webhook signatures cover the full public URL)")
	}
	if c.MaxRequestsPerMin <= 0 {
		problems = append(problems, fmt.Sprintf("MAX_REQUESTS_PER_MIN must be positive, got: %d", c.MaxRequestsPerMin))
	}

	if len(problems) > 0 {
		msg := "configuration validation failed:\n"
		for i, p := range problems {
			msg += fmt.Sprintf("  %d. %s\n", i+1, p)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// Business projects the catalog section for the dialogue.
func (c Config) Business() models.BusinessConfig {
	return models.BusinessConfig{
		Name:         c.BusinessName,
		Services:     append([]string(nil), c.BusinessServices...),
		WorkingHours: c.BusinessWorkingHours,
		TimeSlots:    append([]string(nil), c.BusinessTimeSlots...),
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
