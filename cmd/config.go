package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr selects the Redis cache; empty means the in-process cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// CacheSettleDelay is the wait before the second eviction of a changed order.
	CacheSettleDelay time.Duration

	AdminJWTSecret string

	PendingOrderTTL       time.Duration
	ExpirePendingSchedule string
	WebhookEventRetention time.Duration
	PruneEventsSchedule   string

	DefaultCurrency string
	LogLevel        string
}

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	var problems []error
	if strings.TrimSpace(c.AdminJWTSecret) == "" {
		problems = append(problems, errors.New("ADMIN_JWT_SECRET is required"))
	}
	if c.DBHost == "" || c.DBName == "" {
		problems = append(problems, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.PendingOrderTTL <= 0 {
		problems = append(problems, fmt.Errorf("PENDING_ORDER_TTL must be positive, got %s", c.PendingOrderTTL))
	}
	if c.WebhookEventRetention <= 0 {
		problems = append(problems, fmt.Errorf("WEBHOOK_EVENT_RETENTION must be positive, got %s", c.WebhookEventRetention))
	}
	if len(strings.TrimSpace(c.DefaultCurrency)) != 3 {
		problems = append(problems, fmt.Errorf("DEFAULT_CURRENCY must be a 3 letter code, got %q", c.DefaultCurrency))
	}
	return errors.Join(problems...)
}

// LoadConfig reads the configuration from the environment. A .env file in
// envFile, when present, fills variables that are not already set.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		RedisAddr:             v.GetString("REDIS_ADDR"),
		RedisPassword:         v.GetString("REDIS_PASSWORD"),
		RedisDB:               v.GetInt("REDIS_DB"),
		CacheTTL:              v.GetDuration("CACHE_TTL"),
		CacheSettleDelay:      v.GetDuration("CACHE_SETTLE_DELAY"),
		AdminJWTSecret:        v.GetString("ADMIN_JWT_SECRET"),
		PendingOrderTTL:       v.GetDuration("PENDING_ORDER_TTL"),
		ExpirePendingSchedule: v.GetString("EXPIRE_PENDING_SCHEDULE"),
		WebhookEventRetention: v.GetDuration("WEBHOOK_EVENT_RETENTION"),
		PruneEventsSchedule:   v.GetString("PRUNE_EVENTS_SCHEDULE"),
		DefaultCurrency:       strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
		LogLevel:              v.GetString("LOG_LEVEL"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CACHE_SETTLE_DELAY", "2s")
	v.SetDefault("PENDING_ORDER_TTL", "24h")
	v.SetDefault("EXPIRE_PENDING_SCHEDULE", "0 */5 * * * *")
	v.SetDefault("WEBHOOK_EVENT_RETENTION", "720h")
	v.SetDefault("PRUNE_EVENTS_SCHEDULE", "0 30 3 * * *")
	v.SetDefault("DEFAULT_CURRENCY", "EUR")
	v.SetDefault("LOG_LEVEL", "info")
}
