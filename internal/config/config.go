package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// GetListEnv splits a comma separated environment variable.
func GetListEnv(key string, defaultVal []string) []string {
	val := GetEnv(key, "")
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// Config is the process level configuration read once at start up.
// Values an admin may change at runtime live in the settings table and are
// resolved per operation; the Gateway and Commission fields here are only
// their fallbacks.
type Config struct {
	Env         string
	Port        string
	CORSOrigins string

	DB    DBConfig
	Redis RedisConfig
	Kafka KafkaConfig

	JWTSecret string

	Defaults SettingDefaults
}

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers      []string
	PaymentTopic string
}

// SettingDefaults are the environment fallbacks for admin-editable settings.
type SettingDefaults struct {
	CommissionPercentage string
	MerchantID           string
	MerchantKey          string
	Mode                 string
	Website              string
	ChannelID            string
	IndustryType         string
	CallbackURL          string
	FrontendURL          string
}

// Load builds the Config from the environment.
func Load() *Config {
	return &Config{
		Env:         GetEnv("ENV", "development"),
		Port:        GetEnv("PORT", "5000"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "http://localhost:3000"),
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "broheal"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:      GetListEnv("KAFKA_BROKERS", nil),
			PaymentTopic: GetEnv("KAFKA_PAYMENT_TOPIC", "payment-events"),
		},
		JWTSecret: GetEnv("JWT_SECRET", "broheal"),
		Defaults: SettingDefaults{
			CommissionPercentage: GetEnv("COMMISSION_PERCENTAGE", "10"),
			MerchantID:           GetEnv("PAYTM_MERCHANT_ID", ""),
			MerchantKey:          GetEnv("PAYTM_MERCHANT_KEY", ""),
			Mode:                 GetEnv("PAYTM_MODE", "staging"),
			Website:              GetEnv("PAYTM_WEBSITE", "WEB"),
			ChannelID:            GetEnv("PAYTM_CHANNEL_ID", "WEB"),
			IndustryType:         GetEnv("PAYTM_INDUSTRY_TYPE", "Retail"),
			CallbackURL:          GetEnv("PAYTM_CALLBACK_URL", ""),
			FrontendURL:          GetEnv("FRONTEND_URL", "http://localhost:3000"),
		},
	}
}
