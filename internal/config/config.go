package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Uniqueness policies for specialty categories per user.
const (
	UniquenessClient = "client"
	UniquenessStore  = "store"
)

// Config holds application level configuration loaded from environment variables
// and, when present, a .env or config.env file in the working directory.
type Config struct {
	AppEnv      string
	LogLevel    string
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string
	ResetDB     bool

	// Uniqueness decides whether the store rejects a second specialty with the
	// same category for one user ("store") or leaves it to the picker ("client").
	Uniqueness string
	ToastTTL   time.Duration
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	v := viper.New()

	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	_ = v.ReadInConfig() // optional
	v.SetConfigName("config")
	_ = v.MergeInConfig() // optional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return &Config{
		AppEnv:      v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		ServerPort:  v.GetString("SERVER_PORT"),
		MySQLDSN:    v.GetString("MYSQL_DSN"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		RedisDB:     v.GetInt("REDIS_DB"),
		RedisPass:   v.GetString("REDIS_PASSWORD"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		SwaggerHost: v.GetString("SWAGGER_HOST"),
		ResetDB:     v.GetBool("RESET_DB"),
		Uniqueness:  normalizeUniqueness(v.GetString("SPECIALTY_UNIQUENESS")),
		ToastTTL:    v.GetDuration("TOAST_TTL"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("SWAGGER_HOST", "")
	v.SetDefault("RESET_DB", false)
	v.SetDefault("SPECIALTY_UNIQUENESS", UniquenessClient)
	v.SetDefault("TOAST_TTL", time.Minute)
}

// unknown values fall back to the client-side policy
func normalizeUniqueness(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), UniquenessStore) {
		return UniquenessStore
	}
	return UniquenessClient
}
