package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Rate limit store backends.
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Log       LogConfig
	CORS      CORSConfig
	Sheets    SheetsConfig
	Turnstile TurnstileConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Client    ClientConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SheetsConfig identifies the target spreadsheet and the service account used
// to append to it. Credentials may be supplied either as a full JSON key or as
// the client email + private key pair.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	ColumnRange     string
	ClientEmail     string
	PrivateKey      string
	CredentialsJSON string
}

// Configured reports whether enough credential material is present to build a
// Sheets client. Absence is a logged, non-fatal condition.
func (c SheetsConfig) Configured() bool {
	if c.SpreadsheetID == "" {
		return false
	}
	return c.CredentialsJSON != "" || (c.ClientEmail != "" && c.PrivateKey != "")
}

// TurnstileConfig controls the advisory token verification call.
type TurnstileConfig struct {
	SecretKey string
	VerifyURL string
	Timeout   time.Duration
}

// RateLimitConfig tunes the per-address request limiter.
type RateLimitConfig struct {
	Store       string
	MaxRequests int
	Window      time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// DatabaseConfig points at the optional submission audit store.
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// Configured reports whether an audit database was supplied.
func (c DatabaseConfig) Configured() bool {
	return c.Host != "" && c.Name != ""
}

// ClientConfig tunes the Go submission client shipped in pkg/client.
type ClientConfig struct {
	SubmitTimeout time.Duration
	DraftTTL      time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Sheets = SheetsConfig{
		SpreadsheetID:   v.GetString("GOOGLE_SHEETS_SPREADSHEET_ID"),
		SheetName:       v.GetString("GOOGLE_SHEETS_SHEET_NAME"),
		ColumnRange:     v.GetString("GOOGLE_SHEETS_COLUMN_RANGE"),
		ClientEmail:     v.GetString("GOOGLE_SHEETS_CLIENT_EMAIL"),
		PrivateKey:      v.GetString("GOOGLE_SHEETS_PRIVATE_KEY"),
		CredentialsJSON: v.GetString("GOOGLE_SHEETS_CREDENTIALS_JSON"),
	}

	cfg.Turnstile = TurnstileConfig{
		SecretKey: v.GetString("TURNSTILE_SECRET_KEY"),
		VerifyURL: v.GetString("TURNSTILE_VERIFY_URL"),
		Timeout:   parseDuration(v.GetString("TURNSTILE_TIMEOUT"), 5*time.Second),
	}

	cfg.RateLimit = RateLimitConfig{
		Store:       v.GetString("RATE_LIMIT_STORE"),
		MaxRequests: v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		Window:      parseDuration(v.GetString("RATE_LIMIT_WINDOW"), time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Client = ClientConfig{
		SubmitTimeout: parseDuration(v.GetString("CLIENT_SUBMIT_TIMEOUT"), 10*time.Second),
		DraftTTL:      parseDuration(v.GetString("CLIENT_DRAFT_TTL"), 24*time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("GOOGLE_SHEETS_SHEET_NAME", "Leads")
	v.SetDefault("GOOGLE_SHEETS_COLUMN_RANGE", "A:H")
	v.SetDefault("TURNSTILE_VERIFY_URL", "https://challenges.cloudflare.com/turnstile/v0/siteverify")
	v.SetDefault("RATE_LIMIT_STORE", RateLimitStoreMemory)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 10)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
