package config

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
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Orders   OrdersConfig
	Uploads  UploadsConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	URL  string
	Name string
}

type AuthConfig struct {
	SecretKey string
	TokenTTL  time.Duration
}

type OrdersConfig struct {
	MinOrderValue int64
	// TerminalStatusLock rejects status changes on Complete and Cancel orders.
	TerminalStatusLock bool
}

type UploadsConfig struct {
	Dir      string
	MaxBytes int64
}

type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("MONGODB_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "restaurant")
	v.SetDefault("TOKEN_TTL_HOURS", 24)
	v.SetDefault("MIN_ORDER_VALUE", 1)
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MAX_UPLOAD_MB", 5)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("REQUEST_TIMEOUT", "100s")
	v.SetDefault("TERMINAL_STATUS_LOCK", true)
}

// Load reads envFile into the process environment when it exists and then
// builds the configuration from environment variables over defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:  v.GetString("MONGODB_URL"),
			Name: v.GetString("MONGODB_DATABASE"),
		},
		Auth: AuthConfig{
			SecretKey: v.GetString("SECRET_KEY"),
			TokenTTL:  time.Duration(v.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
		},
		Orders: OrdersConfig{
			MinOrderValue:      v.GetInt64("MIN_ORDER_VALUE"),
			TerminalStatusLock: v.GetBool("TERMINAL_STATUS_LOCK"),
		},
		Uploads: UploadsConfig{
			Dir:      v.GetString("UPLOAD_DIR"),
			MaxBytes: v.GetInt64("MAX_UPLOAD_MB") << 20,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
	if cfg.Auth.SecretKey == "" {
		return nil, errors.New("SECRET_KEY must be set")
	}
	if cfg.Orders.MinOrderValue < 0 {
		return nil, errors.New("MIN_ORDER_VALUE must not be negative")
	}
	if cfg.Server.RequestTimeout <= 0 {
		return nil, errors.New("REQUEST_TIMEOUT must be positive")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
