package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Store     StoreConfig
	Inventory InventoryConfig
	Reporting ReportingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	SMTP      SMTPConfig
	Log       LogConfig

	// EnvFileErr is set when no .env file could be read; env vars and defaults still apply.
	EnvFileErr error
}

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	Debug           bool
	SeedDemo        bool
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// StoreConfig selects the key-value backend aggregates are serialized into.
type StoreConfig struct {
	Driver    string // "postgres" or "memory"
	KeyPrefix string
}

type InventoryConfig struct {
	// EnforceSufficientStock refuses a sale when any ingredient would run short.
	// When false, deductions clamp at zero.
	EnforceSufficientStock bool
}

type ReportingConfig struct {
	CostBasis string // "live" or "snapshot"
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type      string // "usb", "network" or "none"
	USBPath   string
	Address   string
	Width     int
	StoreName string
	Address2  string
	Phone     string
}

type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	FromName      string
	FromEmail     string
	OperatorEmail string
}

// Enabled reports whether operator emails can be sent
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.OperatorEmail != ""
}

type LogConfig struct {
	Level       string
	Development bool
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	envErr := viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-ledger")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_SEED_DEMO", false)
	viper.SetDefault("APP_SHUTDOWN_TIMEOUT_SECONDS", 10)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "pos_ledger")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("STORE_KEY_PREFIX", "pos_")
	viper.SetDefault("INVENTORY_ENFORCE_SUFFICIENT_STOCK", true)
	viper.SetDefault("REPORT_COST_BASIS", "live")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("PRINTER_STORE_NAME", "POS Ledger")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM_NAME", "POS Ledger")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_DEVELOPMENT", false)

	return &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Env:             viper.GetString("APP_ENV"),
			Port:            viper.GetString("APP_PORT"),
			Debug:           viper.GetBool("APP_DEBUG"),
			SeedDemo:        viper.GetBool("APP_SEED_DEMO"),
			ShutdownTimeout: time.Duration(viper.GetInt("APP_SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Store: StoreConfig{
			Driver:    viper.GetString("STORE_DRIVER"),
			KeyPrefix: viper.GetString("STORE_KEY_PREFIX"),
		},
		Inventory: InventoryConfig{
			EnforceSufficientStock: viper.GetBool("INVENTORY_ENFORCE_SUFFICIENT_STOCK"),
		},
		Reporting: ReportingConfig{
			CostBasis: viper.GetString("REPORT_COST_BASIS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			Width:     viper.GetInt("PRINTER_WIDTH"),
			StoreName: viper.GetString("PRINTER_STORE_NAME"),
			Address2:  viper.GetString("PRINTER_STORE_ADDRESS"),
			Phone:     viper.GetString("PRINTER_STORE_PHONE"),
		},
		SMTP: SMTPConfig{
			Host:          viper.GetString("SMTP_HOST"),
			Port:          viper.GetInt("SMTP_PORT"),
			Username:      viper.GetString("SMTP_USERNAME"),
			Password:      viper.GetString("SMTP_PASSWORD"),
			FromName:      viper.GetString("SMTP_FROM_NAME"),
			FromEmail:     viper.GetString("SMTP_FROM_EMAIL"),
			OperatorEmail: viper.GetString("SMTP_OPERATOR_EMAIL"),
		},
		Log: LogConfig{
			Level:       viper.GetString("LOG_LEVEL"),
			Development: viper.GetBool("LOG_DEVELOPMENT"),
		},
		EnvFileErr: envErr,
	}
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.Timezone)
}
