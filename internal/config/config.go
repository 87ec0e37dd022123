package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kevin07696/payment-reconciler/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gateway  GatewayConfig
	Logger   LoggerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port               int
	Host               string
	MetricsPort        int
	Environment        string // development or production
	RateLimitPerSec    float64
	RateLimitBurst     int
	ShutdownTimeoutSec int
	NotifyAllowedIPs   []string // Gateway source IPs/CIDRs; empty admits all
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// GatewayConfig holds the payment gateway installation settings the
// reconciler reads. It is owned by the merchant's settings and read-only here.
type GatewayConfig struct {
	ShopID        string             // Merchant id the webhook ShopID must equal
	OrderIDPrefix string             // Literal prefix the gateway OrderID carries
	SuccessStatus domain.OrderStatus // processing (default) or completed
	LogEnabled    bool               // Record raw/decoded payloads
	CheckoutURL   string             // Where failed return-channel visits go
	ThankYouURL   string             // Where successful return-channel visits go
	Methods       map[domain.SettlementMethod]MethodConfig
}

// MethodConfig holds per settlement method settings
type MethodConfig struct {
	Enabled     bool
	Title       string
	Description string
	JobCode     string // AUTH or CAPTURE, where the method supports both
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			Host:               getEnv("SERVER_HOST", "0.0.0.0"),
			MetricsPort:        getEnvAsInt("METRICS_PORT", 9090),
			Environment:        getEnv("ENVIRONMENT", "development"),
			RateLimitPerSec:    getEnvAsFloat("RATE_LIMIT_RPS", 10),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
			ShutdownTimeoutSec: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			NotifyAllowedIPs:   getEnvAsList("GMO_NOTIFY_ALLOWED_IPS"),
		},
		Database: LoadDatabaseFromEnv(),
		Gateway: GatewayConfig{
			ShopID:        getEnv("GMO_SHOP_ID", ""),
			OrderIDPrefix: getEnv("GMO_ORDER_ID_PREFIX", "wcsmbcgp"),
			SuccessStatus: domain.OrderStatus(getEnv("GMO_SUCCESS_STATUS", string(domain.OrderStatusProcessing))),
			LogEnabled:    getEnvAsBool("GMO_LOG_ENABLED", false),
			CheckoutURL:   getEnv("CHECKOUT_URL", "/checkout"),
			ThankYouURL:   getEnv("THANK_YOU_URL", "/checkout/order-received"),
			Methods:       loadMethods(getEnv("GMO_METHODS", "credit")),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.Gateway.ShopID == "" {
		return nil, fmt.Errorf("GMO_SHOP_ID is required")
	}
	if !cfg.Gateway.SuccessStatus.IsSuccessTarget() {
		return nil, fmt.Errorf("GMO_SUCCESS_STATUS must be processing or completed, got %q", cfg.Gateway.SuccessStatus)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs outside production
func (s *ServerConfig) IsDevelopment() bool {
	return s.Environment != "production"
}

// LoadDatabaseFromEnv loads only the PostgreSQL settings, for tools that
// never touch the gateway
func LoadDatabaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvAsInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Database: getEnv("DB_NAME", "payment_reconciler"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(getEnvAsInt("DB_MAX_CONNS", 25)),
		MinConns: int32(getEnvAsInt("DB_MIN_CONNS", 5)),
	}
}

// SuccessTarget returns the configured success state, defaulting to processing
func (g *GatewayConfig) SuccessTarget() domain.OrderStatus {
	if g.SuccessStatus.IsSuccessTarget() {
		return g.SuccessStatus
	}
	return domain.OrderStatusProcessing
}

// MethodEnabled reports whether the installation accepts payments for m
func (g *GatewayConfig) MethodEnabled(m domain.SettlementMethod) bool {
	mc, ok := g.Methods[m]
	return ok && mc.Enabled
}

// Title returns the display title for m, falling back to the method label
func (g *GatewayConfig) Title(m domain.SettlementMethod) string {
	if mc, ok := g.Methods[m]; ok && mc.Title != "" {
		return mc.Title
	}
	if p, ok := m.Profile(); ok {
		return p.Label
	}
	return string(m)
}

// ConnectionString returns PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// loadMethods reads GMO_METHODS (comma separated) and the per-method
// GMO_<METHOD>_TITLE, GMO_<METHOD>_DESCRIPTION and GMO_<METHOD>_JOB_CD vars.
// Unknown names are skipped.
func loadMethods(list string) map[domain.SettlementMethod]MethodConfig {
	methods := make(map[domain.SettlementMethod]MethodConfig)
	for _, name := range strings.Split(list, ",") {
		m, ok := domain.ParseSettlementMethod(name)
		if !ok {
			continue
		}
		prefix := "GMO_" + strings.ToUpper(string(m)) + "_"
		methods[m] = MethodConfig{
			Enabled:     true,
			Title:       getEnv(prefix+"TITLE", ""),
			Description: getEnv(prefix+"DESCRIPTION", ""),
			JobCode:     strings.ToUpper(getEnv(prefix+"JOB_CD", "CAPTURE")),
		}
	}
	return methods
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
