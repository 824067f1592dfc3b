package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	OAuth     OAuthConfig
	JWT       JWTConfig
	Brapi     BrapiConfig
	Crypto    CryptoConfig
	News      NewsConfig
	Billing   BillingConfig
	Scheduler SchedulerConfig
	TLS       TLSConfig
	Firebase  FirebaseConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	AppURL       string
	AllowedHosts []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type OAuthConfig struct {
	Google GoogleOAuthConfig
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

type JWTConfig struct {
	Secret string
}

// BrapiConfig configures the brapi.dev market-data client.
// Token is optional; brapi serves unauthenticated requests with lower limits.
type BrapiConfig struct {
	Token string
}

// CryptoConfig configures the crypto asset adapter.
type CryptoConfig struct {
	USDToBRL float64
}

type NewsConfig struct {
	Feeds []FeedConfig
}

type FeedConfig struct {
	URL    string
	Source string
}

type BillingConfig struct {
	SecretKey     string
	PriceID       string
	WebhookSecret string
}

type SchedulerConfig struct {
	Enabled       bool
	ScheduleTimes []string
	WorkerCount   int
	JobDelay      time.Duration
	QueueSize     int
	RunOnStartup  bool
}

type TLSConfig struct {
	Enabled      bool
	CertPath     string
	KeyPath      string
	RedirectHTTP bool
}

type FirebaseConfig struct {
	CredentialsFile  string
	AppointmentTopic string
	MessagesFile     string
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	Environment  string
	OTLPEndpoint string
	MetricsPort  string
}

// defaultFeeds are the market-news RSS sources queried when NEWS_FEEDS is unset.
var defaultFeeds = []FeedConfig{
	{URL: "https://www.infomoney.com.br/mercados/feed/", Source: "InfoMoney"},
	{URL: "https://www.infomoney.com.br/onde-investir/feed/", Source: "InfoMoney"},
	{URL: "https://valor.globo.com/financas/rss", Source: "Valor Econômico"},
}

func Load() (*Config, error) {
	// Load .env if present; real environments set vars directly
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	usdToBRL, err := strconv.ParseFloat(getEnv("USD_TO_BRL", "5.15"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid USD_TO_BRL: %w", err)
	}

	// Parse scheduler configuration
	schedulerEnabled := getBoolEnv("SCHEDULER_ENABLED", false)
	schedulerTimes := strings.Split(getEnv("SCHEDULER_TIMES", "09:00,14:00,18:00"), ",")
	schedulerWorkers, err := strconv.Atoi(getEnv("SCHEDULER_WORKERS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_WORKERS: %w", err)
	}
	schedulerJobDelay, err := time.ParseDuration(getEnv("SCHEDULER_JOB_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_JOB_DELAY: %w", err)
	}
	schedulerQueueSize, err := strconv.Atoi(getEnv("SCHEDULER_QUEUE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_QUEUE_SIZE: %w", err)
	}

	// Parse allowed hosts (comma-separated list)
	var allowedHosts []string
	for _, host := range strings.Split(getEnv("ALLOWED_HOSTS", ""), ",") {
		host = strings.TrimSpace(host)
		if host != "" {
			allowedHosts = append(allowedHosts, host)
		}
	}

	appURL := getEnv("APP_URL", "http://localhost:8080")

	googleCallbackURL := getEnv("GOOGLE_CALLBACK_URL", "")
	if googleCallbackURL == "" {
		googleCallbackURL = appURL + "/api/auth/oauth/callback"
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("HOST", "0.0.0.0"),
			AppURL:       appURL,
			AllowedHosts: allowedHosts,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "carteira"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "carteira"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OAuth: OAuthConfig{
			Google: GoogleOAuthConfig{
				ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
				CallbackURL:  googleCallbackURL,
			},
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Brapi: BrapiConfig{
			Token: getEnv("BRAPI_TOKEN", ""),
		},
		Crypto: CryptoConfig{
			USDToBRL: usdToBRL,
		},
		News: NewsConfig{
			Feeds: parseFeeds(getEnv("NEWS_FEEDS", "")),
		},
		Billing: BillingConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			PriceID:       getEnv("STRIPE_PRICE_ID", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Scheduler: SchedulerConfig{
			Enabled:       schedulerEnabled,
			ScheduleTimes: schedulerTimes,
			WorkerCount:   schedulerWorkers,
			JobDelay:      schedulerJobDelay,
			QueueSize:     schedulerQueueSize,
			RunOnStartup:  getBoolEnv("SCHEDULER_RUN_ON_STARTUP", false),
		},
		TLS: TLSConfig{
			Enabled:      getBoolEnv("TLS_ENABLED", false),
			CertPath:     getEnv("TLS_CERT_PATH", ""),
			KeyPath:      getEnv("TLS_KEY_PATH", ""),
			RedirectHTTP: getBoolEnv("TLS_REDIRECT_HTTP", false),
		},
		Firebase: FirebaseConfig{
			CredentialsFile:  getEnv("FIREBASE_CREDENTIALS_FILE", ""),
			AppointmentTopic: getEnv("FIREBASE_APPOINTMENT_TOPIC", "agendamentos"),
			MessagesFile:     getEnv("NOTIFICATION_MESSAGES_FILE", "configs/notifications.json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "carteira-api"),
			Environment:  getEnv("APP_ENV", "development"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
			MetricsPort:  getEnv("METRICS_PORT", "9090"),
		},
	}

	// Validate required fields
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if usdToBRL <= 0 {
		return nil, fmt.Errorf("USD_TO_BRL must be positive")
	}

	// Validate TLS configuration
	if cfg.TLS.Enabled {
		if cfg.TLS.CertPath == "" {
			return nil, fmt.Errorf("TLS_CERT_PATH is required when TLS_ENABLED=true")
		}
		if cfg.TLS.KeyPath == "" {
			return nil, fmt.Errorf("TLS_KEY_PATH is required when TLS_ENABLED=true")
		}
	}

	return cfg, nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// parseFeeds parses "Source=URL,Source=URL" pairs; falls back to the default
// feed list when the value is empty or malformed.
func parseFeeds(raw string) []FeedConfig {
	if raw == "" {
		return defaultFeeds
	}

	var feeds []FeedConfig
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		feeds = append(feeds, FeedConfig{Source: parts[0], URL: parts[1]})
	}
	if len(feeds) == 0 {
		return defaultFeeds
	}
	return feeds
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept: true, false, 1, 0, yes, no (case-insensitive)
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
