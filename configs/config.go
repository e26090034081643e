package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration values.
type Config struct {
	ServerHost       string
	ServerPort       string
	ServerMode       string
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseURL      string
	LogLevel         string
	JWTSecret        string
	JWTLifetime      time.Duration
	CORSOrigins      []string

	// Document store admin API.
	AdminBaseURL string
	AdminToken   string
	UserAgent    string

	// Crawl defaults.
	RootPath         string
	CrawlConcurrency int
	CrawlTimeout     time.Duration
}

// Load reads configuration exclusively from environment variables (optionally .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.ServerHost = getEnv("HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("PORT", "8080")
	cfg.ServerMode = getEnv("GIN_MODE", "debug")

	// Database
	cfg.DatabaseHost = getEnv("DB_HOST", "localhost")
	cfg.DatabasePort = getEnv("DB_PORT", "3306")
	cfg.DatabaseUser = getEnv("DB_USER", "")
	cfg.DatabasePassword = getEnv("DB_PASSWORD", "")
	cfg.DatabaseName = getEnv("DB_NAME", "")
	if cfg.DatabaseUser == "" || cfg.DatabasePassword == "" || cfg.DatabaseName == "" {
		return nil, fmt.Errorf("missing required database env vars")
	}
	// Build DSN: user:pass@tcp(host:port)/dbname?parseTime=true
	cfg.DatabaseURL = fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DatabaseUser, cfg.DatabasePassword,
		cfg.DatabaseHost, cfg.DatabasePort,
		cfg.DatabaseName,
	)

	// Logging & Auth
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET environment variable")
	}
	jwtLifetimeStr := getEnv("JWT_LIFETIME", "24h")
	d, err := time.ParseDuration(jwtLifetimeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_LIFETIME: %w", err)
	}
	cfg.JWTLifetime = d

	// CORS
	origins := getEnv("CORS_ORIGINS", "")
	if origins != "" {
		cfg.CORSOrigins = strings.Split(origins, ",")
	}

	// Document store admin API. The token is opaque; it is forwarded
	// verbatim on every list/source request.
	cfg.AdminBaseURL = strings.TrimRight(getEnv("DA_ADMIN_BASE_URL", "https://admin.da.live"), "/")
	cfg.AdminToken = os.Getenv("DA_ADMIN_TOKEN")
	if cfg.AdminToken == "" {
		return nil, fmt.Errorf("missing DA_ADMIN_TOKEN environment variable")
	}
	cfg.UserAgent = getEnv("USER_AGENT", "da-crawl/1.0")

	// Crawl defaults
	cfg.RootPath = getEnv("CRAWL_ROOT", "")
	conc := getEnv("CRAWL_CONCURRENCY", "50")
	c, err := strconv.Atoi(conc)
	if err != nil || c <= 0 {
		return nil, fmt.Errorf("invalid CRAWL_CONCURRENCY: %q", conc)
	}
	cfg.CrawlConcurrency = c

	timeoutSec := getEnv("CRAWL_TIMEOUT_SECONDS", "30")
	ts, err := strconv.Atoi(timeoutSec)
	if err != nil {
		return nil, fmt.Errorf("invalid CRAWL_TIMEOUT_SECONDS: %w", err)
	}
	cfg.CrawlTimeout = time.Duration(ts) * time.Second

	return cfg, nil
}

// getEnv returns env var or default.
func getEnv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}
