package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL  string
	SeedDevCases bool // Insert the TEST-00x fixture cases on startup

	// Redis backs chat and web sessions when set; in-process storage otherwise.
	RedisURL string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// OIDC (admin pages); admin is open when OIDCIssuer is empty
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
	AdminEmails      []string // Optional allow-list for /admin

	// Email (SMTP)
	SMTPEnabled     bool
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	SMTPFromName    string
	SMTPTLS         string // "none", "tls", "starttls"
	EscalationEmail string // Recipient for "talk to an agent" requests

	// Chat
	ChatSessionTTL      time.Duration
	ChatDefaultUserType string

	// Analytics
	AnalyticsRetentionDays int // 0 keeps interaction logs forever
	RetentionInterval      time.Duration

	// Case repository resilience
	RepoRetryAttempts  int
	RepoBreakerEnabled bool

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "CallHelper"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ServerAddr: getEnv("SERVER_ADDR", ":5000"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:5000"),

		DatabaseURL:  getEnv("DATABASE_URL", "postgres://localhost:5432/callhelper?sslmode=disable"),
		SeedDevCases: getEnvBool("SEED_DEV_CASES", false),
		RedisURL:     getEnv("REDIS_URL", ""),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:5000/auth/callback"),
		AdminEmails:      splitList(getEnv("ADMIN_EMAILS", "")),

		SMTPEnabled:     getEnvBool("SMTP_ENABLED", false),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:        getEnv("SMTP_FROM", ""),
		SMTPFromName:    getEnv("SMTP_FROM_NAME", "CallHelper"),
		SMTPTLS:         getEnv("SMTP_TLS", "starttls"),
		EscalationEmail: getEnv("ESCALATION_EMAIL", ""),

		ChatSessionTTL:      getEnvDuration("CHAT_SESSION_TTL", time.Hour),
		ChatDefaultUserType: getEnv("CHAT_DEFAULT_USER_TYPE", "شركة عمره"),

		AnalyticsRetentionDays: getEnvInt("ANALYTICS_RETENTION_DAYS", 0),
		RetentionInterval:      getEnvDuration("RETENTION_INTERVAL", 6*time.Hour),

		RepoRetryAttempts:  getEnvInt("REPO_RETRY_ATTEMPTS", 3),
		RepoBreakerEnabled: getEnvBool("REPO_BREAKER_ENABLED", true),

		SiteTitle:   getEnv("SITE_TITLE", "CallHelper"),
		SiteTagline: getEnv("SITE_TAGLINE", "مساعد الاتصال لحل مشاكل العملاء"),
		SiteFooter:  getEnv("SITE_FOOTER", "CallHelper"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(strings.ToLower(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsAuthEnabled returns true if admin pages are protected by OIDC login.
func (c *Config) IsAuthEnabled() bool {
	return c.OIDCIssuer != ""
}

// IsEmailEnabled returns true if SMTP is fully configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsAdminEmail reports whether email may access admin pages.
// An empty allow-list admits every authenticated user.
func (c *Config) IsAdminEmail(email string) bool {
	if len(c.AdminEmails) == 0 {
		return true
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}
