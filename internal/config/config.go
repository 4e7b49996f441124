// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Auth      AuthConfig      `koanf:"auth"`
	Upload    UploadConfig    `koanf:"upload"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type AuthConfig struct {
	SeedUsername  string        `koanf:"seed_username"`
	SeedPassword  string        `koanf:"seed_password"`
	SeedEmail     string        `koanf:"seed_email"`
	MaxAttempts   int           `koanf:"max_attempts"`
	LockoutWindow time.Duration `koanf:"lockout_window"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	SessionCookie string        `koanf:"session_cookie"`
	SecureCookies bool          `koanf:"secure_cookies"`
}

type UploadConfig struct {
	Dir               string   `koanf:"dir"`
	MaxBytes          int64    `koanf:"max_bytes"`
	AllowedExtensions []string `koanf:"allowed_extensions"`
}

type CatalogConfig struct {
	Services []ServiceConfig `koanf:"services"`
}

type ServiceConfig struct {
	ID          string `koanf:"id"`
	Name        string `koanf:"name"`
	Price       string `koanf:"price"`
	Description string `koanf:"description"`
}

type RateLimitConfig struct {
	Requests      int `koanf:"requests"`
	Burst         int `koanf:"burst"`
	LoginRequests int `koanf:"login_requests"`
	LoginBurst    int `koanf:"login_burst"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		k := koanf.New(".")

		if err := loadDefaults(k); err != nil {
			loadErr = fmt.Errorf("load defaults: %w", err)
			return
		}

		if configPath != "" {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				loadErr = fmt.Errorf("load config file: %w", err)
				return
			}
		}

		if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
			loadErr = fmt.Errorf("load env vars: %w", err)
			return
		}

		cfg = &Config{}
		if err := k.Unmarshal("", cfg); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if err := validate(cfg); err != nil {
			loadErr = fmt.Errorf("validate config: %w", err)
			return
		}
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Ntandostore",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"auth.seed_username":  "Ntando",
		"auth.max_attempts":   5,
		"auth.lockout_window": "30m",
		"auth.session_ttl":    "2h",
		"auth.session_cookie": "ntando_session",
		"auth.secure_cookies": false,

		"upload.dir":       "static/uploads",
		"upload.max_bytes": int64(16 * 1024 * 1024),
		"upload.allowed_extensions": []string{
			"png",
			"jpg",
			"jpeg",
			"gif",
			"svg",
		},

		"rate_limit.requests":       100,
		"rate_limit.burst":          20,
		"rate_limit.login_requests": 10,
		"rate_limit.login_burst":    3,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "ntandostore",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return defaultCatalog(k)
}

// defaultCatalog seeds the built-in service price table. A config file can
// replace it wholesale but never per-entry.
func defaultCatalog(k *koanf.Koanf) error {
	services := []map[string]any{
		{"id": "business_email", "name": "Business Email", "price": "9.99",
			"description": "Professional business email with custom domain"},
		{"id": "domain", "name": "Domain Registration", "price": "24.99",
			"description": "Custom domain with DNS configuration included"},
		{"id": "website_design", "name": "Website Design", "price": "35.00",
			"description": "Professional website design + hosting, security, and upgrades"},
		{"id": "business_card", "name": "Business Card Design", "price": "15.00",
			"description": "Professional business card design"},
		{"id": "business_logo", "name": "Business Logo Design", "price": "25.00",
			"description": "Custom business logo design"},
		{"id": "website_hosting", "name": "Website Hosting", "price": "10.00",
			"description": "Reliable website hosting per month"},
		{"id": "website_security", "name": "Website Security", "price": "15.00",
			"description": "SSL certificate and security setup"},
		{"id": "wa_bot", "name": "WhatsApp Bot", "price": "50.00",
			"description": "Custom WhatsApp bot for group management and automation"},
		{"id": "premium_apps", "name": "Premium Apps", "price": "0.00",
			"description": "Contact us for premium app solutions"},
	}

	if err := k.Set("catalog.services", services); err != nil {
		return fmt.Errorf("set default catalog: %w", err)
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":        "database.url",
	"REDIS_URL":           "redis.url",
	"ENVIRONMENT":         "app.environment",
	"HOST":                "server.host",
	"PORT":                "server.port",
	"LOG_LEVEL":           "log.level",
	"LOG_FORMAT":          "log.format",
	"ADMIN_USERNAME":      "auth.seed_username",
	"ADMIN_PASSWORD":      "auth.seed_password",
	"ADMIN_EMAIL":         "auth.seed_email",
	"SESSION_TTL":         "auth.session_ttl",
	"SESSION_COOKIE":      "auth.session_cookie",
	"SECURE_COOKIES":      "auth.secure_cookies",
	"LOCKOUT_WINDOW":      "auth.lockout_window",
	"MAX_LOGIN_ATTEMPTS":  "auth.max_attempts",
	"UPLOAD_DIR":          "upload.dir",
	"UPLOAD_MAX_BYTES":    "upload.max_bytes",
	"RATE_LIMIT_REQUESTS": "rate_limit.requests",
	"RATE_LIMIT_BURST":    "rate_limit.burst",
	"OTEL_ENDPOINT":       "otel.endpoint",
	"OTEL_SERVICE_NAME":   "otel.service_name",
	"OTEL_ENABLED":        "otel.enabled",
	"OTEL_INSECURE":       "otel.insecure",
	"OTEL_SAMPLE_RATE":    "otel.sample_rate",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.Auth.SeedPassword == "" && c.App.Environment == "production" {
		return fmt.Errorf("ADMIN_PASSWORD is required in production")
	}

	if c.Auth.MaxAttempts < 1 {
		return fmt.Errorf("auth.max_attempts must be positive")
	}

	if c.Auth.LockoutWindow <= 0 {
		return fmt.Errorf("auth.lockout_window must be positive")
	}

	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}

	if len(c.Catalog.Services) == 0 {
		return fmt.Errorf("catalog.services must not be empty")
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
