package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting. It is read once at startup and the
// relevant sections are handed to constructors.
type Config struct {
	Env         string
	Port        string
	CORSOrigins []string
	LogLevel    string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig

	Fees       FeeSettings        `yaml:"fees"`
	Compliance ComplianceSettings `yaml:"compliance"`
	Impact     ImpactSettings     `yaml:"impact"`
}

type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite file path
}

// DSN builds the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return dsn.String()
}

type RedisConfig struct {
	Addr     string // empty disables caching
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// FeeSettings are percentages, e.g. 5.5 means 5.5%.
type FeeSettings struct {
	PlatformPct string `yaml:"platform_pct"`
	CardPct     string `yaml:"card_pct"`
	PointsPct   string `yaml:"points_pct"`
}

type ComplianceSettings struct {
	ThresholdMonths int `yaml:"threshold_months"`
}

type ImpactSettings struct {
	CriticalKeywords []string `yaml:"critical_keywords"`
}

// DefaultCriticalKeywords marks volunteer work that earns the critical-service bonus.
var DefaultCriticalKeywords = []string{
	"disaster", "emergency", "food bank", "hunger", "shelter", "homeless",
	"medical", "crisis", "relief", "hospice",
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{"configs/.env"}
	}
	if err := godotenv.Load(paths...); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
}

// Load reads the environment, then applies the optional YAML overlay named
// by CONFIG_FILE.
func Load() (Config, error) {
	cfg := Config{
		Env:         GetEnv("ENV", "development"),
		Port:        GetEnv("PORT", "8080"),
		CORSOrigins: splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Driver:   GetEnv("DB_DRIVER", "postgres"),
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "5432"),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD", "postgres"),
			Name:     GetEnv("DB_NAME", "postgres"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
			Path:     GetEnv("DB_PATH", "impactcore.db"),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", ""),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
			TTL:      time.Duration(GetIntEnv("REDIS_TTL_SECONDS", 600)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:   GetEnv("JWT_SECRET", ""),
			TokenTTL: time.Duration(GetIntEnv("JWT_TTL_HOURS", 24)) * time.Hour,
		},
		Fees: FeeSettings{
			PlatformPct: GetEnv("FEE_PLATFORM_PCT", "5.5"),
			CardPct:     GetEnv("FEE_CARD_PCT", "3.0"),
			PointsPct:   GetEnv("FEE_POINTS_PCT", "1.0"),
		},
		Compliance: ComplianceSettings{
			ThresholdMonths: GetIntEnv("COMPLIANCE_THRESHOLD_MONTHS", 36),
		},
		Impact: ImpactSettings{
			CriticalKeywords: DefaultCriticalKeywords,
		},
	}
	if kw := GetEnv("IMPACT_CRITICAL_KEYWORDS", ""); kw != "" {
		cfg.Impact.CriticalKeywords = splitList(kw)
	}

	if path := GetEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if cfg.JWT.Secret == "" {
		if cfg.IsProduction() {
			return Config{}, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWT.Secret = "default_super_secret_key" // Development fallback only
	}
	return cfg, nil
}

// applyFile overlays the fees, compliance and impact sections from YAML.
// Keys missing from the file keep their current values.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
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

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
