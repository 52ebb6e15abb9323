package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	HTTP     HTTP
	Catalog  Catalog
	Database Database
	Weather  Weather
	AI       AI

	CurrencySymbol string `env:"CURRENCY_SYMBOL" env-default:"₹"`
}

type HTTP struct {
	Port           string `env:"PORT" env-default:"8080"`
	GinMode        string `env:"GIN_MODE"`
	FrontendURL    string `env:"FRONTEND_URL"`
	TrustedProxies string `env:"TRUSTED_PROXIES"` // comma-separated CIDRs/IPs; empty trusts none
}

type Catalog struct {
	Dir    string `env:"CATALOG_DIR" env-default:"./data"`
	Source string `env:"CATALOG_SOURCE" env-default:"file"`
}

type Database struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER" env-default:"postgres"`
	Password string `env:"DB_PASSWORD" env-default:"postgres"`
	Name     string `env:"DB_NAME" env-default:"tripagent"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
}

type Weather struct {
	NominatimURL string        `env:"NOMINATIM_URL" env-default:"https://nominatim.openstreetmap.org"`
	OpenMeteoURL string        `env:"OPEN_METEO_URL" env-default:"https://api.open-meteo.com"`
	UserAgent    string        `env:"GEOCODER_USER_AGENT" env-default:"travel_agent"`
	Timeout      time.Duration `env:"WEATHER_TIMEOUT" env-default:"5s"`
}

type AI struct {
	APIKey  string        `env:"HUGGINGFACE_API_KEY"`
	Model   string        `env:"HF_MODEL" env-default:"mistralai/Mistral-7B-Instruct-v0.3"`
	BaseURL string        `env:"HF_API_URL" env-default:"https://api-inference.huggingface.co"`
	Timeout time.Duration `env:"HF_TIMEOUT" env-default:"60s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; in production the variables are set directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	cfg.Catalog.Source = strings.ToLower(strings.TrimSpace(cfg.Catalog.Source))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceFile, SourcePostgres:
	default:
		return fmt.Errorf("config error: unknown CATALOG_SOURCE %q (want %q or %q)",
			c.Catalog.Source, SourceFile, SourcePostgres)
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("config error: WEATHER_TIMEOUT must be positive")
	}
	return nil
}

// DSN prefers DATABASE_URL and falls back to the individual DB_* variables.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Proxies returns the TRUSTED_PROXIES entries, or nil when none are set.
func (h HTTP) Proxies() []string {
	var proxies []string
	for _, p := range strings.Split(h.TrustedProxies, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}

// AllowedOrigins returns the local dev origins plus any comma-separated FRONTEND_URL entries.
func (h HTTP) AllowedOrigins() []string {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	for _, u := range strings.Split(h.FrontendURL, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			origins = append(origins, u)
		}
	}
	return origins
}
