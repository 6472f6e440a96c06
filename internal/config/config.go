package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	HTTPAddr string `yaml:"http_addr"`

	// DatabaseURL empty runs the store on in-memory repositories.
	DatabaseURL string `yaml:"database_url"`

	Storage Storage `yaml:"storage"`
	Store   Store   `yaml:"store"`

	SessionTTL   time.Duration `yaml:"session_ttl"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

type Storage struct {
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

type Store struct {
	Currency      string `yaml:"currency"`
	WhatsAppPhone string `yaml:"whatsapp_phone"`
}

func Default() Config {
	return Config{
		Env:        "dev",
		LogLevel:   "info",
		HTTPAddr:   ":8080",
		SessionTTL: 7 * 24 * time.Hour,
		Store: Store{
			Currency:      "BRL",
			WhatsAppPhone: "5589999030380",
		},
	}
}

// Load reads defaults, then the YAML file at path (if any), then environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("os.ReadFile: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("applyEnv: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTPAddr) == "" {
		errs = append(errs, errors.New("http_addr is empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl[%s] must be positive", c.SessionTTL))
	}
	if _, err := c.Currency(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Store.WhatsAppPhone) == "" {
		errs = append(errs, errors.New("store.whatsapp_phone is empty"))
	}

	return errors.Join(errs...)
}

func (c Config) Currency() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Store.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Store.Currency, err)
	}

	return unit, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.Storage.Bucket, "GCS_BUCKET")
	setString(&cfg.Storage.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	setString(&cfg.Storage.PublicBaseURL, "PUBLIC_BASE_URL")
	setString(&cfg.Store.Currency, "STORE_CURRENCY")
	setString(&cfg.Store.WhatsAppPhone, "WHATSAPP_PHONE")

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL[%s]: %w", v, err)
		}
		cfg.SessionTTL = d
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = v == "1" || strings.EqualFold(v, "true")
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
