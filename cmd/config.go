package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/advisor"
	"github.com/etnz/advisor/alpaca"
	"github.com/etnz/advisor/eodhd"
	"github.com/etnz/advisor/gemini"
	"gopkg.in/yaml.v2"
)

// Market data providers.
const (
	ProviderEODHD  = "eodhd"
	ProviderAlpaca = "alpaca"
)

// GeminiModelEnv overrides the model name.
const GeminiModelEnv = "GEMINI_MODEL"

// Config is the content of the fad.yaml configuration file.
//
// Secrets are better set in the environment (or a .env file), they take precedence over the file.
type Config struct {
	Provider        string `yaml:"provider"`         // eodhd or alpaca
	Currency        string `yaml:"currency"`         // currency tickers are quoted in
	DisplayCurrency string `yaml:"display_currency"` // currency prices are converted to
	WindowDays      int    `yaml:"window_days"`
	ReviewRisk      string `yaml:"review_risk"`
	Cache           bool   `yaml:"cache"` // daily disk cache of market data
	CacheDir        string `yaml:"cache_dir"`
	Addr            string `yaml:"addr"`

	Gemini struct {
		APIKey      string   `yaml:"api_key"`
		Model       string   `yaml:"model"`
		Temperature *float32 `yaml:"temperature"`
	} `yaml:"gemini"`

	EODHD struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"eodhd"`

	Alpaca struct {
		KeyID     string `yaml:"key_id"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"alpaca"`
}

// DefaultConfig returns the configuration used when there is no file.
func DefaultConfig() Config {
	return Config{
		Provider:        ProviderEODHD,
		Currency:        advisor.DefaultCurrency,
		DisplayCurrency: "USD",
		WindowDays:      advisor.DefaultWindow,
		ReviewRisk:      string(advisor.Moderate),
		Addr:            "localhost:8080",
	}
}

// LoadConfig reads the YAML file at path on top of DefaultConfig, then applies the environment.
// A missing file is not an error.
func LoadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	default:
		if err := yaml.UnmarshalStrict(content, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %q: %w", path, err)
		}
	}

	override := func(dst *string, env string) {
		if v := getenv(env); v != "" {
			*dst = v
		}
	}
	override(&cfg.Gemini.APIKey, gemini.APIKeyEnv)
	override(&cfg.Gemini.Model, GeminiModelEnv)
	override(&cfg.EODHD.APIKey, eodhd.APIKeyEnv)
	override(&cfg.Alpaca.KeyID, alpaca.KeyEnv)
	override(&cfg.Alpaca.SecretKey, alpaca.SecretEnv)

	return cfg, cfg.Validate()
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	c.Provider = strings.ToLower(c.Provider)
	if c.Provider != ProviderEODHD && c.Provider != ProviderAlpaca {
		errs = append(errs, fmt.Errorf("unknown provider %q, want %q or %q", c.Provider, ProviderEODHD, ProviderAlpaca))
	}
	if c.WindowDays < 1 {
		errs = append(errs, fmt.Errorf("window_days must be positive, got %d", c.WindowDays))
	}
	if _, err := advisor.ParseRiskLevel(c.ReviewRisk); err != nil {
		errs = append(errs, fmt.Errorf("review_risk: %w", err))
	}
	c.Currency, c.DisplayCurrency = strings.ToUpper(c.Currency), strings.ToUpper(c.DisplayCurrency)
	for name, code := range map[string]string{"currency": c.Currency, "display_currency": c.DisplayCurrency} {
		if money.GetCurrency(code) == nil {
			errs = append(errs, fmt.Errorf("%s: unknown currency code %q", name, code))
		}
	}
	return errors.Join(errs...)
}

// Risk returns the risk level assumed by portfolio reviews.
func (c *Config) Risk() advisor.RiskLevel {
	r, err := advisor.ParseRiskLevel(c.ReviewRisk)
	if err != nil {
		return advisor.Moderate
	}
	return r
}
