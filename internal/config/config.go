package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	// Embedded zone database so Australia/Sydney resolves on minimal images.
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all dashboard configuration.
type Config struct {
	Asset      AssetConfig      `yaml:"asset" jsonschema:"description=Token pairing served by the dashboard"`
	Timezone   string           `yaml:"timezone" validate:"required" jsonschema:"description=IANA zone used for every day boundary,default=Australia/Sydney"`
	CoinGecko  CoinGeckoConfig  `yaml:"coingecko" jsonschema:"description=Market data provider"`
	Prediction PredictionConfig `yaml:"prediction" jsonschema:"description=Remote forecasting service"`
	Analysis   AnalysisConfig   `yaml:"analysis" jsonschema:"description=Technical analysis window"`
	Indicators IndicatorConfig  `yaml:"indicators" jsonschema:"description=Indicator periods"`
	Server     ServerConfig     `yaml:"server" jsonschema:"description=JSON API"`
	Log        LogConfig        `yaml:"log" jsonschema:"description=Logging"`
}

// AssetConfig is the single token pairing served by the dashboard.
type AssetConfig struct {
	ID     string `yaml:"id" validate:"required" jsonschema:"description=CoinGecko coin id,default=ripple"`
	Name   string `yaml:"name" validate:"required" jsonschema:"default=Ripple"`
	Symbol string `yaml:"symbol" validate:"required" jsonschema:"default=XRP"`
}

// CoinGeckoConfig configures the market data provider.
type CoinGeckoConfig struct {
	BaseURL      string `yaml:"base_url" validate:"required,url" jsonschema:"default=https://api.coingecko.com/api/v3"`
	APIKey       string `yaml:"api_key" jsonschema:"description=Prefer the COINGECKO_API_KEY environment variable"`
	APIKeyHeader string `yaml:"api_key_header" validate:"required" jsonschema:"enum=x-cg-demo-api-key,enum=x-cg-pro-api-key"`
	VsCurrency   string `yaml:"vs_currency" validate:"required" jsonschema:"default=usd"`
	// RequestsPerSecond is a client side limit, the free tier allows about 30 calls a minute.
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gt=0" jsonschema:"default=0.5"`
	Timeout           time.Duration `yaml:"timeout" validate:"gte=0"`
}

// PredictionConfig configures the remote forecasting endpoint.
type PredictionConfig struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// AnalysisConfig bounds the technical analysis path.
type AnalysisConfig struct {
	// LookbackDays is how many days before the selected date are fetched.
	LookbackDays int `yaml:"lookback_days" validate:"min=1" jsonschema:"default=29"`
	// MaxAgeDays is how far in the past a selected date may be.
	MaxAgeDays int `yaml:"max_age_days" validate:"min=1" jsonschema:"default=335"`
}

// IndicatorConfig holds indicator periods.
type IndicatorConfig struct {
	RSIPeriod        int `yaml:"rsi_period" validate:"min=1" jsonschema:"default=14"`
	MACDFastPeriod   int `yaml:"macd_fast_period" validate:"min=1" jsonschema:"default=12"`
	MACDSlowPeriod   int `yaml:"macd_slow_period" validate:"min=1,gtfield=MACDFastPeriod" jsonschema:"default=26"`
	MACDSignalPeriod int `yaml:"macd_signal_period" validate:"min=1" jsonschema:"default=9"`
}

// ServerConfig configures the JSON API.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required" jsonschema:"default=:8080"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level       string `yaml:"level" validate:"omitempty,oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Asset: AssetConfig{
			ID:     "ripple",
			Name:   "Ripple",
			Symbol: "XRP",
		},
		Timezone: "Australia/Sydney",
		CoinGecko: CoinGeckoConfig{
			BaseURL:           "https://api.coingecko.com/api/v3",
			APIKey:            "",
			APIKeyHeader:      "x-cg-demo-api-key",
			VsCurrency:        "usd",
			RequestsPerSecond: 0.5,
			Timeout:           30 * time.Second,
		},
		Prediction: PredictionConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 0,
		},
		Analysis: AnalysisConfig{
			LookbackDays: 29,
			MaxAgeDays:   335,
		},
		Indicators: IndicatorConfig{
			RSIPeriod:        14,
			MACDFastPeriod:   12,
			MACDSlowPeriod:   26,
			MACDSignalPeriod: 9,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Load reads config from a YAML file on top of the defaults, then applies environment
// variable overrides. An empty path or a missing file yields defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "read config %s", path)
		}

		if len(data) > 0 {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "parse config %s", path)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv overrides secrets and endpoints from the environment.
func (c *Config) applyEnv() error {
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		c.CoinGecko.APIKey = v
	}

	if v := os.Getenv("COINGECKO_API_KEY_HEADER"); v != "" {
		c.CoinGecko.APIKeyHeader = v
	}

	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		c.CoinGecko.BaseURL = v
	}

	if v := os.Getenv("COINGECKO_REQUESTS_PER_SECOND"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "COINGECKO_REQUESTS_PER_SECOND=%q", v)
		}

		c.CoinGecko.RequestsPerSecond = rps
	}

	if v := os.Getenv("PREDICTION_BASE_URL"); v != "" {
		c.Prediction.BaseURL = v
	}

	if v := os.Getenv("DASHBOARD_TIMEZONE"); v != "" {
		c.Timezone = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}

	return nil
}

// Validate checks the struct tags and that the timezone resolves.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location resolves the configured timezone used for day boundaries.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "unknown timezone %q", c.Timezone)
	}

	return loc, nil
}

// AssetInfo returns the configured asset.
func (c *Config) AssetInfo() types.Asset {
	return types.Asset{
		ID:     c.Asset.ID,
		Name:   c.Asset.Name,
		Symbol: c.Asset.Symbol,
	}
}

// String renders the configuration without the API key.
func (c *Config) String() string {
	key := "<unset>"
	if c.CoinGecko.APIKey != "" {
		key = "<redacted>"
	}

	return fmt.Sprintf("asset=%s timezone=%s coingecko=%s key=%s prediction=%s",
		c.Asset.ID, c.Timezone, c.CoinGecko.BaseURL, key, c.Prediction.BaseURL)
}
