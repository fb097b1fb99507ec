package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-dashboard/internal/logger"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"github.com/rxtech-lab/argo-dashboard/pkg/marketdata/provider"
	"go.uber.org/zap"
)

// ProviderType defines the type of market data provider.
type ProviderType = provider.ProviderType

const (
	ProviderCoinGecko = provider.ProviderCoinGecko
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType ProviderType `validate:"required"`
	// Location is the fixed timezone used for every day boundary.
	Location  *time.Location `validate:"required"`
	CoinGecko provider.CoinGeckoOptions
}

// RangeParams holds the parameters of an explicit range request.
type RangeParams struct {
	AssetID string    `validate:"required"`
	From    time.Time `validate:"required"`
	To      time.Time `validate:"required,gtfield=From"`
}

// Client is the market data client responsible for turning date selections into provider requests.
type Client struct {
	provider provider.Provider
	// info is the zero value for providers built outside the registry
	info     ProviderInfo
	now      func() time.Time
	location *time.Location
	validate *validator.Validate
	logger   *logger.Logger
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid market data client configuration", err)
	}

	if log == nil {
		log = logger.NewNop()
	}

	info, err := LookupProvider(config.ProviderType)
	if err != nil {
		return nil, err
	}

	var providerConfig any

	switch config.ProviderType {
	case ProviderCoinGecko:
		opts := config.CoinGecko
		if !info.AcceptsAPIKeyHeader(opts.APIKeyHeader) {
			return nil, errors.Newf(errors.ErrCodeInvalidConfiguration,
				"%s does not read an API key from %q, expected one of %v", info.DisplayName, opts.APIKeyHeader, info.APIKeyHeaders)
		}

		if opts.BaseURL == "" {
			opts.BaseURL = info.DefaultBaseURL
		}

		opts.Location = config.Location
		opts.Logger = log
		providerConfig = opts
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.ProviderType)
	}

	marketProvider, err := provider.NewMarketDataProvider(config.ProviderType, providerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", config.ProviderType, err)
	}

	client := NewClientWithProvider(marketProvider, config.Location, log)
	client.info = info

	return client, nil
}

// NewClientWithProvider wraps an already constructed provider.
func NewClientWithProvider(p provider.Provider, loc *time.Location, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		provider: p,
		now:      time.Now,
		location: loc,
		validate: validator.New(),
		logger:   log.Named("marketdata"),
	}
}

// Provider returns the registry entry of the underlying provider.
func (c *Client) Provider() ProviderInfo {
	return c.info
}

// Location returns the timezone used for day boundaries.
func (c *Client) Location() *time.Location {
	return c.location
}

// Fetch returns ticks in [from, to), ordered by timestamp ascending.
func (c *Client) Fetch(ctx context.Context, assetID string, from time.Time, to time.Time) ([]types.Tick, error) {
	params := RangeParams{AssetID: assetID, From: from, To: to}
	if err := c.validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, "invalid range parameters", err)
	}

	if earliest := c.info.EarliestAllowed(c.now()); !earliest.IsZero() && from.Before(earliest) {
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "%s only serves the last %d days, %s is too old",
			c.info.DisplayName, c.info.MaxHistoryDays, from.In(c.location).Format(time.DateOnly))
	}

	ticks, err := c.provider.FetchRange(ctx, assetID, from, to)
	if err != nil {
		return nil, err
	}

	// the selected end is exclusive; providers may round the bound up to the next sample
	inRange := make([]types.Tick, 0, len(ticks))

	for _, tick := range ticks {
		if !tick.Time.Before(from) && tick.Time.Before(to) {
			inRange = append(inRange, tick)
		}
	}

	c.logger.Debug("Fetched range",
		zap.String("asset", assetID),
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("ticks", len(inRange)),
		zap.Int("dropped", len(ticks)-len(inRange)),
	)

	return inRange, nil
}

// FetchWindow fetches lookbackDays full days before endDate plus endDate itself.
func (c *Client) FetchWindow(ctx context.Context, assetID string, endDate time.Time, lookbackDays int) ([]types.Tick, error) {
	from, to := Window(endDate, lookbackDays, c.location)

	return c.Fetch(ctx, assetID, from, to)
}

// FetchRecent fetches the trailing rolling window of days.
func (c *Client) FetchRecent(ctx context.Context, assetID string, days int) ([]types.Tick, error) {
	if assetID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "asset id is required")
	}

	if days <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "days must be positive, got %d", days)
	}

	if c.info.MaxHistoryDays > 0 && days > c.info.MaxHistoryDays {
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "%s only serves the last %d days, got %d",
			c.info.DisplayName, c.info.MaxHistoryDays, days)
	}

	ticks, err := c.provider.FetchRecent(ctx, assetID, days)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched recent window",
		zap.String("asset", assetID),
		zap.Int("days", days),
		zap.Int("ticks", len(ticks)),
	)

	return ticks, nil
}
