package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-dashboard/internal/types"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderCoinGecko ProviderType = "coingecko"
)

type Provider interface {
	// FetchRange returns the ticks reported between from and to, ordered by time ascending.
	// example:
	// FetchRange(ctx, "ripple", time.Date(2025, 1, 1, 0, 0, 0, 0, sydney), time.Date(2025, 1, 31, 0, 0, 0, 0, sydney))
	FetchRange(ctx context.Context, assetID string, from time.Time, to time.Time) ([]types.Tick, error)
	// FetchRecent returns the ticks of the trailing rolling window of the given number of days.
	FetchRecent(ctx context.Context, assetID string, days int) ([]types.Tick, error)
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
func NewMarketDataProvider(providerType ProviderType, config any) (Provider, error) {
	switch providerType {
	case ProviderCoinGecko:
		options, ok := config.(CoinGeckoOptions)
		if !ok {
			return nil, fmt.Errorf("coingecko provider requires CoinGeckoOptions config")
		}

		return NewCoinGeckoClient(options)
	default:
		return nil, fmt.Errorf("unsupported market data provider: %s", providerType)
	}
}
