package dashboard

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
)

// MarketData is the subset of the market data client the pipeline needs.
type MarketData interface {
	// FetchWindow returns ticks for lookbackDays full days before endDate plus endDate itself.
	FetchWindow(ctx context.Context, assetID string, endDate time.Time, lookbackDays int) ([]types.Tick, error)
	// FetchRecent returns ticks for the trailing rolling window of days.
	FetchRecent(ctx context.Context, assetID string, days int) ([]types.Tick, error)
}

// Predictor provides the forecasted high for the day after date.
type Predictor interface {
	Predict(ctx context.Context, assetID string, date time.Time) optional.Option[types.Prediction]
}

// Pipeline produces the two dashboard views.
type Pipeline interface {
	// GetDashboard returns the overview for a rolling lookback window.
	GetDashboard(ctx context.Context, assetID string, lookbackDays int) (*types.Dashboard, error)
	// GetTechnicalAnalysis returns daily bars, indicators and a prediction for a selected date.
	GetTechnicalAnalysis(ctx context.Context, date time.Time) (*types.TechnicalAnalysis, error)
}

// AllowedLookbackDays are the selectable overview windows.
var AllowedLookbackDays = []int{1, 7, 14, 30, 90, 180, 365}
