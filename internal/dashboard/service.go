package dashboard

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dashboard/internal/indicator"
	"github.com/rxtech-lab/argo-dashboard/internal/logger"
	"github.com/rxtech-lab/argo-dashboard/internal/resample"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"github.com/rxtech-lab/argo-dashboard/pkg/marketdata"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	recentWindowTicks  = 24
	dailyAggregateBars = 10
)

// Options configures a Service.
type Options struct {
	Asset    types.Asset
	Location *time.Location `validate:"required"`
	// AnalysisLookbackDays is how many days before the selected date the analysis covers.
	AnalysisLookbackDays int `validate:"min=1"`
	// MaxAgeDays is how far back a selected analysis date may be.
	MaxAgeDays int `validate:"min=0"`
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *logger.Logger
}

// dashboardRequest is the validated input of GetDashboard.
type dashboardRequest struct {
	AssetID      string `validate:"required"`
	LookbackDays int    `validate:"oneof=1 7 14 30 90 180 365"`
}

// Service runs the fetch, resample, indicator and prediction steps for each request.
// It holds no mutable state between calls.
type Service struct {
	marketData MarketData
	predictor  Predictor
	resampler  *resample.Resampler
	engine     *indicator.Engine
	validate   *validator.Validate
	options    Options
	logger     *logger.Logger
}

var _ Pipeline = (*Service)(nil)

// NewService creates a new pipeline service.
func NewService(marketData MarketData, predictor Predictor, engine *indicator.Engine, opts Options) (*Service, error) {
	validate := validator.New()
	if err := validate.Struct(opts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid dashboard options", err)
	}

	if opts.Asset.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "asset id is required")
	}

	if marketData == nil || predictor == nil || engine == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "market data, predictor and indicator engine are required")
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	return &Service{
		marketData: marketData,
		predictor:  predictor,
		resampler:  resample.NewResampler(opts.Location),
		engine:     engine,
		validate:   validate,
		options:    opts,
		logger:     opts.Logger.Named("dashboard"),
	}, nil
}

// Asset returns the configured asset.
func (s *Service) Asset() types.Asset {
	return s.options.Asset
}

// Location returns the timezone of every day boundary.
func (s *Service) Location() *time.Location {
	return s.options.Location
}

// GetDashboard fetches the trailing window and summarises it.
func (s *Service) GetDashboard(ctx context.Context, assetID string, lookbackDays int) (*types.Dashboard, error) {
	request := dashboardRequest{AssetID: assetID, LookbackDays: lookbackDays}
	if err := s.validate.Struct(request); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidInput, err,
			"invalid overview request (asset=%q, lookback=%d, allowed lookbacks %v)", assetID, lookbackDays, AllowedLookbackDays)
	}

	if assetID != s.options.Asset.ID {
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "unknown asset %q", assetID)
	}

	ticks, err := s.marketData.FetchRecent(ctx, assetID, lookbackDays)
	if err != nil {
		s.logger.Error("Failed to fetch overview window", zap.String("asset", assetID), zap.Int("days", lookbackDays), zap.Error(err))

		return nil, err
	}

	if len(ticks) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no market data for %s over the last %d days", assetID, lookbackDays)
	}

	last := ticks[len(ticks)-1]
	recent := ticks[max(0, len(ticks)-recentWindowTicks):]
	recentHigh, recentLow := priceRange(recent)

	result := &types.Dashboard{
		Asset:              s.options.Asset,
		LookbackDays:       lookbackDays,
		Ticks:              ticks,
		CurrentPrice:       last.Price,
		PreviousPrice:      optional.None[decimal.Decimal](),
		PriceChangePercent: optional.None[decimal.Decimal](),
		RecentHigh:         recentHigh,
		RecentLow:          recentLow,
		MarketCap:          last.MarketCap,
		Statistics:         priceStatistics(ticks),
		GeneratedAt:        s.options.Now(),
	}

	if len(ticks) >= 2 {
		previous := ticks[len(ticks)-2].Price
		result.PreviousPrice = optional.Some(previous)
		result.PriceChangePercent = percentChange(previous, last.Price)
	}

	bars := s.resampler.Resample(ticks)
	result.DailyAggregate = bars[max(0, len(bars)-dailyAggregateBars):]

	s.logger.Info("Built overview",
		zap.String("asset", assetID),
		zap.Int("days", lookbackDays),
		zap.Int("ticks", len(ticks)),
		zap.Int("bars", len(bars)),
	)

	return result, nil
}

// GetTechnicalAnalysis builds daily bars and indicators for the days up to date.
func (s *Service) GetTechnicalAnalysis(ctx context.Context, date time.Time) (*types.TechnicalAnalysis, error) {
	day, err := s.checkAnalysisDate(date)
	if err != nil {
		return nil, err
	}

	asset := s.options.Asset

	ticks, err := s.marketData.FetchWindow(ctx, asset.ID, day, s.options.AnalysisLookbackDays)
	if err != nil {
		s.logger.Error("Failed to fetch analysis window", zap.String("asset", asset.ID), zap.Time("date", day), zap.Error(err))

		return nil, err
	}

	if len(ticks) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no market data for %s up to %s", asset.ID, day.Format(time.DateOnly))
	}

	bars := s.resampler.Resample(ticks)
	series := s.engine.Compute(bars)
	rsiSignal, macdSignal := s.engine.Signals(series, asset.Symbol)
	high, low := barRange(bars)
	lastBar := bars[len(bars)-1]

	result := &types.TechnicalAnalysis{
		Asset:       asset,
		Date:        day,
		Bars:        bars,
		Indicators:  series,
		Days:        len(bars),
		LatestClose: lastBar.Close,
		PeriodHigh:  high,
		PeriodLow:   low,
		RSISignal:   rsiSignal,
		MACDSignal:  macdSignal,
		Volume:      volumeStatistics(bars),
		Prediction:  optional.None[types.PredictionView](),
		GeneratedAt: s.options.Now(),
	}

	if prediction, err := s.predictor.Predict(ctx, asset.ID, day).Take(); err == nil {
		result.Prediction = optional.Some(types.PredictionView{
			Prediction:             prediction,
			ChangeFromPreviousHigh: prediction.PredictedHigh.Sub(lastBar.High),
		})
	}

	s.logger.Info("Built technical analysis",
		zap.String("asset", asset.ID),
		zap.Time("date", day),
		zap.Int("bars", len(bars)),
		zap.String("rsi", string(rsiSignal.Type)),
		zap.String("macd", string(macdSignal.Type)),
		zap.Bool("prediction", result.Prediction.IsSome()),
	)

	return result, nil
}

// checkAnalysisDate truncates date to its civil day and checks it is within
// [today - MaxAgeDays, today] in the configured zone.
func (s *Service) checkAnalysisDate(date time.Time) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, errors.New(errors.ErrCodeInvalidInput, "analysis date is required")
	}

	loc := s.options.Location
	day := marketdata.StartOfDay(date, loc)
	today := marketdata.StartOfDay(s.options.Now(), loc)
	earliest := today.AddDate(0, 0, -s.options.MaxAgeDays)

	if day.After(today) || day.Before(earliest) {
		return time.Time{}, errors.Newf(errors.ErrCodeInvalidInput,
			"analysis date %s must be between %s and %s",
			day.Format(time.DateOnly), earliest.Format(time.DateOnly), today.Format(time.DateOnly))
	}

	return day, nil
}
