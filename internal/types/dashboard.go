package types

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
)

// PriceStatistics summarises the tick prices of an overview window.
type PriceStatistics struct {
	Mean   decimal.Decimal `json:"mean"`
	Median decimal.Decimal `json:"median"`
	// StdDev is the sample standard deviation; None with fewer than two ticks.
	StdDev optional.Option[decimal.Decimal] `json:"stdDev"`
	Min    decimal.Decimal                  `json:"min"`
	Max    decimal.Decimal                  `json:"max"`
}

// Dashboard is the overview result for a rolling lookback window.
type Dashboard struct {
	Asset        Asset `json:"asset"`
	LookbackDays int   `json:"lookbackDays"`
	// Ticks is the raw price and volume history for charting.
	Ticks        []Tick          `json:"ticks"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	// PreviousPrice and PriceChangePercent need at least two ticks.
	PreviousPrice      optional.Option[decimal.Decimal] `json:"previousPrice"`
	PriceChangePercent optional.Option[decimal.Decimal] `json:"priceChangePercent"`
	// RecentHigh and RecentLow cover the last 24 ticks (hourly granularity for short windows).
	RecentHigh decimal.Decimal `json:"recentHigh"`
	RecentLow  decimal.Decimal `json:"recentLow"`
	MarketCap  decimal.Decimal `json:"marketCap"`
	Statistics PriceStatistics `json:"statistics"`
	// DailyAggregate holds at most the last 10 daily bars.
	DailyAggregate []DailyBar `json:"dailyAggregate"`
	GeneratedAt    time.Time  `json:"generatedAt"`
}

// VolumeStatistics summarises the bar volumes of an analysis window.
type VolumeStatistics struct {
	Average decimal.Decimal `json:"average"`
	Max     decimal.Decimal `json:"max"`
	Min     decimal.Decimal `json:"min"`
	Total   decimal.Decimal `json:"total"`
}

// PredictionView is a prediction joined with the last observed daily high.
type PredictionView struct {
	Prediction
	// ChangeFromPreviousHigh is PredictedHigh minus the last bar's high.
	ChangeFromPreviousHigh decimal.Decimal `json:"changeFromPreviousHigh"`
}

// TechnicalAnalysis is the result for a selected date with daily bars and indicators.
type TechnicalAnalysis struct {
	Asset       Asset            `json:"asset"`
	Date        time.Time        `json:"date"`
	Bars        []DailyBar       `json:"bars"`
	Indicators  IndicatorSeries  `json:"indicators"`
	Days        int              `json:"days"`
	LatestClose decimal.Decimal  `json:"latestClose"`
	PeriodHigh  decimal.Decimal  `json:"periodHigh"`
	PeriodLow   decimal.Decimal  `json:"periodLow"`
	RSISignal   Signal           `json:"rsiSignal"`
	MACDSignal  Signal           `json:"macdSignal"`
	Volume      VolumeStatistics `json:"volume"`
	// Prediction is None when the prediction service could not provide one.
	Prediction  optional.Option[PredictionView] `json:"prediction"`
	GeneratedAt time.Time                       `json:"generatedAt"`
}
