package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset identifies the single token pairing the dashboard is configured for.
type Asset struct {
	// ID is the market data provider's coin id, e.g. "ripple".
	ID string `json:"id" yaml:"id"`
	// Name is the display name, e.g. "Ripple".
	Name string `json:"name" yaml:"name"`
	// Symbol is the ticker symbol, e.g. "XRP".
	Symbol string `json:"symbol" yaml:"symbol"`
}

// Tick is a single price/volume/market cap sample reported by the market data provider.
type Tick struct {
	Time      time.Time       `json:"time"`
	Price     decimal.Decimal `json:"price"`
	Volume    decimal.Decimal `json:"volume"`
	MarketCap decimal.Decimal `json:"marketCap"`
}

// DailyBar aggregates all ticks of one calendar day in the dashboard's timezone.
type DailyBar struct {
	// Date is midnight of the bar's day in the dashboard's timezone.
	Date  time.Time       `json:"date"`
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
	// Volume is the sum of the day's tick volumes.
	Volume decimal.Decimal `json:"volume"`
	// MarketCap is the mean of the day's tick market caps.
	MarketCap decimal.Decimal `json:"marketCap"`
	// Ticks is the number of ticks aggregated into the bar.
	Ticks int `json:"ticks"`
}

// IsUp reports whether the bar closed at or above its open.
func (b DailyBar) IsUp() bool {
	return b.Close.GreaterThanOrEqual(b.Open)
}

// Closes returns the closing prices of bars as float64 values for indicator math.
func Closes(bars []DailyBar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close.InexactFloat64()
	}

	return closes
}
