package types

import (
	"time"

	"github.com/moznion/go-optional"
)

type IndicatorType string

const (
	IndicatorTypeRSI  IndicatorType = "rsi"
	IndicatorTypeMACD IndicatorType = "macd"
	IndicatorTypeEMA  IndicatorType = "ema"
)

// IndicatorSeries holds indicator values aligned index by index with a slice of DailyBar.
type IndicatorSeries struct {
	Dates []time.Time `json:"dates"`
	// RSI is None while there is not enough history for the trailing window.
	RSI []optional.Option[float64] `json:"rsi"`
	// MACD, Signal and Histogram are defined from the first bar; early values are low confidence.
	MACD      []float64 `json:"macd"`
	Signal    []float64 `json:"signal"`
	Histogram []float64 `json:"histogram"`
}

// Len returns the number of aligned entries.
func (s IndicatorSeries) Len() int {
	return len(s.Dates)
}

// LatestRSI returns the last RSI value, or None when the series is empty or still warming up.
func (s IndicatorSeries) LatestRSI() optional.Option[float64] {
	if len(s.RSI) == 0 {
		return optional.None[float64]()
	}

	return s.RSI[len(s.RSI)-1]
}
