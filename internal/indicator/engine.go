package indicator

import (
	"time"

	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
)

// EngineConfig holds the indicator periods of an Engine.
type EngineConfig struct {
	RSIPeriod        int
	MACDFastPeriod   int
	MACDSlowPeriod   int
	MACDSignalPeriod int
}

// DefaultEngineConfig returns RSI(14) and MACD(12, 26, 9).
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		RSIPeriod:        14,
		MACDFastPeriod:   12,
		MACDSlowPeriod:   26,
		MACDSignalPeriod: 9,
	}
}

// Engine computes the indicator series shown next to the daily bars.
type Engine struct {
	rsi  *RSI
	macd *MACD
}

// NewEngine creates an engine with validated periods.
func NewEngine(config EngineConfig) (*Engine, error) {
	rsi := NewRSI()
	if err := rsi.Config(config.RSIPeriod); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid RSI configuration", err)
	}

	macd := NewMACD()
	if err := macd.Config(config.MACDFastPeriod, config.MACDSlowPeriod, config.MACDSignalPeriod); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid MACD configuration", err)
	}

	return &Engine{rsi: rsi, macd: macd}, nil
}

// Compute runs RSI and MACD over the bar closes. Every output slice has len(bars) entries.
func (e *Engine) Compute(bars []types.DailyBar) types.IndicatorSeries {
	closes := types.Closes(bars)

	dates := make([]time.Time, len(bars))
	for i, bar := range bars {
		dates[i] = bar.Date
	}

	macd := e.macd.Compute(closes)

	return types.IndicatorSeries{
		Dates:     dates,
		RSI:       e.rsi.Compute(closes),
		MACD:      macd.MACD,
		Signal:    macd.Signal,
		Histogram: macd.Histogram,
	}
}

// Signals reads the latest RSI status and MACD crossover state from a computed series.
func (e *Engine) Signals(series types.IndicatorSeries, symbol string) (types.Signal, types.Signal) {
	if series.Len() == 0 {
		unavailable := func(name types.IndicatorType) types.Signal {
			return types.Signal{
				Type:      types.SignalTypeUnavailable,
				Name:      string(name),
				Reason:    "no daily bars",
				Symbol:    symbol,
				Indicator: name,
			}
		}

		return unavailable(e.rsi.Name()), unavailable(e.macd.Name())
	}

	last := series.Len() - 1
	date := series.Dates[last]

	rsiSignal := e.rsi.GetSignal(date, series.LatestRSI(), symbol)
	macdSignal := e.macd.GetSignal(date, series.MACD[last], series.Signal[last], symbol)

	return rsiSignal, macdSignal
}
