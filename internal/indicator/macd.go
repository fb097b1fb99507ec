package indicator

import (
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
}

// MACDSeries holds the three MACD lines, aligned with the input closes.
type MACDSeries struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() *MACD {
	return &MACD{
		fast:   &EMA{period: 12},
		slow:   &EMA{period: 26},
		signal: &EMA{period: 9},
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Periods returns the fast, slow and signal spans.
func (m *MACD) Periods() (int, int, int) {
	return m.fast.Period(), m.slow.Period(), m.signal.Period()
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := periodParam(params, 0, "fastPeriod")
	if err != nil {
		return err
	}

	slowPeriod, err := periodParam(params, 1, "slowPeriod")
	if err != nil {
		return err
	}

	signalPeriod, err := periodParam(params, 2, "signalPeriod")
	if err != nil {
		return err
	}

	if fastPeriod >= slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod (%d) must be less than slowPeriod (%d)", fastPeriod, slowPeriod)
	}

	emas := []*EMA{NewEMA(), NewEMA(), NewEMA()}
	for i, period := range []int{fastPeriod, slowPeriod, signalPeriod} {
		if err := emas[i].Config(period); err != nil {
			return err
		}
	}

	m.fast, m.slow, m.signal = emas[0], emas[1], emas[2]

	return nil
}

// Compute returns the MACD line (fast EMA minus slow EMA), its signal EMA and the histogram.
// Values exist from the first close; the early part of the series is low confidence.
func (m *MACD) Compute(closes []float64) MACDSeries {
	fast := m.fast.Compute(closes)
	slow := m.slow.Compute(closes)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fast[i] - slow[i]
	}

	signalLine := m.signal.Compute(macdLine)

	histogram := make([]float64, len(closes))
	for i := range closes {
		histogram[i] = macdLine[i] - signalLine[i]
	}

	return MACDSeries{
		MACD:      macdLine,
		Signal:    signalLine,
		Histogram: histogram,
	}
}

// GetSignal reads the latest MACD against its signal line.
func (m *MACD) GetSignal(date time.Time, macdValue float64, signalValue float64, symbol string) types.Signal {
	signalType := types.SignalTypeBearish
	reason := fmt.Sprintf("MACD below signal line (macd=%.6f, signal=%.6f)", macdValue, signalValue)

	if macdValue > signalValue {
		signalType = types.SignalTypeBullish
		reason = fmt.Sprintf("MACD above signal line (macd=%.6f, signal=%.6f)", macdValue, signalValue)
	}

	return types.Signal{
		Time:   date,
		Type:   signalType,
		Name:   string(m.Name()),
		Reason: reason,
		RawValue: map[string]float64{
			"macd":      macdValue,
			"signal":    signalValue,
			"histogram": macdValue - signalValue,
		},
		Symbol:    symbol,
		Indicator: m.Name(),
	}
}
