package indicator

import (
	"fmt"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
type RSI struct {
	period            int
	rsiLowerThreshold float64
	rsiUpperThreshold float64
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() *RSI {
	return &RSI{
		period:            14, // Default period
		rsiLowerThreshold: 30,
		rsiUpperThreshold: 70,
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Period returns the trailing window length.
func (r *RSI) Period() int {
	return r.period
}

// Config configures the RSI indicator.
// Expected parameters: period (int), lowerThreshold (float64, optional), upperThreshold (float64, optional).
func (r *RSI) Config(params ...any) error {
	if len(params) < 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects at least 1 parameter: period (int)")
	}

	period, err := periodParam(params, 0, "period")
	if err != nil {
		return err
	}

	lower := r.rsiLowerThreshold
	upper := r.rsiUpperThreshold

	if len(params) >= 2 {
		threshold, ok := params[1].(float64)
		if !ok {
			return invalidType("lowerThreshold", "float64")
		}

		lower = threshold
	}

	if len(params) >= 3 {
		threshold, ok := params[2].(float64)
		if !ok {
			return invalidType("upperThreshold", "float64")
		}

		upper = threshold
	}

	if lower < 0 || upper > 100 || lower >= upper {
		return errors.Newf(errors.ErrCodeInvalidInput, "thresholds must satisfy 0 <= lower < upper <= 100, got %.2f/%.2f", lower, upper)
	}

	r.period = period
	r.rsiLowerThreshold = lower
	r.rsiUpperThreshold = upper

	return nil
}

// Compute returns an RSI value per close. The first period entries are None because the
// trailing window of period price changes is incomplete there. Gains and losses are
// averaged with a simple mean over the window.
func (r *RSI) Compute(closes []float64) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(closes))

	for i := range closes {
		if i < r.period {
			out[i] = optional.None[float64]()

			continue
		}

		avgGain := 0.0
		avgLoss := 0.0

		for j := i - r.period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				avgGain += change
			} else {
				avgLoss -= change
			}
		}

		avgGain /= float64(r.period)
		avgLoss /= float64(r.period)

		out[i] = optional.Some(relativeStrengthIndex(avgGain, avgLoss))
	}

	return out
}

func relativeStrengthIndex(avgGain, avgLoss float64) float64 {
	// no losses in the window, including a flat window
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}

// GetSignal classifies an RSI reading against the configured thresholds.
func (r *RSI) GetSignal(date time.Time, value optional.Option[float64], symbol string) types.Signal {
	signal := types.Signal{
		Time:      date,
		Type:      types.SignalTypeUnavailable,
		Name:      string(r.Name()),
		Reason:    fmt.Sprintf("RSI needs more than %d daily closes", r.period),
		Symbol:    symbol,
		Indicator: r.Name(),
	}

	rsiValue, err := value.Take()
	if err != nil {
		return signal
	}

	signal.RawValue = map[string]float64{
		"rsi": rsiValue,
	}

	switch {
	case rsiValue > r.rsiUpperThreshold:
		signal.Type = types.SignalTypeOverbought
		signal.Reason = fmt.Sprintf("RSI overbought (value=%.2f)", rsiValue)
	case rsiValue < r.rsiLowerThreshold:
		signal.Type = types.SignalTypeOversold
		signal.Reason = fmt.Sprintf("RSI oversold (value=%.2f)", rsiValue)
	default:
		signal.Type = types.SignalTypeNeutral
		signal.Reason = fmt.Sprintf("RSI neutral (value=%.2f)", rsiValue)
	}

	return signal
}
