package resample

import (
	"sort"
	"time"

	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/shopspring/decimal"
)

// Resampler groups ticks into daily OHLCV bars by calendar day in a fixed timezone.
type Resampler struct {
	location *time.Location
}

// NewResampler creates a resampler for the given timezone. A nil location means UTC.
func NewResampler(loc *time.Location) *Resampler {
	if loc == nil {
		loc = time.UTC
	}

	return &Resampler{location: loc}
}

// Location returns the timezone day boundaries are computed in.
func (r *Resampler) Location() *time.Location {
	return r.location
}

// Resample returns one bar per calendar day that has at least one tick, ascending by day.
// The input slice is not modified.
func (r *Resampler) Resample(ticks []types.Tick) []types.DailyBar {
	if len(ticks) == 0 {
		return []types.DailyBar{}
	}

	sorted := make([]types.Tick, len(ticks))
	copy(sorted, ticks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	bars := make([]types.DailyBar, 0)

	var (
		current      *types.DailyBar
		marketCapSum decimal.Decimal
	)

	flush := func() {
		if current == nil {
			return
		}

		current.MarketCap = marketCapSum.Div(decimal.NewFromInt(int64(current.Ticks)))
		bars = append(bars, *current)
	}

	for _, tick := range sorted {
		day := r.dayOf(tick.Time)

		if current == nil || !current.Date.Equal(day) {
			flush()

			current = &types.DailyBar{
				Date:   day,
				Open:   tick.Price,
				High:   tick.Price,
				Low:    tick.Price,
				Close:  tick.Price,
				Volume: decimal.Zero,
			}
			marketCapSum = decimal.Zero
		}

		if tick.Price.GreaterThan(current.High) {
			current.High = tick.Price
		}

		if tick.Price.LessThan(current.Low) {
			current.Low = tick.Price
		}

		current.Close = tick.Price
		current.Volume = current.Volume.Add(tick.Volume)
		marketCapSum = marketCapSum.Add(tick.MarketCap)
		current.Ticks++
	}

	flush()

	return bars
}

// dayOf returns local midnight of t's calendar day.
func (r *Resampler) dayOf(t time.Time) time.Time {
	local := t.In(r.location)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.location)
}
