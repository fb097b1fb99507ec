package dashboard

import (
	"math"
	"sort"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percentChange returns (current - previous) / previous * 100, or None when previous is zero.
func percentChange(previous, current decimal.Decimal) optional.Option[decimal.Decimal] {
	if previous.IsZero() {
		return optional.None[decimal.Decimal]()
	}

	return optional.Some(current.Sub(previous).Div(previous).Mul(hundred))
}

func priceRange(ticks []types.Tick) (decimal.Decimal, decimal.Decimal) {
	if len(ticks) == 0 {
		return decimal.Zero, decimal.Zero
	}

	high, low := ticks[0].Price, ticks[0].Price
	for _, tick := range ticks[1:] {
		high = decimal.Max(high, tick.Price)
		low = decimal.Min(low, tick.Price)
	}

	return high, low
}

func barRange(bars []types.DailyBar) (decimal.Decimal, decimal.Decimal) {
	if len(bars) == 0 {
		return decimal.Zero, decimal.Zero
	}

	high, low := bars[0].High, bars[0].Low
	for _, bar := range bars[1:] {
		high = decimal.Max(high, bar.High)
		low = decimal.Min(low, bar.Low)
	}

	return high, low
}

// priceStatistics summarises tick prices. The standard deviation uses the n-1 denominator.
func priceStatistics(ticks []types.Tick) types.PriceStatistics {
	stats := types.PriceStatistics{StdDev: optional.None[decimal.Decimal]()}
	if len(ticks) == 0 {
		return stats
	}

	prices := make([]decimal.Decimal, len(ticks))
	for i, tick := range ticks {
		prices[i] = tick.Price
	}

	count := decimal.NewFromInt(int64(len(prices)))
	mean := decimal.Sum(prices[0], prices[1:]...).Div(count)

	sorted := make([]decimal.Decimal, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	middle := len(sorted) / 2
	median := sorted[middle]

	if len(sorted)%2 == 0 {
		median = sorted[middle-1].Add(sorted[middle]).Div(decimal.NewFromInt(2))
	}

	stats.Mean = mean
	stats.Median = median
	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]

	if len(prices) > 1 {
		sumSquares := 0.0
		meanFloat := mean.InexactFloat64()

		for _, price := range prices {
			diff := price.InexactFloat64() - meanFloat
			sumSquares += diff * diff
		}

		stats.StdDev = optional.Some(decimal.NewFromFloat(math.Sqrt(sumSquares / float64(len(prices)-1))))
	}

	return stats
}

func volumeStatistics(bars []types.DailyBar) types.VolumeStatistics {
	if len(bars) == 0 {
		return types.VolumeStatistics{}
	}

	stats := types.VolumeStatistics{
		Max:   bars[0].Volume,
		Min:   bars[0].Volume,
		Total: decimal.Zero,
	}

	for _, bar := range bars {
		stats.Total = stats.Total.Add(bar.Volume)
		stats.Max = decimal.Max(stats.Max, bar.Volume)
		stats.Min = decimal.Min(stats.Min, bar.Volume)
	}

	stats.Average = stats.Total.Div(decimal.NewFromInt(int64(len(bars))))

	return stats
}
