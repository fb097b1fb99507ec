package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/shopspring/decimal"
)

// TickGenerator generates realistic tick series for testing.
type TickGenerator struct {
	rng *rand.Rand
}

// NewTickGenerator creates a new TickGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewTickGenerator(seed int64) *TickGenerator {
	return &TickGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how ticks are generated.
type GeneratorConfig struct {
	// StartTime is the time of the first tick
	StartTime time.Time
	// Interval is the duration between ticks
	Interval time.Duration
	// Count is the number of ticks to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement per tick (0.01 = 1%)
	Volatility float64
	// Trend is the total drift across the series
	Trend float64
	// VolumeBase is the average volume per tick
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
	// Supply converts price into market cap
	Supply float64
}

// DefaultConfig returns hourly XRP-like ticks over 30 days.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Interval:       time.Hour,
		Count:          30 * 24,
		InitialPrice:   2.2,
		Volatility:     0.004,
		Trend:          0.0,
		VolumeBase:     1_500_000_000,
		VolumeVariance: 0.3,
		Supply:         58_000_000_000,
	}
}

// Generate creates ascending ticks following a geometric Brownian motion.
func (g *TickGenerator) Generate(config GeneratorConfig) []types.Tick {
	ticks := make([]types.Tick, config.Count)
	price := config.InitialPrice
	current := config.StartTime

	for i := 0; i < config.Count; i++ {
		// Box-Muller
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		next := price * (1 + config.Volatility*z + drift)
		if next <= 0 {
			next = price * 0.99
		}

		volume := config.VolumeBase * (1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		ticks[i] = types.Tick{
			Time:      current,
			Price:     decimal.NewFromFloat(next).Round(6),
			Volume:    decimal.NewFromFloat(volume).Round(2),
			MarketCap: decimal.NewFromFloat(next * config.Supply).Round(0),
		}

		price = next
		current = current.Add(config.Interval)
	}

	return ticks
}

// Shuffle returns a copy of ticks in random order.
func (g *TickGenerator) Shuffle(ticks []types.Tick) []types.Tick {
	out := make([]types.Tick, len(ticks))
	copy(out, ticks)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	return out
}

// GenerateDays is a convenience function returning hourly ticks for the given number of days.
func GenerateDays(start time.Time, days int) []types.Tick {
	gen := NewTickGenerator(42)
	config := DefaultConfig()
	config.StartTime = start
	config.Count = days * 24

	return gen.Generate(config)
}
