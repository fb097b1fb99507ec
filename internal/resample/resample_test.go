package resample

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ResampleTestSuite struct {
	suite.Suite
	sydney    *time.Location
	resampler *Resampler
}

func TestResampleSuite(t *testing.T) {
	suite.Run(t, new(ResampleTestSuite))
}

func (suite *ResampleTestSuite) SetupTest() {
	loc, err := time.LoadLocation("Australia/Sydney")
	suite.Require().NoError(err)

	suite.sydney = loc
	suite.resampler = NewResampler(loc)
}

func tick(t time.Time, price, volume, marketCap float64) types.Tick {
	return types.Tick{
		Time:      t,
		Price:     decimal.NewFromFloat(price),
		Volume:    decimal.NewFromFloat(volume),
		MarketCap: decimal.NewFromFloat(marketCap),
	}
}

func (suite *ResampleTestSuite) TestSingleDayAggregation() {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, suite.sydney)
	ticks := []types.Tick{
		tick(day.Add(1*time.Hour), 10, 100, 900),
		tick(day.Add(6*time.Hour), 12, 50, 1000),
		tick(day.Add(12*time.Hour), 8, 70, 1100),
		tick(day.Add(18*time.Hour), 11, 60, 1000),
	}

	bars := suite.resampler.Resample(ticks)

	suite.Require().Len(bars, 1)
	bar := bars[0]
	suite.True(bar.Date.Equal(day))
	suite.True(bar.Open.Equal(decimal.NewFromInt(10)), "open %s", bar.Open)
	suite.True(bar.High.Equal(decimal.NewFromInt(12)), "high %s", bar.High)
	suite.True(bar.Low.Equal(decimal.NewFromInt(8)), "low %s", bar.Low)
	suite.True(bar.Close.Equal(decimal.NewFromInt(11)), "close %s", bar.Close)
	suite.True(bar.Volume.Equal(decimal.NewFromInt(280)), "volume %s", bar.Volume)
	suite.True(bar.MarketCap.Equal(decimal.NewFromInt(1000)), "market cap %s", bar.MarketCap)
	suite.Equal(4, bar.Ticks)
}

func (suite *ResampleTestSuite) TestUnsortedInputIsSortedFirst() {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, suite.sydney)
	ticks := []types.Tick{
		tick(day.Add(18*time.Hour), 11, 1, 1),
		tick(day.Add(1*time.Hour), 10, 1, 1),
		tick(day.Add(12*time.Hour), 8, 1, 1),
	}

	bars := suite.resampler.Resample(ticks)

	suite.Require().Len(bars, 1)
	suite.True(bars[0].Open.Equal(decimal.NewFromInt(10)))
	suite.True(bars[0].Close.Equal(decimal.NewFromInt(11)))
	// input untouched
	suite.True(ticks[0].Price.Equal(decimal.NewFromInt(11)))
}

func (suite *ResampleTestSuite) TestEmptyInput() {
	suite.Empty(suite.resampler.Resample(nil))
	suite.NotNil(suite.resampler.Resample([]types.Tick{}))
}

func (suite *ResampleTestSuite) TestDayBoundaryUsesLocalZone() {
	// 2025-05-10 13:30 UTC is 23:30 on the 10th in Sydney; 14:30 UTC is the 11th.
	ticks := []types.Tick{
		tick(time.Date(2025, 5, 10, 13, 30, 0, 0, time.UTC), 1, 1, 1),
		tick(time.Date(2025, 5, 10, 14, 30, 0, 0, time.UTC), 2, 1, 1),
	}

	bars := suite.resampler.Resample(ticks)

	suite.Require().Len(bars, 2)
	suite.Equal(10, bars[0].Date.Day())
	suite.Equal(11, bars[1].Date.Day())
	suite.Equal(suite.sydney, bars[1].Date.Location())
}

func (suite *ResampleTestSuite) TestUTCResamplerGroupsDifferently() {
	ticks := []types.Tick{
		tick(time.Date(2025, 5, 10, 13, 30, 0, 0, time.UTC), 1, 1, 1),
		tick(time.Date(2025, 5, 10, 14, 30, 0, 0, time.UTC), 2, 1, 1),
	}

	bars := NewResampler(nil).Resample(ticks)

	suite.Require().Len(bars, 1)
	suite.Equal(time.UTC, bars[0].Date.Location())
}

func (suite *ResampleTestSuite) TestDaylightSavingTransitionDays() {
	// DST starts 2025-10-05 (23h day) and ends 2025-04-06 (25h day) in Sydney.
	expectedMiddle := []int{46, 50}

	for n, start := range []time.Time{
		time.Date(2025, 10, 4, 0, 0, 0, 0, suite.sydney),
		time.Date(2025, 4, 5, 0, 0, 0, 0, suite.sydney),
	} {
		var ticks []types.Tick
		for ts := start; ts.Before(start.AddDate(0, 0, 3)); ts = ts.Add(30 * time.Minute) {
			ticks = append(ticks, tick(ts, 1, 1, 1))
		}

		bars := suite.resampler.Resample(ticks)

		suite.Require().Len(bars, 3)
		for i, bar := range bars {
			expected := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, suite.sydney)
			suite.True(bar.Date.Equal(expected), "bar %d: %s != %s", i, bar.Date, expected)
		}

		suite.Equal(48, bars[0].Ticks)
		suite.Equal(expectedMiddle[n], bars[1].Ticks)
		suite.Equal(48, bars[2].Ticks)
	}
}

func (suite *ResampleTestSuite) TestGapsProduceNoBars() {
	ticks := []types.Tick{
		tick(time.Date(2025, 5, 1, 12, 0, 0, 0, suite.sydney), 1, 1, 1),
		tick(time.Date(2025, 5, 4, 12, 0, 0, 0, suite.sydney), 2, 1, 1),
	}

	bars := suite.resampler.Resample(ticks)

	suite.Require().Len(bars, 2)
	suite.Equal(1, bars[0].Date.Day())
	suite.Equal(4, bars[1].Date.Day())
}

func (suite *ResampleTestSuite) TestRandomTicksHoldBarInvariants() {
	gen := mocks.NewTickGenerator(99)
	config := mocks.DefaultConfig()
	config.Interval = 17 * time.Minute
	config.Count = 4000

	ordered := gen.Generate(config)
	bars := suite.resampler.Resample(gen.Shuffle(ordered))

	suite.Require().NotEmpty(bars)
	suite.Equal(bars, suite.resampler.Resample(ordered))

	total := 0
	for i, bar := range bars {
		suite.True(bar.Low.LessThanOrEqual(bar.Open), "bar %d low > open", i)
		suite.True(bar.Low.LessThanOrEqual(bar.Close), "bar %d low > close", i)
		suite.True(bar.High.GreaterThanOrEqual(bar.Open), "bar %d high < open", i)
		suite.True(bar.High.GreaterThanOrEqual(bar.Close), "bar %d high < close", i)

		if i > 0 {
			suite.True(bar.Date.After(bars[i-1].Date), "bar %d not ascending", i)
		}

		total += bar.Ticks
	}

	suite.Equal(len(ordered), total)
}
