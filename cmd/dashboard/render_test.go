package main

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RenderTestSuite struct {
	suite.Suite
	asset types.Asset
	bars  []types.DailyBar
}

func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

func (suite *RenderTestSuite) SetupTest() {
	suite.asset = types.Asset{ID: "ripple", Name: "Ripple", Symbol: "XRP"}
	suite.bars = []types.DailyBar{
		{
			Date:   time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
			Open:   decimal.RequireFromString("2.10"),
			High:   decimal.RequireFromString("2.25"),
			Low:    decimal.RequireFromString("2.05"),
			Close:  decimal.RequireFromString("2.20"),
			Volume: decimal.RequireFromString("1500000000"),
		},
		{
			Date:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			Open:   decimal.RequireFromString("2.20"),
			High:   decimal.RequireFromString("2.22"),
			Low:    decimal.RequireFromString("2.01"),
			Close:  decimal.RequireFromString("2.02"),
			Volume: decimal.RequireFromString("2500000000"),
		},
	}
}

func (suite *RenderTestSuite) TestFormatters() {
	suite.Equal("$2.1235", FormatUSD(decimal.RequireFromString("2.12345"), 4))
	suite.Equal("$1.50B", FormatBillions(decimal.RequireFromString("1500000000")))
	suite.Contains(FormatChange(decimal.RequireFromString("1.5"), "%"), "+1.50%")
	suite.Contains(FormatChange(decimal.RequireFromString("-0.25"), "%"), "-0.25%")
	suite.Equal("0.00%", FormatChange(decimal.Zero, "%"))
}

func (suite *RenderTestSuite) TestRenderDashboard() {
	out := RenderDashboard(&types.Dashboard{
		Asset:              suite.asset,
		LookbackDays:       7,
		CurrentPrice:       decimal.RequireFromString("2.02"),
		PreviousPrice:      optional.Some(decimal.RequireFromString("2.00")),
		PriceChangePercent: optional.Some(decimal.RequireFromString("1")),
		RecentHigh:         decimal.RequireFromString("2.25"),
		RecentLow:          decimal.RequireFromString("2.01"),
		MarketCap:          decimal.RequireFromString("118000000000"),
		Statistics: types.PriceStatistics{
			Mean:   decimal.RequireFromString("2.1"),
			Median: decimal.RequireFromString("2.1"),
			StdDev: optional.None[decimal.Decimal](),
			Min:    decimal.RequireFromString("2.01"),
			Max:    decimal.RequireFromString("2.25"),
		},
		DailyAggregate: suite.bars,
	})

	suite.Contains(out, "Ripple (XRP) Overview, last 7 days")
	suite.Contains(out, "$2.0200")
	suite.Contains(out, "$118.00B")
	suite.Contains(out, "n/a")
	suite.Contains(out, "2025-05-31")
}

func (suite *RenderTestSuite) TestRenderAnalysisWithPrediction() {
	out := RenderAnalysis(&types.TechnicalAnalysis{
		Asset:       suite.asset,
		Date:        time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		Bars:        suite.bars,
		Days:        2,
		LatestClose: decimal.RequireFromString("2.02"),
		RSISignal:   types.Signal{Type: types.SignalTypeUnavailable, Reason: "RSI needs more than 14 daily closes"},
		MACDSignal:  types.Signal{Type: types.SignalTypeBearish, Reason: "MACD below signal line"},
		Prediction: optional.Some(types.PredictionView{
			Prediction: types.Prediction{
				PredictedDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				PredictedHigh: decimal.RequireFromString("2.3"),
			},
			ChangeFromPreviousHigh: decimal.RequireFromString("0.08"),
		}),
	})

	suite.Contains(out, "Technical Analysis up to 2025-05-31")
	suite.Contains(out, "2 days")
	suite.Contains(out, "UNAVAILABLE")
	suite.Contains(out, "BEARISH")
	suite.Contains(out, "2025-06-01")
	suite.Contains(out, "$2.300")
	suite.NotContains(out, "Prediction unavailable")
}

func (suite *RenderTestSuite) TestRenderAnalysisWithoutPrediction() {
	out := RenderAnalysis(&types.TechnicalAnalysis{
		Asset:      suite.asset,
		Bars:       suite.bars,
		Prediction: optional.None[types.PredictionView](),
	})

	suite.Contains(out, "Prediction unavailable")
}
