package types

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func (suite *IndicatorTestSuite) TestIndicatorTypeValues() {
	suite.Equal(IndicatorType("rsi"), IndicatorTypeRSI)
	suite.Equal(IndicatorType("macd"), IndicatorTypeMACD)
	suite.Equal(IndicatorType("ema"), IndicatorTypeEMA)
}

func (suite *IndicatorTestSuite) TestLatestRSI() {
	empty := IndicatorSeries{}
	suite.True(empty.LatestRSI().IsNone())
	suite.Equal(0, empty.Len())

	warming := IndicatorSeries{RSI: []optional.Option[float64]{optional.None[float64]()}}
	suite.True(warming.LatestRSI().IsNone())

	ready := IndicatorSeries{RSI: []optional.Option[float64]{optional.None[float64](), optional.Some(55.5)}}
	value, err := ready.LatestRSI().Take()
	suite.NoError(err)
	suite.Equal(55.5, value)
}
