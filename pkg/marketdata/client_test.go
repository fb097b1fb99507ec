package marketdata

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/mocks"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"github.com/rxtech-lab/argo-dashboard/pkg/marketdata/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ClientTestSuite is a test suite for the Client implementation
type ClientTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockProvider *mocks.MockProvider
	sydney       *time.Location
	client       *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

// SetupSuite runs once before all tests in the suite
func (suite *ClientTestSuite) SetupSuite() {
	loc, err := time.LoadLocation("Australia/Sydney")
	suite.Require().NoError(err)
	suite.sydney = loc
}

// SetupTest runs before each test
func (suite *ClientTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockProvider = mocks.NewMockProvider(suite.ctrl)
	suite.client = NewClientWithProvider(suite.mockProvider, suite.sydney, nil)
}

// TearDownTest runs after each test
func (suite *ClientTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ClientTestSuite) tick(t time.Time, price int64) types.Tick {
	return types.Tick{
		Time:      t,
		Price:     decimal.NewFromInt(price),
		Volume:    decimal.NewFromInt(1),
		MarketCap: decimal.NewFromInt(1),
	}
}

func (suite *ClientTestSuite) TestNewClientValidation() {
	testCases := []struct {
		name        string
		config      ClientConfig
		expectError bool
	}{
		{
			name:        "valid coingecko config",
			config:      ClientConfig{ProviderType: ProviderCoinGecko, Location: suite.sydney},
			expectError: false,
		},
		{
			name:        "missing location",
			config:      ClientConfig{ProviderType: ProviderCoinGecko},
			expectError: true,
		},
		{
			name:        "unsupported provider",
			config:      ClientConfig{ProviderType: "binance", Location: suite.sydney},
			expectError: true,
		},
		{
			name: "pro key header",
			config: ClientConfig{
				ProviderType: ProviderCoinGecko,
				Location:     suite.sydney,
				CoinGecko:    provider.CoinGeckoOptions{APIKeyHeader: "X-CG-PRO-API-KEY"},
			},
			expectError: false,
		},
		{
			name: "unknown key header",
			config: ClientConfig{
				ProviderType: ProviderCoinGecko,
				Location:     suite.sydney,
				CoinGecko:    provider.CoinGeckoOptions{APIKeyHeader: "authorization"},
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			client, err := NewClient(tc.config, nil)
			if tc.expectError {
				suite.Error(err)
				suite.Nil(client)
			} else {
				suite.NoError(err)
				suite.Equal(suite.sydney, client.Location())
				suite.Equal(ProviderCoinGecko, client.Provider().Name)
			}
		})
	}
}

func (suite *ClientTestSuite) TestWindowIncludesSelectedDay() {
	end := time.Date(2025, 6, 15, 18, 45, 0, 0, suite.sydney)

	from, to := Window(end, 29, suite.sydney)

	suite.Equal(time.Date(2025, 5, 17, 0, 0, 0, 0, suite.sydney), from)
	suite.Equal(time.Date(2025, 6, 16, 0, 0, 0, 0, suite.sydney), to)
}

func (suite *ClientTestSuite) TestWindowUsesFixedZoneCalendarDay() {
	// 2025-06-15 20:00 UTC is already 2025-06-16 in Sydney
	end := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)

	from, to := Window(end, 0, suite.sydney)

	suite.Equal(time.Date(2025, 6, 16, 0, 0, 0, 0, suite.sydney), from)
	suite.Equal(time.Date(2025, 6, 17, 0, 0, 0, 0, suite.sydney), to)
}

func (suite *ClientTestSuite) TestWindowAcrossDaylightSaving() {
	// daylight saving starts in Sydney on 2025-10-05, that day is 23 hours long
	from, to := Window(time.Date(2025, 10, 5, 12, 0, 0, 0, suite.sydney), 0, suite.sydney)

	suite.Equal(23*time.Hour, to.Sub(from))
}

func (suite *ClientTestSuite) TestFetchWindow() {
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, suite.sydney)
	from := time.Date(2025, 6, 14, 0, 0, 0, 0, suite.sydney)
	to := time.Date(2025, 6, 16, 0, 0, 0, 0, suite.sydney)

	suite.mockProvider.EXPECT().
		FetchRange(gomock.Any(), "ripple", from, to).
		Return([]types.Tick{
			suite.tick(from.Add(-time.Minute), 1),
			suite.tick(from, 2),
			suite.tick(to.Add(-time.Minute), 3),
			suite.tick(to, 4),
		}, nil).
		Times(1)

	ticks, err := suite.client.FetchWindow(context.Background(), "ripple", end, 1)
	suite.Require().NoError(err)

	// only ticks inside [from, to) survive
	suite.Require().Len(ticks, 2)
	suite.True(decimal.NewFromInt(2).Equal(ticks[0].Price))
	suite.True(decimal.NewFromInt(3).Equal(ticks[1].Price))
}

func (suite *ClientTestSuite) TestFetchPropagatesUpstreamError() {
	upstream := errors.New(errors.ErrCodeUpstream, "market data request returned status 500")

	suite.mockProvider.EXPECT().
		FetchRange(gomock.Any(), "ripple", gomock.Any(), gomock.Any()).
		Return(nil, upstream).
		Times(1)

	ticks, err := suite.client.FetchWindow(context.Background(), "ripple", time.Now(), 29)
	suite.Nil(ticks)
	suite.True(errors.IsUpstream(err))
}

func (suite *ClientTestSuite) TestFetchRejectsInvertedRange() {
	from := time.Date(2025, 6, 15, 0, 0, 0, 0, suite.sydney)

	_, err := suite.client.Fetch(context.Background(), "ripple", from, from.Add(-time.Hour))
	suite.True(errors.IsInvalidInput(err))

	_, err = suite.client.Fetch(context.Background(), "", from, from.Add(time.Hour))
	suite.True(errors.IsInvalidInput(err))
}

func (suite *ClientTestSuite) TestFetchRecent() {
	suite.mockProvider.EXPECT().
		FetchRecent(gomock.Any(), "ripple", 30).
		Return([]types.Tick{}, nil).
		Times(1)

	ticks, err := suite.client.FetchRecent(context.Background(), "ripple", 30)
	suite.NoError(err)
	suite.Empty(ticks)

	_, err = suite.client.FetchRecent(context.Background(), "ripple", 0)
	suite.True(errors.IsInvalidInput(err))
}

func (suite *ClientTestSuite) TestNewClientUsesRegistryErrorCode() {
	_, err := NewClient(ClientConfig{ProviderType: "polygon", Location: suite.sydney}, nil)

	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
	suite.Contains(err.Error(), "coingecko")
}

func (suite *ClientTestSuite) TestFetchRespectsHistoryLimit() {
	info, err := LookupProvider(ProviderCoinGecko)
	suite.Require().NoError(err)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, suite.sydney)
	suite.client.info = info
	suite.client.now = func() time.Time { return now }

	tooOld := time.Date(2024, 6, 1, 0, 0, 0, 0, suite.sydney)
	_, err = suite.client.Fetch(context.Background(), "ripple", tooOld, tooOld.AddDate(0, 0, 30))
	suite.True(errors.IsInvalidInput(err), "got %v", err)

	// the oldest analysis window (335 days back plus a 29 day lookback) stays inside the limit
	from, to := Window(now.AddDate(0, 0, -335), 29, suite.sydney)
	suite.mockProvider.EXPECT().FetchRange(gomock.Any(), "ripple", from, to).Return(nil, nil).Times(1)

	_, err = suite.client.Fetch(context.Background(), "ripple", from, to)
	suite.NoError(err)

	_, err = suite.client.FetchRecent(context.Background(), "ripple", 366)
	suite.True(errors.IsInvalidInput(err), "got %v", err)
}

var _ provider.Provider = (*mocks.MockProvider)(nil)
