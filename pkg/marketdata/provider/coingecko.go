package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-dashboard/internal/httpclient"
	"github.com/rxtech-lab/argo-dashboard/internal/logger"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoOptions holds options for creating a CoinGecko client.
type CoinGeckoOptions struct {
	BaseURL string
	APIKey  string
	// APIKeyHeader is x-cg-demo-api-key for the public tier and x-cg-pro-api-key for paid plans.
	APIKeyHeader      string
	VsCurrency        string
	RequestsPerSecond float64
	Timeout           time.Duration
	// Location is the timezone tick timestamps are converted into.
	Location  *time.Location
	Logger    *logger.Logger
	Transport http.RoundTripper
}

// CoinGeckoClient fetches market chart series from the CoinGecko REST API.
type CoinGeckoClient struct {
	http       *httpclient.Client
	baseURL    string
	vsCurrency string
	location   *time.Location
	logger     *logger.Logger
}

// marketChartResponse mirrors /coins/{id}/market_chart and /coins/{id}/market_chart/range.
// The pointers tell a missing array apart from an empty one.
type marketChartResponse struct {
	Prices       *[][]decimal.Decimal `json:"prices"`
	TotalVolumes *[][]decimal.Decimal `json:"total_volumes"`
	MarketCaps   *[][]decimal.Decimal `json:"market_caps"`
}

// NewCoinGeckoClient creates a new CoinGecko client.
func NewCoinGeckoClient(opts CoinGeckoOptions) (Provider, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultCoinGeckoBaseURL
	}

	if _, err := url.ParseRequestURI(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid coingecko base url %q: %w", opts.BaseURL, err)
	}

	if opts.APIKeyHeader == "" {
		opts.APIKeyHeader = "x-cg-demo-api-key"
	}

	if opts.VsCurrency == "" {
		opts.VsCurrency = "usd"
	}

	if opts.Location == nil {
		opts.Location = time.UTC
	}

	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	return &CoinGeckoClient{
		http: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:        opts.Timeout,
			RequestsPerSec: opts.RequestsPerSecond,
			Headers:        map[string]string{opts.APIKeyHeader: opts.APIKey},
			Transport:      opts.Transport,
		}),
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		vsCurrency: opts.VsCurrency,
		location:   opts.Location,
		logger:     opts.Logger.Named("coingecko"),
	}, nil
}

// FetchRange calls /coins/{id}/market_chart/range with UNIX second bounds.
func (c *CoinGeckoClient) FetchRange(ctx context.Context, assetID string, from time.Time, to time.Time) ([]types.Tick, error) {
	query := url.Values{}
	query.Set("vs_currency", c.vsCurrency)
	query.Set("from", strconv.FormatInt(from.Unix(), 10))
	query.Set("to", strconv.FormatInt(to.Unix(), 10))

	endpoint := fmt.Sprintf("%s/coins/%s/market_chart/range?%s", c.baseURL, url.PathEscape(assetID), query.Encode())

	return c.fetch(ctx, assetID, endpoint)
}

// FetchRecent calls /coins/{id}/market_chart with a rolling days window.
func (c *CoinGeckoClient) FetchRecent(ctx context.Context, assetID string, days int) ([]types.Tick, error) {
	query := url.Values{}
	query.Set("vs_currency", c.vsCurrency)
	query.Set("days", strconv.Itoa(days))

	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, url.PathEscape(assetID), query.Encode())

	return c.fetch(ctx, assetID, endpoint)
}

func (c *CoinGeckoClient) fetch(ctx context.Context, assetID string, endpoint string) ([]types.Tick, error) {
	c.logger.Debug("Fetching market chart", zap.String("asset", assetID), zap.String("url", endpoint))

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeUpstream, err, "market data request for %s failed", assetID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Market data request rejected",
			zap.String("asset", assetID),
			zap.Int("status", resp.StatusCode),
		)

		return nil, errors.Wrapf(errors.ErrCodeUpstream, &httpclient.HTTPStatusError{StatusCode: resp.StatusCode},
			"market data request for %s returned status %d", assetID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstream, "reading market data response body", err)
	}

	var chart marketChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		c.logger.Error("Error parsing market chart", zap.Error(err), zap.ByteString("response", truncate(body, 512)))

		return nil, errors.Wrap(errors.ErrCodeUpstream, "parsing market data response", err)
	}

	ticks, err := joinSeries(chart, c.location)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched ticks", zap.String("asset", assetID), zap.Int("count", len(ticks)))

	return ticks, nil
}

// joinSeries inner-joins the three series on exact millisecond timestamps and sorts the result.
func joinSeries(chart marketChartResponse, loc *time.Location) ([]types.Tick, error) {
	switch {
	case chart.Prices == nil:
		return nil, errors.New(errors.ErrCodeUpstream, "market data response is missing prices")
	case chart.TotalVolumes == nil:
		return nil, errors.New(errors.ErrCodeUpstream, "market data response is missing total_volumes")
	case chart.MarketCaps == nil:
		return nil, errors.New(errors.ErrCodeUpstream, "market data response is missing market_caps")
	}

	volumes, err := indexSeries("total_volumes", *chart.TotalVolumes)
	if err != nil {
		return nil, err
	}

	marketCaps, err := indexSeries("market_caps", *chart.MarketCaps)
	if err != nil {
		return nil, err
	}

	ticks := make([]types.Tick, 0, len(*chart.Prices))

	for i, pair := range *chart.Prices {
		ts, price, err := splitPair("prices", i, pair)
		if err != nil {
			return nil, err
		}

		volume, ok := volumes[ts]
		if !ok {
			continue
		}

		marketCap, ok := marketCaps[ts]
		if !ok {
			continue
		}

		ticks = append(ticks, types.Tick{
			Time:      time.UnixMilli(ts).In(loc),
			Price:     price,
			Volume:    volume,
			MarketCap: marketCap,
		})
	}

	slices.SortStableFunc(ticks, func(a, b types.Tick) int {
		return a.Time.Compare(b.Time)
	})

	return ticks, nil
}

// indexSeries maps timestamp to value, keeping the first value of a repeated timestamp.
func indexSeries(name string, pairs [][]decimal.Decimal) (map[int64]decimal.Decimal, error) {
	index := make(map[int64]decimal.Decimal, len(pairs))

	for i, pair := range pairs {
		ts, value, err := splitPair(name, i, pair)
		if err != nil {
			return nil, err
		}

		if _, exists := index[ts]; !exists {
			index[ts] = value
		}
	}

	return index, nil
}

func splitPair(name string, i int, pair []decimal.Decimal) (int64, decimal.Decimal, error) {
	if len(pair) != 2 {
		return 0, decimal.Zero, errors.Newf(errors.ErrCodeUpstream, "malformed %s entry %d: expected [timestamp, value], got %d elements", name, i, len(pair))
	}

	return pair[0].IntPart(), pair[1], nil
}

func truncate(body []byte, n int) []byte {
	if len(body) <= n {
		return body
	}

	return body[:n]
}
