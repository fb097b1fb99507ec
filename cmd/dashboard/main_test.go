package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-dashboard/internal/dashboard"
	"github.com/rxtech-lab/argo-dashboard/internal/logger"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type CommandTestSuite struct {
	suite.Suite
	coingecko  *httptest.Server
	prediction *httptest.Server
	predicted  atomic.Bool
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}

// chart returns hourly samples between from and to (UNIX seconds).
func chart(from, to int64) string {
	var prices, volumes, caps []string

	for ts := from; ts < to; ts += 3600 {
		ms := ts * 1000
		price := 2 + float64((ts/3600)%24)/100
		prices = append(prices, fmt.Sprintf("[%d,%g]", ms, price))
		volumes = append(volumes, fmt.Sprintf("[%d,%d]", ms, 1_000_000_000))
		caps = append(caps, fmt.Sprintf("[%d,%g]", ms, price*58_000_000_000))
	}

	return fmt.Sprintf(`{"prices":[%s],"total_volumes":[%s],"market_caps":[%s]}`,
		strings.Join(prices, ","), strings.Join(volumes, ","), strings.Join(caps, ","))
}

func (suite *CommandTestSuite) SetupTest() {
	suite.coingecko = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if strings.HasSuffix(r.URL.Path, "/market_chart/range") {
			from, _ := strconv.ParseInt(query.Get("from"), 10, 64)
			to, _ := strconv.ParseInt(query.Get("to"), 10, 64)
			_, _ = w.Write([]byte(chart(from, to)))

			return
		}

		days, _ := strconv.Atoi(query.Get("days"))
		to := time.Now().Unix()
		_, _ = w.Write([]byte(chart(to-int64(days)*86400, to)))
	}))

	suite.predicted.Store(false)
	suite.prediction = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.predicted.Store(true)

		date, err := time.Parse(time.DateOnly, r.URL.Query().Get("date"))
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)

			return
		}

		_, _ = fmt.Fprintf(w, `{"prediction":{"predicted_date":%q,"prediction":2.5}}`, date.AddDate(0, 0, 1).Format(time.DateOnly))
	}))

	for key, value := range map[string]string{
		"COINGECKO_BASE_URL":            suite.coingecko.URL,
		"COINGECKO_API_KEY":             "test-key",
		"COINGECKO_API_KEY_HEADER":      "",
		"COINGECKO_REQUESTS_PER_SECOND": "1000",
		"PREDICTION_BASE_URL":           suite.prediction.URL,
		"DASHBOARD_TIMEZONE":            "Australia/Sydney",
		"DASHBOARD_CONFIG":              "",
		"LOG_LEVEL":                     "error",
		"HTTP_ADDR":                     "",
	} {
		suite.T().Setenv(key, value)
	}
}

func (suite *CommandTestSuite) TearDownTest() {
	suite.coingecko.Close()
	suite.prediction.Close()
}

func (suite *CommandTestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	cmd := newCommand()
	cmd.Writer = &out

	err := cmd.Run(context.Background(), append([]string{"dashboard", "--env-file", "testdata-missing.env"}, args...))

	return out.String(), err
}

func (suite *CommandTestSuite) TestOverviewJSON() {
	out, err := suite.run("overview", "--days", "7", "--json")
	suite.Require().NoError(err)

	var body map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(out), &body))
	suite.Equal(float64(7), body["lookbackDays"])
	suite.NotEmpty(body["dailyAggregate"])
}

func (suite *CommandTestSuite) TestOverviewTerminal() {
	out, err := suite.run("overview", "--days", "1")
	suite.Require().NoError(err)

	suite.Contains(out, "Ripple (XRP) Overview, last 1 days")
}

func (suite *CommandTestSuite) TestOverviewRejectsLookback() {
	_, err := suite.run("overview", "--days", "3")
	suite.True(errors.IsInvalidInput(err), "got %v", err)
}

func (suite *CommandTestSuite) TestAnalysisJSON() {
	sydney, err := time.LoadLocation("Australia/Sydney")
	suite.Require().NoError(err)

	date := time.Now().In(sydney).AddDate(0, 0, -10).Format(time.DateOnly)

	out, err := suite.run("analysis", "--date", date, "--json")
	suite.Require().NoError(err)

	var body map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(out), &body))
	suite.Equal(float64(30), body["days"])
	suite.NotNil(body["prediction"])
	suite.True(suite.predicted.Load())
}

func (suite *CommandTestSuite) TestAnalysisRejectsOldDate() {
	_, err := suite.run("analysis", "--date", time.Now().AddDate(-2, 0, 0).Format(time.DateOnly))

	suite.True(errors.IsInvalidInput(err), "got %v", err)
	suite.False(suite.predicted.Load())
}

func (suite *CommandTestSuite) TestAnalysisRejectsBadDate() {
	_, err := suite.run("analysis", "--date", "yesterday")
	suite.True(errors.IsInvalidInput(err), "got %v", err)
}

func (suite *CommandTestSuite) TestVersion() {
	out, err := suite.run("version")
	suite.Require().NoError(err)
	suite.Contains(out, "argo-dashboard")
}

func (suite *CommandTestSuite) TestScheduleRefresh() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := dashboard.NewCachedPipeline(nil, time.UTC, logger.NewNop())

	scheduler, err := scheduleRefresh(ctx, "", cache, logger.NewNop())
	suite.NoError(err)
	suite.Nil(scheduler)

	_, err = scheduleRefresh(ctx, "not a spec", cache, logger.NewNop())
	suite.Error(err)

	scheduler, err = scheduleRefresh(ctx, "@every 1h", cache, logger.NewNop())
	suite.Require().NoError(err)
	suite.Len(scheduler.Entries(), 1)
}
