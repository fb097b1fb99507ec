package prediction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dashboard/internal/httpclient"
	"github.com/rxtech-lab/argo-dashboard/internal/logger"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DateLayout is the civil date format used on the wire in both directions.
const DateLayout = "2006-01-02"

// ClientOptions holds options for creating a prediction client.
type ClientOptions struct {
	BaseURL string
	// Timeout of zero means no timeout.
	Timeout time.Duration
	// Location is the timezone the predicted date is interpreted in.
	Location  *time.Location
	Logger    *logger.Logger
	Transport http.RoundTripper
}

// Client calls the remote forecasting service. It never returns an error: any failure
// yields None and is logged.
type Client struct {
	http     *httpclient.Client
	baseURL  string
	location *time.Location
	logger   *logger.Logger
}

// predictResponse mirrors {"prediction": {"predicted_date": "...", "prediction": 0.0}}.
type predictResponse struct {
	Prediction *struct {
		PredictedDate *string          `json:"predicted_date"`
		Prediction    *decimal.Decimal `json:"prediction"`
	} `json:"prediction"`
}

// NewClient creates a new prediction client.
func NewClient(opts ClientOptions) (*Client, error) {
	if _, err := url.ParseRequestURI(opts.BaseURL); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid prediction base url %q", opts.BaseURL)
	}

	if opts.Location == nil {
		opts.Location = time.UTC
	}

	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	return &Client{
		http: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		}),
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		location: opts.Location,
		logger:   opts.Logger.Named("prediction"),
	}, nil
}

// Predict asks for the forecasted high following date.
func (c *Client) Predict(ctx context.Context, assetID string, date time.Time) optional.Option[types.Prediction] {
	prediction, err := c.predict(ctx, assetID, date)
	if err != nil {
		c.logger.Warn("Prediction unavailable",
			zap.String("asset", assetID),
			zap.String("date", date.Format(DateLayout)),
			zap.Error(err),
		)

		return optional.None[types.Prediction]()
	}

	return optional.Some(prediction)
}

func (c *Client) predict(ctx context.Context, assetID string, date time.Time) (types.Prediction, error) {
	query := url.Values{}
	query.Set("date", date.Format(DateLayout))

	endpoint := fmt.Sprintf("%s/predict/%s?%s", c.baseURL, url.PathEscape(assetID), query.Encode())

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return types.Prediction{}, errors.Wrap(errors.ErrCodePredictionUnavailable, "prediction request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Prediction{}, errors.Wrapf(errors.ErrCodePredictionUnavailable,
			&httpclient.HTTPStatusError{StatusCode: resp.StatusCode}, "prediction service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Prediction{}, errors.Wrap(errors.ErrCodePredictionUnavailable, "reading prediction response body", err)
	}

	var payload predictResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Prediction{}, errors.Wrap(errors.ErrCodePredictionUnavailable, "parsing prediction response", err)
	}

	if payload.Prediction == nil || payload.Prediction.PredictedDate == nil || payload.Prediction.Prediction == nil {
		return types.Prediction{}, errors.New(errors.ErrCodePredictionUnavailable, "prediction response is missing fields")
	}

	predictedDate, err := time.ParseInLocation(DateLayout, *payload.Prediction.PredictedDate, c.location)
	if err != nil {
		return types.Prediction{}, errors.Wrapf(errors.ErrCodePredictionUnavailable, err,
			"invalid predicted_date %q", *payload.Prediction.PredictedDate)
	}

	return types.Prediction{
		PredictedDate: predictedDate,
		PredictedHigh: *payload.Prediction.Prediction,
	}, nil
}
