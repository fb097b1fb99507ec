package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prediction is the forecasted high price returned by the remote prediction service.
type Prediction struct {
	PredictedDate time.Time       `json:"predictedDate"`
	PredictedHigh decimal.Decimal `json:"predictedHigh"`
}
