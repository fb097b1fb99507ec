package types

import "time"

type SignalType string

const (
	// SignalTypeOverbought means the RSI is above its upper threshold
	SignalTypeOverbought SignalType = "overbought"
	// SignalTypeOversold means the RSI is below its lower threshold
	SignalTypeOversold SignalType = "oversold"
	// SignalTypeNeutral means the RSI is between its thresholds
	SignalTypeNeutral SignalType = "neutral"
	// SignalTypeBullish means the MACD line is above the signal line
	SignalTypeBullish SignalType = "bullish"
	// SignalTypeBearish means the MACD line is at or below the signal line
	SignalTypeBearish SignalType = "bearish"
	// SignalTypeUnavailable means there was not enough history to read the indicator
	SignalTypeUnavailable SignalType = "unavailable"
)

type Signal struct {
	// Time is the date of the bar the signal was read from
	Time time.Time `json:"time"`
	// Type is the type of the signal
	Type SignalType `json:"type"`
	// Name is the name of the signal
	Name string `json:"name"`
	// Reason is a human readable explanation
	Reason string `json:"reason"`
	// RawValue is the raw value of the signal
	RawValue map[string]float64 `json:"rawValue,omitempty"`
	// Symbol is the symbol of the signal
	Symbol string `json:"symbol"`
	// Indicator is the indicator that generated the signal
	Indicator IndicatorType `json:"indicator"`
}
