package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/shopspring/decimal"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	// LabelStyle for metric names.
	LabelStyle = lipgloss.NewStyle().Faint(true)

	// UpStyle and DownStyle colour price moves.
	UpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	DownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	// WarningStyle for unavailable data and the disclaimer.
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	// BoxStyle frames a metric group.
	BoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var billion = decimal.NewFromInt(1_000_000_000)

// FormatUSD renders a price with the given number of decimals.
func FormatUSD(value decimal.Decimal, places int32) string {
	return "$" + value.StringFixed(places)
}

// FormatBillions renders large amounts as $1.23B.
func FormatBillions(value decimal.Decimal) string {
	return "$" + value.Div(billion).StringFixed(2) + "B"
}

// FormatChange renders a signed change with an arrow.
func FormatChange(change decimal.Decimal, suffix string) string {
	text := change.StringFixed(2) + suffix

	switch {
	case change.IsPositive():
		return UpStyle.Render("▲ +" + text)
	case change.IsNegative():
		return DownStyle.Render("▼ " + text)
	default:
		return text
	}
}

func metric(label, value string) string {
	return LabelStyle.Render(label) + "\n" + value
}

func metricRow(metrics ...string) string {
	boxes := make([]string, len(metrics))
	for i, m := range metrics {
		boxes[i] = BoxStyle.Render(m)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// RenderDashboard renders the overview.
func RenderDashboard(d *types.Dashboard) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%s) Overview, last %d days", d.Asset.Name, d.Asset.Symbol, d.LookbackDays)))
	b.WriteString("\n")

	change := "n/a"
	if pct, err := d.PriceChangePercent.Take(); err == nil {
		change = FormatChange(pct, "%")
	}

	b.WriteString(metricRow(
		metric("Current Price", FormatUSD(d.CurrentPrice, 4)+"\n"+change),
		metric("24h High", FormatUSD(d.RecentHigh, 4)),
		metric("24h Low", FormatUSD(d.RecentLow, 4)),
		metric("Market Cap", FormatBillions(d.MarketCap)),
	))
	b.WriteString("\n")

	stdDev := "n/a"
	if value, err := d.Statistics.StdDev.Take(); err == nil {
		stdDev = FormatUSD(value, 4)
	}

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%d-Day Statistical Summary", d.LookbackDays)))
	b.WriteString("\n")
	b.WriteString(metricRow(
		metric("Mean", FormatUSD(d.Statistics.Mean, 4)),
		metric("Median", FormatUSD(d.Statistics.Median, 4)),
		metric("Std Dev", stdDev),
		metric("Min", FormatUSD(d.Statistics.Min, 4)),
		metric("Max", FormatUSD(d.Statistics.Max, 4)),
	))
	b.WriteString("\n")

	b.WriteString(TitleStyle.Render("Daily Aggregate"))
	b.WriteString("\n")
	b.WriteString(barTable(d.DailyAggregate))
	b.WriteString("\n")

	return b.String()
}

// RenderAnalysis renders the technical analysis view.
func RenderAnalysis(a *types.TechnicalAnalysis) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%s) Technical Analysis up to %s",
		a.Asset.Name, a.Asset.Symbol, a.Date.Format("2006-01-02"))))
	b.WriteString("\n")

	b.WriteString(metricRow(
		metric("Time Range", fmt.Sprintf("%d days", a.Days)),
		metric("Latest Close", FormatUSD(a.LatestClose, 4)),
		metric("Period High", FormatUSD(a.PeriodHigh, 4)),
		metric("Period Low", FormatUSD(a.PeriodLow, 4)),
	))
	b.WriteString("\n")

	b.WriteString(metricRow(
		metric("RSI", signalText(a.RSISignal)),
		metric("MACD", signalText(a.MACDSignal)),
	))
	b.WriteString("\n")

	b.WriteString(TitleStyle.Render("Daily Bars"))
	b.WriteString("\n")
	b.WriteString(barTable(a.Bars))
	b.WriteString("\n")

	b.WriteString(metricRow(
		metric("Avg Volume", FormatBillions(a.Volume.Average)),
		metric("Max Volume", FormatBillions(a.Volume.Max)),
		metric("Min Volume", FormatBillions(a.Volume.Min)),
		metric("Total Volume", FormatBillions(a.Volume.Total)),
	))
	b.WriteString("\n")

	b.WriteString(TitleStyle.Render("Price (High) Prediction"))
	b.WriteString("\n")

	if view, err := a.Prediction.Take(); err == nil {
		b.WriteString(metricRow(
			metric("Predicted Date", view.PredictedDate.Format("2006-01-02")),
			metric("Predicted High", FormatUSD(view.PredictedHigh, 3)+"\n"+FormatChange(view.ChangeFromPreviousHigh, " from previous day")),
		))
	} else {
		b.WriteString(WarningStyle.Render("Prediction unavailable"))
	}

	b.WriteString("\n")
	b.WriteString(WarningStyle.Render("Predictions are for educational purposes only and should not be used for investment decisions."))
	b.WriteString("\n")

	return b.String()
}

func signalText(signal types.Signal) string {
	label := strings.ToUpper(string(signal.Type))

	switch signal.Type {
	case types.SignalTypeBullish, types.SignalTypeOversold:
		label = UpStyle.Render(label)
	case types.SignalTypeBearish, types.SignalTypeOverbought:
		label = DownStyle.Render(label)
	case types.SignalTypeUnavailable:
		label = WarningStyle.Render(label)
	}

	return label + "\n" + signal.Reason
}

func barTable(bars []types.DailyBar) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Open", "High", "Low", "Close", "Volume", "")

	for _, bar := range bars {
		direction := DownStyle.Render("▼")
		if bar.IsUp() {
			direction = UpStyle.Render("▲")
		}

		t.Row(
			bar.Date.Format("2006-01-02"),
			bar.Open.StringFixed(4),
			bar.High.StringFixed(4),
			bar.Low.StringFixed(4),
			bar.Close.StringFixed(4),
			FormatBillions(bar.Volume),
			direction,
		)
	}

	return t.String()
}
