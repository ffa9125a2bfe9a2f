// Package export writes analysis results as CSV reports for use in
// spreadsheets. Each report type flattens an engine result into one row per
// record; degenerate values like an infinite recovery time are rendered as
// readable text rather than raw float formatting.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/gocarina/gocsv"

	"evetrade/internal/engine"
)

// ProfitRow is one line of a profitability report.
type ProfitRow struct {
	Label             string  `csv:"label"`
	BuyPrice          float64 `csv:"buy_price"`
	SellPrice         float64 `csv:"sell_price"`
	Quantity          int64   `csv:"quantity"`
	DailyVolume       int64   `csv:"daily_volume"`
	GrossProfit       float64 `csv:"gross_profit"`
	TotalFees         float64 `csv:"total_fees"`
	NetProfit         float64 `csv:"net_profit"`
	ROIPercent        float64 `csv:"roi_percent"`
	MarginPercent     float64 `csv:"margin_percent"`
	CapitalRequired   float64 `csv:"capital_required"`
	ProfitPerHour     float64 `csv:"profit_per_hour"`
	CapitalEfficiency float64 `csv:"capital_efficiency"`
	TimeToRecover     string  `csv:"time_to_recover_hours"`
	Rating            int     `csv:"rating"`
}

// NewProfitRow flattens a trade and its profitability breakdown.
func NewProfitRow(label string, trade engine.TradeRecord, r engine.ProfitResult) ProfitRow {
	return ProfitRow{
		Label:             label,
		BuyPrice:          trade.BuyPrice,
		SellPrice:         trade.SellPrice,
		Quantity:          trade.Quantity,
		DailyVolume:       trade.Volume,
		GrossProfit:       r.GrossProfit,
		TotalFees:         r.BuyBrokerFee + r.SellBrokerFee + r.SalesTax,
		NetProfit:         r.NetProfit,
		ROIPercent:        r.ROIPercent,
		MarginPercent:     r.MarginPercent,
		CapitalRequired:   r.CapitalRequired,
		ProfitPerHour:     r.ProfitPerHour,
		CapitalEfficiency: r.CapitalEfficiency,
		TimeToRecover:     formatHours(r.TimeToRecoverHours),
		Rating:            r.Rating,
	}
}

// WriteProfitCSV writes a profitability report.
func WriteProfitCSV(w io.Writer, rows []ProfitRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write profit csv: %w", err)
	}
	return nil
}

// TradeInput is one line of a batch input file: a labeled trade to analyze.
type TradeInput struct {
	Label     string  `csv:"label"`
	BuyPrice  float64 `csv:"buy_price"`
	SellPrice float64 `csv:"sell_price"`
	Volume    int64   `csv:"volume"`
	Quantity  int64   `csv:"quantity"`
}

// Trade converts the input row to an engine record.
func (t TradeInput) Trade() engine.TradeRecord {
	return engine.TradeRecord{
		BuyPrice:  t.BuyPrice,
		SellPrice: t.SellPrice,
		Volume:    t.Volume,
		Quantity:  t.Quantity,
	}
}

// ReadTradesCSV parses a batch input file.
func ReadTradesCSV(r io.Reader) ([]TradeInput, error) {
	var rows []TradeInput
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read trades csv: %w", err)
	}
	return rows, nil
}

// RiskRow is one line of a risk report.
type RiskRow struct {
	Label           string  `csv:"label"`
	BuyPrice        float64 `csv:"buy_price"`
	SellPrice       float64 `csv:"sell_price"`
	DailyVolume     int64   `csv:"daily_volume"`
	VolumeScore     float64 `csv:"volume_score"`
	MarginScore     float64 `csv:"margin_score"`
	CapitalScore    float64 `csv:"capital_score"`
	SpreadScore     float64 `csv:"spread_score"`
	TotalScore      float64 `csv:"total_score"`
	Level           string  `csv:"level"`
	ScamLikely      bool    `csv:"scam_likely"`
	BatchPercentile float64 `csv:"batch_percentile"`
}

// NewRiskRow flattens a trade and its risk assessment. Factor scores are
// looked up by name so the row stays correct if factor order ever changes.
func NewRiskRow(label string, trade engine.TradeRecord, a engine.RiskAssessment) RiskRow {
	row := RiskRow{
		Label:           label,
		BuyPrice:        trade.BuyPrice,
		SellPrice:       trade.SellPrice,
		DailyVolume:     trade.Volume,
		TotalScore:      a.TotalScore,
		Level:           a.Level,
		ScamLikely:      a.ScamLikely,
		BatchPercentile: a.BatchPercentile,
	}
	for _, f := range a.Factors {
		switch f.Name {
		case "volume":
			row.VolumeScore = f.Score
		case "margin":
			row.MarginScore = f.Score
		case "capital":
			row.CapitalScore = f.Score
		case "spread":
			row.SpreadScore = f.Score
		}
	}
	return row
}

// WriteRiskCSV writes a risk report.
func WriteRiskCSV(w io.Writer, rows []RiskRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write risk csv: %w", err)
	}
	return nil
}

// SimulationRow is one day of a simulation ledger report.
type SimulationRow struct {
	Day              int     `csv:"day"`
	BuyPrice         float64 `csv:"buy_price"`
	SellPrice        float64 `csv:"sell_price"`
	MarginPercent    float64 `csv:"margin_percent"`
	VolumeTraded     int64   `csv:"volume_traded"`
	OrderUpdates     int     `csv:"order_updates"`
	DayProfit        float64 `csv:"day_profit"`
	CumulativeProfit float64 `csv:"cumulative_profit"`
}

// WriteSimulationCSV writes the day-by-day ledger of a simulation run.
func WriteSimulationCSV(w io.Writer, result engine.SimulationResult) error {
	rows := make([]SimulationRow, 0, len(result.Days))
	for _, d := range result.Days {
		rows = append(rows, SimulationRow{
			Day:              d.Day,
			BuyPrice:         d.BuyPrice,
			SellPrice:        d.SellPrice,
			MarginPercent:    d.MarginPercent,
			VolumeTraded:     d.VolumeTraded,
			OrderUpdates:     d.OrderUpdates,
			DayProfit:        d.DayProfit,
			CumulativeProfit: d.CumulativeProfit,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write simulation csv: %w", err)
	}
	return nil
}

// formatHours renders a recovery time, spelling out the never-recovers case.
func formatHours(h float64) string {
	if math.IsInf(h, 1) {
		return "never"
	}
	return fmt.Sprintf("%.2f", h)
}
