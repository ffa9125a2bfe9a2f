package store

import (
	"fmt"
	"time"

	"evetrade/internal/engine"
)

// SimRunRecord is a summarized simulation run kept for later comparison.
type SimRunRecord struct {
	ID                 int64   `json:"id"`
	RanAt              string  `json:"ran_at"`
	BuyPrice           float64 `json:"buy_price"`
	SellPrice          float64 `json:"sell_price"`
	DailyMarketVolume  int64   `json:"daily_market_volume"`
	OrderQuantity      int64   `json:"order_quantity"`
	CompetitorCount    int     `json:"competitor_count"`
	Days               int     `json:"days"`
	InitialMargin      float64 `json:"initial_margin"`
	FinalMargin        float64 `json:"final_margin"`
	TotalProfit        float64 `json:"total_profit"`
	SuccessProbability float64 `json:"success_probability"`
}

// SaveSimRun records a simulation's config and summary, returning the row ID.
func (s *Store) SaveSimRun(cfg engine.SimulationConfig, summary engine.SimulationSummary) (int64, error) {
	days := cfg.SimulationDays
	if days <= 0 {
		days = engine.DefaultSimulationDays
	}
	res, err := s.sql.Exec(`
		INSERT INTO sim_runs (ran_at, buy_price, sell_price, daily_market_volume,
			order_quantity, competitor_count, days,
			initial_margin, final_margin, total_profit, success_probability)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		cfg.BuyPrice, cfg.SellPrice, cfg.DailyMarketVolume,
		cfg.OrderQuantity, cfg.CompetitorCount, days,
		summary.InitialMarginPercent, summary.FinalMarginPercent,
		summary.TotalProfit, summary.SuccessProbability,
	)
	if err != nil {
		return 0, fmt.Errorf("save sim run: %w", err)
	}
	return res.LastInsertId()
}

// RecentSimRuns returns up to limit runs, newest first.
func (s *Store) RecentSimRuns(limit int) ([]SimRunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.sql.Query(`
		SELECT id, ran_at, buy_price, sell_price, daily_market_volume,
			order_quantity, competitor_count, days,
			initial_margin, final_margin, total_profit, success_probability
		FROM sim_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sim runs: %w", err)
	}
	defer rows.Close()

	var runs []SimRunRecord
	for rows.Next() {
		var r SimRunRecord
		if err := rows.Scan(&r.ID, &r.RanAt, &r.BuyPrice, &r.SellPrice, &r.DailyMarketVolume,
			&r.OrderQuantity, &r.CompetitorCount, &r.Days,
			&r.InitialMargin, &r.FinalMargin, &r.TotalProfit, &r.SuccessProbability); err != nil {
			return nil, fmt.Errorf("scan sim run row: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
