package store

import (
	"fmt"
	"time"

	"evetrade/internal/engine"
)

// WatchlistEntry is a saved trade the user is tracking.
type WatchlistEntry struct {
	ID      int64              `json:"id"`
	Label   string             `json:"label"`
	Trade   engine.TradeRecord `json:"trade"`
	Note    string             `json:"note"`
	AddedAt string             `json:"added_at"`
}

// AddWatch saves a trade to the watchlist and returns its row ID.
func (s *Store) AddWatch(label string, trade engine.TradeRecord, note string) (int64, error) {
	res, err := s.sql.Exec(`
		INSERT INTO watchlist (label, buy_price, sell_price, volume, quantity, note, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		label, trade.BuyPrice, trade.SellPrice, trade.Volume, trade.Quantity,
		note, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("add watch: %w", err)
	}
	return res.LastInsertId()
}

// Watchlist returns all saved trades, newest first.
func (s *Store) Watchlist() ([]WatchlistEntry, error) {
	rows, err := s.sql.Query(`
		SELECT id, label, buy_price, sell_price, volume, quantity, note, added_at
		FROM watchlist ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	var entries []WatchlistEntry
	for rows.Next() {
		var e WatchlistEntry
		if err := rows.Scan(&e.ID, &e.Label,
			&e.Trade.BuyPrice, &e.Trade.SellPrice, &e.Trade.Volume, &e.Trade.Quantity,
			&e.Note, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan watchlist row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RemoveWatch deletes a watchlist entry. Removing an unknown ID is not an
// error.
func (s *Store) RemoveWatch(id int64) error {
	if _, err := s.sql.Exec("DELETE FROM watchlist WHERE id = ?", id); err != nil {
		return fmt.Errorf("remove watch %d: %w", id, err)
	}
	return nil
}
