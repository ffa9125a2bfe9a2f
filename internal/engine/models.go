// Package engine implements the trade analytics calculators: effective fee
// rates, per-trade profitability, risk and scam scoring, station viability
// scoring, and multi-day competitive erosion simulation.
//
// Every entry point is a pure function of its inputs. Degenerate inputs
// (zero prices, zero volume) produce the documented sentinel values instead
// of errors, and negative prices or quantities are treated as zero.
package engine

// TradeRecord is a single market opportunity as supplied by the data-fetch
// layer or user input. The engine never mutates it.
type TradeRecord struct {
	BuyPrice  float64 `json:"buy_price"`  // highest buy order price (bid)
	SellPrice float64 `json:"sell_price"` // lowest sell order price (ask)
	Volume    int64   `json:"volume"`     // units listed on the sell side
	Quantity  int64   `json:"quantity"`   // units in the position under analysis
}

// nonNegative treats negative prices from the boundary as zero so that every
// calculator stays total.
func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func nonNegativeInt(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
