package engine

import "math"

// Profitability defaults and rating thresholds.
const (
	// CapitalExposureCap limits how many units count toward capital required.
	// Very large lots would otherwise overstate the capital a trader actually
	// ties up at once.
	CapitalExposureCap = 100

	DefaultHoursPerDay     = 24.0
	DefaultAssumedTurnover = 1.0

	MaxRating = 5
)

// ProfitResult is the full profitability breakdown for a single trade.
// TimeToRecoverHours is +Inf when the trade never pays back its capital.
type ProfitResult struct {
	GrossProfit        float64 `json:"gross_profit"`
	BuyBrokerFee       float64 `json:"buy_broker_fee"`
	SellBrokerFee      float64 `json:"sell_broker_fee"`
	SalesTax           float64 `json:"sales_tax"`
	NetProfit          float64 `json:"net_profit"`
	ROIPercent         float64 `json:"roi_percent"`
	MarginPercent      float64 `json:"margin_percent"`
	CapitalRequired    float64 `json:"capital_required"`
	ProfitPerHour      float64 `json:"profit_per_hour"`
	CapitalEfficiency  float64 `json:"capital_efficiency"` // ISK/hour per million invested
	TimeToRecoverHours float64 `json:"time_to_recover_hours"`
	Rating             int     `json:"rating"` // 0-5
}

// CalcProfit computes the fee breakdown, net profit, ROI, margin, and capital
// required for buying quantity units at buyPrice and selling them at
// sellPrice under the given rates. Zero buy cost yields ROI 0 rather than a
// division error.
func CalcProfit(buyPrice, sellPrice float64, quantity int64, rates EffectiveRates) ProfitResult {
	buyPrice = nonNegative(buyPrice)
	sellPrice = nonNegative(sellPrice)
	qty := float64(nonNegativeInt(quantity))

	buyFee := buyPrice * qty * rates.BrokerFeeRate
	sellFee := sellPrice * qty * rates.BrokerFeeRate
	tax := sellPrice * qty * rates.SalesTaxRate

	gross := (sellPrice - buyPrice) * qty
	net := gross - buyFee - sellFee - tax

	cost := buyPrice * qty
	roi := 0.0
	if cost > 0 {
		roi = net / cost * 100
	}

	margin := 0.0
	if buyPrice > 0 {
		margin = (sellPrice - buyPrice) / buyPrice * 100
	}

	return ProfitResult{
		GrossProfit:     gross,
		BuyBrokerFee:    buyFee,
		SellBrokerFee:   sellFee,
		SalesTax:        tax,
		NetProfit:       net,
		ROIPercent:      roi,
		MarginPercent:   margin,
		CapitalRequired: CalcCapitalRequired(buyPrice, quantity),
	}
}

// CalcCapitalRequired is the capital a trade ties up: buy price times
// quantity, with quantity capped at CapitalExposureCap.
func CalcCapitalRequired(buyPrice float64, quantity int64) float64 {
	buyPrice = nonNegative(buyPrice)
	qty := nonNegativeInt(quantity)
	if qty > CapitalExposureCap {
		qty = CapitalExposureCap
	}
	return buyPrice * float64(qty)
}

// CalcNetPerUnit is the net profit of moving one unit through the market.
func CalcNetPerUnit(buyPrice, sellPrice float64, rates EffectiveRates) float64 {
	buyPrice = nonNegative(buyPrice)
	sellPrice = nonNegative(sellPrice)
	return (sellPrice - buyPrice) -
		buyPrice*rates.BrokerFeeRate -
		sellPrice*rates.BrokerFeeRate -
		sellPrice*rates.SalesTaxRate
}

// CalcProfitPerHour estimates hourly profit from the trade's daily volume,
// assuming the given fraction of that volume turns over through the trader's
// orders. assumedTurnover is expected in [0,1].
func CalcProfitPerHour(trade TradeRecord, rates EffectiveRates, hoursPerDay, assumedTurnover float64) float64 {
	if hoursPerDay <= 0 {
		return 0
	}
	perUnit := CalcNetPerUnit(trade.BuyPrice, trade.SellPrice, rates)
	dailyVolume := float64(nonNegativeInt(trade.Volume))
	return perUnit * (dailyVolume / hoursPerDay) * assumedTurnover
}

// CalcCapitalEfficiency is ISK per hour earned per million ISK invested.
// Zero capital yields 0.
func CalcCapitalEfficiency(profitPerHour, capitalRequired float64) float64 {
	if capitalRequired <= 0 {
		return 0
	}
	return profitPerHour / capitalRequired * 1_000_000
}

// CalcTimeToRecover is the number of hours until the invested capital is
// earned back. A trade that loses money (or earns nothing) never recovers, so
// the result is +Inf — a distinguished value, never NaN.
func CalcTimeToRecover(capitalRequired, profitPerHour float64) float64 {
	if profitPerHour <= 0 {
		return math.Inf(1)
	}
	return nonNegative(capitalRequired) / profitPerHour
}

// CalcRating grades a trade 0-5 on an additive threshold ladder: hourly
// profit above 10M and 50M ISK, ROI above 5% and 10%, and daily volume above
// 100 units each add a point.
func CalcRating(profitPerHour, roiPercent float64, dailyVolume int64) int {
	rating := 0
	if profitPerHour > 10_000_000 {
		rating++
	}
	if profitPerHour > 50_000_000 {
		rating++
	}
	if roiPercent > 5 {
		rating++
	}
	if roiPercent > 10 {
		rating++
	}
	if dailyVolume > 100 {
		rating++
	}
	if rating > MaxRating {
		rating = MaxRating
	}
	return rating
}

// AnalyzeTrade fills a complete ProfitResult for a trade under the given
// rates, using the default 24h trading day and full assumed turnover.
func AnalyzeTrade(trade TradeRecord, rates EffectiveRates) ProfitResult {
	return AnalyzeTradeWithTurnover(trade, rates, DefaultHoursPerDay, DefaultAssumedTurnover)
}

// AnalyzeTradeWithTurnover is AnalyzeTrade with explicit hours-per-day and
// turnover assumptions.
func AnalyzeTradeWithTurnover(trade TradeRecord, rates EffectiveRates, hoursPerDay, assumedTurnover float64) ProfitResult {
	r := CalcProfit(trade.BuyPrice, trade.SellPrice, trade.Quantity, rates)
	r.ProfitPerHour = CalcProfitPerHour(trade, rates, hoursPerDay, assumedTurnover)
	r.CapitalEfficiency = CalcCapitalEfficiency(r.ProfitPerHour, r.CapitalRequired)
	r.TimeToRecoverHours = CalcTimeToRecover(r.CapitalRequired, r.ProfitPerHour)
	r.Rating = CalcRating(r.ProfitPerHour, r.ROIPercent, nonNegativeInt(trade.Volume))
	return r
}
