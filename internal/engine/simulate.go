package engine

import "math"

// Simulation model constants.
const (
	DefaultSimulationDays = 7

	// activeCompetitorFraction is the share of listed competitors assumed to
	// actively undercut on any given day.
	activeCompetitorFraction = 0.3
	// undercutFraction is the per-update price step competitors use, as a
	// fraction of the buy price.
	undercutFraction = 0.001
	// erosionDamping scales the daily squeeze from active competitors.
	erosionDamping = 0.3
	// minSpreadFraction is the floor spread competitors will not squeeze
	// through, as a fraction of the buy price.
	minSpreadFraction = 0.01
	// updateDutyCycle is the fraction of undercut cycles in which the trader
	// actually re-submits orders.
	updateDutyCycle = 0.5
)

// SimulationConfig is the input to a competitive erosion simulation.
// SimulationDays of 0 means DefaultSimulationDays.
type SimulationConfig struct {
	BuyPrice                float64 `json:"buy_price"`
	SellPrice               float64 `json:"sell_price"`
	DailyMarketVolume       int64   `json:"daily_market_volume"`
	OrderQuantity           int64   `json:"order_quantity"`
	UndercutIntervalMinutes int     `json:"undercut_interval_minutes"`
	CompetitorCount         int     `json:"competitor_count"`
	SimulationDays          int     `json:"simulation_days"`
}

// SimulationDay is one row of the day-by-day ledger.
type SimulationDay struct {
	Day              int     `json:"day"` // 1-based
	BuyPrice         float64 `json:"buy_price"`
	SellPrice        float64 `json:"sell_price"`
	MarginPercent    float64 `json:"margin_percent"`
	VolumeTraded     int64   `json:"volume_traded"`
	OrderUpdates     int     `json:"order_updates"`
	DayProfit        float64 `json:"day_profit"`
	CumulativeProfit float64 `json:"cumulative_profit"`
}

// SimulationSummary aggregates a simulation run.
type SimulationSummary struct {
	InitialMarginPercent float64 `json:"initial_margin_percent"`
	FinalMarginPercent   float64 `json:"final_margin_percent"`
	MarginErosion        float64 `json:"margin_erosion"`
	TotalProfit          float64 `json:"total_profit"`
	AvgDailyProfit       float64 `json:"avg_daily_profit"`
	ROIPercent           float64 `json:"roi_percent"`
	TotalVolume          int64   `json:"total_volume"`
	TotalBrokerFees      float64 `json:"total_broker_fees"`
	TotalSalesTax        float64 `json:"total_sales_tax"`
	TotalUpdateCost      float64 `json:"total_update_cost"`
	TotalFees            float64 `json:"total_fees"`
	OrderUpdates         int     `json:"order_updates"`
	SuccessProbability   float64 `json:"success_probability"` // 10-95
}

// SimulationResult is the full output of a run: the per-day ledger plus the
// summary statistics.
type SimulationResult struct {
	Days    []SimulationDay   `json:"days"`
	Summary SimulationSummary `json:"summary"`
}

// Simulate runs the deterministic day-by-day order-book erosion model. Each
// day the trader captures a market share against the active competitors,
// pays fees on the traded volume plus the relist cost of staying on top of
// the book, and then both sides of the spread are squeezed by the daily
// erosion. Same config and rates always produce the same ledger.
func Simulate(config SimulationConfig, rates EffectiveRates) SimulationResult {
	days := config.SimulationDays
	if days <= 0 {
		days = DefaultSimulationDays
	}

	buy := nonNegative(config.BuyPrice)
	sell := nonNegative(config.SellPrice)
	dailyMarketVolume := nonNegativeInt(config.DailyMarketVolume)
	orderQty := nonNegativeInt(config.OrderQuantity)

	activeCompetitors := int(math.Floor(float64(config.CompetitorCount) * activeCompetitorFraction))
	if activeCompetitors < 1 {
		activeCompetitors = 1
	}
	marketShare := 1.0 / float64(activeCompetitors+1)

	dayUpdates := 0
	if config.UndercutIntervalMinutes > 0 {
		cyclesPerDay := 1440.0 / float64(config.UndercutIntervalMinutes)
		dayUpdates = int(math.Floor(cyclesPerDay * updateDutyCycle))
	}

	ledger := make([]SimulationDay, 0, days)
	var cumulative, totalBrokerFees, totalSalesTax, totalUpdateCost float64
	var totalVolume int64
	totalUpdates := 0

	for day := 1; day <= days; day++ {
		dayVolume := int64(math.Floor(float64(dailyMarketVolume) * marketShare))
		actualVolume := dayVolume
		if actualVolume > orderQty {
			actualVolume = orderQty
		}

		vol := float64(actualVolume)
		buyFee := buy * vol * rates.BrokerFeeRate
		sellFee := sell * vol * rates.BrokerFeeRate
		tax := sell * vol * rates.SalesTaxRate
		// Each order update relists the full sell order at the relist rate.
		updateCost := float64(dayUpdates) * sell * float64(orderQty) * rates.RelistFeeRate

		spread := sell - buy
		dayProfit := spread*vol - buyFee - sellFee - tax - updateCost
		cumulative += dayProfit

		margin := 0.0
		if buy > 0 {
			margin = (sell - buy) / buy * 100
		}

		ledger = append(ledger, SimulationDay{
			Day:              day,
			BuyPrice:         buy,
			SellPrice:        sell,
			MarginPercent:    margin,
			VolumeTraded:     actualVolume,
			OrderUpdates:     dayUpdates,
			DayProfit:        dayProfit,
			CumulativeProfit: cumulative,
		})

		totalVolume += actualVolume
		totalBrokerFees += buyFee + sellFee
		totalSalesTax += tax
		totalUpdateCost += updateCost
		totalUpdates += dayUpdates

		buy, sell = erodeSpread(buy, sell, activeCompetitors)
	}

	initialMargin := 0.0
	if config.BuyPrice > 0 {
		initialMargin = (config.SellPrice - config.BuyPrice) / config.BuyPrice * 100
	}
	finalMargin := initialMargin
	if len(ledger) > 0 {
		finalMargin = ledger[len(ledger)-1].MarginPercent
	}

	roi := 0.0
	if cost := config.BuyPrice * float64(orderQty); cost > 0 {
		roi = cumulative / cost * 100
	}

	summary := SimulationSummary{
		InitialMarginPercent: initialMargin,
		FinalMarginPercent:   finalMargin,
		MarginErosion:        initialMargin - finalMargin,
		TotalProfit:          cumulative,
		AvgDailyProfit:       cumulative / float64(days),
		ROIPercent:           sanitizeFloat(roi),
		TotalVolume:          totalVolume,
		TotalBrokerFees:      totalBrokerFees,
		TotalSalesTax:        totalSalesTax,
		TotalUpdateCost:      totalUpdateCost,
		TotalFees:            totalBrokerFees + totalSalesTax + totalUpdateCost,
		OrderUpdates:         totalUpdates,
		SuccessProbability:   successProbability(initialMargin, config.CompetitorCount, dailyMarketVolume),
	}

	return SimulationResult{Days: ledger, Summary: summary}
}

// erodeSpread applies one day of competitive squeeze: the bid rises and the
// ask falls by the same erosion amount, but neither side crosses the 1%
// floor spread. The spread never widens, so margin is non-increasing.
func erodeSpread(buy, sell float64, activeCompetitors int) (newBuy, newSell float64) {
	undercut := buy * undercutFraction
	erosion := undercut * float64(activeCompetitors) * erosionDamping
	minSpread := buy * minSpreadFraction

	newBuy = buy + erosion
	if ceiling := sell - minSpread; newBuy > ceiling {
		newBuy = math.Max(buy, ceiling)
	}
	newSell = sell - erosion
	if floor := newBuy + minSpread; newSell < floor {
		newSell = math.Min(sell, floor)
	}
	return newBuy, newSell
}

// successProbability is a frozen additive heuristic: start at 90, subtract
// penalties for a weak starting margin, a crowded market, and low daily
// volume, then clamp to [10, 95].
func successProbability(initialMargin float64, competitorCount int, dailyMarketVolume int64) float64 {
	p := 90.0
	if initialMargin < 5 {
		p -= 20
	}
	if initialMargin < 3 {
		p -= 30
	}
	if competitorCount > 10 {
		p -= 15
	}
	if competitorCount > 20 {
		p -= 25
	}
	if dailyMarketVolume < 10 {
		p -= 20
	}
	return clampRange(p, 10, 95)
}
