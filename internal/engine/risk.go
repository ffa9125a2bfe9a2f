package engine

import (
	"fmt"
	"math"
)

// Risk factor weights. They sum to 1.0.
const (
	volumeRiskWeight  = 0.35
	marginRiskWeight  = 0.25
	capitalRiskWeight = 0.20
	spreadRiskWeight  = 0.20
)

// Risk levels, from the weighted total score.
const (
	RiskLevelLow     = "low"
	RiskLevelMedium  = "medium"
	RiskLevelHigh    = "high"
	RiskLevelExtreme = "extreme"
)

// RiskFactor is one scored component of a risk assessment.
type RiskFactor struct {
	Name     string  `json:"name"`
	RawValue float64 `json:"raw_value"`
	Score    float64 `json:"score"`  // 0-100
	Weight   float64 `json:"weight"` // 0-1
	Reason   string  `json:"reason"`
}

// RiskAssessment aggregates the four risk factors into a weighted 0-100
// total with a discrete level. BatchPercentile is only filled by
// AssessRiskBatch; standalone assessments leave it at 0.
type RiskAssessment struct {
	Factors         []RiskFactor `json:"factors"`
	TotalScore      float64      `json:"total_score"`
	Level           string       `json:"level"`
	ScamLikely      bool         `json:"scam_likely"`
	BatchPercentile float64      `json:"batch_percentile,omitempty"`
}

// riskBand maps a lower bound on a raw metric to a sub-score. Bands are
// evaluated top-down; the first band whose bound the value meets wins, and
// the final band is the catch-all. Thresholds are data, not control flow, so
// a tightened table is just a different slice.
type riskBand struct {
	min       float64
	exclusive bool // bound is strict: value must exceed min
	score     float64
	reason    string
}

func pickBand(value float64, bands []riskBand) riskBand {
	for _, b := range bands {
		if b.exclusive {
			if value > b.min {
				return b
			}
		} else if value >= b.min {
			return b
		}
	}
	return bands[len(bands)-1]
}

// riskTables holds the four breakpoint tables a scorer evaluates against.
type riskTables struct {
	volume  []riskBand
	margin  []riskBand
	capital []riskBand
	spread  []riskBand
}

func negInf() float64 { return math.Inf(-1) }

// defaultRiskTables are the baseline breakpoints.
func defaultRiskTables() riskTables {
	return riskTables{
		volume: []riskBand{
			{min: 51, score: 0, reason: "deep order book"},
			{min: 21, score: 20, reason: "moderate order book"},
			{min: 6, score: 40, reason: "shallow order book"},
			{min: 2, score: 70, reason: "very thin volume"},
			{min: negInf(), score: 100, reason: "single-unit listing, classic scam signature"},
		},
		// Non-monotone: unrealistic margins and razor-thin margins are both
		// suspicious, for different reasons.
		margin: []riskBand{
			{min: 50, exclusive: true, score: 80, reason: "margin too good to be true"},
			{min: 40, score: 50, reason: "unusually high margin"},
			{min: 30, exclusive: true, score: 25, reason: "elevated margin"},
			{min: 15, score: 0, reason: "healthy margin band"},
			{min: 5, score: 10, reason: "modest margin"},
			{min: 3, score: 30, reason: "thin margin, cutthroat competition"},
			{min: negInf(), score: 60, reason: "margin below viable range"},
		},
		capital: []riskBand{
			{min: 10_000_000_000, exclusive: true, score: 90, reason: "capital exposure above 10B"},
			{min: 1_000_000_000, score: 70, reason: "capital exposure in the billions"},
			{min: 100_000_000, score: 40, reason: "capital exposure in the hundreds of millions"},
			{min: 10_000_000, score: 15, reason: "moderate capital exposure"},
			{min: negInf(), score: 0, reason: "small capital exposure"},
		},
		spread: []riskBand{
			{min: 200, exclusive: true, score: 95, reason: "spread above 200%, almost certainly bait"},
			{min: 100, score: 80, reason: "spread above 100%"},
			{min: 50, score: 50, reason: "very wide spread"},
			{min: 25, score: 25, reason: "wide spread"},
			{min: negInf(), score: 0, reason: "normal spread"},
		},
	}
}

// conservativeRiskTables tighten the monotone breakpoints: volume bands
// roughly double, capital bands halve, and spread bands shrink, so the same
// trade scores higher. The margin table keeps its shape since its bands
// encode a non-monotone judgement rather than a tolerance.
func conservativeRiskTables() riskTables {
	t := defaultRiskTables()
	t.volume = []riskBand{
		{min: 102, score: 0, reason: "deep order book"},
		{min: 42, score: 20, reason: "moderate order book"},
		{min: 12, score: 40, reason: "shallow order book"},
		{min: 4, score: 70, reason: "very thin volume"},
		{min: negInf(), score: 100, reason: "single-unit listing, classic scam signature"},
	}
	t.capital = []riskBand{
		{min: 5_000_000_000, exclusive: true, score: 90, reason: "capital exposure above 5B"},
		{min: 500_000_000, score: 70, reason: "capital exposure in the high hundreds of millions"},
		{min: 50_000_000, score: 40, reason: "capital exposure above 50M"},
		{min: 5_000_000, score: 15, reason: "moderate capital exposure"},
		{min: negInf(), score: 0, reason: "small capital exposure"},
	}
	t.spread = []riskBand{
		{min: 150, exclusive: true, score: 95, reason: "spread above 150%, almost certainly bait"},
		{min: 75, score: 80, reason: "spread above 75%"},
		{min: 35, score: 50, reason: "very wide spread"},
		{min: 15, score: 25, reason: "wide spread"},
		{min: negInf(), score: 0, reason: "normal spread"},
	}
	return t
}

// RiskOptions parameterizes a RiskScorer. Conservative swaps in tightened
// breakpoint tables; the scoring algorithm itself is unchanged.
type RiskOptions struct {
	Conservative bool
}

// RiskScorer evaluates trades against a fixed set of breakpoint tables.
// The zero value is not usable; construct with NewRiskScorer.
type RiskScorer struct {
	tables riskTables
}

// NewRiskScorer creates a scorer with default or conservative breakpoints.
func NewRiskScorer(opts RiskOptions) *RiskScorer {
	t := defaultRiskTables()
	if opts.Conservative {
		t = conservativeRiskTables()
	}
	return &RiskScorer{tables: t}
}

// AssessRisk scores a trade with the default breakpoints.
func AssessRisk(trade TradeRecord) RiskAssessment {
	return NewRiskScorer(RiskOptions{}).Assess(trade)
}

// Assess computes the four weighted risk factors for a trade and aggregates
// them into a total score, level, and scam-likelihood flag.
func (s *RiskScorer) Assess(trade TradeRecord) RiskAssessment {
	buy := nonNegative(trade.BuyPrice)
	sell := nonNegative(trade.SellPrice)
	volume := nonNegativeInt(trade.Volume)

	marginPct := 0.0
	spreadPct := 0.0
	if buy > 0 {
		marginPct = (sell - buy) / buy * 100
		spreadPct = marginPct
	}
	exposure := CalcCapitalRequired(buy, volume)

	volumeBand := pickBand(float64(volume), s.tables.volume)
	marginBand := pickBand(marginPct, s.tables.margin)
	capitalBand := pickBand(exposure, s.tables.capital)
	spreadBand := pickBand(spreadPct, s.tables.spread)

	factors := []RiskFactor{
		{
			Name:     "volume",
			RawValue: float64(volume),
			Score:    volumeBand.score,
			Weight:   volumeRiskWeight,
			Reason:   fmt.Sprintf("%d units listed: %s", volume, volumeBand.reason),
		},
		{
			Name:     "margin",
			RawValue: marginPct,
			Score:    marginBand.score,
			Weight:   marginRiskWeight,
			Reason:   fmt.Sprintf("%.1f%% margin: %s", marginPct, marginBand.reason),
		},
		{
			Name:     "capital",
			RawValue: exposure,
			Score:    capitalBand.score,
			Weight:   capitalRiskWeight,
			Reason:   fmt.Sprintf("%.0f ISK exposure: %s", exposure, capitalBand.reason),
		},
		{
			Name:     "spread",
			RawValue: spreadPct,
			Score:    spreadBand.score,
			Weight:   spreadRiskWeight,
			Reason:   fmt.Sprintf("%.1f%% spread: %s", spreadPct, spreadBand.reason),
		},
	}

	total := 0.0
	for _, f := range factors {
		total += f.Score * f.Weight
	}

	return RiskAssessment{
		Factors:    factors,
		TotalScore: total,
		Level:      riskLevel(total),
		ScamLikely: total > 75 || (volumeBand.score >= 100 && spreadBand.score >= 80),
	}
}

func riskLevel(total float64) string {
	switch {
	case total <= 25:
		return RiskLevelLow
	case total <= 50:
		return RiskLevelMedium
	case total <= 75:
		return RiskLevelHigh
	default:
		return RiskLevelExtreme
	}
}
