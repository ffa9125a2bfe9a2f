package engine

import "math"

// Station sub-score weights. They sum to 1.0; the player-structure bonus is
// added on top and the overall score re-capped at 100.
const (
	liquidityWeight   = 0.30
	varietyWeight     = 0.20
	spreadWeight      = 0.25
	taxWeight         = 0.15
	competitionWeight = 0.10

	playerStructureBonus = 15
)

// Recommendation tiers for a station's overall score.
const (
	TierExcellent = "Excellent"
	TierVeryGood  = "Very Good"
	TierGood      = "Good"
	TierFair      = "Fair"
	TierPoor      = "Poor"
	TierAvoid     = "Avoid"
)

// StationProfile describes a trading location. Tax and broker rates are
// fractions (0.08 = 8%).
type StationProfile struct {
	OrderCount        int     `json:"order_count"`
	DailyVolume       float64 `json:"daily_volume"` // ISK traded per day
	UniqueItems       int     `json:"unique_items"`
	AvgSpreadPercent  float64 `json:"avg_spread_percent"`
	TaxRate           float64 `json:"tax_rate"`
	BrokerFeeRate     float64 `json:"broker_fee_rate"`
	CompetitorBuyers  int     `json:"competitor_buyers"`
	CompetitorSellers int     `json:"competitor_sellers"`
	IsPlayerStructure bool    `json:"is_player_structure"`
}

// StationScore is the weighted composite viability score for a station,
// with each 0-100 sub-score exposed for display.
type StationScore struct {
	Liquidity      float64 `json:"liquidity"`
	Variety        float64 `json:"variety"`
	Spread         float64 `json:"spread"`
	TaxEfficiency  float64 `json:"tax_efficiency"`
	Competition    float64 `json:"competition"`
	StructureBonus float64 `json:"structure_bonus"`
	Overall        float64 `json:"overall"` // 0-100
	Tier           string  `json:"tier"`
}

// competitionBands score total competitor count. The sweet spot is moderate
// activity: a dead market and a 0.01-ISK war both score lower.
var competitionBands = []riskBand{
	{min: 50, score: 40, reason: "crowded market"},
	{min: 20, score: 60, reason: "busy market"},
	{min: 5, score: 80, reason: "healthy activity"},
	{min: math.Inf(-1), score: 40, reason: "dead market"},
}

// tierBands map an overall score to a recommendation tier.
var tierBands = []riskBand{
	{min: 90, reason: TierExcellent},
	{min: 75, reason: TierVeryGood},
	{min: 60, reason: TierGood},
	{min: 45, reason: TierFair},
	{min: 30, reason: TierPoor},
	{min: math.Inf(-1), reason: TierAvoid},
}

// ScoreStation computes the five weighted sub-scores for a station and
// aggregates them into an overall 0-100 score with a recommendation tier.
func ScoreStation(profile StationProfile) StationScore {
	liquidity := math.Min(100,
		float64(profile.OrderCount)/10_000*40+
			profile.DailyVolume/10_000_000_000*60)
	liquidity = math.Max(0, liquidity)

	variety := clampRange(float64(profile.UniqueItems)/5_000*100, 0, 100)

	// Tighter spreads mean a more efficient market; no spread data scores 0.
	spread := 0.0
	if profile.AvgSpreadPercent > 0 {
		spread = clampRange(100-profile.AvgSpreadPercent*10, 0, 100)
	}

	effectiveTax := profile.TaxRate + 2*profile.BrokerFeeRate
	taxEff := clampRange(100-effectiveTax*500, 0, 100)

	totalCompetitors := profile.CompetitorBuyers + profile.CompetitorSellers
	competition := pickBand(float64(totalCompetitors), competitionBands).score

	bonus := 0.0
	if profile.IsPlayerStructure {
		bonus = playerStructureBonus
	}

	overall := liquidity*liquidityWeight +
		variety*varietyWeight +
		spread*spreadWeight +
		taxEff*taxWeight +
		competition*competitionWeight +
		bonus
	overall = math.Min(100, overall)

	return StationScore{
		Liquidity:      liquidity,
		Variety:        variety,
		Spread:         spread,
		TaxEfficiency:  taxEff,
		Competition:    competition,
		StructureBonus: bonus,
		Overall:        overall,
		Tier:           pickBand(overall, tierBands).reason,
	}
}
