package engine

import "math"

// Base fee rates before any skill or standing reductions, as fractions.
const (
	BaseSalesTaxRate  = 0.08
	BaseBrokerFeeRate = 0.03
	BaseRelistFeeRate = 0.01
	// MinBrokerFeeRate is the floor NPC stations charge regardless of skills.
	MinBrokerFeeRate = 0.01
)

// Per-level and per-standing-point reductions.
const (
	salesTaxReductionPerLevel  = 0.11   // Accounting: -11% of base per level
	brokerFeeReductionPerLevel = 0.003  // Broker Relations: -0.3pp per level
	relistFeeReductionPerLevel = 0.05   // Advanced Broker Relations: -5% of base per level
	corpStandingBonusPerPoint  = 0.0003 // -0.03pp per positive corp standing point
	factionStandingBonusPerPt  = 0.0002 // -0.02pp per positive faction standing point
)

// SkillProfile describes a trader's fee-reduction entitlements. Levels are
// expected in 0-5 and standings in -10..10, but nothing is clamped here:
// out-of-range values propagate through the formulas unchanged, matching the
// original behavior.
type SkillProfile struct {
	AccountingLevel              int     `json:"accounting_level"`
	BrokerRelationsLevel         int     `json:"broker_relations_level"`
	AdvancedBrokerRelationsLevel int     `json:"advanced_broker_relations_level"`
	FactionStanding              float64 `json:"faction_standing"`
	CorporationStanding          float64 `json:"corporation_standing"`
}

// EffectiveRates are the skill-adjusted fee rates as fractions (0.05 = 5%).
// They are derived values, recomputed from a SkillProfile on every request.
type EffectiveRates struct {
	SalesTaxRate  float64 `json:"sales_tax_rate"`
	BrokerFeeRate float64 `json:"broker_fee_rate"`
	RelistFeeRate float64 `json:"relist_fee_rate"`
}

// CalcEffectiveRates computes the effective sales tax, broker fee, and relist
// fee rates for a skill profile. Negative standings give no bonus, sales tax
// is floored at zero, and the broker fee never drops below MinBrokerFeeRate.
func CalcEffectiveRates(skills SkillProfile) EffectiveRates {
	salesTax := BaseSalesTaxRate * (1 - salesTaxReductionPerLevel*float64(skills.AccountingLevel))
	if salesTax < 0 {
		salesTax = 0
	}

	standingsBonus := corpStandingBonusPerPoint*math.Max(0, skills.CorporationStanding) +
		factionStandingBonusPerPt*math.Max(0, skills.FactionStanding)
	brokerFee := BaseBrokerFeeRate - brokerFeeReductionPerLevel*float64(skills.BrokerRelationsLevel) - standingsBonus
	if brokerFee < MinBrokerFeeRate {
		brokerFee = MinBrokerFeeRate
	}

	relistFee := BaseRelistFeeRate * (1 - relistFeeReductionPerLevel*float64(skills.AdvancedBrokerRelationsLevel))

	return EffectiveRates{
		SalesTaxRate:  salesTax,
		BrokerFeeRate: brokerFee,
		RelistFeeRate: relistFee,
	}
}
