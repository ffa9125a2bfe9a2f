package engine

import (
	"math"
	"reflect"
	"testing"
)

func baseSimConfig() SimulationConfig {
	return SimulationConfig{
		BuyPrice:                1_000_000,
		SellPrice:               1_100_000,
		DailyMarketVolume:       50,
		OrderQuantity:           10,
		UndercutIntervalMinutes: 30,
		CompetitorCount:         10,
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	cfg := baseSimConfig()
	rates := CalcEffectiveRates(SkillProfile{AccountingLevel: 3, BrokerRelationsLevel: 2})

	a := Simulate(cfg, rates)
	b := Simulate(cfg, rates)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical config+rates produced different ledgers")
	}
}

func TestSimulate_SevenDayScenario(t *testing.T) {
	// End-to-end scenario from the dashboard's simulator form.
	cfg := baseSimConfig()
	rates := CalcEffectiveRates(SkillProfile{})

	res := Simulate(cfg, rates)

	if len(res.Days) != DefaultSimulationDays {
		t.Fatalf("len(Days) = %d, want %d", len(res.Days), DefaultSimulationDays)
	}
	if math.Abs(res.Summary.InitialMarginPercent-10.0) > 0.01 {
		t.Errorf("InitialMarginPercent = %v, want 10.00 +/- 0.01", res.Summary.InitialMarginPercent)
	}
	if res.Summary.MarginErosion <= 0 {
		t.Errorf("MarginErosion = %v, want > 0", res.Summary.MarginErosion)
	}
	if res.Summary.FinalMarginPercent > res.Summary.InitialMarginPercent {
		t.Errorf("final margin %v > initial %v", res.Summary.FinalMarginPercent, res.Summary.InitialMarginPercent)
	}

	// 10 listed competitors -> 3 active -> 25% share -> 12/day, capped by the
	// 10-unit order.
	if res.Days[0].VolumeTraded != 10 {
		t.Errorf("day 1 volume = %d, want 10", res.Days[0].VolumeTraded)
	}
	// 30-minute undercut interval -> 48 cycles -> 24 updates at 50% duty.
	if res.Days[0].OrderUpdates != 24 {
		t.Errorf("day 1 order updates = %d, want 24", res.Days[0].OrderUpdates)
	}
}

func TestSimulate_MarginNonIncreasing(t *testing.T) {
	cfg := baseSimConfig()
	cfg.SimulationDays = 14
	res := Simulate(cfg, CalcEffectiveRates(SkillProfile{}))

	prev := math.Inf(1)
	for _, d := range res.Days {
		if d.MarginPercent > prev {
			t.Fatalf("day %d margin %v > day %d margin %v", d.Day, d.MarginPercent, d.Day-1, prev)
		}
		prev = d.MarginPercent
	}
}

func TestSimulate_SpreadFloorStopsErosion(t *testing.T) {
	// Run long enough for the spread to hit the 1% floor; after that, prices
	// must stop moving and margin must hold steady instead of going negative.
	cfg := baseSimConfig()
	cfg.CompetitorCount = 100
	cfg.SimulationDays = 120
	res := Simulate(cfg, CalcEffectiveRates(SkillProfile{}))

	last := res.Days[len(res.Days)-1]
	if last.MarginPercent < 0.9 {
		t.Errorf("final margin %v eroded through the 1%% floor", last.MarginPercent)
	}
	if last.BuyPrice >= last.SellPrice {
		t.Errorf("buy %v >= sell %v after long erosion", last.BuyPrice, last.SellPrice)
	}
}

func TestSimulate_ZeroCompetitorsStillErodes(t *testing.T) {
	// At least one competitor is always assumed active.
	cfg := baseSimConfig()
	cfg.CompetitorCount = 0
	res := Simulate(cfg, CalcEffectiveRates(SkillProfile{}))
	if res.Summary.MarginErosion <= 0 {
		t.Errorf("MarginErosion = %v, want > 0 with the implicit active competitor", res.Summary.MarginErosion)
	}
}

func TestSimulate_DayVolumeBelowOrderQuantity(t *testing.T) {
	cfg := baseSimConfig()
	cfg.DailyMarketVolume = 8 // 25% share -> 2/day, well under the 10-unit order
	res := Simulate(cfg, CalcEffectiveRates(SkillProfile{}))
	if res.Days[0].VolumeTraded != 2 {
		t.Errorf("day 1 volume = %d, want 2", res.Days[0].VolumeTraded)
	}
}

func TestSimulate_CustomDayCount(t *testing.T) {
	cfg := baseSimConfig()
	cfg.SimulationDays = 3
	res := Simulate(cfg, CalcEffectiveRates(SkillProfile{}))
	if len(res.Days) != 3 {
		t.Errorf("len(Days) = %d, want 3", len(res.Days))
	}
	if res.Days[2].Day != 3 {
		t.Errorf("last day index = %d, want 3", res.Days[2].Day)
	}
}

func TestSimulate_ZeroIntervalMeansNoUpdates(t *testing.T) {
	cfg := baseSimConfig()
	cfg.UndercutIntervalMinutes = 0
	res := Simulate(cfg, CalcEffectiveRates(SkillProfile{}))
	if res.Days[0].OrderUpdates != 0 {
		t.Errorf("OrderUpdates = %d, want 0 when interval is 0", res.Days[0].OrderUpdates)
	}
	if res.Summary.TotalUpdateCost != 0 {
		t.Errorf("TotalUpdateCost = %v, want 0", res.Summary.TotalUpdateCost)
	}
}

func TestSimulate_ZeroPricesDegradeToZero(t *testing.T) {
	res := Simulate(SimulationConfig{DailyMarketVolume: 100, OrderQuantity: 10}, CalcEffectiveRates(SkillProfile{}))
	s := res.Summary
	for name, v := range map[string]float64{
		"InitialMarginPercent": s.InitialMarginPercent,
		"FinalMarginPercent":   s.FinalMarginPercent,
		"TotalProfit":          s.TotalProfit,
		"ROIPercent":           s.ROIPercent,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, want finite", name, v)
		}
	}
}

func TestSimulate_FeeAccumulation(t *testing.T) {
	cfg := baseSimConfig()
	cfg.SimulationDays = 2
	rates := EffectiveRates{SalesTaxRate: 0.05, BrokerFeeRate: 0.03, RelistFeeRate: 0.01}
	res := Simulate(cfg, rates)

	var broker, tax, update float64
	for _, d := range res.Days {
		vol := float64(d.VolumeTraded)
		broker += d.BuyPrice*vol*rates.BrokerFeeRate + d.SellPrice*vol*rates.BrokerFeeRate
		tax += d.SellPrice * vol * rates.SalesTaxRate
		update += float64(d.OrderUpdates) * d.SellPrice * float64(cfg.OrderQuantity) * rates.RelistFeeRate
	}
	if !almostEqual(res.Summary.TotalBrokerFees, broker) {
		t.Errorf("TotalBrokerFees = %v, want %v", res.Summary.TotalBrokerFees, broker)
	}
	if !almostEqual(res.Summary.TotalSalesTax, tax) {
		t.Errorf("TotalSalesTax = %v, want %v", res.Summary.TotalSalesTax, tax)
	}
	if !almostEqual(res.Summary.TotalFees, broker+tax+update) {
		t.Errorf("TotalFees = %v, want %v", res.Summary.TotalFees, broker+tax+update)
	}
}

func TestSuccessProbability(t *testing.T) {
	tests := []struct {
		name        string
		margin      float64
		competitors int
		volume      int64
		want        float64
	}{
		{"healthy setup", 10, 10, 50, 90},
		{"weak margin", 4, 10, 50, 70},
		{"very weak margin stacks both penalties", 2, 10, 50, 40},
		{"crowded", 10, 11, 50, 75},
		{"very crowded stacks both penalties", 10, 21, 50, 50},
		{"illiquid", 10, 10, 9, 70},
		{"everything wrong clamps at 10", 2, 25, 5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := successProbability(tt.margin, tt.competitors, tt.volume)
			if !almostEqual(got, tt.want) {
				t.Errorf("successProbability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimulate_CumulativeProfitIsRunningSum(t *testing.T) {
	res := Simulate(baseSimConfig(), CalcEffectiveRates(SkillProfile{}))
	sum := 0.0
	for _, d := range res.Days {
		sum += d.DayProfit
		if !almostEqual(d.CumulativeProfit, sum) {
			t.Fatalf("day %d cumulative = %v, want %v", d.Day, d.CumulativeProfit, sum)
		}
	}
	if !almostEqual(res.Summary.TotalProfit, sum) {
		t.Errorf("TotalProfit = %v, want %v", res.Summary.TotalProfit, sum)
	}
}
