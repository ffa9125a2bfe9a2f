package engine

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// AssessRiskBatch scores every trade in the slice and contextualizes each
// assessment against the batch: BatchPercentile is the share of the batch
// whose total score is at or below the trade's own (0-100). Scoring runs
// with bounded parallelism, but output order matches input order and the
// result is deterministic.
func AssessRiskBatch(trades []TradeRecord, opts RiskOptions) []RiskAssessment {
	if len(trades) == 0 {
		return nil
	}

	scorer := NewRiskScorer(opts)
	assessments := make([]RiskAssessment, len(trades))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range trades {
		i := i
		g.Go(func() error {
			assessments[i] = scorer.Assess(trades[i])
			return nil
		})
	}
	// Workers never fail; Wait is just the join point.
	_ = g.Wait()

	scores := make([]float64, len(assessments))
	for i, a := range assessments {
		scores[i] = a.TotalScore
	}
	sort.Float64s(scores)
	for i := range assessments {
		// Rank of the first score strictly greater than ours.
		rank := sort.SearchFloat64s(scores, assessments[i].TotalScore+1e-9)
		assessments[i].BatchPercentile = float64(rank) / float64(len(scores)) * 100
	}
	return assessments
}

// AnalyzeTradeBatch fills a ProfitResult for every trade under shared rates,
// with the same bounded-parallel, order-preserving contract as
// AssessRiskBatch.
func AnalyzeTradeBatch(trades []TradeRecord, rates EffectiveRates) []ProfitResult {
	if len(trades) == 0 {
		return nil
	}

	results := make([]ProfitResult, len(trades))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range trades {
		i := i
		g.Go(func() error {
			results[i] = AnalyzeTrade(trades[i], rates)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
