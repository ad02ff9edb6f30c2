// Package ranking scores and orders plans for a given usage profile. The
// scorers are pure functions over already-validated inputs; Rank is the
// single orchestration entry point.
package ranking

import (
	"math"
	"strings"

	"github.com/kilowatch/kilowatch/pkg/pricing"
	"github.com/kilowatch/kilowatch/pkg/types"
)

// rateVarianceThreshold is the benchmark deviation ratio above which a
// plan's pricing is considered tiered enough to be risky.
const rateVarianceThreshold = 0.3

// rateVariance returns the larger relative deviation of the 500 and 2000
// kWh benchmarks from the 1000 kWh benchmark.
func rateVariance(p types.Plan) float64 {
	if p.PriceKWH1000 == 0 {
		return 0
	}
	low := math.Abs(p.PriceKWH500-p.PriceKWH1000) / p.PriceKWH1000
	high := math.Abs(p.PriceKWH2000-p.PriceKWH1000) / p.PriceKWH1000
	return math.Max(low, high)
}

// missedCreditMonths counts months in the profile where the plan advertises
// a bill credit but the usage misses its qualifying tier.
func missedCreditMonths(p types.Plan, profile types.UsageProfile) int {
	missed := 0
	for _, usage := range profile {
		if pricing.CreditAmount(usage, p) == 0 {
			missed++
		}
	}
	return missed
}

// Volatility scores a plan's bill-to-bill unpredictability in [0,1] for the
// given usage profile. Components are additive and the sum is capped at 1.
func Volatility(p types.Plan, profile types.UsageProfile) float64 {
	var score float64

	if p.RateType != types.RateTypeFixed {
		score += 0.6
	}

	if strings.Contains(strings.ToLower(p.SpecialTerms), "credit") {
		missed := missedCreditMonths(p, profile)
		score += 0.5 + 0.3*float64(missed)/types.MonthsPerYear
	}

	if p.IsTOU {
		score += 0.3
	}

	if v := rateVariance(p); v > rateVarianceThreshold {
		score += math.Min(v, 1) * 0.5
	}

	return math.Min(score, 1)
}
