package ranking

import (
	"math"
	"strings"

	"github.com/kilowatch/kilowatch/pkg/types"
)

const (
	maxCostPenalty       = 40
	maxWarningPenalty    = 25
	maxBaseChargePenalty = 5
	baseChargeFreeDollar = 15
)

// Quality scores a plan 0-100 from its derived ranking fields. Non-fixed,
// prepaid, and time-of-use plans are zeroed outright with a reason; price
// cannot buy them back. The breakdown itemizes each penalty for display.
func Quality(rp types.RankedPlan, bestAnnualCost float64, hasStartDate bool) (int, types.QualityBreakdown) {
	switch {
	case rp.RateType != types.RateTypeFixed:
		return 0, types.QualityBreakdown{Reason: strings.ToLower(string(rp.RateType)) + "-rate plans carry unbounded price risk"}
	case rp.IsPrepaid:
		return 0, types.QualityBreakdown{Reason: "prepaid plans bill on different terms than contract plans"}
	case rp.IsTOU:
		return 0, types.QualityBreakdown{Reason: "time-of-use pricing is not comparable on a flat usage profile"}
	}

	var b types.QualityBreakdown

	if bestAnnualCost > 0 && rp.AnnualCost > bestAnnualCost {
		over := 100 * (rp.AnnualCost - bestAnnualCost) / bestAnnualCost
		b.CostPenalty = min(maxCostPenalty, int(math.Round(over)))
	}

	b.VolatilityPenalty = int(math.Round(rp.Volatility * 25))

	b.WarningPenalty = min(maxWarningPenalty, 5*countedWarnings(rp.Warnings))

	if rp.BaseChargeMonthly > baseChargeFreeDollar {
		b.BaseChargePenalty = min(maxBaseChargePenalty,
			int(math.Round((rp.BaseChargeMonthly-baseChargeFreeDollar)/3)))
	}

	if hasStartDate && rp.Expiration != nil {
		switch rp.Expiration.Risk {
		case types.ExpirationRiskHigh:
			b.ExpirationPenalty = 30
		case types.ExpirationRiskMedium:
			b.ExpirationPenalty = 15
		}
	}

	score := 100 - b.CostPenalty - b.VolatilityPenalty - b.WarningPenalty -
		b.BaseChargePenalty - b.ExpirationPenalty
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return score, b
}

// countedWarnings excludes the synthetic non-fixed-rate warning, which only
// appears on plans the zero path above already handled.
func countedWarnings(warnings []string) int {
	n := 0
	for _, w := range warnings {
		if !strings.HasPrefix(w, WarningNonFixed) {
			n++
		}
	}
	return n
}
