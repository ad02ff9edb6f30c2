package ranking

import (
	"sort"
	"time"

	"github.com/kilowatch/kilowatch/pkg/contract"
	"github.com/kilowatch/kilowatch/pkg/pricing"
	"github.com/kilowatch/kilowatch/pkg/types"
)

// quality tier thresholds; the overrides below are a business rule layered
// on top of the continuous formula, kept separate so the cutoffs are easy
// to find and adjust
const (
	fTierBelow = 60
	dTierBelow = 70
)

// Options tunes a ranking pass.
type Options struct {
	// FixedOnly drops non-FIXED plans before ranking instead of letting the
	// quality zeroing sink them to the bottom.
	FixedOnly bool
	// ContractStart, when non-zero, enables expiration analysis and its
	// quality penalty.
	ContractStart time.Time
	// LocalTaxRate is a decimal fraction, e.g. 0.02.
	LocalTaxRate float64
}

// Rank scores every plan against the usage profile and returns them
// best-first.
func Rank(plans []types.Plan, profile types.UsageProfile, tdu types.TDURates, opts Options) []types.RankedPlan {
	hasStart := !opts.ContractStart.IsZero()
	ranked := make([]types.RankedPlan, 0, len(plans))

	for _, p := range plans {
		if opts.FixedOnly && p.RateType != types.RateTypeFixed {
			continue
		}

		ac := pricing.AnnualForProfile(profile, p, tdu, opts.LocalTaxRate)

		rp := types.RankedPlan{
			Plan:               p,
			AnnualCost:         ac.Total,
			MonthlyCosts:       ac.Monthly,
			AverageMonthlyCost: ac.AverageMonthly,
			EffectiveRateCents: ac.EffectiveRateCents,
			Volatility:         Volatility(p, profile),
		}
		if hasStart {
			exp := contract.Analyze(opts.ContractStart, p.TermMonths)
			rp.Expiration = &exp
		}
		rp.Warnings = Warnings(p, profile, rp.Expiration)
		ranked = append(ranked, rp)
	}
	if len(ranked) == 0 {
		return ranked
	}

	best, worst := ranked[0].AnnualCost, ranked[0].AnnualCost
	for _, rp := range ranked[1:] {
		if rp.AnnualCost < best {
			best = rp.AnnualCost
		}
		if rp.AnnualCost > worst {
			worst = rp.AnnualCost
		}
	}

	for i := range ranked {
		rp := &ranked[i]
		rp.QualityScore, rp.QualityBreakdown = Quality(*rp, best, hasStart)

		rp.CostScore = 100.0
		if worst > best {
			rp.CostScore = 100 - (rp.AnnualCost-best)/(worst-best)*100
		}

		rp.CombinedScore = rp.CostScore * max(1, float64(rp.QualityScore)) / 100

		switch {
		case rp.QualityScore < fTierBelow:
			// every F-tier plan must sort below every non-F-tier plan,
			// ordered among themselves by quality then cost
			rp.CombinedScore = float64(rp.QualityScore-1000) + rp.CostScore*0.1
		case rp.QualityScore < dTierBelow:
			rp.CombinedScore -= 10
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore > ranked[j].CombinedScore
	})
	return ranked
}
