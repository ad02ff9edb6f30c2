// Package contract analyzes when a contract term ends and how bad that
// timing is for renewal shopping. Texas retail prices spike in late summer,
// so a contract that dumps a household onto month-to-month holdover rates in
// July or August is materially worse than one expiring in April or October.
package contract

import (
	"sort"
	"time"

	"github.com/kilowatch/kilowatch/pkg/types"
)

// monthSeasonality scores each calendar month by how unfavorable it is to
// shop for a new contract, 0 (best) to 1 (worst). April and October are the
// shoulder-season troughs; July and August the summer peaks. Index 0 =
// January.
var monthSeasonality = [types.MonthsPerYear]float64{
	0.4, // Jan
	0.3, // Feb
	0.1, // Mar
	0.0, // Apr
	0.3, // May
	0.7, // Jun
	1.0, // Jul
	1.0, // Aug
	0.6, // Sep
	0.0, // Oct
	0.2, // Nov
	0.4, // Dec
}

// candidateTerms are the contract lengths commonly offered in the Texas
// retail market, used when suggesting better-aligned alternatives.
var candidateTerms = []int{3, 6, 9, 12, 15, 18, 24, 36}

const maxAlternatives = 3

// AddMonths advances t by the given number of months, clamping the day to
// the last day of the target month so Jan 31 + 1 month lands on Feb 28/29
// rather than rolling into March.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// SeasonalityScore returns the renewal-timing badness of the given month.
func SeasonalityScore(m time.Month) float64 {
	return monthSeasonality[int(m)-1]
}

func riskFor(score float64) types.ExpirationRisk {
	switch {
	case score >= 0.8:
		return types.ExpirationRiskHigh
	case score >= 0.5:
		return types.ExpirationRiskMedium
	case score >= 0.2:
		return types.ExpirationRiskLow
	default:
		return types.ExpirationRiskOptimal
	}
}

// Analyze projects the expiration of a contract starting at start with the
// given term and scores its renewal timing. Alternatives lists up to three
// commonly offered terms that would expire at a meaningfully better time,
// best first.
func Analyze(start time.Time, termMonths int) types.ExpirationAnalysis {
	exp := AddMonths(start, termMonths)
	score := SeasonalityScore(exp.Month())

	a := types.ExpirationAnalysis{
		ExpirationDate:   exp,
		ExpirationMonth:  exp.Month(),
		SeasonalityScore: score,
		Risk:             riskFor(score),
	}

	for _, alt := range candidateTerms {
		if alt == termMonths {
			continue
		}
		altExp := AddMonths(start, alt)
		altScore := SeasonalityScore(altExp.Month())
		// an alternative must be a clear improvement, or land in a trough
		// month when the current timing is poor
		if (score > 0 && altScore <= 0.7*score) || (altScore <= 0.1 && score > 0.3) {
			a.Alternatives = append(a.Alternatives, types.TermAlternative{
				TermMonths:       alt,
				ExpirationMonth:  altExp.Month(),
				SeasonalityScore: altScore,
				Risk:             riskFor(altScore),
			})
		}
	}

	sort.SliceStable(a.Alternatives, func(i, j int) bool {
		return a.Alternatives[i].SeasonalityScore < a.Alternatives[j].SeasonalityScore
	})
	if len(a.Alternatives) > maxAlternatives {
		a.Alternatives = a.Alternatives[:maxAlternatives]
	}
	return a
}
