package catalog

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/kilowatch/kilowatch/pkg/types"
)

// Fingerprint identifies a plan by its numeric features. Providers list the
// same plan in English and Spanish with identical pricing, terms, and
// features but different names and IDs, so name and ID stay out of the
// fingerprint.
func Fingerprint(p types.Plan) string {
	fee := 0.0
	if p.EarlyTerminationFee != nil {
		fee = *p.EarlyTerminationFee
	}
	return fmt.Sprintf("%s|%s|%s|%.3f|%.3f|%.3f|%d|%.2f|%.2f|%d|%t|%t",
		strings.ToUpper(strings.TrimSpace(p.RepName)),
		strings.ToUpper(strings.TrimSpace(p.TDUArea)),
		strings.ToUpper(string(p.RateType)),
		round3(p.PriceKWH500),
		round3(p.PriceKWH1000),
		round3(p.PriceKWH2000),
		p.TermMonths,
		round2(fee),
		round2(p.BaseChargeMonthly),
		p.RenewablePct,
		p.IsPrepaid,
		p.IsTOU,
	)
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// preferenceScore ranks duplicate listings so the English version with the
// shorter, cleaner name survives deduplication.
func preferenceScore(p types.Plan) int {
	score := 100
	text := strings.ToLower(p.PlanName + " " + p.SpecialTerms)

	switch strings.ToLower(p.Language) {
	case "english":
		score += 50
	case "spanish", "español":
		score -= 50
	}

	if strings.Contains(text, "ñ") {
		score -= 20
	}
	for _, vowel := range []string{"á", "é", "í", "ó", "ú"} {
		if strings.Contains(text, vowel) {
			score -= 10
		}
	}
	if strings.Contains(text, "ción") {
		score -= 15
	}

	switch length := len(p.PlanName); {
	case length > 50:
		score -= 15
	case length > 30:
		score -= 10
	case length > 20:
		score -= 5
	}

	for _, c := range p.PlanName {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != ' ' && c != '-' {
			score -= 2
		}
	}
	return score
}

// Deduplicate collapses duplicate listings, keeping the preferred version
// of each fingerprint. Order of first appearance is preserved.
func Deduplicate(plans []types.Plan) []types.Plan {
	index := make(map[string]int, len(plans))
	var unique []types.Plan

	for _, p := range plans {
		fp := Fingerprint(p)
		if i, ok := index[fp]; ok {
			if preferenceScore(p) > preferenceScore(unique[i]) {
				unique[i] = p
			}
			continue
		}
		index[fp] = len(unique)
		unique = append(unique, p)
	}
	return unique
}
