package pricing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kilowatch/kilowatch/pkg/types"
)

// Provider disclosures are inconsistent natural language; these patterns
// cover the overwhelmingly common single-tier phrasing. Tiered credits
// ("$50 at 500 kWh, $100 at 1000 kWh") and time-based credits are not
// handled: a documented limitation of this best-effort parser, not a defect.
var (
	creditAmountRe = regexp.MustCompile(`\$(\d+(?:\.\d{1,2})?)\s*bill\s*credit`)
	creditRangeRe  = regexp.MustCompile(`between\s+(\d+)\s*(?:-|–|to|and)\s*(\d+)\s*kwh`)
	creditExactRe  = regexp.MustCompile(`exactly\s+(\d+)\s*kwh`)
)

// CreditAmount returns the bill credit (dollars) a plan pays at the given
// usage, or 0 when no credit applies or the terms are unparseable.
func CreditAmount(usageKWH float64, p types.Plan) float64 {
	if amount, ok := parseCredit(p.SpecialTerms, usageKWH); ok {
		return amount
	}
	if amount, ok := parseCredit(p.FeesCredits, usageKWH); ok {
		return amount
	}
	return 0
}

// parseCredit extracts a single credit tier from one free-text field. The
// second return is true only when both an amount and a qualifying range were
// found, regardless of whether the usage qualifies.
func parseCredit(text string, usageKWH float64) (float64, bool) {
	if text == "" {
		return 0, false
	}
	text = strings.ToLower(text)

	m := creditAmountRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	var lo, hi float64
	if r := creditRangeRe.FindStringSubmatch(text); r != nil {
		lo, _ = strconv.ParseFloat(r[1], 64)
		hi, _ = strconv.ParseFloat(r[2], 64)
	} else if e := creditExactRe.FindStringSubmatch(text); e != nil {
		lo, _ = strconv.ParseFloat(e[1], 64)
		hi = lo
	} else {
		return 0, false
	}

	if usageKWH >= lo && usageKWH <= hi {
		return amount, true
	}
	return 0, true
}
