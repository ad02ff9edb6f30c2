// Package etf classifies a plan's early termination fee structure from the
// structured EFL extraction when available, and from free-text heuristics
// otherwise. The rules are mutually exclusive and evaluated in a fixed
// priority order, falling through to an explicit "unknown" terminal state
// rather than a guessed default.
package etf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kilowatch/kilowatch/pkg/types"
)

// Classification is the tagged result of classifying a plan's ETF. Callers
// must branch on Structure; Amount is a flat fee, MonthlyRate a per-month
// rate, and both are zero for none/unknown. An unknown structure means "see
// the EFL", never "free".
type Classification struct {
	Structure types.ETFStructure `json:"structure"`
	// Amount is the flat fee in dollars when Structure is flat.
	Amount float64 `json:"amount,omitempty"`
	// MonthlyRate is the per-month-remaining rate in dollars when Structure
	// is per-month.
	MonthlyRate float64 `json:"monthlyRate,omitempty"`
	// Conditional marks a waiver that only applies in certain circumstances
	// (e.g. the customer moving out of the service area).
	Conditional bool            `json:"conditional,omitempty"`
	Source      types.ETFSource `json:"source"`
}

// TotalFee returns the fee owed for canceling with the given number of
// months remaining. Unknown structures return 0; presentation layers must
// render those as "See EFL" rather than free.
func (c Classification) TotalFee(monthsRemaining int) float64 {
	if monthsRemaining < 0 {
		monthsRemaining = 0
	}
	switch c.Structure {
	case types.ETFStructureFlat:
		return c.Amount
	case types.ETFStructurePerMonth:
		return c.MonthlyRate * float64(monthsRemaining)
	default:
		return 0
	}
}

var (
	noFeeRe = regexp.MustCompile(`no (?:early )?(?:termination|cancell?ation) fee|no etf\b|(?:fee|etf) (?:is )?waived|without (?:a )?(?:termination |cancellation )?penalty`)

	// conditional waivers: the fee exists but is forgiven in specific cases
	conditionalRe = regexp.MustCompile(`waived (?:if|when|should)|if you (?:move|relocate)|unless you move|upon proof of (?:a )?move|moving outside`)

	// "$20 per month remaining", "$20 for each month left", "$20/month
	// remaining". The remaining/left qualifier is required: a bare
	// "$9.95 per month" is base-charge language, not a termination fee.
	perMonthLeadingRe = regexp.MustCompile(`\$(\d+(?:\.\d{1,2})?)\s*(?:per|/|for each|for every|each)\s*(?:remaining\s+month(?:s)?|month(?:s)?\s+(?:remaining|left)(?:\s+(?:in|on)\s+(?:the\s+)?(?:contract|term))?)`)

	// "$20 multiplied by the number of months remaining", "$20 times months left"
	perMonthTrailingRe = regexp.MustCompile(`\$(\d+(?:\.\d{1,2})?)\s*(?:multiplied by|times|x)\s*(?:the\s+)?(?:number of\s+)?months\s+(?:remaining|left)`)

	// "months remaining multiplied by $20"
	perMonthReversedRe = regexp.MustCompile(`months\s+(?:remaining|left)\s*(?:multiplied by|times|x)\s*\$(\d+(?:\.\d{1,2})?)`)

	feeAppliesRe = regexp.MustCompile(`(?:termination|cancell?ation) fee (?:may )?appl(?:y|ies)|etf applies|fee for early (?:termination|cancellation)`)
)

// smallFeeThreshold is the flat-fee amount at or below which a fee on a
// year-plus contract is ambiguous: the catalogue historically listed
// per-month rates in the flat-fee column, so $20 on a 24-month term could
// mean $20 total or $480. We refuse to guess.
const smallFeeThreshold = 50

// Classify determines a plan's ETF structure.
func Classify(p types.Plan) Classification {
	// Structured EFL extraction is authoritative when it carries the numeric
	// field its tag requires; it bypasses every heuristic below.
	if c, ok := fromDetails(p.ETFDetails); ok {
		return c
	}

	text := strings.ToLower(strings.Join([]string{
		p.SpecialTerms, p.PromotionDetails, p.FeesCredits, p.MinUsageFees,
	}, " "))

	if noFeeRe.MatchString(text) {
		return Classification{
			Structure:   types.ETFStructureNone,
			Conditional: conditionalRe.MatchString(text),
			Source:      types.ETFSourceTextParsing,
		}
	}

	if rate, ok := perMonthRate(text); ok {
		return Classification{
			Structure:   types.ETFStructurePerMonth,
			MonthlyRate: rate,
			Source:      types.ETFSourceTextParsing,
		}
	}

	if p.EarlyTerminationFee == nil || *p.EarlyTerminationFee == 0 {
		if feeAppliesRe.MatchString(text) {
			// a fee exists but no amount was disclosed
			return Classification{Structure: types.ETFStructureUnknown, Source: types.ETFSourceTextParsing}
		}
		if p.TermMonths >= 2 {
			// a multi-month contract with no disclosed fee and no explicit
			// no-fee language: do not assume it is free
			return Classification{Structure: types.ETFStructureUnknown, Source: types.ETFSourceLegacy}
		}
		return Classification{Structure: types.ETFStructureNone, Source: types.ETFSourceLegacy}
	}

	fee := *p.EarlyTerminationFee

	// Prepaid ETFs are never per-month, even when small.
	if p.IsPrepaid {
		return Classification{Structure: types.ETFStructureFlat, Amount: fee, Source: types.ETFSourceLegacy}
	}

	if fee <= smallFeeThreshold && p.TermMonths >= 12 {
		return Classification{Structure: types.ETFStructureUnknown, Source: types.ETFSourceLegacy}
	}

	return Classification{Structure: types.ETFStructureFlat, Amount: fee, Source: types.ETFSourceLegacy}
}

// fromDetails maps a structured extraction to a Classification. It returns
// false when the tag's required numeric field is missing, in which case the
// caller falls back to heuristics.
func fromDetails(d *types.ETFDetails) (Classification, bool) {
	if d == nil {
		return Classification{}, false
	}
	switch d.Structure {
	case types.ETFStructureNone, types.ETFStructureUnknown:
		return Classification{Structure: d.Structure, Source: d.Source}, true
	case types.ETFStructureFlat:
		if d.BaseAmount != nil {
			return Classification{Structure: d.Structure, Amount: *d.BaseAmount, Source: d.Source}, true
		}
	case types.ETFStructurePerMonth:
		if d.BaseAmount != nil {
			return Classification{Structure: d.Structure, MonthlyRate: *d.BaseAmount, Source: d.Source}, true
		}
	}
	return Classification{}, false
}

func perMonthRate(text string) (float64, bool) {
	for _, re := range []*regexp.Regexp{perMonthTrailingRe, perMonthReversedRe, perMonthLeadingRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			rate, err := strconv.ParseFloat(m[1], 64)
			if err == nil && rate > 0 {
				return rate, true
			}
		}
	}
	return 0, false
}
