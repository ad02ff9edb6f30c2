package ranking

import (
	"fmt"
	"strings"

	"github.com/kilowatch/kilowatch/pkg/etf"
	"github.com/kilowatch/kilowatch/pkg/types"
)

// Warning strings are stable identifiers prefixed to a human sentence so
// clients can match on the prefix without parsing the whole message.
const (
	WarningNonFixed     = "non-fixed-rate"
	WarningCreditMiss   = "credit-miss"
	WarningTimeOfUse    = "time-of-use"
	WarningHighETF      = "high-etf"
	WarningRateVariance = "rate-variance"
	WarningExpiration   = "expiration"
)

// highETFThreshold is the cancellation fee, evaluated at the contract
// midpoint, above which a plan gets a warning.
const highETFThreshold = 150.0

// Warnings builds the advisory list for a plan against a usage profile. The
// non-fixed-rate warning, when applicable, is always first; quality scoring
// skips it when counting warnings because non-fixed plans are already zeroed.
func Warnings(p types.Plan, profile types.UsageProfile, exp *types.ExpirationAnalysis) []string {
	var warnings []string

	if p.RateType != types.RateTypeFixed {
		warnings = append(warnings, fmt.Sprintf(
			"%s: %s pricing can change between bills", WarningNonFixed, strings.ToLower(string(p.RateType))))
	}

	if missed := missedCreditMonths(p, profile); missed > 0 &&
		strings.Contains(strings.ToLower(p.SpecialTerms), "credit") {
		warnings = append(warnings, fmt.Sprintf(
			"%s: projected usage misses the bill-credit tier in %d of 12 months", WarningCreditMiss, missed))
	}

	if p.IsTOU {
		warnings = append(warnings, fmt.Sprintf(
			"%s: costs depend heavily on when during the day power is used", WarningTimeOfUse))
	}

	if fee := etf.Classify(p).TotalFee(p.TermMonths / 2); fee > highETFThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"%s: canceling midway through the term costs $%.0f", WarningHighETF, fee))
	}

	if rateVariance(p) > rateVarianceThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"%s: the price per kWh swings sharply with monthly usage", WarningRateVariance))
	}

	if exp != nil && (exp.Risk == types.ExpirationRiskHigh || exp.Risk == types.ExpirationRiskMedium) {
		warnings = append(warnings, fmt.Sprintf(
			"%s: contract ends in %s, a %s-risk month to shop for a replacement",
			WarningExpiration, exp.ExpirationMonth, exp.Risk))
	}

	return warnings
}
