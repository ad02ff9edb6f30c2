// Package usage expands a single average-usage figure into a 12-month
// seasonal consumption profile.
package usage

import (
	"math"
	"strings"

	"github.com/kilowatch/kilowatch/pkg/types"
)

// seasonalMultipliers models Texas residential consumption seasonality:
// mild shoulder months, heating bumps in winter, and heavy A/C load peaking
// in August. Index 0 = January.
var seasonalMultipliers = [types.MonthsPerYear]float64{
	1.15, // Jan
	1.05, // Feb
	0.95, // Mar
	0.95, // Apr
	1.00, // May
	1.40, // Jun
	1.70, // Jul
	1.80, // Aug
	1.45, // Sep
	1.00, // Oct
	0.95, // Nov
	1.10, // Dec
}

// homeSizeDefaults maps a coarse home-size category to a default average
// monthly usage in kWh.
var homeSizeDefaults = map[string]float64{
	"studio": 600,
	"1br":    750,
	"2br":    1000,
	"3br":    1500,
	"4br":    2000,
	"large":  2500,
}

// defaultAvgKWH is used for unrecognized home-size categories.
const defaultAvgKWH = 1000

// Estimate expands an average monthly usage into a seasonal 12-month
// profile. Multipliers are normalized so the profile sums to 12x the
// average; any drift from per-month rounding is folded into the single
// highest-usage month so the displayed annual total is always exact.
func Estimate(avgMonthlyKWH float64) types.UsageProfile {
	var multSum float64
	for _, m := range seasonalMultipliers {
		multSum += m
	}
	adjustment := types.MonthsPerYear / multSum

	var profile types.UsageProfile
	var total float64
	peak := 0
	for i, m := range seasonalMultipliers {
		profile[i] = math.Round(avgMonthlyKWH * m * adjustment)
		total += profile[i]
		if profile[i] > profile[peak] {
			peak = i
		}
	}

	if drift := math.Round(avgMonthlyKWH*types.MonthsPerYear) - total; drift != 0 {
		profile[peak] += drift
	}
	return profile
}

// ForHomeSize returns the default average monthly usage for a home-size
// category such as "studio" or "2br". Unknown categories get a typical
// single-family default.
func ForHomeSize(category string) float64 {
	if avg, ok := homeSizeDefaults[strings.ToLower(strings.TrimSpace(category))]; ok {
		return avg
	}
	return defaultAvgKWH
}
