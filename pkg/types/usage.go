package types

import "fmt"

// MonthsPerYear is the length every usage profile must have.
const MonthsPerYear = 12

// UsageProfile is the expected kWh consumption for each calendar month,
// index 0 = January. Profiles are produced per calculation request and not
// retained beyond a ranking pass.
type UsageProfile [MonthsPerYear]float64

// NewUsageProfile validates and converts a raw slice into a UsageProfile.
// The slice must have exactly 12 non-negative entries; anything else is an
// input-shape error that fails loudly rather than being padded or truncated.
func NewUsageProfile(months []float64) (UsageProfile, error) {
	var p UsageProfile
	if len(months) != MonthsPerYear {
		return p, fmt.Errorf("usage profile must have exactly %d months, got %d", MonthsPerYear, len(months))
	}
	for i, m := range months {
		if m < 0 {
			return p, fmt.Errorf("usage profile month %d is negative: %v", i+1, m)
		}
		p[i] = m
	}
	return p, nil
}

// Total returns the annual kWh of the profile.
func (p UsageProfile) Total() float64 {
	var sum float64
	for _, m := range p {
		sum += m
	}
	return sum
}
