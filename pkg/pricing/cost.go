package pricing

import (
	"fmt"

	"github.com/kilowatch/kilowatch/pkg/types"
)

// Monthly computes one month's bill for a plan at the given usage.
//
// The TDU delivery component is reported in the breakdown for display but is
// NOT added to the total: per EFL disclosure rules the benchmark per-kWh
// prices already include delivery charges, and adding tduCost again would
// double-count them.
func Monthly(usageKWH float64, p types.Plan, tdu types.TDURates, localTaxRate float64) types.MonthlyCost {
	energy := usageKWH * RateAt(usageKWH, p) / 100
	tduCost := tdu.MonthlyBaseCharge + usageKWH*tdu.PerKWHRate/100
	base := p.BaseChargeMonthly

	subtotal := energy + base
	credit := CreditAmount(usageKWH, p)
	tax := (subtotal - credit) * localTaxRate

	total := subtotal - credit + tax
	if total < 0 {
		total = 0
	}

	mc := types.MonthlyCost{
		UsageKWH:   usageKWH,
		EnergyCost: energy,
		TDUCost:    tduCost,
		BaseCharge: base,
		Credit:     credit,
		Tax:        tax,
		Total:      total,
	}
	if usageKWH > 0 {
		mc.EffectiveRateCents = total / usageKWH * 100
	}
	return mc
}

// Annual computes the 12-month cost of a plan for a usage sequence. The
// sequence must have exactly 12 entries; anything else is an input-shape
// error, since silently truncating or padding would corrupt the annual total.
func Annual(usage []float64, p types.Plan, tdu types.TDURates, localTaxRate float64) (types.AnnualCost, error) {
	profile, err := types.NewUsageProfile(usage)
	if err != nil {
		return types.AnnualCost{}, fmt.Errorf("annual cost: %w", err)
	}
	return AnnualForProfile(profile, p, tdu, localTaxRate), nil
}

// AnnualForProfile is Annual for an already-validated profile.
func AnnualForProfile(profile types.UsageProfile, p types.Plan, tdu types.TDURates, localTaxRate float64) types.AnnualCost {
	ac := types.AnnualCost{
		Monthly: make([]types.MonthlyCost, 0, types.MonthsPerYear),
	}
	for _, usageKWH := range profile {
		mc := Monthly(usageKWH, p, tdu, localTaxRate)
		ac.Monthly = append(ac.Monthly, mc)
		ac.Total += mc.Total
		ac.TotalUsageKWH += usageKWH
	}
	ac.AverageMonthly = ac.Total / types.MonthsPerYear
	if ac.TotalUsageKWH > 0 {
		ac.EffectiveRateCents = ac.Total / ac.TotalUsageKWH * 100
	}
	return ac
}
