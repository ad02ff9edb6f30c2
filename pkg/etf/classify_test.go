package etf

import (
	"testing"

	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestClassifyStructuredDetails(t *testing.T) {
	t.Run("per-month rate", func(t *testing.T) {
		p := types.Plan{
			TermMonths:          24,
			EarlyTerminationFee: fptr(240),
			ETFDetails: &types.ETFDetails{
				Structure:  types.ETFStructurePerMonth,
				BaseAmount: fptr(20),
				Source:     types.ETFSourceEFL,
			},
		}
		c := Classify(p)
		assert.Equal(t, types.ETFStructurePerMonth, c.Structure)
		assert.Equal(t, 20.0, c.MonthlyRate)
		assert.Equal(t, types.ETFSourceEFL, c.Source)
		assert.Equal(t, 360.0, c.TotalFee(18))
		assert.Equal(t, 0.0, c.TotalFee(0))
	})

	t.Run("flat", func(t *testing.T) {
		p := types.Plan{
			TermMonths: 12,
			ETFDetails: &types.ETFDetails{
				Structure:  types.ETFStructureFlat,
				BaseAmount: fptr(150),
				Source:     types.ETFSourceEFL,
			},
		}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureFlat, c.Structure)
		assert.Equal(t, 150.0, c.Amount)
		assert.Equal(t, 150.0, c.TotalFee(11))
	})

	t.Run("none and unknown need no amount", func(t *testing.T) {
		for _, s := range []types.ETFStructure{types.ETFStructureNone, types.ETFStructureUnknown} {
			p := types.Plan{
				TermMonths: 12,
				ETFDetails: &types.ETFDetails{Structure: s, Source: types.ETFSourceEFL},
			}
			c := Classify(p)
			assert.Equal(t, s, c.Structure)
			assert.Equal(t, 0.0, c.TotalFee(6))
		}
	})

	t.Run("missing amount falls back to heuristics", func(t *testing.T) {
		p := types.Plan{
			TermMonths:          24,
			EarlyTerminationFee: fptr(295),
			ETFDetails:          &types.ETFDetails{Structure: types.ETFStructureFlat, Source: types.ETFSourceEFL},
		}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureFlat, c.Structure)
		assert.Equal(t, 295.0, c.Amount)
		assert.Equal(t, types.ETFSourceLegacy, c.Source)
	})
}

func TestClassifyNoFeeText(t *testing.T) {
	t.Run("explicit no fee", func(t *testing.T) {
		p := types.Plan{
			TermMonths:          12,
			EarlyTerminationFee: fptr(150),
			SpecialTerms:        "No early termination fee for this plan.",
		}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureNone, c.Structure)
		assert.False(t, c.Conditional)
		assert.Equal(t, types.ETFSourceTextParsing, c.Source)
	})

	t.Run("conditional waiver", func(t *testing.T) {
		p := types.Plan{
			TermMonths:          12,
			EarlyTerminationFee: fptr(150),
			FeesCredits:         "Termination fee is waived if you move outside the service area.",
		}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureNone, c.Structure)
		assert.True(t, c.Conditional)
	})
}

func TestClassifyPerMonthText(t *testing.T) {
	cases := map[string]string{
		"per month remaining": "Early termination fee: $20 per month remaining in the contract.",
		"each month left":     "Cancellation fee of $15 for each month left.",
		"multiplied by":       "ETF is $10 multiplied by the number of months remaining.",
		"reversed order":      "Fee equals months remaining times $25.",
	}
	want := map[string]float64{
		"per month remaining": 20, "each month left": 15,
		"multiplied by": 10, "reversed order": 25,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			p := types.Plan{TermMonths: 24, EarlyTerminationFee: fptr(240), SpecialTerms: text}
			c := Classify(p)
			assert.Equal(t, types.ETFStructurePerMonth, c.Structure)
			assert.Equal(t, want[name], c.MonthlyRate)
			assert.Equal(t, types.ETFSourceTextParsing, c.Source)
		})
	}

	t.Run("plain per-month base charge is not a termination fee", func(t *testing.T) {
		p := types.Plan{
			TermMonths:          12,
			EarlyTerminationFee: fptr(150),
			FeesCredits:         "This plan has a base charge of $9.95 per month.",
		}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureFlat, c.Structure)
		assert.Equal(t, 150.0, c.Amount)
		assert.Equal(t, 150.0, c.TotalFee(6))
	})

	t.Run("base charge does not shadow a real per-month fee", func(t *testing.T) {
		p := types.Plan{
			TermMonths:          24,
			EarlyTerminationFee: fptr(240),
			FeesCredits:         "Base charge of $4.95 per month. Early termination fee: $20 per month remaining.",
		}
		c := Classify(p)
		assert.Equal(t, types.ETFStructurePerMonth, c.Structure)
		assert.Equal(t, 20.0, c.MonthlyRate)
	})
}

func TestClassifyMissingFee(t *testing.T) {
	t.Run("fee applies but amount undisclosed", func(t *testing.T) {
		p := types.Plan{TermMonths: 12, SpecialTerms: "An early termination fee applies, see EFL."}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureUnknown, c.Structure)
		assert.Equal(t, types.ETFSourceTextParsing, c.Source)
	})

	t.Run("multi-month term with silent terms", func(t *testing.T) {
		p := types.Plan{TermMonths: 12}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureUnknown, c.Structure)
		assert.Equal(t, types.ETFSourceLegacy, c.Source)
	})

	t.Run("month-to-month with no fee", func(t *testing.T) {
		p := types.Plan{TermMonths: 1}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureNone, c.Structure)
	})

	t.Run("zero fee treated as absent", func(t *testing.T) {
		p := types.Plan{TermMonths: 6, EarlyTerminationFee: fptr(0)}
		assert.Equal(t, types.ETFStructureUnknown, Classify(p).Structure)
	})
}

func TestClassifyRawFee(t *testing.T) {
	t.Run("prepaid small fee stays flat", func(t *testing.T) {
		p := types.Plan{TermMonths: 12, IsPrepaid: true, EarlyTerminationFee: fptr(49)}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureFlat, c.Structure)
		assert.Equal(t, 49.0, c.Amount)
		assert.Equal(t, 49.0, c.TotalFee(10))
	})

	t.Run("small fee on long term is ambiguous", func(t *testing.T) {
		p := types.Plan{TermMonths: 24, EarlyTerminationFee: fptr(15)}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureUnknown, c.Structure)
		assert.Equal(t, 0.0, c.TotalFee(20))
	})

	t.Run("small fee on short term stays flat", func(t *testing.T) {
		p := types.Plan{TermMonths: 6, EarlyTerminationFee: fptr(45)}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureFlat, c.Structure)
		assert.Equal(t, 45.0, c.Amount)
	})

	t.Run("large fee is flat", func(t *testing.T) {
		p := types.Plan{TermMonths: 36, EarlyTerminationFee: fptr(395)}
		c := Classify(p)
		assert.Equal(t, types.ETFStructureFlat, c.Structure)
		assert.Equal(t, 395.0, c.Amount)
	})
}
