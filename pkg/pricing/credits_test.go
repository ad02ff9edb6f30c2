package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditAmount(t *testing.T) {
	t.Run("range credit", func(t *testing.T) {
		p := benchmarkPlan(22.8, 7.9, 11.4)
		p.SpecialTerms = "$120 bill credit applied when usage is between 1000-1050 kWh"

		assert.Equal(t, 120.0, CreditAmount(1000, p))
		assert.Equal(t, 120.0, CreditAmount(1050, p))
		assert.Equal(t, 120.0, CreditAmount(1025, p))
		assert.Equal(t, 0.0, CreditAmount(999, p))
		assert.Equal(t, 0.0, CreditAmount(1051, p))
	})

	t.Run("exact credit is a single-point range", func(t *testing.T) {
		p := benchmarkPlan(21.4, 8.4, 10.9)
		p.SpecialTerms = "$100 bill credit when usage is exactly 1000 kWh"

		assert.Equal(t, 100.0, CreditAmount(1000, p))
		assert.Equal(t, 0.0, CreditAmount(1001, p))
	})

	t.Run("between A and B wording", func(t *testing.T) {
		p := benchmarkPlan(15, 10, 9)
		p.SpecialTerms = "Receive a $75 bill credit when monthly usage is between 800 and 1200 kWh."

		assert.Equal(t, 75.0, CreditAmount(900, p))
		assert.Equal(t, 0.0, CreditAmount(700, p))
	})

	t.Run("no terms", func(t *testing.T) {
		p := benchmarkPlan(15, 10, 9)
		assert.Equal(t, 0.0, CreditAmount(1000, p))
	})

	t.Run("amount without range is ignored", func(t *testing.T) {
		p := benchmarkPlan(15, 10, 9)
		p.SpecialTerms = "$50 bill credit may apply, see EFL for details"
		assert.Equal(t, 0.0, CreditAmount(1000, p))
	})

	t.Run("range without amount is ignored", func(t *testing.T) {
		p := benchmarkPlan(15, 10, 9)
		p.SpecialTerms = "discount applies between 500-1000 kWh"
		assert.Equal(t, 0.0, CreditAmount(750, p))
	})

	t.Run("fees_credits fallback", func(t *testing.T) {
		p := benchmarkPlan(15, 10, 9)
		p.FeesCredits = "$30 bill credit when usage is between 500-999 kWh"
		assert.Equal(t, 30.0, CreditAmount(600, p))
		assert.Equal(t, 0.0, CreditAmount(1200, p))
	})

	t.Run("parsed special terms shadow fees_credits", func(t *testing.T) {
		p := benchmarkPlan(15, 10, 9)
		p.SpecialTerms = "$100 bill credit when usage is exactly 2000 kWh"
		p.FeesCredits = "$30 bill credit when usage is between 500-999 kWh"
		// the special-terms tier was found and missed; we do not fall through
		assert.Equal(t, 0.0, CreditAmount(600, p))
	})
}
