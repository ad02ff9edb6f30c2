package catalog

import (
	"testing"

	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogPlan(id, name, language string) types.Plan {
	fee := 150.0
	return types.Plan{
		PlanID:              id,
		PlanName:            name,
		RepName:             "Gexa Energy",
		TDUArea:             "ONCOR",
		RateType:            types.RateTypeFixed,
		TermMonths:          12,
		PriceKWH500:         13.0,
		PriceKWH1000:        10.0,
		PriceKWH2000:        9.5,
		EarlyTerminationFee: &fee,
		RenewablePct:        20,
		Language:            language,
	}
}

func TestDeduplicate(t *testing.T) {
	t.Run("english version survives", func(t *testing.T) {
		spanish := catalogPlan("2", "Plan de Ahorro 12", "Spanish")
		english := catalogPlan("1", "Saver 12", "English")

		out := Deduplicate([]types.Plan{spanish, english})
		require.Len(t, out, 1)
		assert.Equal(t, "Saver 12", out[0].PlanName)
	})

	t.Run("different pricing is not a duplicate", func(t *testing.T) {
		a := catalogPlan("1", "Saver 12", "English")
		b := catalogPlan("2", "Saver 12 Plus", "English")
		b.PriceKWH1000 = 10.5

		out := Deduplicate([]types.Plan{a, b})
		assert.Len(t, out, 2)
	})

	t.Run("different term is not a duplicate", func(t *testing.T) {
		a := catalogPlan("1", "Saver 12", "English")
		b := catalogPlan("2", "Saver 24", "English")
		b.TermMonths = 24

		out := Deduplicate([]types.Plan{a, b})
		assert.Len(t, out, 2)
	})

	t.Run("order of first appearance preserved", func(t *testing.T) {
		a := catalogPlan("1", "Saver 12", "English")
		b := catalogPlan("2", "Other 24", "English")
		b.TermMonths = 24
		c := catalogPlan("3", "Plan de Ahorro 12", "Spanish")

		out := Deduplicate([]types.Plan{a, b, c})
		require.Len(t, out, 2)
		assert.Equal(t, "Saver 12", out[0].PlanName)
		assert.Equal(t, "Other 24", out[1].PlanName)
	})

	t.Run("shorter name preferred when language ties", func(t *testing.T) {
		long := catalogPlan("1", "Gexa Saver Deluxe Limited Time Special Offer Edition", "English")
		short := catalogPlan("2", "Saver 12", "English")

		out := Deduplicate([]types.Plan{long, short})
		require.Len(t, out, 1)
		assert.Equal(t, "Saver 12", out[0].PlanName)
	})
}

func TestFingerprintIgnoresNameAndID(t *testing.T) {
	a := catalogPlan("1", "Saver 12", "English")
	b := catalogPlan("999", "Totally Different Name", "Spanish")
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	c := catalogPlan("1", "Saver 12", "English")
	c.IsPrepaid = true
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}
