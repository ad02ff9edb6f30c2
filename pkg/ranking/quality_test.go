package ranking

import (
	"testing"

	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestQualityAutomaticZero(t *testing.T) {
	base := types.RankedPlan{Plan: fixedPlan(13, 12.5, 12.2), AnnualCost: 1500}

	t.Run("variable", func(t *testing.T) {
		rp := base
		rp.RateType = types.RateTypeVariable
		score, b := Quality(rp, 1500, false)
		assert.Equal(t, 0, score)
		assert.NotEmpty(t, b.Reason)
	})

	t.Run("prepaid", func(t *testing.T) {
		rp := base
		rp.IsPrepaid = true
		score, b := Quality(rp, 1500, false)
		assert.Equal(t, 0, score)
		assert.NotEmpty(t, b.Reason)
	})

	t.Run("time of use", func(t *testing.T) {
		rp := base
		rp.IsTOU = true
		score, b := Quality(rp, 1500, false)
		assert.Equal(t, 0, score)
		assert.NotEmpty(t, b.Reason)
	})
}

func TestQualityPenalties(t *testing.T) {
	t.Run("best plan with no blemishes", func(t *testing.T) {
		rp := types.RankedPlan{Plan: fixedPlan(13, 12.5, 12.2), AnnualCost: 1500}
		score, b := Quality(rp, 1500, false)
		assert.Equal(t, 100, score)
		assert.Empty(t, b.Reason)
	})

	t.Run("cost penalty capped at 40", func(t *testing.T) {
		rp := types.RankedPlan{Plan: fixedPlan(13, 12.5, 12.2), AnnualCost: 3000}
		score, b := Quality(rp, 1500, false)
		assert.Equal(t, 40, b.CostPenalty)
		assert.Equal(t, 60, score)
	})

	t.Run("ten percent over best", func(t *testing.T) {
		rp := types.RankedPlan{Plan: fixedPlan(13, 12.5, 12.2), AnnualCost: 1650}
		score, b := Quality(rp, 1500, false)
		assert.Equal(t, 10, b.CostPenalty)
		assert.Equal(t, 90, score)
	})

	t.Run("volatility penalty", func(t *testing.T) {
		rp := types.RankedPlan{Plan: fixedPlan(13, 12.5, 12.2), AnnualCost: 1500, Volatility: 0.8}
		score, b := Quality(rp, 1500, false)
		assert.Equal(t, 20, b.VolatilityPenalty)
		assert.Equal(t, 80, score)
	})

	t.Run("warning penalty skips non-fixed marker", func(t *testing.T) {
		rp := types.RankedPlan{
			Plan:       fixedPlan(13, 12.5, 12.2),
			AnnualCost: 1500,
			Warnings: []string{
				WarningNonFixed + ": variable pricing can change between bills",
				WarningCreditMiss + ": projected usage misses the bill-credit tier in 4 of 12 months",
				WarningHighETF + ": canceling midway through the term costs $240",
			},
		}
		_, b := Quality(rp, 1500, false)
		assert.Equal(t, 10, b.WarningPenalty)
	})

	t.Run("base charge penalty", func(t *testing.T) {
		rp := types.RankedPlan{Plan: fixedPlan(13, 12.5, 12.2), AnnualCost: 1500}
		rp.BaseChargeMonthly = 24
		_, b := Quality(rp, 1500, false)
		assert.Equal(t, 3, b.BaseChargePenalty)

		rp.BaseChargeMonthly = 95
		_, b = Quality(rp, 1500, false)
		assert.Equal(t, 5, b.BaseChargePenalty)

		rp.BaseChargeMonthly = 9.95
		_, b = Quality(rp, 1500, false)
		assert.Equal(t, 0, b.BaseChargePenalty)
	})

	t.Run("expiration penalty needs a start date", func(t *testing.T) {
		rp := types.RankedPlan{
			Plan:       fixedPlan(13, 12.5, 12.2),
			AnnualCost: 1500,
			Expiration: &types.ExpirationAnalysis{Risk: types.ExpirationRiskHigh},
		}
		_, b := Quality(rp, 1500, true)
		assert.Equal(t, 30, b.ExpirationPenalty)

		_, b = Quality(rp, 1500, false)
		assert.Equal(t, 0, b.ExpirationPenalty)

		rp.Expiration.Risk = types.ExpirationRiskMedium
		_, b = Quality(rp, 1500, true)
		assert.Equal(t, 15, b.ExpirationPenalty)
	})

	t.Run("floor at zero", func(t *testing.T) {
		rp := types.RankedPlan{
			Plan:       fixedPlan(13, 12.5, 12.2),
			AnnualCost: 4500,
			Volatility: 1.0,
			Warnings:   []string{"a", "b", "c", "d", "e", "f"},
			Expiration: &types.ExpirationAnalysis{Risk: types.ExpirationRiskHigh},
		}
		rp.BaseChargeMonthly = 95
		score, _ := Quality(rp, 1500, true)
		assert.Equal(t, 0, score)
	})
}
