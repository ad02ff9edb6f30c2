package storage

import (
	"context"
	"testing"
	"time"

	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProviderCatalogue(t *testing.T) {
	ctx := context.Background()
	f := NewFileProvider(t.TempDir())
	require.NoError(t, f.Validate())

	t.Run("empty returns not found", func(t *testing.T) {
		_, err := f.GetCatalogue(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		fetched := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
		in := Catalogue{
			FetchedAt: fetched,
			Plans: []types.Plan{{
				PlanID:       "rep-1-plan-12",
				RepName:      "Test Energy",
				TDUArea:      "ONCOR",
				RateType:     types.RateTypeFixed,
				TermMonths:   12,
				PriceKWH500:  13.0,
				PriceKWH1000: 10.0,
				PriceKWH2000: 9.5,
			}},
		}
		require.NoError(t, f.SetCatalogue(ctx, in))

		out, err := f.GetCatalogue(ctx)
		require.NoError(t, err)
		assert.True(t, out.FetchedAt.Equal(fetched))
		require.Len(t, out.Plans, 1)
		assert.Equal(t, in.Plans[0], out.Plans[0])
	})

	t.Run("overwrite replaces", func(t *testing.T) {
		require.NoError(t, f.SetCatalogue(ctx, Catalogue{FetchedAt: time.Now().UTC()}))
		out, err := f.GetCatalogue(ctx)
		require.NoError(t, err)
		assert.Empty(t, out.Plans)
	})
}

func TestFileProviderTDURates(t *testing.T) {
	ctx := context.Background()
	f := NewFileProvider(t.TempDir())

	_, err := f.GetTDURates(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	in := map[string]types.TDURates{
		"ONCOR": {Code: "ONCOR", Name: "Oncor Electric Delivery", MonthlyBaseCharge: 4.23, PerKWHRate: 5.5833},
	}
	require.NoError(t, f.SetTDURates(ctx, in))

	out, err := f.GetTDURates(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileProviderValidate(t *testing.T) {
	f := &FileProvider{}
	assert.Error(t, f.Validate())
}
