package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownTiers(t *testing.T) {
	cases := []struct {
		tier     Tier
		monthly  int64
		annual   int64
		features int
	}{
		{Standard, 10000, 102000, 6},
		{Pro, 25000, 255000, 7},
		{Premium, 45000, 459000, 9},
	}
	for _, tc := range cases {
		t.Run(string(tc.tier), func(t *testing.T) {
			d, err := Lookup(tc.tier)
			require.NoError(t, err)
			assert.True(t, d.MonthlyPrice.Equal(decimal.NewFromInt(tc.monthly)))
			assert.True(t, d.AnnualPrice.Equal(decimal.NewFromInt(tc.annual)))
			assert.Len(t, d.Features, tc.features)
		})
	}
}

func TestLookup_UnknownTier(t *testing.T) {
	_, err := Lookup(Tier("gold"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTier))
}

func TestFailSoftAccessors_UnknownTier(t *testing.T) {
	p := PricingDetails(Tier("gold"))
	assert.True(t, p.MonthlyPrice.IsZero())
	assert.True(t, p.AnnualPrice.IsZero())

	d := TierDetailsOf(Tier("gold"))
	assert.Equal(t, "gold", d.Name)
	assert.Empty(t, d.Features)
	assert.True(t, d.AnnualPrice.IsZero())
}

func TestLookup_Idempotent(t *testing.T) {
	a := TierDetailsOf(Pro)
	b := TierDetailsOf(Pro)
	assert.Equal(t, a, b)
	assert.Equal(t, PricingDetails(Premium), PricingDetails(Premium))
}

func TestLookup_ReturnsCopies(t *testing.T) {
	d, err := Lookup(Standard)
	require.NoError(t, err)
	d.Features[0] = "mutated"

	again, err := Lookup(Standard)
	require.NoError(t, err)
	assert.Equal(t, "10-second advert duration", again.Features[0])
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("  Premium ")
	require.NoError(t, err)
	assert.Equal(t, Premium, tier)

	_, err = ParseTier("")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestAll_CatalogOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	assert.Equal(t, []Tier{Standard, Pro, Premium}, []Tier{all[0].Tier, all[1].Tier, all[2].Tier})
	assert.True(t, all[1].Highlighted)
}

func TestAnnualSavings(t *testing.T) {
	assert.True(t, PricingDetails(Standard).AnnualSavings().Equal(decimal.NewFromInt(18000)))
	assert.True(t, PricingDetails(Pro).AnnualSavings().Equal(decimal.NewFromInt(45000)))
	assert.True(t, PricingDetails(Tier("x")).AnnualSavings().IsZero())
}
