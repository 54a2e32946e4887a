package pricing_test

import (
	"testing"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func location(id string, fee int64, status string) entity.LocationData {
	return entity.LocationData{
		ID:            id,
		LocationType:  entity.LocationBranch,
		Address:       entity.Address{City: "Ikeja", CityRegion: "Allen"},
		CityRegionFee: decimal.NewFromInt(fee),
		FeeResolved:   true,
		PaymentStatus: status,
	}
}

func TestLocationBreakdown_SoloNoPagadas(t *testing.T) {
	locs := []entity.LocationData{
		location("a", 5000, entity.LocationUnpaid),
		location("b", 7000, entity.LocationPaid),
		location("c", 2500, entity.LocationUnpaid),
	}

	b, err := pricing.LocationBreakdown(locs)
	require.NoError(t, err)
	require.Len(t, b.Locations, 2)
	assert.Equal(t, "a", b.Locations[0].LocationID)
	assert.Equal(t, "c", b.Locations[1].LocationID)
	assert.True(t, decimal.NewFromInt(7500).Equal(b.LocationTotal))
}

func TestLocationBreakdown_EsLecturaPura(t *testing.T) {
	locs := []entity.LocationData{location("a", 5000, entity.LocationUnpaid)}

	first, err := pricing.LocationBreakdown(locs)
	require.NoError(t, err)
	second, err := pricing.LocationBreakdown(locs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, entity.LocationUnpaid, locs[0].PaymentStatus)
}

func TestLocationBreakdown_TarifaNoResuelta(t *testing.T) {
	l := location("a", 0, entity.LocationUnpaid)
	l.FeeResolved = false

	_, err := pricing.LocationBreakdown([]entity.LocationData{l})
	assert.ErrorIs(t, err, pricing.ErrUnresolvedFee)
}

func TestPackagePrice_Promocion(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	pkg := &entity.SubscriptionPackage{
		Pricing: entity.PackagePricing{
			Monthly:   decimal.NewFromInt(10000),
			Quarterly: decimal.NewFromInt(27000),
			Yearly:    decimal.NewFromInt(100000),
		},
		DiscountPercentage: decimal.NewFromInt(10),
		PromoStartDate:     &start,
		PromoEndDate:       &end,
	}

	inside, err := pricing.PackagePrice(pkg, entity.DurationMonthly, start.Add(48*time.Hour))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9000).Equal(inside), "got %s", inside)

	outside, err := pricing.PackagePrice(pkg, entity.DurationQuarterly, end.Add(48*time.Hour))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(27000).Equal(outside), "got %s", outside)

	_, err = pricing.PackagePrice(pkg, "weekly", start)
	assert.ErrorIs(t, err, pricing.ErrUnknownDuration)
}

func TestCombined_Total(t *testing.T) {
	pkg := &entity.SubscriptionPackage{Pricing: entity.PackagePricing{Yearly: decimal.NewFromInt(100000)}}
	locs := []entity.LocationData{location("a", 5000, entity.LocationUnpaid)}

	b, err := pricing.Combined(pkg, entity.DurationYearly, locs, time.Now())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100000).Equal(b.PackageAmount))
	assert.True(t, decimal.NewFromInt(105000).Equal(pricing.Total(b)))
}
