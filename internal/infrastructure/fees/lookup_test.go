package fees

import (
	"context"
	"errors"
	"testing"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lekki = entity.Address{Country: "Nigeria", State: "Lagos", LGA: "Eti-Osa", City: "Lekki", CityRegion: "Lekki Phase 1"}

func TestTableLookup(t *testing.T) {
	repo := memory.NewRegionFeeRepository(entity.RegionFee{
		Country: "nigeria", State: "LAGOS", LGA: "Eti-Osa", City: "Lekki", CityRegion: "lekki phase 1",
		Fee: decimal.NewFromInt(8500),
	})
	l := NewTableLookup(repo)

	fee, ok, err := l.LookupFee(context.Background(), lekki)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, fee.Equal(decimal.NewFromInt(8500)))

	other := lekki
	other.CityRegion = "Ajah"
	_, ok, err = l.LookupFee(context.Background(), other)
	require.NoError(t, err)
	assert.False(t, ok)

	other.CityRegion = ""
	_, ok, _ = l.LookupFee(context.Background(), other)
	assert.False(t, ok)
}

type dirStub struct {
	regions []ports.Region
	err     error
	calls   int
}

func (d *dirStub) Countries(context.Context) ([]string, error) {
	return nil, nil
}

func (d *dirStub) States(context.Context, string) ([]string, error) {
	return nil, nil
}

func (d *dirStub) LGAs(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func (d *dirStub) Cities(context.Context, string, string, string) ([]string, error) {
	return nil, nil
}

func (d *dirStub) CityRegions(context.Context, string, string, string, string) ([]ports.Region, error) {
	d.calls++
	return d.regions, d.err
}

func TestDirectoryLookup(t *testing.T) {
	dir := &dirStub{regions: []ports.Region{{Name: "LEKKI PHASE 1", Fee: 8500.5}, {Name: "Ajah", Fee: 0}}}
	l := NewDirectoryLookup(dir)

	fee, ok, err := l.LookupFee(context.Background(), lekki)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "8500.5", fee.String())

	ajah := lekki
	ajah.CityRegion = "Ajah"
	_, ok, err = l.LookupFee(context.Background(), ajah)
	require.NoError(t, err)
	assert.False(t, ok, "tarifa cero no se considera resuelta")

	noCity := lekki
	noCity.City = ""
	_, ok, _ = l.LookupFee(context.Background(), noCity)
	assert.False(t, ok)
	assert.Equal(t, 2, dir.calls)
}

func TestDirectoryLookup_PropagaError(t *testing.T) {
	l := NewDirectoryLookup(&dirStub{err: domain.Network(errors.New("dial"), "backend request failed")})
	_, _, err := l.LookupFee(context.Background(), lekki)
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}
