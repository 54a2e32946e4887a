// Package fees resuelve la tarifa de verificación de una dirección, ya sea
// desde la tabla region_fees o desde el directorio de ubicaciones del backend.
package fees

import (
	"context"
	"strings"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

var (
	_ ports.FeeLookup = (*TableLookup)(nil)
	_ ports.FeeLookup = (*DirectoryLookup)(nil)
)

// TableLookup tarifa exacta de la tabla region_fees.
type TableLookup struct {
	repo repository.RegionFeeRepository
}

func NewTableLookup(repo repository.RegionFeeRepository) *TableLookup {
	return &TableLookup{repo: repo}
}

func (l *TableLookup) LookupFee(ctx context.Context, addr entity.Address) (decimal.Decimal, bool, error) {
	if strings.TrimSpace(addr.CityRegion) == "" {
		return decimal.Zero, false, nil
	}
	f, err := l.repo.Find(ctx, addr.Country, addr.State, addr.LGA, addr.City, addr.CityRegion)
	if err != nil {
		return decimal.Zero, false, domain.Wrap(err, "find region fee")
	}
	if f == nil {
		return decimal.Zero, false, nil
	}
	return f.Fee, true, nil
}

// DirectoryLookup busca la región de la ciudad en el directorio del backend.
type DirectoryLookup struct {
	dir ports.LocationDirectory
}

func NewDirectoryLookup(dir ports.LocationDirectory) *DirectoryLookup {
	return &DirectoryLookup{dir: dir}
}

func (l *DirectoryLookup) LookupFee(ctx context.Context, addr entity.Address) (decimal.Decimal, bool, error) {
	if strings.TrimSpace(addr.CityRegion) == "" || strings.TrimSpace(addr.City) == "" {
		return decimal.Zero, false, nil
	}
	regions, err := l.dir.CityRegions(ctx, addr.Country, addr.State, addr.LGA, addr.City)
	if err != nil {
		return decimal.Zero, false, err
	}
	for _, r := range regions {
		// Una región sin tarifa positiva no cuenta como resuelta.
		if equalFold(r.Name, addr.CityRegion) && r.Fee > 0 {
			return decimal.NewFromFloat(r.Fee).Round(2), true, nil
		}
	}
	return decimal.Zero, false, nil
}

func equalFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}
