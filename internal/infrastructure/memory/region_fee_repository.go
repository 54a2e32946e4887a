package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
	"golang.org/x/text/cases"
)

var _ repository.RegionFeeRepository = (*RegionFeeRepo)(nil)

// RegionFeeRepo tabla de tarifas en memoria.
type RegionFeeRepo struct {
	mu   sync.RWMutex
	fees []entity.RegionFee
}

func NewRegionFeeRepository(seed ...entity.RegionFee) *RegionFeeRepo {
	return &RegionFeeRepo{fees: append([]entity.RegionFee(nil), seed...)}
}

// Add agrega o reemplaza una tarifa.
func (r *RegionFeeRepo) Add(f entity.RegionFee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.fees {
		if sameCity(e, f.Country, f.State, f.LGA, f.City) && equalFold(e.CityRegion, f.CityRegion) {
			r.fees[i] = f
			return
		}
	}
	r.fees = append(r.fees, f)
}

func (r *RegionFeeRepo) Find(_ context.Context, country, state, lga, city, cityRegion string) (*entity.RegionFee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.fees {
		if sameCity(f, country, state, lga, city) && equalFold(f.CityRegion, cityRegion) {
			out := f
			return &out, nil
		}
	}
	return nil, nil
}

func (r *RegionFeeRepo) ListByCity(_ context.Context, country, state, lga, city string) ([]*entity.RegionFee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.RegionFee, 0)
	for _, f := range r.fees {
		if sameCity(f, country, state, lga, city) {
			c := f
			out = append(out, &c)
		}
	}
	return out, nil
}

func sameCity(f entity.RegionFee, country, state, lga, city string) bool {
	return equalFold(f.Country, country) && equalFold(f.State, state) &&
		equalFold(f.LGA, lga) && equalFold(f.City, city)
}

// equalFold compara con case folding Unicode; un Caser no se comparte entre goroutines.
func equalFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}
