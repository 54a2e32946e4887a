package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var _ repository.RegionFeeRepository = (*RegionFeeRepo)(nil)

// RegionFeeRepo tabla de tarifas por región; los nombres se comparan sin distinguir mayúsculas.
type RegionFeeRepo struct{ q Querier }

func NewRegionFeeRepository(q Querier) *RegionFeeRepo { return &RegionFeeRepo{q: q} }

const regionFeeColumns = `id, country, state, lga, city, city_region, fee`

func (r *RegionFeeRepo) Find(ctx context.Context, country, state, lga, city, cityRegion string) (*entity.RegionFee, error) {
	var f entity.RegionFee
	err := r.q.QueryRow(ctx, `
		SELECT `+regionFeeColumns+` FROM region_fees
		WHERE lower(country) = lower($1) AND lower(state) = lower($2) AND lower(lga) = lower($3)
		  AND lower(city) = lower($4) AND lower(city_region) = lower($5)`,
		trim(country), trim(state), trim(lga), trim(city), trim(cityRegion)).
		Scan(&f.ID, &f.Country, &f.State, &f.LGA, &f.City, &f.CityRegion, &f.Fee)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find region fee: %w", err)
	}
	return &f, nil
}

func (r *RegionFeeRepo) ListByCity(ctx context.Context, country, state, lga, city string) ([]*entity.RegionFee, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+regionFeeColumns+` FROM region_fees
		WHERE lower(country) = lower($1) AND lower(state) = lower($2) AND lower(lga) = lower($3) AND lower(city) = lower($4)
		ORDER BY city_region`, trim(country), trim(state), trim(lga), trim(city))
	if err != nil {
		return nil, fmt.Errorf("list region fees: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.RegionFee, error) {
		var f entity.RegionFee
		err := row.Scan(&f.ID, &f.Country, &f.State, &f.LGA, &f.City, &f.CityRegion, &f.Fee)
		return &f, err
	})
}

func trim(s string) string { return strings.TrimSpace(s) }
