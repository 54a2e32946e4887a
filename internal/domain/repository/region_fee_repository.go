package repository

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// RegionFeeRepository tabla de tarifas por región de ciudad.
type RegionFeeRepository interface {
	// Find busca la tarifa exacta; la comparación de nombres no distingue mayúsculas.
	Find(ctx context.Context, country, state, lga, city, cityRegion string) (*entity.RegionFee, error)
	ListByCity(ctx context.Context, country, state, lga, city string) ([]*entity.RegionFee, error)
}
