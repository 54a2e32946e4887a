package repository

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// CategoryRepository persistencia de categorías de negocio.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}

// IndustryRepository persistencia de industrias.
type IndustryRepository interface {
	Create(ctx context.Context, i *entity.Industry) error
	GetByID(ctx context.Context, id string) (*entity.Industry, error)
	Update(ctx context.Context, i *entity.Industry) error
	List(ctx context.Context) ([]*entity.Industry, error)
	Delete(ctx context.Context, id string) error
}

// CommissionRepository persistencia de comisiones.
type CommissionRepository interface {
	Create(ctx context.Context, c *entity.Commission) error
	GetByID(ctx context.Context, id string) (*entity.Commission, error)
	Update(ctx context.Context, c *entity.Commission) error
	List(ctx context.Context) ([]*entity.Commission, error)
	Delete(ctx context.Context, id string) error
}

// PickupCenterRepository persistencia de centros de recogida.
type PickupCenterRepository interface {
	Create(ctx context.Context, p *entity.PickupCenter) error
	GetByID(ctx context.Context, id string) (*entity.PickupCenter, error)
	Update(ctx context.Context, p *entity.PickupCenter) error
	List(ctx context.Context) ([]*entity.PickupCenter, error)
	Delete(ctx context.Context, id string) error
}

// OneTimeCodeRepository persistencia de códigos de un solo uso.
type OneTimeCodeRepository interface {
	Create(ctx context.Context, c *entity.OneTimeCode) error
	GetByCode(ctx context.Context, code string) (*entity.OneTimeCode, error)
	// List devuelve los códigos más recientes primero.
	List(ctx context.Context, createdBy string) ([]*entity.OneTimeCode, error)
	Delete(ctx context.Context, id string) error
}
