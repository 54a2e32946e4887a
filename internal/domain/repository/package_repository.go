package repository

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// SubscriptionPackageRepository persistencia de paquetes de suscripción.
type SubscriptionPackageRepository interface {
	Create(ctx context.Context, pkg *entity.SubscriptionPackage) error
	GetByID(ctx context.Context, id string) (*entity.SubscriptionPackage, error)
	Update(ctx context.Context, pkg *entity.SubscriptionPackage) error
	List(ctx context.Context, activeOnly bool) ([]*entity.SubscriptionPackage, error)
	Delete(ctx context.Context, id string) error
	IncrementSubscribers(ctx context.Context, id string) error
}
