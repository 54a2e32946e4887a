package repository

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// PaymentRepository persistencia de transacciones de pago (DIP).
type PaymentRepository interface {
	Create(ctx context.Context, tx *entity.PaymentTransaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.PaymentTransaction, error)
	// FindPending devuelve la transacción pendiente más reciente de la organización para kind, si existe.
	FindPending(ctx context.Context, organizationID, kind string) (*entity.PaymentTransaction, error)
	Update(ctx context.Context, tx *entity.PaymentTransaction) error
	ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]*entity.PaymentTransaction, error)
}

// SubscriptionRepository suscripciones activadas por pagos verificados.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.OrganizationSubscription) error
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.OrganizationSubscription, error)
	GetActive(ctx context.Context, organizationID string) (*entity.OrganizationSubscription, error)
}
