// Package payment implementa el cobro de tarifas de ubicación, de paquetes y
// el cobro combinado a través de una pasarela con página hospedada.
package payment

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

// Repos repositorios que participan en el cierre de un pago.
type Repos struct {
	Payments      repository.PaymentRepository
	Profiles      repository.ProfileRepository
	Reviews       repository.LocationVerificationRepository
	Subscriptions repository.SubscriptionRepository
	Packages      repository.SubscriptionPackageRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con repos atados a ella.
// Garantiza que transacción, ubicaciones, revisiones y suscripción cambien juntas.
type TxRunner interface {
	RunPayment(ctx context.Context, fn func(repos Repos) error) error
}
