package ports

import (
	"context"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// FeeLookup resuelve la tarifa de verificación de una dirección.
// ok=false indica que la región no tiene tarifa publicada.
type FeeLookup interface {
	LookupFee(ctx context.Context, addr entity.Address) (fee decimal.Decimal, ok bool, err error)
}

// GatewayInit datos para abrir una sesión de pago hospedada.
type GatewayInit struct {
	Reference   string
	Amount      decimal.Decimal
	Currency    string
	Email       string
	Name        string
	Phone       string
	Description string
	Metadata    map[string]string
}

// GatewaySession sesión abierta en la pasarela.
type GatewaySession struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// GatewayVerdict resultado de la verificación; la app confía en él sin validar firmas.
type GatewayVerdict struct {
	Reference string
	Success   bool
	Amount    decimal.Decimal
	Message   string
	PaidAt    *time.Time
}

// PaymentGateway puerto de salida hacia la pasarela de pago.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type PaymentGateway interface {
	Initialize(ctx context.Context, in GatewayInit) (*GatewaySession, error)
	Verify(ctx context.Context, reference string) (*GatewayVerdict, error)
}

// Notification aviso al contacto de la organización.
type Notification struct {
	To      string
	Subject string
	Body    string
}

// Notifier envía avisos (correo o log).
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Locker exclusión mutua entre peticiones concurrentes sobre una misma clave.
// acquired=false significa que otra petición tiene el lock.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

// ReceiptRenderer genera el comprobante PDF de una transacción.
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, tx *entity.PaymentTransaction) ([]byte, error)
}

// Metrics registro de resultados de negocio.
type Metrics interface {
	ObservePayment(kind, outcome string, amount decimal.Decimal)
	ObserveReview(kind, outcome string)
}

// NopMetrics descarta las observaciones.
type NopMetrics struct{}

func (NopMetrics) ObservePayment(string, string, decimal.Decimal) {}
func (NopMetrics) ObserveReview(string, string)                   {}
