package payment

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// PackagePaymentService pago solo del paquete de suscripción.
type PackagePaymentService struct {
	core
}

// NewPackagePaymentService construye el servicio.
func NewPackagePaymentService(d Deps) *PackagePaymentService {
	return &PackagePaymentService{core: newCore(d, "package_payment")}
}

// InitializePackagePayment abre el cobro del paquete para la duración elegida.
func (s *PackagePaymentService) InitializePackagePayment(ctx context.Context, organizationID string, in dto.PackagePaymentRequest) (*dto.InitializePaymentResponse, error) {
	if err := validatePayer(in.Payer); err != nil {
		return nil, err
	}
	if !entity.ValidDuration(in.Duration) {
		return nil, domain.Validation("duration must be monthly, quarterly or yearly")
	}
	pkg, err := activePackage(ctx, s.Repos, in.PackageID)
	if err != nil {
		return nil, err
	}
	price, err := pricing.PackagePrice(pkg, in.Duration, s.now())
	if err != nil {
		return nil, pricingError(err)
	}

	release, err := s.lock(ctx, initLockKey(organizationID), "a payment is already being initialized")
	if err != nil {
		return nil, err
	}
	defer release()
	if err := s.guardPending(ctx, organizationID, packageKinds...); err != nil {
		return nil, err
	}

	b := entity.PaymentBreakdown{
		PackageAmount: price,
		LocationTotal: decimal.Zero,
		Locations:     []entity.LocationFee{},
	}
	tx := &entity.PaymentTransaction{
		OrganizationID: organizationID,
		Kind:           entity.PaymentKindPackage,
		Description:    "Subscription package " + pkg.Title + " (" + in.Duration + ")",
		Breakdown:      b,
		PackageID:      pkg.ID,
		Duration:       in.Duration,
		Payer:          entity.Payer{Email: in.Payer.Email, Name: in.Payer.Name, Phone: in.Payer.Phone},
	}
	return s.open(ctx, tx)
}

// VerifyPackagePayment confirma el pago y activa la suscripción.
func (s *PackagePaymentService) VerifyPackagePayment(ctx context.Context, organizationID string, in dto.VerifyPaymentRequest) (*dto.CombinedVerifyResponse, error) {
	v, err := s.verify(ctx, organizationID, in.TransactionID, entity.PaymentKindPackage)
	if err != nil {
		return nil, err
	}
	return &dto.CombinedVerifyResponse{
		TransactionID: v.tx.TransactionID,
		Status:        v.tx.Status,
		Message:       v.tx.GatewayMessage,
		Subscription:  subscriptionOutcome(v.subscription),
		Locations:     v.locations,
	}, nil
}
