package payment

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/pricing"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/workflow"
)

// LocationPaymentService cobro de las tarifas de verificación de ubicaciones.
type LocationPaymentService struct {
	core
}

// NewLocationPaymentService construye el servicio.
func NewLocationPaymentService(d Deps) *LocationPaymentService {
	return &LocationPaymentService{core: newCore(d, "location_payment")}
}

// CheckPaymentRequired informa si quedan ubicaciones sin pagar.
func (s *LocationPaymentService) CheckPaymentRequired(ctx context.Context, organizationID string) (*dto.PaymentRequiredResponse, error) {
	locs, err := s.Repos.Profiles.ListLocations(ctx, organizationID)
	if err != nil {
		s.Log.Error().Err(err).Str("organization_id", organizationID).Msg("list locations")
		return nil, domain.Internal(err, "list locations")
	}
	unpaid := 0
	for _, l := range locs {
		if l.PaymentStatus != entity.LocationPaid {
			unpaid++
		}
	}
	return &dto.PaymentRequiredResponse{Required: unpaid > 0, UnpaidCount: unpaid, TotalCount: len(locs)}, nil
}

// GetPricing total y desglose de las ubicaciones no pagadas. No modifica estado.
func (s *LocationPaymentService) GetPricing(ctx context.Context, organizationID string) (*dto.PricingResponse, error) {
	b, err := s.breakdown(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	out := dto.FromBreakdown(b, s.Currency)
	return &out, nil
}

// InitializePayment abre la página de pago para las ubicaciones no pagadas.
// Debe llamarse antes de redirigir al usuario fuera del sitio.
func (s *LocationPaymentService) InitializePayment(ctx context.Context, organizationID string, payer dto.PayerRequest) (*dto.InitializePaymentResponse, error) {
	if err := validatePayer(payer); err != nil {
		return nil, err
	}
	profile, err := s.Repos.Profiles.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, domain.Internal(err, "load profile")
	}
	if profile == nil {
		return nil, domain.NotFound("organization profile not found")
	}
	if !workflow.LocationPaymentVisible(profile) {
		return nil, domain.Conflict("location payment requires a verified organization profile")
	}

	release, err := s.lock(ctx, initLockKey(organizationID), "a payment is already being initialized")
	if err != nil {
		return nil, err
	}
	defer release()
	if err := s.guardPending(ctx, organizationID, locationKinds...); err != nil {
		return nil, err
	}

	b, err := pricing.LocationBreakdown(profile.Locations)
	if err != nil {
		return nil, pricingError(err)
	}
	if len(b.Locations) == 0 {
		return nil, domain.Validation("no unpaid locations")
	}
	tx := &entity.PaymentTransaction{
		OrganizationID: organizationID,
		Kind:           entity.PaymentKindLocation,
		Description:    "Location verification fees",
		Breakdown:      b,
		Payer:          entity.Payer{Email: payer.Email, Name: payer.Name, Phone: payer.Phone},
	}
	return s.open(ctx, tx)
}

// VerifyPayment confirma el pago con la pasarela. En éxito las ubicaciones pagadas
// quedan en pending_verification con su registro de revisión.
func (s *LocationPaymentService) VerifyPayment(ctx context.Context, organizationID string, in dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	v, err := s.verify(ctx, organizationID, in.TransactionID, entity.PaymentKindLocation)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyPaymentResponse{
		TransactionID: v.tx.TransactionID,
		Status:        v.tx.Status,
		Message:       v.tx.GatewayMessage,
		Locations:     v.locations,
	}, nil
}

// GetPaymentHistory transacciones de la organización, más recientes primero.
func (s *LocationPaymentService) GetPaymentHistory(ctx context.Context, organizationID string, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	page.DefaultPage()
	list, err := s.Repos.Payments.ListByOrganization(ctx, organizationID, page.Limit, page.Offset)
	if err != nil {
		s.Log.Error().Err(err).Str("organization_id", organizationID).Msg("payment history")
		return nil, domain.Internal(err, "payment history")
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, dto.FromTransaction(tx))
	}
	return out, nil
}

// GetPaymentStatus vista de una transacción.
func (s *LocationPaymentService) GetPaymentStatus(ctx context.Context, organizationID, transactionID string) (*dto.TransactionResponse, error) {
	tx, err := s.transaction(ctx, organizationID, transactionID)
	if err != nil {
		return nil, err
	}
	out := dto.FromTransaction(tx)
	return &out, nil
}

func (s *LocationPaymentService) breakdown(ctx context.Context, organizationID string) (entity.PaymentBreakdown, error) {
	locs, err := s.Repos.Profiles.ListLocations(ctx, organizationID)
	if err != nil {
		s.Log.Error().Err(err).Str("organization_id", organizationID).Msg("list locations")
		return entity.PaymentBreakdown{}, domain.Internal(err, "list locations")
	}
	b, err := pricing.LocationBreakdown(locs)
	if err != nil {
		return entity.PaymentBreakdown{}, pricingError(err)
	}
	return b, nil
}
