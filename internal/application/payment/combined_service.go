package payment

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/pricing"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/workflow"
)

// CombinedPaymentService un solo cobro para el paquete y las tarifas de ubicación.
type CombinedPaymentService struct {
	core
}

// NewCombinedPaymentService construye el servicio.
func NewCombinedPaymentService(d Deps) *CombinedPaymentService {
	return &CombinedPaymentService{core: newCore(d, "combined_payment")}
}

// GetCombinedPricing desglose de paquete + ubicaciones. Consulta pura.
func (s *CombinedPaymentService) GetCombinedPricing(ctx context.Context, organizationID string, in dto.CombinedPricingRequest) (*dto.PricingResponse, error) {
	b, err := s.quote(ctx, organizationID, in)
	if err != nil {
		return nil, err
	}
	out := dto.FromBreakdown(b, s.Currency)
	return &out, nil
}

// InitializeCombinedPayment abre un único link de pago. Si el cliente envía amount,
// debe coincidir con el total calculado en el servidor.
func (s *CombinedPaymentService) InitializeCombinedPayment(ctx context.Context, organizationID string, in dto.CombinedInitializeRequest) (*dto.InitializePaymentResponse, error) {
	if err := validatePayer(in.Payer); err != nil {
		return nil, err
	}
	b, err := s.quote(ctx, organizationID, in.CombinedPricingRequest)
	if err != nil {
		return nil, err
	}
	total := pricing.Total(b)
	if in.Amount != nil && !in.Amount.Equal(total) {
		return nil, domain.Validation("amount %s does not match computed total %s", in.Amount.String(), total.String())
	}

	release, err := s.lock(ctx, initLockKey(organizationID), "a payment is already being initialized")
	if err != nil {
		return nil, err
	}
	defer release()
	if err := s.guardPending(ctx, organizationID, combinedKinds...); err != nil {
		return nil, err
	}

	tx := &entity.PaymentTransaction{
		OrganizationID: organizationID,
		Kind:           entity.PaymentKindCombined,
		Description:    "Subscription package and location verification fees",
		Breakdown:      b,
		PackageID:      in.PackageID,
		Duration:       in.Duration,
		Payer:          entity.Payer{Email: in.Payer.Email, Name: in.Payer.Name, Phone: in.Payer.Phone},
	}
	return s.open(ctx, tx)
}

// VerifyCombinedPayment devuelve la activación de la suscripción y el resultado por ubicación.
func (s *CombinedPaymentService) VerifyCombinedPayment(ctx context.Context, organizationID string, in dto.VerifyPaymentRequest) (*dto.CombinedVerifyResponse, error) {
	v, err := s.verify(ctx, organizationID, in.TransactionID, entity.PaymentKindCombined)
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

func (s *CombinedPaymentService) quote(ctx context.Context, organizationID string, in dto.CombinedPricingRequest) (entity.PaymentBreakdown, error) {
	if in.PackageID == "" {
		return entity.PaymentBreakdown{}, domain.Validation("packageId is required")
	}
	if !entity.ValidDuration(in.Duration) {
		return entity.PaymentBreakdown{}, domain.Validation("duration must be monthly, quarterly or yearly")
	}
	pkg, err := activePackage(ctx, s.Repos, in.PackageID)
	if err != nil {
		return entity.PaymentBreakdown{}, err
	}
	// Sin perfil verificado solo se cobra el paquete.
	profile, err := s.Repos.Profiles.GetByOrganization(ctx, organizationID)
	if err != nil {
		return entity.PaymentBreakdown{}, domain.Internal(err, "load profile")
	}
	var selected []entity.LocationData
	if profile != nil && workflow.LocationPaymentVisible(profile) {
		locs, err := s.Repos.Profiles.ListLocations(ctx, organizationID)
		if err != nil {
			return entity.PaymentBreakdown{}, domain.Internal(err, "list locations")
		}
		if selected, err = selectLocations(locs, in.LocationIDs); err != nil {
			return entity.PaymentBreakdown{}, err
		}
	} else if len(in.LocationIDs) > 0 {
		return entity.PaymentBreakdown{}, domain.Conflict("location payment requires a verified organization profile")
	}
	b, err := pricing.Combined(pkg, in.Duration, selected, s.now())
	if err != nil {
		return entity.PaymentBreakdown{}, pricingError(err)
	}
	return b, nil
}

func activePackage(ctx context.Context, r Repos, id string) (*entity.SubscriptionPackage, error) {
	pkg, err := r.Packages.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load package")
	}
	if pkg == nil {
		return nil, domain.NotFound("subscription package %s not found", id)
	}
	if !pkg.IsActive {
		return nil, domain.Conflict("subscription package %s is not active", id)
	}
	return pkg, nil
}

// selectLocations filtra por ids; vacío significa todas. Un id ajeno es error de validación.
func selectLocations(locs []entity.LocationData, ids []string) ([]entity.LocationData, error) {
	if len(ids) == 0 {
		return locs, nil
	}
	byID := make(map[string]entity.LocationData, len(locs))
	for _, l := range locs {
		byID[l.ID] = l
	}
	out := make([]entity.LocationData, 0, len(ids))
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			return nil, domain.Validation("location %s does not belong to this organization", id)
		}
		out = append(out, l)
	}
	return out, nil
}
