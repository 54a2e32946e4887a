// Package onboarding implementa los pasos de perfil y ubicaciones del asistente.
package onboarding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/pricing"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/workflow"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service estado del asistente por organización.
type Service struct {
	profiles repository.ProfileRepository
	payments repository.PaymentRepository
	fees     ports.FeeLookup
	currency string
	log      *logger.Logger
	now      func() time.Time
}

// NewService construye el servicio de onboarding.
func NewService(
	profiles repository.ProfileRepository,
	payments repository.PaymentRepository,
	fees ports.FeeLookup,
	currency string,
	log *logger.Logger,
) *Service {
	return &Service{
		profiles: profiles,
		payments: payments,
		fees:     fees,
		currency: currency,
		log:      log.Named("onboarding"),
		now:      time.Now,
	}
}

// GetProfile perfil actual con sus ubicaciones.
func (s *Service) GetProfile(ctx context.Context, organizationID string) (*dto.ProfileResponse, error) {
	p, err := s.load(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("organization profile not found")
	}
	return toProfileResponse(p, p.CurrentStep), nil
}

// SubmitProfile crea o actualiza el perfil y decide el paso siguiente.
// Si falla, el paso guardado no cambia.
func (s *Service) SubmitProfile(ctx context.Context, organizationID string, in dto.ProfileRequest) (*dto.ProfileResponse, error) {
	if organizationID == "" {
		return nil, domain.Unauthorized("organization id is required")
	}
	if in.BusinessType != entity.BusinessTypeRegistered && in.BusinessType != entity.BusinessTypeUnregistered {
		return nil, domain.Validation("businessType must be registered or unregistered")
	}

	existing, err := s.load(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	p := existing
	if p == nil {
		p = &entity.OrganizationProfile{
			ID:                       uuid.New().String(),
			OrganizationID:           organizationID,
			VerificationStatus:       entity.ProfileUnverified,
			OrganizationVerification: entity.OrgVerificationNotStarted,
			CreatedAt:                now,
		}
	}
	p.BusinessType = in.BusinessType
	p.IsPublicProfile = in.IsPublicProfile != nil && *in.IsPublicProfile
	if p.OrganizationVerification == entity.OrgVerificationNotStarted {
		if err := workflow.CheckOrganization(p.OrganizationVerification, entity.OrgVerificationInProgress); err == nil {
			p.OrganizationVerification = entity.OrgVerificationInProgress
		}
	}
	next := workflow.NextAfterProfile(p)
	p.CurrentStep = next
	p.UpdatedAt = now

	if err := s.profiles.Upsert(ctx, p); err != nil {
		s.log.Error().Err(err).Str("organization_id", organizationID).Msg("upsert profile")
		return nil, domain.Internal(err, "save profile")
	}
	s.log.Info().
		Str("organization_id", organizationID).
		Bool("public", p.IsPublicProfile).
		Str("next_step", next).
		Msg("profile submitted")
	return toProfileResponse(p, next), nil
}

// AddLocation agrega una sede o sucursal y resuelve su tarifa.
// Una región sin tarifa publicada se guarda con feeResolved=false.
func (s *Service) AddLocation(ctx context.Context, organizationID string, in dto.LocationRequest) (*dto.LocationResponse, error) {
	if in.LocationType != entity.LocationHeadquarters && in.LocationType != entity.LocationBranch {
		return nil, domain.Validation("locationType must be headquarters or branch")
	}
	a := in.Address
	if a.Country == "" || a.State == "" || a.LGA == "" || a.City == "" || a.CityRegion == "" {
		return nil, domain.Validation("country, state, lga, city and cityRegion are required")
	}
	p, err := s.load(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.Conflict("submit the organization profile before adding locations")
	}
	if !p.IsPublicProfile {
		return nil, domain.Conflict("locations are only collected for public profiles")
	}
	if in.LocationType == entity.LocationHeadquarters {
		for _, l := range p.Locations {
			if l.LocationType == entity.LocationHeadquarters {
				return nil, domain.Conflict("organization already has a headquarters")
			}
		}
	}

	addr := a.ToAddress()
	fee, ok, err := s.fees.LookupFee(ctx, addr)
	if err != nil {
		s.log.Error().Err(err).Str("city_region", addr.CityRegion).Msg("fee lookup")
		return nil, domain.Wrap(err, "fee lookup")
	}
	if !ok {
		fee = decimal.Zero
		s.log.Warn().Str("organization_id", organizationID).Str("city_region", addr.CityRegion).Msg("no fee for region")
	}

	now := s.now()
	loc := entity.LocationData{
		ID:                 uuid.New().String(),
		ProfileID:          p.ID,
		OrganizationID:     organizationID,
		Position:           len(p.Locations),
		LocationType:       in.LocationType,
		Address:            addr,
		CityRegionFee:      fee,
		FeeResolved:        ok,
		Gallery:            entity.Gallery{Images: in.Gallery.Images, Videos: in.Gallery.Videos},
		PaymentStatus:      entity.LocationUnpaid,
		VerificationStatus: entity.LocationVerificationNone,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.profiles.AddLocation(ctx, &loc); err != nil {
		return nil, domain.Wrap(err, "save location")
	}
	out := dto.FromLocation(loc, loc.Position)
	return &out, nil
}

// RemoveLocation borra la ubicación en la posición index. Una ubicación pagada no se borra.
func (s *Service) RemoveLocation(ctx context.Context, organizationID string, index int) error {
	p, err := s.load(ctx, organizationID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NotFound("organization profile not found")
	}
	if index < 0 || index >= len(p.Locations) {
		return domain.NotFound("location %d not found", index)
	}
	loc := p.Locations[index]
	if loc.PaymentStatus == entity.LocationPaid {
		return domain.Conflict("paid locations cannot be removed")
	}
	if err := s.profiles.DeleteLocation(ctx, organizationID, loc.ID); err != nil {
		return domain.Internal(err, "delete location")
	}
	return nil
}

// ListLocations ubicaciones en orden junto con el paso siguiente.
func (s *Service) ListLocations(ctx context.Context, organizationID string) (*dto.LocationsResponse, error) {
	p, err := s.load(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &dto.LocationsResponse{Locations: []dto.LocationResponse{}, NextStep: workflow.StepProfile}, nil
	}
	return &dto.LocationsResponse{
		Locations: dto.FromLocations(p.Locations),
		NextStep:  workflow.NextAfterLocations(p),
	}, nil
}

// CompleteLocations cierra el paso de ubicaciones y guarda el paso siguiente.
func (s *Service) CompleteLocations(ctx context.Context, organizationID string) (*dto.LocationsResponse, error) {
	out, err := s.ListLocations(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if out.NextStep == workflow.StepProfile {
		return nil, domain.Conflict("submit the organization profile first")
	}
	if err := s.profiles.UpdateStep(ctx, organizationID, out.NextStep); err != nil {
		return nil, domain.Internal(err, "update step")
	}
	return out, nil
}

// LocationPaymentView compuerta del paso de pago de ubicaciones.
// Sin verificación el paso no muestra nada.
func (s *Service) LocationPaymentView(ctx context.Context, organizationID string) (*dto.LocationPaymentViewResponse, error) {
	p, err := s.load(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	view := &dto.LocationPaymentViewResponse{Visible: false, Locations: []dto.LocationResponse{}}
	if !workflow.LocationPaymentVisible(p) {
		return view, nil
	}
	view.Visible = true
	unpaid := p.UnpaidLocations()
	view.Locations = dto.FromLocations(unpaid)
	if b, err := pricing.LocationBreakdown(unpaid); err == nil {
		pr := dto.FromBreakdown(b, s.currency)
		view.Pricing = &pr
	}
	if s.payments != nil {
		pending, err := s.payments.FindPending(ctx, organizationID, entity.PaymentKindLocation)
		if err != nil {
			return nil, domain.Internal(err, "find pending payment")
		}
		if pending != nil {
			tr := dto.FromTransaction(pending)
			view.Pending = &tr
		}
	}
	return view, nil
}

func (s *Service) load(ctx context.Context, organizationID string) (*entity.OrganizationProfile, error) {
	p, err := s.profiles.GetByOrganization(ctx, organizationID)
	if err != nil {
		s.log.Error().Err(err).Str("organization_id", organizationID).Msg("load profile")
		return nil, domain.Internal(err, "load profile")
	}
	return p, nil
}

func toProfileResponse(p *entity.OrganizationProfile, next string) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:                       p.ID,
		OrganizationID:           p.OrganizationID,
		BusinessType:             p.BusinessType,
		IsPublicProfile:          p.IsPublicProfile,
		VerificationStatus:       p.VerificationStatus,
		OrganizationVerification: p.OrganizationVerification,
		CurrentStep:              p.CurrentStep,
		NextStep:                 next,
		Locations:                dto.FromLocations(p.Locations),
		UpdatedAt:                p.UpdatedAt,
	}
}
