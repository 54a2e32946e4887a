package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// MsgInvalidDateFormat mensaje de fechas promocionales no interpretables.
const MsgInvalidDateFormat = "Invalid date format"

var promoLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// PackageUseCase CRUD de paquetes de suscripción.
// Toda validación ocurre antes de tocar el repositorio.
type PackageUseCase struct {
	repo repository.SubscriptionPackageRepository
}

// NewPackageUseCase construye el caso de uso.
func NewPackageUseCase(repo repository.SubscriptionPackageRepository) *PackageUseCase {
	return &PackageUseCase{repo: repo}
}

// Create valida y crea un paquete.
func (uc *PackageUseCase) Create(ctx context.Context, in dto.PackageRequest) (*dto.PackageResponse, error) {
	v, err := validatePackage(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	pkg := &entity.SubscriptionPackage{ID: uuid.New().String(), IsActive: true, CreatedAt: now}
	v.applyTo(pkg, in)
	pkg.UpdatedAt = now
	if err := uc.repo.Create(ctx, pkg); err != nil {
		return nil, domain.Internal(err, "create package")
	}
	return toPackageResponse(pkg), nil
}

// Update valida y reemplaza un paquete existente.
func (uc *PackageUseCase) Update(ctx context.Context, id string, in dto.PackageRequest) (*dto.PackageResponse, error) {
	v, err := validatePackage(in)
	if err != nil {
		return nil, err
	}
	pkg, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	v.applyTo(pkg, in)
	pkg.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, pkg); err != nil {
		return nil, domain.Internal(err, "update package")
	}
	return toPackageResponse(pkg), nil
}

// GetByID paquete por id.
func (uc *PackageUseCase) GetByID(ctx context.Context, id string) (*dto.PackageResponse, error) {
	pkg, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPackageResponse(pkg), nil
}

// List paquetes; activeOnly para el listado público.
func (uc *PackageUseCase) List(ctx context.Context, activeOnly bool) ([]dto.PackageResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, domain.Internal(err, "list packages")
	}
	out := make([]dto.PackageResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPackageResponse(p))
	}
	return out, nil
}

// Delete borrado definitivo.
func (uc *PackageUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.Internal(err, "delete package")
	}
	return nil
}

func (uc *PackageUseCase) load(ctx context.Context, id string) (*entity.SubscriptionPackage, error) {
	pkg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load package")
	}
	if pkg == nil {
		return nil, domain.NotFound("subscription package %s not found", id)
	}
	return pkg, nil
}

type validPackage struct {
	discount   decimal.Decimal
	promoStart *time.Time
	promoEnd   *time.Time
}

// validatePackage campos requeridos, duraciones, descuento en [0,100] y ventana promocional.
func validatePackage(in dto.PackageRequest) (*validPackage, error) {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if len(in.Services) == 0 {
		missing = append(missing, "services")
	}
	if len(in.Features) == 0 {
		missing = append(missing, "features")
	}
	if len(missing) > 0 {
		return nil, domain.Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}
	for i, s := range in.Services {
		if strings.TrimSpace(s.ServiceName) == "" {
			return nil, domain.Validation("services[%d].serviceName is required", i)
		}
		if !entity.ValidDuration(s.Duration) {
			return nil, domain.Validation("Invalid duration %q for service %s: must be monthly, quarterly or yearly", s.Duration, s.ServiceName)
		}
		if s.Price.IsNegative() {
			return nil, domain.Validation("services[%d].price must not be negative", i)
		}
	}
	if in.Pricing.Monthly.IsNegative() || in.Pricing.Quarterly.IsNegative() || in.Pricing.Yearly.IsNegative() {
		return nil, domain.Validation("pricing must not be negative")
	}

	out := &validPackage{discount: decimal.Zero}
	if in.DiscountPercentage != nil {
		d := *in.DiscountPercentage
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.Validation("discountPercentage must be between 0 and 100")
		}
		out.discount = d
	}

	start, err := parsePromoDate(in.PromoStartDate)
	if err != nil {
		return nil, err
	}
	end, err := parsePromoDate(in.PromoEndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, domain.Validation("promoStartDate must be before or equal to promoEndDate")
	}
	out.promoStart, out.promoEnd = start, end
	return out, nil
}

func parsePromoDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range promoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domain.Validation(MsgInvalidDateFormat)
}

func (v *validPackage) applyTo(pkg *entity.SubscriptionPackage, in dto.PackageRequest) {
	pkg.Title = strings.TrimSpace(in.Title)
	pkg.Description = strings.TrimSpace(in.Description)
	pkg.Services = make([]entity.PackageService, 0, len(in.Services))
	for _, s := range in.Services {
		pkg.Services = append(pkg.Services, entity.PackageService{ServiceName: s.ServiceName, Duration: s.Duration, Price: s.Price})
	}
	pkg.Features = append([]string(nil), in.Features...)
	pkg.Pricing = entity.PackagePricing{Monthly: in.Pricing.Monthly, Quarterly: in.Pricing.Quarterly, Yearly: in.Pricing.Yearly}
	pkg.DiscountPercentage = v.discount
	pkg.PromoStartDate = v.promoStart
	pkg.PromoEndDate = v.promoEnd
	if in.IsActive != nil {
		pkg.IsActive = *in.IsActive
	}
}

func toPackageResponse(p *entity.SubscriptionPackage) *dto.PackageResponse {
	services := make([]dto.PackageServiceDTO, 0, len(p.Services))
	for _, s := range p.Services {
		services = append(services, dto.PackageServiceDTO{ServiceName: s.ServiceName, Duration: s.Duration, Price: s.Price})
	}
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return &dto.PackageResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Services:           services,
		Features:           features,
		Pricing:            dto.PackagePricingDTO{Monthly: p.Pricing.Monthly, Quarterly: p.Pricing.Quarterly, Yearly: p.Pricing.Yearly},
		DiscountPercentage: p.DiscountPercentage,
		PromoStartDate:     p.PromoStartDate,
		PromoEndDate:       p.PromoEndDate,
		IsActive:           p.IsActive,
		SubscriberCount:    p.SubscriberCount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
