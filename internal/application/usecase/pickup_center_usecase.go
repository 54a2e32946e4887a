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
)

// PickupCenterUseCase CRUD de centros de recogida.
type PickupCenterUseCase struct {
	repo repository.PickupCenterRepository
}

func NewPickupCenterUseCase(repo repository.PickupCenterRepository) *PickupCenterUseCase {
	return &PickupCenterUseCase{repo: repo}
}

func (uc *PickupCenterUseCase) Create(ctx context.Context, in dto.PickupCenterRequest) (*dto.PickupCenterResponse, error) {
	if err := validatePickupCenter(in); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.PickupCenter{ID: uuid.New().String(), IsActive: true, CreatedAt: now}
	applyPickupCenter(p, in)
	p.UpdatedAt = now
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, domain.Internal(err, "create pickup center")
	}
	return pickupCenterResponse(p), nil
}

func (uc *PickupCenterUseCase) Update(ctx context.Context, id string, in dto.PickupCenterRequest) (*dto.PickupCenterResponse, error) {
	if err := validatePickupCenter(in); err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	applyPickupCenter(p, in)
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, domain.Internal(err, "update pickup center")
	}
	return pickupCenterResponse(p), nil
}

func (uc *PickupCenterUseCase) GetByID(ctx context.Context, id string) (*dto.PickupCenterResponse, error) {
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return pickupCenterResponse(p), nil
}

func (uc *PickupCenterUseCase) List(ctx context.Context) ([]dto.PickupCenterResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, "list pickup centers")
	}
	out := make([]dto.PickupCenterResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *pickupCenterResponse(p))
	}
	return out, nil
}

func (uc *PickupCenterUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.Internal(err, "delete pickup center")
	}
	return nil
}

func (uc *PickupCenterUseCase) load(ctx context.Context, id string) (*entity.PickupCenter, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load pickup center")
	}
	if p == nil {
		return nil, domain.NotFound("pickup center %s not found", id)
	}
	return p, nil
}

func validatePickupCenter(in dto.PickupCenterRequest) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", in.Name}, {"address", in.Address}, {"city", in.City}, {"state", in.State}, {"country", in.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func applyPickupCenter(p *entity.PickupCenter, in dto.PickupCenterRequest) {
	p.Name = strings.TrimSpace(in.Name)
	p.Address = in.Address
	p.City = in.City
	p.State = in.State
	p.Country = in.Country
	p.ContactPhone = in.ContactPhone
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func pickupCenterResponse(p *entity.PickupCenter) *dto.PickupCenterResponse {
	return &dto.PickupCenterResponse{
		ID: p.ID, Name: p.Name, Address: p.Address, City: p.City, State: p.State, Country: p.Country,
		ContactPhone: p.ContactPhone, IsActive: p.IsActive, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}
