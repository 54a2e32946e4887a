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

// CommissionUseCase CRUD de comisiones. La tasa es un porcentaje en [0,100].
type CommissionUseCase struct {
	repo repository.CommissionRepository
}

func NewCommissionUseCase(repo repository.CommissionRepository) *CommissionUseCase {
	return &CommissionUseCase{repo: repo}
}

func (uc *CommissionUseCase) Create(ctx context.Context, in dto.CommissionRequest) (*dto.CommissionResponse, error) {
	if err := validateCommission(in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Commission{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Rate:        *in.Rate,
		AppliesTo:   in.AppliesTo,
		Description: in.Description,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, domain.Internal(err, "create commission")
	}
	return commissionResponse(c), nil
}

func (uc *CommissionUseCase) Update(ctx context.Context, id string, in dto.CommissionRequest) (*dto.CommissionResponse, error) {
	if err := validateCommission(in); err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Rate = *in.Rate
	c.AppliesTo = in.AppliesTo
	c.Description = in.Description
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, domain.Internal(err, "update commission")
	}
	return commissionResponse(c), nil
}

func (uc *CommissionUseCase) GetByID(ctx context.Context, id string) (*dto.CommissionResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return commissionResponse(c), nil
}

func (uc *CommissionUseCase) List(ctx context.Context) ([]dto.CommissionResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, "list commissions")
	}
	out := make([]dto.CommissionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *commissionResponse(c))
	}
	return out, nil
}

func (uc *CommissionUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.Internal(err, "delete commission")
	}
	return nil
}

func (uc *CommissionUseCase) load(ctx context.Context, id string) (*entity.Commission, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load commission")
	}
	if c == nil {
		return nil, domain.NotFound("commission %s not found", id)
	}
	return c, nil
}

func validateCommission(in dto.CommissionRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Validation("name is required")
	}
	if strings.TrimSpace(in.AppliesTo) == "" {
		return domain.Validation("appliesTo is required")
	}
	if in.Rate == nil {
		return domain.Validation("rate is required")
	}
	if in.Rate.IsNegative() || in.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return domain.Validation("rate must be between 0 and 100")
	}
	return nil
}

func commissionResponse(c *entity.Commission) *dto.CommissionResponse {
	return &dto.CommissionResponse{
		ID: c.ID, Name: c.Name, Rate: c.Rate, AppliesTo: c.AppliesTo, Description: c.Description,
		IsActive: c.IsActive, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}
