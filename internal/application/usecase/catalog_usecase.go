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

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if err := validateCatalogItem(in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, domain.Internal(err, "create category")
	}
	return categoryResponse(c), nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if err := validateCatalogItem(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load category")
	}
	if c == nil {
		return nil, domain.NotFound("category %s not found", id)
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, domain.Internal(err, "update category")
	}
	return categoryResponse(c), nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CatalogItemResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load category")
	}
	if c == nil {
		return nil, domain.NotFound("category %s not found", id)
	}
	return categoryResponse(c), nil
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CatalogItemResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, "list categories")
	}
	out := make([]dto.CatalogItemResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *categoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Internal(err, "load category")
	}
	if c == nil {
		return domain.NotFound("category %s not found", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.Internal(err, "delete category")
	}
	return nil
}

func categoryResponse(c *entity.Category) *dto.CatalogItemResponse {
	return &dto.CatalogItemResponse{
		ID: c.ID, Name: c.Name, Description: c.Description, IsActive: c.IsActive,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

// IndustryUseCase CRUD de industrias.
type IndustryUseCase struct {
	repo repository.IndustryRepository
}

func NewIndustryUseCase(repo repository.IndustryRepository) *IndustryUseCase {
	return &IndustryUseCase{repo: repo}
}

func (uc *IndustryUseCase) Create(ctx context.Context, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if err := validateCatalogItem(in); err != nil {
		return nil, err
	}
	now := time.Now()
	i := &entity.Industry{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, i); err != nil {
		return nil, domain.Internal(err, "create industry")
	}
	return industryResponse(i), nil
}

func (uc *IndustryUseCase) Update(ctx context.Context, id string, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if err := validateCatalogItem(in); err != nil {
		return nil, err
	}
	i, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load industry")
	}
	if i == nil {
		return nil, domain.NotFound("industry %s not found", id)
	}
	i.Name = strings.TrimSpace(in.Name)
	i.Description = in.Description
	if in.IsActive != nil {
		i.IsActive = *in.IsActive
	}
	i.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, i); err != nil {
		return nil, domain.Internal(err, "update industry")
	}
	return industryResponse(i), nil
}

func (uc *IndustryUseCase) GetByID(ctx context.Context, id string) (*dto.CatalogItemResponse, error) {
	i, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load industry")
	}
	if i == nil {
		return nil, domain.NotFound("industry %s not found", id)
	}
	return industryResponse(i), nil
}

func (uc *IndustryUseCase) List(ctx context.Context) ([]dto.CatalogItemResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, "list industries")
	}
	out := make([]dto.CatalogItemResponse, 0, len(list))
	for _, i := range list {
		out = append(out, *industryResponse(i))
	}
	return out, nil
}

func (uc *IndustryUseCase) Delete(ctx context.Context, id string) error {
	i, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Internal(err, "load industry")
	}
	if i == nil {
		return domain.NotFound("industry %s not found", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.Internal(err, "delete industry")
	}
	return nil
}

func industryResponse(i *entity.Industry) *dto.CatalogItemResponse {
	return &dto.CatalogItemResponse{
		ID: i.ID, Name: i.Name, Description: i.Description, IsActive: i.IsActive,
		CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt,
	}
}

func validateCatalogItem(in dto.CatalogItemRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Validation("name is required")
	}
	if len(in.Name) > 120 {
		return domain.Validation("name must be at most 120 characters")
	}
	return nil
}
