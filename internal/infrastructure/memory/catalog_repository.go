package memory

import (
	"context"
	"strings"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository            = (*CategoryRepo)(nil)
	_ repository.IndustryRepository            = (*IndustryRepo)(nil)
	_ repository.CommissionRepository          = (*CommissionRepo)(nil)
	_ repository.PickupCenterRepository        = (*PickupCenterRepo)(nil)
	_ repository.OneTimeCodeRepository         = (*OneTimeCodeRepo)(nil)
	_ repository.SubscriptionPackageRepository = (*PackageRepo)(nil)
)

type CategoryRepo struct{ t *table[entity.Category] }

func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{t: newTable(func(c *entity.Category) string { return c.ID })}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return r.t.create(ctx, c)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.t.get(ctx, id)
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return r.t.update(ctx, c)
}

func (r *CategoryRepo) List(context.Context) ([]*entity.Category, error) {
	return r.t.list(nil), nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

type IndustryRepo struct{ t *table[entity.Industry] }

func NewIndustryRepository() *IndustryRepo {
	return &IndustryRepo{t: newTable(func(i *entity.Industry) string { return i.ID })}
}

func (r *IndustryRepo) Create(ctx context.Context, i *entity.Industry) error {
	return r.t.create(ctx, i)
}

func (r *IndustryRepo) GetByID(ctx context.Context, id string) (*entity.Industry, error) {
	return r.t.get(ctx, id)
}

func (r *IndustryRepo) Update(ctx context.Context, i *entity.Industry) error {
	return r.t.update(ctx, i)
}

func (r *IndustryRepo) List(context.Context) ([]*entity.Industry, error) {
	return r.t.list(nil), nil
}

func (r *IndustryRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

type CommissionRepo struct{ t *table[entity.Commission] }

func NewCommissionRepository() *CommissionRepo {
	return &CommissionRepo{t: newTable(func(c *entity.Commission) string { return c.ID })}
}

func (r *CommissionRepo) Create(ctx context.Context, c *entity.Commission) error {
	return r.t.create(ctx, c)
}

func (r *CommissionRepo) GetByID(ctx context.Context, id string) (*entity.Commission, error) {
	return r.t.get(ctx, id)
}

func (r *CommissionRepo) Update(ctx context.Context, c *entity.Commission) error {
	return r.t.update(ctx, c)
}

func (r *CommissionRepo) List(context.Context) ([]*entity.Commission, error) {
	return r.t.list(nil), nil
}

func (r *CommissionRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

type PickupCenterRepo struct{ t *table[entity.PickupCenter] }

func NewPickupCenterRepository() *PickupCenterRepo {
	return &PickupCenterRepo{t: newTable(func(p *entity.PickupCenter) string { return p.ID })}
}

func (r *PickupCenterRepo) Create(ctx context.Context, p *entity.PickupCenter) error {
	return r.t.create(ctx, p)
}

func (r *PickupCenterRepo) GetByID(ctx context.Context, id string) (*entity.PickupCenter, error) {
	return r.t.get(ctx, id)
}

func (r *PickupCenterRepo) Update(ctx context.Context, p *entity.PickupCenter) error {
	return r.t.update(ctx, p)
}

func (r *PickupCenterRepo) List(context.Context) ([]*entity.PickupCenter, error) {
	return r.t.list(nil), nil
}

func (r *PickupCenterRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

type OneTimeCodeRepo struct{ t *table[entity.OneTimeCode] }

func NewOneTimeCodeRepository() *OneTimeCodeRepo {
	return &OneTimeCodeRepo{t: newTable(func(c *entity.OneTimeCode) string { return c.ID })}
}

func (r *OneTimeCodeRepo) Create(ctx context.Context, c *entity.OneTimeCode) error {
	return r.t.create(ctx, c)
}

func (r *OneTimeCodeRepo) GetByCode(_ context.Context, code string) (*entity.OneTimeCode, error) {
	found := r.t.list(func(c *entity.OneTimeCode) bool { return strings.EqualFold(c.Code, code) })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *OneTimeCodeRepo) List(_ context.Context, createdBy string) ([]*entity.OneTimeCode, error) {
	return r.t.listReverse(func(c *entity.OneTimeCode) bool {
		return createdBy == "" || c.CreatedBy == createdBy
	}), nil
}

func (r *OneTimeCodeRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

// PackageRepo paquetes de suscripción.
type PackageRepo struct{ t *table[entity.SubscriptionPackage] }

func NewPackageRepository() *PackageRepo {
	t := newTable(func(p *entity.SubscriptionPackage) string { return p.ID })
	t.cloneFn = func(p entity.SubscriptionPackage) entity.SubscriptionPackage {
		p.Services = append([]entity.PackageService(nil), p.Services...)
		p.Features = append([]string(nil), p.Features...)
		return p
	}
	return &PackageRepo{t: t}
}

func (r *PackageRepo) Create(ctx context.Context, p *entity.SubscriptionPackage) error {
	return r.t.create(ctx, p)
}

func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.SubscriptionPackage, error) {
	return r.t.get(ctx, id)
}

func (r *PackageRepo) Update(ctx context.Context, p *entity.SubscriptionPackage) error {
	return r.t.update(ctx, p)
}

func (r *PackageRepo) List(_ context.Context, activeOnly bool) ([]*entity.SubscriptionPackage, error) {
	return r.t.list(func(p *entity.SubscriptionPackage) bool { return !activeOnly || p.IsActive }), nil
}

func (r *PackageRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *PackageRepo) IncrementSubscribers(ctx context.Context, id string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if p, ok := r.t.rows[id]; ok {
		p.SubscriberCount++
		r.t.rows[id] = p
	}
	return nil
}
