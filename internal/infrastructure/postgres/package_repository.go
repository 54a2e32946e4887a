package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var _ repository.SubscriptionPackageRepository = (*PackageRepo)(nil)

// PackageRepo paquetes de suscripción; servicios, características y precios van en JSONB.
type PackageRepo struct{ q Querier }

func NewPackageRepository(q Querier) *PackageRepo { return &PackageRepo{q: q} }

const packageColumns = `id, title, description, services, features, pricing, discount_percentage,
	promo_start_date, promo_end_date, is_active, subscriber_count, created_at, updated_at`

func encodePackage(p *entity.SubscriptionPackage) (services, features, pricing []byte, err error) {
	if services, err = jsonb(p.Services); err != nil {
		return
	}
	if features, err = jsonb(p.Features); err != nil {
		return
	}
	pricing, err = jsonb(p.Pricing)
	return
}

func (r *PackageRepo) Create(ctx context.Context, p *entity.SubscriptionPackage) error {
	services, features, pricing, err := encodePackage(p)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO subscription_packages (`+packageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Title, p.Description, services, features, pricing, p.DiscountPercentage,
		p.PromoStartDate, p.PromoEndDate, p.IsActive, p.SubscriberCount, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.SubscriptionPackage, error) {
	p, err := scanPackage(r.q.QueryRow(ctx, `SELECT `+packageColumns+` FROM subscription_packages WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return p, nil
}

// Update no toca subscriber_count: solo lo cambia IncrementSubscribers.
func (r *PackageRepo) Update(ctx context.Context, p *entity.SubscriptionPackage) error {
	services, features, pricing, err := encodePackage(p)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		UPDATE subscription_packages SET title = $2, description = $3, services = $4, features = $5, pricing = $6,
			discount_percentage = $7, promo_start_date = $8, promo_end_date = $9, is_active = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.Title, p.Description, services, features, pricing, p.DiscountPercentage,
		p.PromoStartDate, p.PromoEndDate, p.IsActive, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	return nil
}

func (r *PackageRepo) List(ctx context.Context, activeOnly bool) ([]*entity.SubscriptionPackage, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+packageColumns+` FROM subscription_packages
		WHERE (NOT $1 OR is_active) ORDER BY created_at`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.SubscriptionPackage, error) { return scanPackage(row) })
}

func (r *PackageRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM subscription_packages WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return nil
}

func (r *PackageRepo) IncrementSubscribers(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE subscription_packages SET subscriber_count = subscriber_count + 1, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment subscribers: %w", err)
	}
	return nil
}

func scanPackage(row pgx.Row) (*entity.SubscriptionPackage, error) {
	var p entity.SubscriptionPackage
	var services, features, pricing []byte
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &services, &features, &pricing, &p.DiscountPercentage,
		&p.PromoStartDate, &p.PromoEndDate, &p.IsActive, &p.SubscriberCount, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := fromJSONB(services, &p.Services); err != nil {
		return nil, err
	}
	if err := fromJSONB(features, &p.Features); err != nil {
		return nil, err
	}
	if err := fromJSONB(pricing, &p.Pricing); err != nil {
		return nil, err
	}
	return &p, nil
}
