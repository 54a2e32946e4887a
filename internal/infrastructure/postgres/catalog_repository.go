package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository     = (*CategoryRepo)(nil)
	_ repository.IndustryRepository     = (*IndustryRepo)(nil)
	_ repository.CommissionRepository   = (*CommissionRepo)(nil)
	_ repository.PickupCenterRepository = (*PickupCenterRepo)(nil)
	_ repository.OneTimeCodeRepository  = (*OneTimeCodeRepo)(nil)
)

// catalogItem categorías e industrias comparten columnas; solo cambia la tabla.
type catalogItem struct {
	q     Querier
	table string
}

func (c catalogItem) create(ctx context.Context, id, name, desc string, active bool, createdAt, updatedAt time.Time) error {
	_, err := c.q.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`, c.table), id, name, desc, active, createdAt, updatedAt)
	if err != nil {
		return fmt.Errorf("insert %s: %w", c.table, err)
	}
	return nil
}

func (c catalogItem) update(ctx context.Context, id, name, desc string, active bool, updatedAt time.Time) error {
	_, err := c.q.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET name = $2, description = $3, is_active = $4, updated_at = $5 WHERE id = $1`, c.table),
		id, name, desc, active, updatedAt)
	if err != nil {
		return fmt.Errorf("update %s: %w", c.table, err)
	}
	return nil
}

func (c catalogItem) delete(ctx context.Context, id string) error {
	if _, err := c.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table), id); err != nil {
		return fmt.Errorf("delete %s: %w", c.table, err)
	}
	return nil
}

func (c catalogItem) selectSQL(where string) string {
	return fmt.Sprintf(`SELECT id, name, description, is_active, created_at, updated_at FROM %s %s`, c.table, where)
}

// CategoryRepo categorías.
type CategoryRepo struct{ c catalogItem }

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{c: catalogItem{q: q, table: "categories"}}
}

func (r *CategoryRepo) Create(ctx context.Context, v *entity.Category) error {
	return r.c.create(ctx, v.ID, v.Name, v.Description, v.IsActive, v.CreatedAt, v.UpdatedAt)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var v entity.Category
	err := r.c.q.QueryRow(ctx, r.c.selectSQL(`WHERE id = $1`), id).
		Scan(&v.ID, &v.Name, &v.Description, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &v, nil
}

func (r *CategoryRepo) Update(ctx context.Context, v *entity.Category) error {
	return r.c.update(ctx, v.ID, v.Name, v.Description, v.IsActive, v.UpdatedAt)
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.c.q.Query(ctx, r.c.selectSQL(`ORDER BY name`))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Category, error) {
		var v entity.Category
		err := row.Scan(&v.ID, &v.Name, &v.Description, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
		return &v, err
	})
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error { return r.c.delete(ctx, id) }

// IndustryRepo industrias.
type IndustryRepo struct{ c catalogItem }

func NewIndustryRepository(q Querier) *IndustryRepo {
	return &IndustryRepo{c: catalogItem{q: q, table: "industries"}}
}

func (r *IndustryRepo) Create(ctx context.Context, v *entity.Industry) error {
	return r.c.create(ctx, v.ID, v.Name, v.Description, v.IsActive, v.CreatedAt, v.UpdatedAt)
}

func (r *IndustryRepo) GetByID(ctx context.Context, id string) (*entity.Industry, error) {
	var v entity.Industry
	err := r.c.q.QueryRow(ctx, r.c.selectSQL(`WHERE id = $1`), id).
		Scan(&v.ID, &v.Name, &v.Description, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get industry: %w", err)
	}
	return &v, nil
}

func (r *IndustryRepo) Update(ctx context.Context, v *entity.Industry) error {
	return r.c.update(ctx, v.ID, v.Name, v.Description, v.IsActive, v.UpdatedAt)
}

func (r *IndustryRepo) List(ctx context.Context) ([]*entity.Industry, error) {
	rows, err := r.c.q.Query(ctx, r.c.selectSQL(`ORDER BY name`))
	if err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Industry, error) {
		var v entity.Industry
		err := row.Scan(&v.ID, &v.Name, &v.Description, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
		return &v, err
	})
}

func (r *IndustryRepo) Delete(ctx context.Context, id string) error { return r.c.delete(ctx, id) }

// CommissionRepo comisiones.
type CommissionRepo struct{ q Querier }

func NewCommissionRepository(q Querier) *CommissionRepo { return &CommissionRepo{q: q} }

const commissionColumns = `id, name, rate, applies_to, description, is_active, created_at, updated_at`

func scanCommission(row pgx.Row) (*entity.Commission, error) {
	var v entity.Commission
	err := row.Scan(&v.ID, &v.Name, &v.Rate, &v.AppliesTo, &v.Description, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *CommissionRepo) Create(ctx context.Context, v *entity.Commission) error {
	_, err := r.q.Exec(ctx, `INSERT INTO commissions (`+commissionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.Name, v.Rate, v.AppliesTo, v.Description, v.IsActive, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert commission: %w", err)
	}
	return nil
}

func (r *CommissionRepo) GetByID(ctx context.Context, id string) (*entity.Commission, error) {
	v, err := scanCommission(r.q.QueryRow(ctx, `SELECT `+commissionColumns+` FROM commissions WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission: %w", err)
	}
	return v, nil
}

func (r *CommissionRepo) Update(ctx context.Context, v *entity.Commission) error {
	_, err := r.q.Exec(ctx, `
		UPDATE commissions SET name = $2, rate = $3, applies_to = $4, description = $5, is_active = $6, updated_at = $7
		WHERE id = $1`, v.ID, v.Name, v.Rate, v.AppliesTo, v.Description, v.IsActive, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update commission: %w", err)
	}
	return nil
}

func (r *CommissionRepo) List(ctx context.Context) ([]*entity.Commission, error) {
	rows, err := r.q.Query(ctx, `SELECT `+commissionColumns+` FROM commissions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Commission, error) { return scanCommission(row) })
}

func (r *CommissionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM commissions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete commission: %w", err)
	}
	return nil
}

// PickupCenterRepo centros de recogida.
type PickupCenterRepo struct{ q Querier }

func NewPickupCenterRepository(q Querier) *PickupCenterRepo { return &PickupCenterRepo{q: q} }

const pickupColumns = `id, name, address, city, state, country, contact_phone, is_active, created_at, updated_at`

func scanPickupCenter(row pgx.Row) (*entity.PickupCenter, error) {
	var v entity.PickupCenter
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.State, &v.Country, &v.ContactPhone, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *PickupCenterRepo) Create(ctx context.Context, v *entity.PickupCenter) error {
	_, err := r.q.Exec(ctx, `INSERT INTO pickup_centers (`+pickupColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.Name, v.Address, v.City, v.State, v.Country, v.ContactPhone, v.IsActive, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert pickup center: %w", err)
	}
	return nil
}

func (r *PickupCenterRepo) GetByID(ctx context.Context, id string) (*entity.PickupCenter, error) {
	v, err := scanPickupCenter(r.q.QueryRow(ctx, `SELECT `+pickupColumns+` FROM pickup_centers WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pickup center: %w", err)
	}
	return v, nil
}

func (r *PickupCenterRepo) Update(ctx context.Context, v *entity.PickupCenter) error {
	_, err := r.q.Exec(ctx, `
		UPDATE pickup_centers SET name = $2, address = $3, city = $4, state = $5, country = $6,
			contact_phone = $7, is_active = $8, updated_at = $9
		WHERE id = $1`, v.ID, v.Name, v.Address, v.City, v.State, v.Country, v.ContactPhone, v.IsActive, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update pickup center: %w", err)
	}
	return nil
}

func (r *PickupCenterRepo) List(ctx context.Context) ([]*entity.PickupCenter, error) {
	rows, err := r.q.Query(ctx, `SELECT `+pickupColumns+` FROM pickup_centers ORDER BY country, state, city, name`)
	if err != nil {
		return nil, fmt.Errorf("list pickup centers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.PickupCenter, error) { return scanPickupCenter(row) })
}

func (r *PickupCenterRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM pickup_centers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete pickup center: %w", err)
	}
	return nil
}

// OneTimeCodeRepo códigos de un solo uso.
type OneTimeCodeRepo struct{ q Querier }

func NewOneTimeCodeRepository(q Querier) *OneTimeCodeRepo { return &OneTimeCodeRepo{q: q} }

const codeColumns = `id, code, purpose, organization_id, created_by, expires_at, used_at, created_at`

func scanCode(row pgx.Row) (*entity.OneTimeCode, error) {
	var v entity.OneTimeCode
	err := row.Scan(&v.ID, &v.Code, &v.Purpose, &v.OrganizationID, &v.CreatedBy, &v.ExpiresAt, &v.UsedAt, &v.CreatedAt)
	return &v, err
}

func (r *OneTimeCodeRepo) Create(ctx context.Context, v *entity.OneTimeCode) error {
	_, err := r.q.Exec(ctx, `INSERT INTO one_time_codes (`+codeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.Code, v.Purpose, v.OrganizationID, v.CreatedBy, v.ExpiresAt, v.UsedAt, v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("code already exists")
		}
		return fmt.Errorf("insert one-time code: %w", err)
	}
	return nil
}

func (r *OneTimeCodeRepo) GetByCode(ctx context.Context, code string) (*entity.OneTimeCode, error) {
	v, err := scanCode(r.q.QueryRow(ctx, `SELECT `+codeColumns+` FROM one_time_codes WHERE upper(code) = upper($1)`, code))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get one-time code: %w", err)
	}
	return v, nil
}

// List createdBy vacío lista todos; más recientes primero.
func (r *OneTimeCodeRepo) List(ctx context.Context, createdBy string) ([]*entity.OneTimeCode, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+codeColumns+` FROM one_time_codes
		WHERE ($1 = '' OR created_by = $1) ORDER BY created_at DESC`, createdBy)
	if err != nil {
		return nil, fmt.Errorf("list one-time codes: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.OneTimeCode, error) { return scanCode(row) })
}

func (r *OneTimeCodeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM one_time_codes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete one-time code: %w", err)
	}
	return nil
}
