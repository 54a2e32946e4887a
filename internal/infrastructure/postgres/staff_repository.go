package postgres

import (
	"context"
	"fmt"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo agentes de campo; los permisos se guardan como text[].
type StaffRepo struct{ q Querier }

func NewStaffRepository(q Querier) *StaffRepo { return &StaffRepo{q: q} }

const staffColumns = `id, email, name, role, permissions, status, created_at, updated_at`

func (r *StaffRepo) GetByID(ctx context.Context, id string) (*entity.StaffUser, error) {
	return r.one(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE id = $1`, id)
}

func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (*entity.StaffUser, error) {
	return r.one(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE lower(email) = lower($1)`, email)
}

func (r *StaffRepo) Update(ctx context.Context, u *entity.StaffUser) error {
	perms := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		perms = append(perms, string(p))
	}
	_, err := r.q.Exec(ctx, `
		UPDATE staff_users SET name = $2, role = $3, permissions = $4, status = $5, updated_at = $6 WHERE id = $1`,
		u.ID, u.Name, u.Role, perms, u.Status, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update staff user: %w", err)
	}
	return nil
}

func (r *StaffRepo) one(ctx context.Context, sql, arg string) (*entity.StaffUser, error) {
	var u entity.StaffUser
	var perms []string
	err := r.q.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &perms, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff user: %w", err)
	}
	for _, p := range perms {
		u.Permissions = append(u.Permissions, entity.Permission(p))
	}
	return &u, nil
}
