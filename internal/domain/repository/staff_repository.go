package repository

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// StaffRepository usuarios de campo y sus permisos asignados.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*entity.StaffUser, error)
	GetByEmail(ctx context.Context, email string) (*entity.StaffUser, error)
	Update(ctx context.Context, u *entity.StaffUser) error
}
