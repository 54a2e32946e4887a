package repository

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// VerificationFilter filtros del listado de cuestionarios.
type VerificationFilter struct {
	Status         string
	AgentID        string
	OrganizationID string
	Limit          int
	Offset         int
}

// VerificationRepository persistencia de los cuestionarios de verificación de campo.
type VerificationRepository interface {
	Create(ctx context.Context, v *entity.VerificationData) error
	GetByID(ctx context.Context, id string) (*entity.VerificationData, error)
	Update(ctx context.Context, v *entity.VerificationData) error
	List(ctx context.Context, filter VerificationFilter) ([]*entity.VerificationData, error)
	Delete(ctx context.Context, id string) error
}

// LocationVerificationRepository cola de revisión de ubicaciones pagadas.
type LocationVerificationRepository interface {
	Create(ctx context.Context, v *entity.LocationVerification) error
	GetByID(ctx context.Context, id string) (*entity.LocationVerification, error)
	GetByLocation(ctx context.Context, locationID string) (*entity.LocationVerification, error)
	Update(ctx context.Context, v *entity.LocationVerification) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.LocationVerification, error)
}
