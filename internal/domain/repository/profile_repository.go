package repository

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// ProfileRepository persistencia del perfil de organización y sus ubicaciones (DIP).
// Los Get devuelven (nil, nil) cuando no existe el registro.
type ProfileRepository interface {
	GetByOrganization(ctx context.Context, organizationID string) (*entity.OrganizationProfile, error)
	// Upsert crea o actualiza el único perfil de la organización (sin tocar ubicaciones).
	Upsert(ctx context.Context, profile *entity.OrganizationProfile) error
	UpdateStep(ctx context.Context, organizationID, step string) error
	// SetVerification actualiza el estado de verificación del perfil y de la organización.
	SetVerification(ctx context.Context, organizationID, profileStatus, orgVerification string) error

	AddLocation(ctx context.Context, location *entity.LocationData) error
	GetLocation(ctx context.Context, id string) (*entity.LocationData, error)
	ListLocations(ctx context.Context, organizationID string) ([]entity.LocationData, error)
	DeleteLocation(ctx context.Context, organizationID, id string) error
	// SetLocationStatus actualiza estado de pago y de verificación de varias ubicaciones.
	SetLocationStatus(ctx context.Context, ids []string, paymentStatus, verificationStatus string) error
}
