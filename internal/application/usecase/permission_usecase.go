package usecase

import (
	"context"
	"fmt"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

// PermissionService decide si un usuario tiene una capacidad.
// Es el único punto que combina la tabla de roles con las asignaciones por usuario.
type PermissionService struct {
	staffRepo repository.StaffRepository
}

// NewPermissionService construye el servicio de permisos.
func NewPermissionService(staffRepo repository.StaffRepository) *PermissionService {
	return &PermissionService{staffRepo: staffRepo}
}

// HasPermission informa si el usuario tiene p por su rol o por asignación.
// Un usuario desconocido o inactivo devuelve false sin error.
// Devuelve error solo ante fallos de infraestructura.
func (s *PermissionService) HasPermission(ctx context.Context, userID, role string, p entity.Permission) (bool, error) {
	if userID == "" || p == "" {
		return false, fmt.Errorf("permission: userID y permiso son obligatorios")
	}
	if entity.RoleAllows(role, p) {
		return true, nil
	}
	u, err := s.staffRepo.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("permission: %w", err)
	}
	if u == nil || u.Status == "inactive" {
		return false, nil
	}
	return u.Has(p), nil
}
