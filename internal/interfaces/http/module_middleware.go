package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// permissionChecker lo implementa *usecase.PermissionService.
type permissionChecker interface {
	HasPermission(ctx context.Context, userID, role string, p entity.Permission) (bool, error)
}

// RequirePermission verifica que el usuario tenga p, por rol o por asignación.
// Va después de AuthMiddleware o StaffAuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay usuario en el contexto.
//   - 403 si el permiso no está concedido.
//   - 503 si falla la consulta de permisos.
func RequirePermission(p entity.Permission, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user not found in context"})
		}
		allowed, err := checker.HasPermission(c.UserContext(), userID, GetRole(c), p)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "could not verify permissions, try again later",
			})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_DENIED",
				Message: "permission '" + string(p) + "' is required",
			})
		}
		return c.Next()
	}
}
