package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/auth"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
)

// StaffAuthHandler login mock de agentes de campo.
type StaffAuthHandler struct {
	uc *auth.StaffAuthUseCase
}

func NewStaffAuthHandler(uc *auth.StaffAuthUseCase) *StaffAuthHandler {
	return &StaffAuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login de staff
// @Description  Acepta cualquier password no vacío para un email conocido; devuelve mock_token_{id}_{timestamp}.
// @Tags         staff-auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StaffLoginRequest  true  "email, password"
// @Success      200   {object}  dto.StaffLoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/staff/auth/login [post]
func (h *StaffAuthHandler) Login(c *fiber.Ctx) error {
	var in dto.StaffLoginRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Validar token de staff
// @Tags         staff-auth
// @Security     StaffToken
// @Produce      json
// @Success      200  {object}  dto.StaffVerifyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/staff/auth/verify [get]
func (h *StaffAuthHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.Verify(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión de staff
// @Tags         staff-auth
// @Security     StaffToken
// @Success      200  {object}  dto.DataResponse
// @Router       /api/staff/auth/logout [post]
func (h *StaffAuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), c.Get(fiber.HeaderAuthorization)); err != nil {
		return writeError(c, err)
	}
	return message(c, "Logged out")
}
