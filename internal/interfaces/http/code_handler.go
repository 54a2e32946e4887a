package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/usecase"
)

// OneTimeCodeHandler códigos de un solo uso del admin autenticado.
type OneTimeCodeHandler struct {
	uc *usecase.OneTimeCodeUseCase
}

func NewOneTimeCodeHandler(uc *usecase.OneTimeCodeUseCase) *OneTimeCodeHandler {
	return &OneTimeCodeHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar código de un solo uso
// @Tags         one-time-codes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateCodeRequest  true  "purpose, organizationId, expiresInHours"
// @Success      201   {object}  dto.OneTimeCodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/one-time-codes [post]
func (h *OneTimeCodeHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateCodeRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Generate(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// List godoc
// @Summary      Códigos generados por el admin, más recientes primero
// @Tags         one-time-codes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OneTimeCodeResponse
// @Router       /api/admin/one-time-codes [get]
func (h *OneTimeCodeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Borrar código
// @Tags         one-time-codes
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.DataResponse
// @Router       /api/admin/one-time-codes/{id} [delete]
func (h *OneTimeCodeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return message(c, "Code deleted")
}
