package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/usecase"
)

// PackageHandler paquetes de suscripción.
type PackageHandler struct {
	uc *usecase.PackageUseCase
}

func NewPackageHandler(uc *usecase.PackageUseCase) *PackageHandler {
	return &PackageHandler{uc: uc}
}

// ListActive godoc
// @Summary      Paquetes activos (público)
// @Tags         subscription-packages
// @Produce      json
// @Success      200  {array}  dto.PackageResponse
// @Router       /api/subscription-packages [get]
func (h *PackageHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), true)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// ListAll godoc
// @Summary      Todos los paquetes, incluidos los inactivos
// @Tags         subscription-packages
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PackageResponse
// @Router       /api/subscription-packages/all [get]
func (h *PackageHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), false)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Get godoc
// @Summary      Paquete por id
// @Tags         subscription-packages
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.PackageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscription-packages/{id} [get]
func (h *PackageHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Crear paquete
// @Description  Valida campos requeridos, duración, descuento 0–100 y fechas de promoción antes de guardar.
// @Tags         subscription-packages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PackageRequest  true  "Paquete"
// @Success      201   {object}  dto.PackageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/subscription-packages [post]
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var in dto.PackageRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// Update godoc
// @Summary      Actualizar paquete
// @Tags         subscription-packages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID"
// @Param        body  body  dto.PackageRequest  true  "Paquete"
// @Success      200   {object}  dto.PackageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/subscription-packages/{id} [put]
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	var in dto.PackageRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Borrar paquete
// @Tags         subscription-packages
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.DataResponse
// @Router       /api/subscription-packages/{id} [delete]
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return message(c, "Package deleted")
}
