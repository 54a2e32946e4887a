package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/usecase"
)

// OrganizationHandler CRUD de organizaciones reenviado al backend con el token del super-admin.
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// List godoc
// @Summary      Listar organizaciones
// @Tags         super-admin-organizations
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Límite"
// @Param        search  query  string  false  "Texto"
// @Param        status  query  string  false  "Estado"
// @Success      200  {object}  dto.DataResponse
// @Router       /api/super-admin/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	var in dto.OrganizationListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetToken(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Get godoc
// @Summary      Organización por id
// @Tags         super-admin-organizations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/super-admin/organizations/{id} [get]
func (h *OrganizationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetToken(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Crear organización
// @Description  Un único POST al backend; su mensaje de error se devuelve tal cual.
// @Tags         super-admin-organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrganizationRequest  true  "Organización"
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/super-admin/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var in dto.OrganizationRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetToken(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// Update godoc
// @Summary      Actualizar organización
// @Tags         super-admin-organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.OrganizationRequest  true  "Organización"
// @Success      200   {object}  dto.DataResponse
// @Router       /api/super-admin/organizations/{id} [put]
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	var in dto.OrganizationRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetToken(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Borrar organización
// @Tags         super-admin-organizations
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.DataResponse
// @Router       /api/super-admin/organizations/{id} [delete]
func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetToken(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return message(c, "Organization deleted")
}
