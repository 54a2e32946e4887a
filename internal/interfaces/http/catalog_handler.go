package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/usecase"
)

// catalogService lo implementan CategoryUseCase e IndustryUseCase.
type catalogService interface {
	Create(ctx context.Context, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error)
	Update(ctx context.Context, id string, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CatalogItemResponse, error)
	List(ctx context.Context) ([]dto.CatalogItemResponse, error)
	Delete(ctx context.Context, id string) error
}

// CatalogHandler CRUD de categorías o industrias según el servicio inyectado.
type CatalogHandler struct {
	svc  catalogService
	noun string
}

func NewCatalogHandler(svc catalogService, noun string) *CatalogHandler {
	return &CatalogHandler{svc: svc, noun: noun}
}

// Create godoc
// @Summary      Crear categoría o industria
// @Tags         super-admin-catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CatalogItemRequest  true  "name, description"
// @Success      201   {object}  dto.CatalogItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/super-admin/categories [post]
// @Router       /api/super-admin/industries [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CatalogItemRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var in dto.CatalogItemRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return message(c, h.noun+" deleted")
}

// CommissionHandler CRUD de comisiones.
type CommissionHandler struct {
	uc *usecase.CommissionUseCase
}

func NewCommissionHandler(uc *usecase.CommissionUseCase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear comisión (rate 0–100)
// @Tags         super-admin-catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommissionRequest  true  "Comisión"
// @Success      201   {object}  dto.CommissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/super-admin/commissions [post]
func (h *CommissionHandler) Create(c *fiber.Ctx) error {
	var in dto.CommissionRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

func (h *CommissionHandler) Update(c *fiber.Ctx) error {
	var in dto.CommissionRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *CommissionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *CommissionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *CommissionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return message(c, "Commission deleted")
}

// PickupCenterHandler CRUD de centros de recogida.
type PickupCenterHandler struct {
	uc *usecase.PickupCenterUseCase
}

func NewPickupCenterHandler(uc *usecase.PickupCenterUseCase) *PickupCenterHandler {
	return &PickupCenterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear centro de recogida
// @Tags         super-admin-catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PickupCenterRequest  true  "Centro"
// @Success      201   {object}  dto.PickupCenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/super-admin/pickup-centers [post]
func (h *PickupCenterHandler) Create(c *fiber.Ctx) error {
	var in dto.PickupCenterRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

func (h *PickupCenterHandler) Update(c *fiber.Ctx) error {
	var in dto.PickupCenterRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *PickupCenterHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *PickupCenterHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *PickupCenterHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return message(c, "Pickup center deleted")
}
