package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/onboarding"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
)

// OnboardingHandler asistente de alta de la organización.
type OnboardingHandler struct {
	svc *onboarding.Service
}

func NewOnboardingHandler(svc *onboarding.Service) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

// GetProfile godoc
// @Summary      Perfil de la organización y paso actual del asistente
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/onboarding/profile [get]
func (h *OnboardingHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.svc.GetProfile(c.UserContext(), GetOrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// SubmitProfile godoc
// @Summary      Guardar perfil (tipo de negocio y visibilidad)
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProfileRequest  true  "businessType, isPublicProfile"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/onboarding/profile [put]
func (h *OnboardingHandler) SubmitProfile(c *fiber.Ctx) error {
	var in dto.ProfileRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.SubmitProfile(c.UserContext(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// ListLocations godoc
// @Summary      Ubicaciones cargadas
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LocationsResponse
// @Router       /api/onboarding/locations [get]
func (h *OnboardingHandler) ListLocations(c *fiber.Ctx) error {
	out, err := h.svc.ListLocations(c.UserContext(), GetOrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// AddLocation godoc
// @Summary      Agregar ubicación (la tarifa se resuelve en el servidor)
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocationRequest  true  "Ubicación"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/locations [post]
func (h *OnboardingHandler) AddLocation(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.AddLocation(c.UserContext(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// RemoveLocation godoc
// @Summary      Quitar ubicación por índice
// @Tags         onboarding
// @Security     Bearer
// @Param        index  path  int  true  "Índice (0..n-1)"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/onboarding/locations/{index} [delete]
func (h *OnboardingHandler) RemoveLocation(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return writeError(c, domain.Validation("index must be a non-negative integer"))
	}
	if err := h.svc.RemoveLocation(c.UserContext(), GetOrganizationID(c), index); err != nil {
		return writeError(c, err)
	}
	return message(c, "Location removed")
}

// CompleteLocations godoc
// @Summary      Cerrar el paso de ubicaciones y obtener el siguiente
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LocationsResponse
// @Router       /api/onboarding/locations/complete [post]
func (h *OnboardingHandler) CompleteLocations(c *fiber.Ctx) error {
	out, err := h.svc.CompleteLocations(c.UserContext(), GetOrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// LocationPaymentView godoc
// @Summary      Compuerta del paso de pago de ubicaciones
// @Description  visible=false y sin ubicaciones mientras la organización no esté verificada.
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LocationPaymentViewResponse
// @Router       /api/onboarding/location-payment [get]
func (h *OnboardingHandler) LocationPaymentView(c *fiber.Ctx) error {
	out, err := h.svc.LocationPaymentView(c.UserContext(), GetOrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}
