package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/verification"
)

// VerificationHandler cuestionarios de campo (agente) y su revisión (super-admin).
type VerificationHandler struct {
	svc *verification.DataVerificationService
}

func NewVerificationHandler(svc *verification.DataVerificationService) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

// Create godoc
// @Summary      Crear borrador de verificación de campo
// @Tags         staff-verifications
// @Security     StaffToken
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerificationRequest  true  "Cuestionario"
// @Success      201   {object}  dto.VerificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/staff/verifications [post]
func (h *VerificationHandler) Create(c *fiber.Ctx) error {
	var in dto.VerificationRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.CreateVerification(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// ListMine godoc
// @Summary      Cuestionarios del agente autenticado
// @Tags         staff-verifications
// @Security     StaffToken
// @Produce      json
// @Param        status  query  string  false  "draft|submitted|approved|rejected"
// @Success      200     {array}  dto.VerificationResponse
// @Router       /api/staff/verifications [get]
func (h *VerificationHandler) ListMine(c *fiber.Ctx) error {
	var in dto.VerificationListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.ListVerifications(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Get godoc
// @Summary      Cuestionario por id
// @Tags         staff-verifications
// @Security     StaffToken
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.VerificationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/staff/verifications/{id} [get]
func (h *VerificationHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.GetVerification(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// GetAny godoc
// @Summary      Cuestionario por id (super-admin)
// @Tags         super-admin-verifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.VerificationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/super-admin/verifications/{id} [get]
func (h *VerificationHandler) GetAny(c *fiber.Ctx) error {
	out, err := h.svc.GetVerification(c.UserContext(), "", c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// UpdateDraft godoc
// @Summary      Editar un borrador propio
// @Tags         staff-verifications
// @Security     StaffToken
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.VerificationRequest  true  "Cuestionario"
// @Success      200   {object}  dto.VerificationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff/verifications/{id} [put]
func (h *VerificationHandler) UpdateDraft(c *fiber.Ctx) error {
	var in dto.VerificationRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.UpdateDraft(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Submit godoc
// @Summary      Enviar el borrador a revisión
// @Tags         staff-verifications
// @Security     StaffToken
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.VerificationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/staff/verifications/{id}/submit [post]
func (h *VerificationHandler) Submit(c *fiber.Ctx) error {
	out, err := h.svc.SubmitVerification(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// ListAll godoc
// @Summary      Todos los cuestionarios (super-admin)
// @Tags         super-admin-verifications
// @Security     Bearer
// @Produce      json
// @Param        status          query  string  false  "Estado"
// @Param        organizationId  query  string  false  "Organización"
// @Success      200  {array}  dto.VerificationResponse
// @Router       /api/super-admin/verifications [get]
func (h *VerificationHandler) ListAll(c *fiber.Ctx) error {
	var in dto.VerificationListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.ListVerifications(c.UserContext(), "", in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Review godoc
// @Summary      Aprobar o rechazar un cuestionario enviado
// @Tags         super-admin-verifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID"
// @Param        body  body  dto.ReviewRequest  true  "status, comments"
// @Success      200   {object}  dto.VerificationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/super-admin/verifications/{id}/review [post]
func (h *VerificationHandler) Review(c *fiber.Ctx) error {
	var in dto.ReviewRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.ReviewVerification(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Borrar cuestionario
// @Tags         super-admin-verifications
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/super-admin/verifications/{id} [delete]
func (h *VerificationHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.DeleteVerification(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return message(c, "Verification deleted")
}

// AssignRole godoc
// @Summary      Conceder o retirar el permiso data_verification
// @Tags         super-admin-verifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.AssignRoleRequest  true  "assign"
// @Success      200   {object}  dto.AssignRoleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/super-admin/users/{id}/data-verification [post]
func (h *VerificationHandler) AssignRole(c *fiber.Ctx) error {
	var in dto.AssignRoleRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.AssignRole(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// LocationReviewHandler cola de revisión de ubicaciones pagadas.
type LocationReviewHandler struct {
	svc *verification.LocationReviewService
}

func NewLocationReviewHandler(svc *verification.LocationReviewService) *LocationReviewHandler {
	return &LocationReviewHandler{svc: svc}
}

// List godoc
// @Summary      Ubicaciones pendientes o revisadas
// @Tags         location-verifications
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending|approved|rejected"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.LocationVerificationResponse
// @Router       /api/super-admin/location-verifications [get]
func (h *LocationReviewHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	page.DefaultPage()
	out, err := h.svc.List(c.UserContext(), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Get godoc
// @Summary      Revisión de ubicación por id
// @Tags         location-verifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.LocationVerificationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/super-admin/location-verifications/{id} [get]
func (h *LocationReviewHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Approve godoc
// @Summary      Aprobar ubicación
// @Tags         location-verifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.LocationVerificationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/super-admin/location-verifications/{id}/approve [post]
func (h *LocationReviewHandler) Approve(c *fiber.Ctx) error {
	out, err := h.svc.Approve(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Reject godoc
// @Summary      Rechazar ubicación con motivo
// @Tags         location-verifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID"
// @Param        body  body  dto.RejectLocationRequest  true  "reason"
// @Success      200   {object}  dto.LocationVerificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/super-admin/location-verifications/{id}/reject [post]
func (h *LocationReviewHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectLocationRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Reject(c.UserContext(), GetUserID(c), c.Params("id"), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}
