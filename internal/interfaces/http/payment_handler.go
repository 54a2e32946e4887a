package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/payment"
)

// PaymentHandler pagos de ubicaciones, de paquete y combinados, más el comprobante.
type PaymentHandler struct {
	locations *payment.LocationPaymentService
	combined  *payment.CombinedPaymentService
	packages  *payment.PackagePaymentService
	receipts  *payment.ReceiptService
}

func NewPaymentHandler(
	locations *payment.LocationPaymentService,
	combined *payment.CombinedPaymentService,
	packages *payment.PackagePaymentService,
	receipts *payment.ReceiptService,
) *PaymentHandler {
	return &PaymentHandler{locations: locations, combined: combined, packages: packages, receipts: receipts}
}

// CheckPaymentRequired godoc
// @Summary      ¿Hay ubicaciones pendientes de pago?
// @Tags         location-payments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PaymentRequiredResponse
// @Router       /api/location-payments/required [get]
func (h *PaymentHandler) CheckPaymentRequired(c *fiber.Ctx) error {
	out, err := h.locations.CheckPaymentRequired(c.UserContext(), GetOrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// GetPricing godoc
// @Summary      Total y desglose de las ubicaciones no pagadas
// @Tags         location-payments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PricingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/location-payments/pricing [get]
func (h *PaymentHandler) GetPricing(c *fiber.Ctx) error {
	out, err := h.locations.GetPricing(c.UserContext(), GetOrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// InitializeLocationPayment godoc
// @Summary      Abrir el pago de ubicaciones en la pasarela
// @Tags         location-payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PayerRequest  true  "email, name, phone"
// @Success      201   {object}  dto.InitializePaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/location-payments/initialize [post]
func (h *PaymentHandler) InitializeLocationPayment(c *fiber.Ctx) error {
	var in dto.PayerRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.locations.InitializePayment(c.UserContext(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// VerifyLocationPayment godoc
// @Summary      Verificar el pago de ubicaciones
// @Tags         location-payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyPaymentRequest  true  "transactionId"
// @Success      200   {object}  dto.VerifyPaymentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/location-payments/verify [post]
func (h *PaymentHandler) VerifyLocationPayment(c *fiber.Ctx) error {
	var in dto.VerifyPaymentRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.locations.VerifyPayment(c.UserContext(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// PaymentHistory godoc
// @Summary      Historial de transacciones de la organización
// @Tags         location-payments
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.TransactionResponse
// @Router       /api/location-payments/history [get]
func (h *PaymentHandler) PaymentHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	page.DefaultPage()
	out, err := h.locations.GetPaymentHistory(c.UserContext(), GetOrganizationID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// PaymentStatus godoc
// @Summary      Estado de una transacción
// @Tags         location-payments
// @Security     Bearer
// @Produce      json
// @Param        transactionId  path  string  true  "Referencia"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/location-payments/status/{transactionId} [get]
func (h *PaymentHandler) PaymentStatus(c *fiber.Ctx) error {
	out, err := h.locations.GetPaymentStatus(c.UserContext(), GetOrganizationID(c), c.Params("transactionId"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// CombinedPricing godoc
// @Summary      Cotizar paquete + ubicaciones
// @Tags         combined-payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CombinedPricingRequest  true  "packageId, duration, locationIds"
// @Success      200   {object}  dto.PricingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/combined-payments/pricing [post]
func (h *PaymentHandler) CombinedPricing(c *fiber.Ctx) error {
	var in dto.CombinedPricingRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.combined.GetCombinedPricing(c.UserContext(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// InitializeCombined godoc
// @Summary      Un único link de pago para paquete y ubicaciones
// @Tags         combined-payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CombinedInitializeRequest  true  "Paquete, ubicaciones y pagador"
// @Success      201   {object}  dto.InitializePaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/combined-payments/initialize [post]
func (h *PaymentHandler) InitializeCombined(c *fiber.Ctx) error {
	var in dto.CombinedInitializeRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.combined.InitializeCombinedPayment(c.UserContext(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// VerifyCombined godoc
// @Summary      Verificar el pago combinado
// @Tags         combined-payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyPaymentRequest  true  "transactionId"
// @Success      200   {object}  dto.CombinedVerifyResponse
// @Router       /api/combined-payments/verify [post]
func (h *PaymentHandler) VerifyCombined(c *fiber.Ctx) error {
	var in dto.VerifyPaymentRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.combined.VerifyCombinedPayment(c.UserContext(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// InitializePackage godoc
// @Summary      Pagar solo el paquete de suscripción
// @Tags         package-payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PackagePaymentRequest  true  "packageId, duration, payer"
// @Success      201   {object}  dto.InitializePaymentResponse
// @Router       /api/package-payments/initialize [post]
func (h *PaymentHandler) InitializePackage(c *fiber.Ctx) error {
	var in dto.PackagePaymentRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.packages.InitializePackagePayment(c.UserContext(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// VerifyPackage godoc
// @Summary      Verificar el pago del paquete
// @Tags         package-payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyPaymentRequest  true  "transactionId"
// @Success      200   {object}  dto.CombinedVerifyResponse
// @Router       /api/package-payments/verify [post]
func (h *PaymentHandler) VerifyPackage(c *fiber.Ctx) error {
	var in dto.VerifyPaymentRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.packages.VerifyPackagePayment(c.UserContext(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Receipt godoc
// @Summary      Comprobante PDF de un pago exitoso
// @Tags         payments
// @Security     Bearer
// @Produce      application/pdf
// @Param        transactionId  path  string  true  "Referencia"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payments/{transactionId}/receipt [get]
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("transactionId")
	pdf, err := h.receipts.Receipt(c.UserContext(), GetOrganizationID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="receipt-`+id+`.pdf"`)
	return c.Send(pdf)
}
