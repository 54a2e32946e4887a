package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequiredResponse resultado de CheckPaymentRequired.
type PaymentRequiredResponse struct {
	Required    bool `json:"required"`
	UnpaidCount int  `json:"unpaidCount"`
	TotalCount  int  `json:"totalCount"`
}

// LocationFeeDTO línea del desglose.
type LocationFeeDTO struct {
	LocationID   string          `json:"locationId"`
	LocationType string          `json:"locationType"`
	City         string          `json:"city"`
	CityRegion   string          `json:"cityRegion"`
	Fee          decimal.Decimal `json:"fee"`
}

// PricingResponse total y desglose de un cobro.
type PricingResponse struct {
	PackageAmount decimal.Decimal  `json:"packageAmount"`
	LocationTotal decimal.Decimal  `json:"locationTotal"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
	Currency      string           `json:"currency"`
	Locations     []LocationFeeDTO `json:"locations"`
}

// PayerRequest identidad de quien paga.
type PayerRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// InitializePaymentResponse URL de la página de pago hospedada más el desglose.
type InitializePaymentResponse struct {
	TransactionID    string          `json:"transactionId"`
	AuthorizationURL string          `json:"authorizationUrl"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Breakdown        PricingResponse `json:"breakdown"`
}

// VerifyPaymentRequest referencia devuelta por la pasarela.
type VerifyPaymentRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
}

// LocationOutcome resultado por ubicación de un pago verificado.
type LocationOutcome struct {
	LocationID     string `json:"locationId"`
	Status         string `json:"status"`
	VerificationID string `json:"verificationId,omitempty"`
}

// VerifyPaymentResponse resultado de verificar un pago de ubicaciones.
type VerifyPaymentResponse struct {
	TransactionID string            `json:"transactionId"`
	Status        string            `json:"status"`
	Message       string            `json:"message,omitempty"`
	Locations     []LocationOutcome `json:"locations"`
}

// TransactionResponse vista de auditoría de una transacción.
type TransactionResponse struct {
	TransactionID    string          `json:"transactionId"`
	Kind             string          `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	Description      string          `json:"description"`
	Breakdown        PricingResponse `json:"breakdown"`
	AuthorizationURL string          `json:"authorizationUrl,omitempty"`
	VerifiedAt       *time.Time      `json:"verifiedAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// CombinedPricingRequest paquete + ubicaciones a cotizar.
// LocationIDs vacío cotiza todas las ubicaciones no pagadas.
type CombinedPricingRequest struct {
	PackageID   string   `json:"packageId" validate:"required"`
	Duration    string   `json:"duration" validate:"required,oneof=monthly quarterly yearly"`
	LocationIDs []string `json:"locationIds"`
}

// CombinedInitializeRequest apertura de un único link de pago para paquete y ubicaciones.
// Amount, si viene, debe coincidir con el total calculado.
type CombinedInitializeRequest struct {
	CombinedPricingRequest
	Amount *decimal.Decimal `json:"amount"`
	Payer  PayerRequest     `json:"payer" validate:"required"`
}

// PackagePaymentRequest pago solo del paquete.
type PackagePaymentRequest struct {
	PackageID string       `json:"packageId" validate:"required"`
	Duration  string       `json:"duration" validate:"required,oneof=monthly quarterly yearly"`
	Payer     PayerRequest `json:"payer" validate:"required"`
}

// SubscriptionOutcome activación del paquete tras el pago.
type SubscriptionOutcome struct {
	Activated      bool       `json:"activated"`
	SubscriptionID string     `json:"subscriptionId,omitempty"`
	PackageID      string     `json:"packageId,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// CombinedVerifyResponse resultado compuesto de un pago combinado.
type CombinedVerifyResponse struct {
	TransactionID string              `json:"transactionId"`
	Status        string              `json:"status"`
	Message       string              `json:"message,omitempty"`
	Subscription  SubscriptionOutcome `json:"subscription"`
	Locations     []LocationOutcome   `json:"locations"`
}
