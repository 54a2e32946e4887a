package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackageServiceDTO servicio incluido en un paquete.
type PackageServiceDTO struct {
	ServiceName string          `json:"serviceName"`
	Duration    string          `json:"duration"`
	Price       decimal.Decimal `json:"price"`
}

// PackagePricingDTO precios base por duración.
type PackagePricingDTO struct {
	Monthly   decimal.Decimal `json:"monthly"`
	Quarterly decimal.Decimal `json:"quarterly"`
	Yearly    decimal.Decimal `json:"yearly"`
}

// PackageRequest alta o edición de un paquete de suscripción.
// Las reglas se validan en el caso de uso para devolver mensajes precisos;
// las fechas llegan como texto (RFC3339 o YYYY-MM-DD).
type PackageRequest struct {
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Services           []PackageServiceDTO `json:"services"`
	Features           []string            `json:"features"`
	Pricing            PackagePricingDTO   `json:"pricing"`
	DiscountPercentage *decimal.Decimal    `json:"discountPercentage"`
	PromoStartDate     string              `json:"promoStartDate"`
	PromoEndDate       string              `json:"promoEndDate"`
	IsActive           *bool               `json:"isActive"`
}

// PackageResponse paquete publicado.
type PackageResponse struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Services           []PackageServiceDTO `json:"services"`
	Features           []string            `json:"features"`
	Pricing            PackagePricingDTO   `json:"pricing"`
	DiscountPercentage decimal.Decimal     `json:"discountPercentage"`
	PromoStartDate     *time.Time          `json:"promoStartDate,omitempty"`
	PromoEndDate       *time.Time          `json:"promoEndDate,omitempty"`
	IsActive           bool                `json:"isActive"`
	SubscriberCount    int                 `json:"subscriberCount"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}
