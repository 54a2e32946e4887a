package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItemRequest alta o edición de categoría o industria.
type CatalogItemRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"isActive"`
}

// CatalogItemResponse categoría o industria.
type CatalogItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CommissionRequest alta o edición de una comisión; Rate en [0,100].
type CommissionRequest struct {
	Name        string           `json:"name" validate:"required"`
	Rate        *decimal.Decimal `json:"rate" validate:"required"`
	AppliesTo   string           `json:"appliesTo" validate:"required"`
	Description string           `json:"description"`
	IsActive    *bool            `json:"isActive"`
}

// CommissionResponse comisión.
type CommissionResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Rate        decimal.Decimal `json:"rate"`
	AppliesTo   string          `json:"appliesTo"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PickupCenterRequest alta o edición de un centro de recogida.
type PickupCenterRequest struct {
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address" validate:"required"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Country      string `json:"country" validate:"required"`
	ContactPhone string `json:"contactPhone"`
	IsActive     *bool  `json:"isActive"`
}

// PickupCenterResponse centro de recogida.
type PickupCenterResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country"`
	ContactPhone string    `json:"contactPhone"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// GenerateCodeRequest generación de un código de un solo uso.
type GenerateCodeRequest struct {
	Purpose        string `json:"purpose" validate:"required"`
	OrganizationID string `json:"organizationId"`
	// ExpiresInHours 0 usa el valor por defecto (24h).
	ExpiresInHours int `json:"expiresInHours" validate:"min=0,max=720"`
}

// OneTimeCodeResponse código generado.
type OneTimeCodeResponse struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	Purpose        string     `json:"purpose"`
	OrganizationID string     `json:"organizationId,omitempty"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	UsedAt         *time.Time `json:"usedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
