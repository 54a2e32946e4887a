package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category categoría de negocio del catálogo.
type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Industry industria del catálogo.
type Industry struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Commission comisión porcentual (0–100) aplicada a un tipo de operación.
type Commission struct {
	ID          string
	Name        string
	Rate        decimal.Decimal
	AppliesTo   string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PickupCenter centro de recogida.
type PickupCenter struct {
	ID           string
	Name         string
	Address      string
	City         string
	State        string
	Country      string
	ContactPhone string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OneTimeCode código de un solo uso generado por un admin.
type OneTimeCode struct {
	ID             string
	Code           string
	Purpose        string
	OrganizationID string
	CreatedBy      string
	ExpiresAt      time.Time
	UsedAt         *time.Time
	CreatedAt      time.Time
}

// Expired informa si el código ya venció en now.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// RegionFee tarifa de verificación para una región de ciudad.
type RegionFee struct {
	ID         string
	Country    string
	State      string
	LGA        string
	City       string
	CityRegion string
	Fee        decimal.Decimal
}
