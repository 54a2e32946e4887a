package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Duraciones de suscripción admitidas.
const (
	DurationMonthly   = "monthly"
	DurationQuarterly = "quarterly"
	DurationYearly    = "yearly"
)

// ValidDuration informa si d es una duración conocida.
func ValidDuration(d string) bool {
	switch d {
	case DurationMonthly, DurationQuarterly, DurationYearly:
		return true
	}
	return false
}

// DurationMonths meses que cubre cada duración.
func DurationMonths(d string) int {
	switch d {
	case DurationQuarterly:
		return 3
	case DurationYearly:
		return 12
	default:
		return 1
	}
}

// PackageService servicio incluido en un paquete, con su duración y precio.
type PackageService struct {
	ServiceName string          `json:"service_name"`
	Duration    string          `json:"duration"`
	Price       decimal.Decimal `json:"price"`
}

// PackagePricing precios base por duración.
type PackagePricing struct {
	Monthly   decimal.Decimal `json:"monthly"`
	Quarterly decimal.Decimal `json:"quarterly"`
	Yearly    decimal.Decimal `json:"yearly"`
}

// SubscriptionPackage paquete de suscripción administrado por el super-admin.
type SubscriptionPackage struct {
	ID                 string
	Title              string
	Description        string
	Services           []PackageService
	Features           []string
	Pricing            PackagePricing
	DiscountPercentage decimal.Decimal
	PromoStartDate     *time.Time
	PromoEndDate       *time.Time
	IsActive           bool
	SubscriberCount    int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Suscripción de una organización a un paquete.
const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// OrganizationSubscription activación de un paquete tras un pago verificado.
type OrganizationSubscription struct {
	ID             string
	OrganizationID string
	PackageID      string
	Duration       string
	Status         string
	TransactionID  string
	StartsAt       time.Time
	ExpiresAt      time.Time
	CreatedAt      time.Time
}
