package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de transacción según lo que cubre el pago.
const (
	PaymentKindPackage  = "package"
	PaymentKindLocation = "location"
	PaymentKindCombined = "combined"
)

// Estados de una transacción de pago.
const (
	PaymentPending    = "pending"
	PaymentSuccessful = "successful"
	PaymentFailed     = "failed"
)

// LocationFee línea del desglose: tarifa de una ubicación.
type LocationFee struct {
	LocationID   string          `json:"location_id"`
	LocationType string          `json:"location_type"`
	CityRegion   string          `json:"city_region"`
	City         string          `json:"city"`
	Fee          decimal.Decimal `json:"fee"`
}

// PaymentBreakdown desglose de un cobro entre paquete y ubicaciones.
type PaymentBreakdown struct {
	PackageAmount decimal.Decimal `json:"package_amount"`
	LocationTotal decimal.Decimal `json:"location_total"`
	Locations     []LocationFee   `json:"locations"`
}

// Payer identidad de quien paga, requerida por la pasarela.
type Payer struct {
	Email string
	Name  string
	Phone string
}

// PaymentTransaction transacción iniciada contra la pasarela externa.
// TransactionID es la referencia pública que viaja a la pasarela y vuelve en el callback.
type PaymentTransaction struct {
	ID               string
	TransactionID    string
	OrganizationID   string
	Kind             string
	Amount           decimal.Decimal
	Currency         string
	Status           string
	Description      string
	Breakdown        PaymentBreakdown
	PackageID        string
	Duration         string
	Payer            Payer
	AuthorizationURL string
	GatewayMessage   string
	VerifiedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsFinal informa si la transacción ya no puede cambiar de estado.
func (t *PaymentTransaction) IsFinal() bool {
	return t.Status == PaymentSuccessful || t.Status == PaymentFailed
}

// LocationIDs ids de las ubicaciones cubiertas por la transacción.
func (t *PaymentTransaction) LocationIDs() []string {
	ids := make([]string, 0, len(t.Breakdown.Locations))
	for _, l := range t.Breakdown.Locations {
		ids = append(ids, l.LocationID)
	}
	return ids
}
