package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de registro mercantil del negocio.
const (
	BusinessTypeRegistered   = "registered"
	BusinessTypeUnregistered = "unregistered"
)

// Estado de verificación del perfil (gatea el paso de pago de ubicaciones).
const (
	ProfileVerified   = "verified"
	ProfileUnverified = "unverified"
)

// Estados del proceso de verificación de la organización.
const (
	OrgVerificationNotStarted = "not_started"
	OrgVerificationInProgress = "in_progress"
	OrgVerificationVerified   = "verified"
	OrgVerificationRejected   = "rejected"
)

// Tipos de ubicación.
const (
	LocationHeadquarters = "headquarters"
	LocationBranch       = "branch"
)

// Estado de pago de la tarifa de una ubicación.
const (
	LocationUnpaid = "unpaid"
	LocationPaid   = "paid"
)

// Estado de verificación de una ubicación individual.
const (
	LocationVerificationNone    = "none"
	LocationPendingVerification = "pending_verification"
	LocationApproved            = "approved"
	LocationRejected            = "rejected"
)

// OrganizationProfile perfil público/privado de una organización durante el onboarding.
// Hay un único perfil por organización; se crea y actualiza por upsert.
type OrganizationProfile struct {
	ID                       string
	OrganizationID           string
	BusinessType             string
	IsPublicProfile          bool
	VerificationStatus       string // verified | unverified
	OrganizationVerification string // not_started | in_progress | verified | rejected
	CurrentStep              string
	Locations                []LocationData
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// IsVerified informa si el perfil ya superó la verificación.
func (p *OrganizationProfile) IsVerified() bool {
	return p != nil && p.VerificationStatus == ProfileVerified
}

// UnpaidLocations devuelve las ubicaciones cuya tarifa aún no se pagó, en orden.
func (p *OrganizationProfile) UnpaidLocations() []LocationData {
	if p == nil {
		return nil
	}
	out := make([]LocationData, 0, len(p.Locations))
	for _, l := range p.Locations {
		if l.PaymentStatus != LocationPaid {
			out = append(out, l)
		}
	}
	return out
}

// Address dirección jerárquica usada para resolver la tarifa.
type Address struct {
	Country     string `json:"country"`
	State       string `json:"state"`
	LGA         string `json:"lga"`
	City        string `json:"city"`
	CityRegion  string `json:"city_region"`
	HouseNumber string `json:"house_number,omitempty"`
	Street      string `json:"street,omitempty"`
	Landmark    string `json:"landmark,omitempty"`
}

// Gallery evidencias multimedia de la ubicación (URLs ya subidas al CDN).
type Gallery struct {
	Images []string `json:"images"`
	Videos []string `json:"videos"`
}

// LocationData sede o sucursal de la organización.
// CityRegionFee se obtiene de la tabla de tarifas; nunca lo ingresa el usuario.
type LocationData struct {
	ID                 string
	ProfileID          string
	OrganizationID     string
	Position           int
	LocationType       string
	Address            Address
	CityRegionFee      decimal.Decimal
	FeeResolved        bool
	Gallery            Gallery
	PaymentStatus      string
	VerificationStatus string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
