package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddressDTO dirección jerárquica de una ubicación.
type AddressDTO struct {
	Country     string `json:"country" validate:"required"`
	State       string `json:"state" validate:"required"`
	LGA         string `json:"lga" validate:"required"`
	City        string `json:"city" validate:"required"`
	CityRegion  string `json:"cityRegion" validate:"required"`
	HouseNumber string `json:"houseNumber"`
	Street      string `json:"street"`
	Landmark    string `json:"landmark"`
}

// GalleryDTO URLs de evidencias ya subidas.
type GalleryDTO struct {
	Images []string `json:"images" validate:"omitempty,dive,url"`
	Videos []string `json:"videos" validate:"omitempty,dive,url"`
}

// ProfileRequest upsert del perfil. IsPublicProfile ausente equivale a false.
type ProfileRequest struct {
	BusinessType    string `json:"businessType" validate:"required,oneof=registered unregistered"`
	IsPublicProfile *bool  `json:"isPublicProfile"`
}

// ProfileResponse perfil más el paso siguiente del asistente.
type ProfileResponse struct {
	ID                       string             `json:"id"`
	OrganizationID           string             `json:"organizationId"`
	BusinessType             string             `json:"businessType"`
	IsPublicProfile          bool               `json:"isPublicProfile"`
	VerificationStatus       string             `json:"verificationStatus"`
	OrganizationVerification string             `json:"organizationVerification"`
	CurrentStep              string             `json:"currentStep"`
	NextStep                 string             `json:"nextStep"`
	Locations                []LocationResponse `json:"locations"`
	UpdatedAt                time.Time          `json:"updatedAt"`
}

// LocationRequest alta de una ubicación. La tarifa nunca viene del cliente.
type LocationRequest struct {
	LocationType string     `json:"locationType" validate:"required,oneof=headquarters branch"`
	Address      AddressDTO `json:"address" validate:"required"`
	Gallery      GalleryDTO `json:"gallery"`
}

// LocationResponse ubicación con su tarifa resuelta.
type LocationResponse struct {
	ID                 string          `json:"id"`
	Index              int             `json:"index"`
	LocationType       string          `json:"locationType"`
	Address            AddressDTO      `json:"address"`
	CityRegionFee      decimal.Decimal `json:"cityRegionFee"`
	FeeResolved        bool            `json:"feeResolved"`
	Gallery            GalleryDTO      `json:"gallery"`
	PaymentStatus      string          `json:"paymentStatus"`
	VerificationStatus string          `json:"verificationStatus"`
}

// LocationsResponse ubicaciones más el paso siguiente.
type LocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
	NextStep  string             `json:"nextStep"`
}

// LocationPaymentViewResponse compuerta del paso de pago de ubicaciones.
// Visible=false implica Locations vacío.
type LocationPaymentViewResponse struct {
	Visible   bool                 `json:"visible"`
	Locations []LocationResponse   `json:"locations"`
	Pricing   *PricingResponse     `json:"pricing,omitempty"`
	Pending   *TransactionResponse `json:"pendingTransaction,omitempty"`
}
