package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la revisión de una ubicación por el super-admin.
const (
	LocationReviewPending  = "pending"
	LocationReviewApproved = "approved"
	LocationReviewRejected = "rejected"
)

// LocationVerification registro de revisión por ubicación pagada.
// Se crea al verificarse el pago; approved y rejected son terminales.
type LocationVerification struct {
	ID                 string
	LocationID         string
	OrganizationID     string
	OrganizationName   string
	LocationType       string
	Address            Address
	Gallery            Gallery
	PaymentStatus      string // paid
	PaymentAmount      decimal.Decimal
	TransactionID      string
	VerificationStatus string
	ReviewedBy         string
	ReviewedAt         *time.Time
	Reason             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
