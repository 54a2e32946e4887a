package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del cuestionario de verificación de campo.
const (
	VerificationDraft     = "draft"
	VerificationSubmitted = "submitted"
	VerificationApproved  = "approved"
	VerificationRejected  = "rejected"
)

// BuildingPictures las siete evidencias obligatorias que toma el agente de campo.
type BuildingPictures struct {
	FrontView          string `json:"front_view"`
	StreetPicture      string `json:"street_picture"`
	AgentInFront       string `json:"agent_in_front"`
	WhatsAppLocation   string `json:"whatsapp_location"`
	InsideOrganization string `json:"inside_organization"`
	WithStaff          string `json:"with_staff"`
	NeighborVideo      string `json:"neighbor_video"`
}

// Missing devuelve los nombres JSON de las evidencias vacías.
func (b BuildingPictures) Missing() []string {
	fields := []struct {
		name  string
		value string
	}{
		{"front_view", b.FrontView},
		{"street_picture", b.StreetPicture},
		{"agent_in_front", b.AgentInFront},
		{"whatsapp_location", b.WhatsAppLocation},
		{"inside_organization", b.InsideOrganization},
		{"with_staff", b.WithStaff},
		{"neighbor_video", b.NeighborVideo},
	}
	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// JourneyLeg tramo del recorrido del agente hasta la organización.
type JourneyLeg struct {
	StartPoint      string          `json:"start_point"`
	Time            string          `json:"time"`
	NextDestination string          `json:"next_destination"`
	FareSpent       decimal.Decimal `json:"fare_spent"`
	TimeSpent       string          `json:"time_spent"`
}

// ReturnTrip resumen del costo del regreso con su recibo.
type ReturnTrip struct {
	TotalCost  decimal.Decimal `json:"total_cost"`
	Summary    string          `json:"summary"`
	ReceiptURL string          `json:"receipt_url"`
}

// TransportationCost itinerario tal como lo reporta el agente; no se recalcula nada.
type TransportationCost struct {
	Legs             []JourneyLeg    `json:"legs"`
	FinalDestination string          `json:"final_destination"`
	FinalFare        decimal.Decimal `json:"final_fare"`
	FinalTime        string          `json:"final_time"`
	TotalJourneyTime string          `json:"total_journey_time"`
	ReturnTrip       ReturnTrip      `json:"return_trip"`
}

// AuditEntry un cambio de estado del cuestionario.
type AuditEntry struct {
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Comments   string    `json:"comments,omitempty"`
	At         time.Time `json:"at"`
}

// VerificationData cuestionario de verificación de campo de una organización.
type VerificationData struct {
	ID                 string
	OrganizationID     string
	OrganizationName   string
	AgentID            string
	ContactPerson      string
	ContactPhone       string
	Address            Address
	Notes              string
	BuildingPictures   BuildingPictures
	TransportationCost TransportationCost
	Status             string
	Comments           string
	ReviewedBy         string
	ReviewedAt         *time.Time
	SubmittedAt        *time.Time
	AuditTrail         []AuditEntry
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
