package dto

import (
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// VerificationRequest alta o edición de un borrador de verificación de campo.
// Las fotos y el itinerario se guardan tal cual los reporta el agente.
type VerificationRequest struct {
	OrganizationID     string                    `json:"organizationId" validate:"required"`
	OrganizationName   string                    `json:"organizationName"`
	ContactPerson      string                    `json:"contactPerson"`
	ContactPhone       string                    `json:"contactPhone"`
	Address            AddressDTO                `json:"address"`
	Notes              string                    `json:"notes"`
	BuildingPictures   entity.BuildingPictures   `json:"buildingPictures"`
	TransportationCost entity.TransportationCost `json:"transportationCost"`
}

// ReviewRequest decisión del super-admin.
type ReviewRequest struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments"`
}

// AssignRoleRequest concede o retira el permiso data_verification.
type AssignRoleRequest struct {
	Assign bool `json:"assign"`
}

// AssignRoleResponse estado final del permiso.
type AssignRoleResponse struct {
	UserID           string `json:"userId"`
	DataVerification bool   `json:"dataVerification"`
}

// VerificationResponse cuestionario completo con su historial.
type VerificationResponse struct {
	ID                 string                    `json:"id"`
	OrganizationID     string                    `json:"organizationId"`
	OrganizationName   string                    `json:"organizationName"`
	AgentID            string                    `json:"agentId"`
	ContactPerson      string                    `json:"contactPerson"`
	ContactPhone       string                    `json:"contactPhone"`
	Address            AddressDTO                `json:"address"`
	Notes              string                    `json:"notes"`
	BuildingPictures   entity.BuildingPictures   `json:"buildingPictures"`
	TransportationCost entity.TransportationCost `json:"transportationCost"`
	Status             string                    `json:"status"`
	Comments           string                    `json:"comments,omitempty"`
	ReviewedBy         string                    `json:"reviewedBy,omitempty"`
	ReviewedAt         *time.Time                `json:"reviewedAt,omitempty"`
	SubmittedAt        *time.Time                `json:"submittedAt,omitempty"`
	AuditTrail         []entity.AuditEntry       `json:"auditTrail"`
	CreatedAt          time.Time                 `json:"createdAt"`
	UpdatedAt          time.Time                 `json:"updatedAt"`
}

// VerificationListRequest filtros del listado.
type VerificationListRequest struct {
	PageRequest
	Status         string `query:"status" validate:"omitempty,oneof=draft submitted approved rejected"`
	OrganizationID string `query:"organizationId"`
}

// LocationVerificationResponse elemento de la cola de revisión de ubicaciones.
type LocationVerificationResponse struct {
	ID                 string     `json:"id"`
	LocationID         string     `json:"locationId"`
	OrganizationID     string     `json:"organizationId"`
	OrganizationName   string     `json:"organizationName,omitempty"`
	LocationType       string     `json:"locationType"`
	Address            AddressDTO `json:"address"`
	Gallery            GalleryDTO `json:"gallery"`
	PaymentStatus      string     `json:"paymentStatus"`
	PaymentAmount      string     `json:"paymentAmount"`
	TransactionID      string     `json:"transactionId"`
	VerificationStatus string     `json:"verificationStatus"`
	ReviewedBy         string     `json:"reviewedBy,omitempty"`
	ReviewedAt         *time.Time `json:"reviewedAt,omitempty"`
	Reason             string     `json:"reason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// RejectLocationRequest motivo del rechazo.
type RejectLocationRequest struct {
	Reason string `json:"reason" validate:"required"`
}
