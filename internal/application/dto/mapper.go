package dto

import (
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/pricing"
)

// ToAddress convierte la dirección del request a entidad.
func (a AddressDTO) ToAddress() entity.Address {
	return entity.Address{
		Country:     a.Country,
		State:       a.State,
		LGA:         a.LGA,
		City:        a.City,
		CityRegion:  a.CityRegion,
		HouseNumber: a.HouseNumber,
		Street:      a.Street,
		Landmark:    a.Landmark,
	}
}

// FromAddress convierte la dirección de la entidad a DTO.
func FromAddress(a entity.Address) AddressDTO {
	return AddressDTO{
		Country:     a.Country,
		State:       a.State,
		LGA:         a.LGA,
		City:        a.City,
		CityRegion:  a.CityRegion,
		HouseNumber: a.HouseNumber,
		Street:      a.Street,
		Landmark:    a.Landmark,
	}
}

func fromGallery(g entity.Gallery) GalleryDTO {
	out := GalleryDTO{Images: g.Images, Videos: g.Videos}
	if out.Images == nil {
		out.Images = []string{}
	}
	if out.Videos == nil {
		out.Videos = []string{}
	}
	return out
}

// FromLocation convierte una ubicación a respuesta; index es su posición en el perfil.
func FromLocation(l entity.LocationData, index int) LocationResponse {
	return LocationResponse{
		ID:                 l.ID,
		Index:              index,
		LocationType:       l.LocationType,
		Address:            FromAddress(l.Address),
		CityRegionFee:      l.CityRegionFee,
		FeeResolved:        l.FeeResolved,
		Gallery:            fromGallery(l.Gallery),
		PaymentStatus:      l.PaymentStatus,
		VerificationStatus: l.VerificationStatus,
	}
}

// FromLocations convierte la lista en orden.
func FromLocations(locs []entity.LocationData) []LocationResponse {
	out := make([]LocationResponse, 0, len(locs))
	for i, l := range locs {
		out = append(out, FromLocation(l, i))
	}
	return out
}

// FromBreakdown arma la respuesta de precios de un desglose.
func FromBreakdown(b entity.PaymentBreakdown, currency string) PricingResponse {
	lines := make([]LocationFeeDTO, 0, len(b.Locations))
	for _, l := range b.Locations {
		lines = append(lines, LocationFeeDTO{
			LocationID:   l.LocationID,
			LocationType: l.LocationType,
			City:         l.City,
			CityRegion:   l.CityRegion,
			Fee:          l.Fee,
		})
	}
	return PricingResponse{
		PackageAmount: b.PackageAmount,
		LocationTotal: b.LocationTotal,
		TotalAmount:   pricing.Total(b),
		Currency:      currency,
		Locations:     lines,
	}
}

// FromTransaction vista de auditoría de una transacción.
func FromTransaction(t *entity.PaymentTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    t.TransactionID,
		Kind:             t.Kind,
		Amount:           t.Amount,
		Currency:         t.Currency,
		Status:           t.Status,
		Description:      t.Description,
		Breakdown:        FromBreakdown(t.Breakdown, t.Currency),
		AuthorizationURL: t.AuthorizationURL,
		VerifiedAt:       t.VerifiedAt,
		CreatedAt:        t.CreatedAt,
	}
}

// FromVerification convierte el cuestionario a respuesta.
func FromVerification(v *entity.VerificationData) VerificationResponse {
	trail := v.AuditTrail
	if trail == nil {
		trail = []entity.AuditEntry{}
	}
	return VerificationResponse{
		ID:                 v.ID,
		OrganizationID:     v.OrganizationID,
		OrganizationName:   v.OrganizationName,
		AgentID:            v.AgentID,
		ContactPerson:      v.ContactPerson,
		ContactPhone:       v.ContactPhone,
		Address:            FromAddress(v.Address),
		Notes:              v.Notes,
		BuildingPictures:   v.BuildingPictures,
		TransportationCost: v.TransportationCost,
		Status:             v.Status,
		Comments:           v.Comments,
		ReviewedBy:         v.ReviewedBy,
		ReviewedAt:         v.ReviewedAt,
		SubmittedAt:        v.SubmittedAt,
		AuditTrail:         trail,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

// FromLocationVerification convierte un elemento de la cola de revisión.
func FromLocationVerification(v *entity.LocationVerification) LocationVerificationResponse {
	return LocationVerificationResponse{
		ID:                 v.ID,
		LocationID:         v.LocationID,
		OrganizationID:     v.OrganizationID,
		OrganizationName:   v.OrganizationName,
		LocationType:       v.LocationType,
		Address:            FromAddress(v.Address),
		Gallery:            fromGallery(v.Gallery),
		PaymentStatus:      v.PaymentStatus,
		PaymentAmount:      v.PaymentAmount.StringFixed(2),
		TransactionID:      v.TransactionID,
		VerificationStatus: v.VerificationStatus,
		ReviewedBy:         v.ReviewedBy,
		ReviewedAt:         v.ReviewedAt,
		Reason:             v.Reason,
		CreatedAt:          v.CreatedAt,
	}
}

// FromStaff datos públicos del agente.
func FromStaff(u *entity.StaffUser) StaffUserResponse {
	perms := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		perms = append(perms, string(p))
	}
	return StaffUserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, Permissions: perms}
}
