package dto

// OrganizationRequest alta o edición de una organización; el backend guarda el registro.
type OrganizationRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	BusinessType string `json:"businessType,omitempty" validate:"omitempty,oneof=registered unregistered"`
	IndustryID   string `json:"industryId,omitempty"`
	CategoryID   string `json:"categoryId,omitempty"`
	Address      string `json:"address,omitempty"`
	Description  string `json:"description,omitempty"`
}

// OrganizationListRequest filtros que se reenvían tal cual al backend.
type OrganizationListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Status string `query:"status"`
}
