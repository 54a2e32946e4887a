package dto

// StaffLoginRequest login del agente de campo.
type StaffLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// StaffUserResponse datos públicos del agente.
type StaffUserResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// StaffLoginResponse token mock más el usuario.
type StaffLoginResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	User    StaffUserResponse `json:"user"`
}

// StaffVerifyResponse resultado de validar un token de staff.
type StaffVerifyResponse struct {
	Success bool              `json:"success"`
	Valid   bool              `json:"valid"`
	User    StaffUserResponse `json:"user"`
}
