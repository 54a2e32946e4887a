package entity

import "time"

// Roles de la plataforma. super_admin revisa; admin administra su organización;
// staff es el agente de campo; user es el usuario final.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
	RoleUser       = "user"
)

// Permission capacidad puntual que se concede por rol o por usuario.
type Permission string

const (
	PermDataVerification   Permission = "data_verification"
	PermReviewVerification Permission = "review_verification"
	PermManageCatalog      Permission = "manage_catalog"
	PermManagePackages     Permission = "manage_packages"
	PermManageCodes        Permission = "manage_codes"
	PermOnboarding         Permission = "onboarding"
	PermPayments           Permission = "payments"
)

// RolePermissionTable permisos implícitos de cada rol.
// data_verification nunca es implícito: se asigna por usuario.
var RolePermissionTable = map[string][]Permission{
	RoleSuperAdmin: {PermReviewVerification, PermManageCatalog, PermManagePackages, PermManageCodes},
	RoleAdmin:      {PermOnboarding, PermPayments, PermManageCodes},
	RoleUser:       {PermOnboarding, PermPayments},
	RoleStaff:      {},
}

// RoleAllows informa si el rol concede p sin asignación explícita.
func RoleAllows(role string, p Permission) bool {
	for _, granted := range RolePermissionTable[role] {
		if granted == p {
			return true
		}
	}
	return false
}

// StaffUser agente de campo (o usuario con capacidades asignadas).
type StaffUser struct {
	ID          string
	Email       string
	Name        string
	Role        string
	Permissions []Permission
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Has informa si el usuario tiene p por rol o por asignación.
func (u *StaffUser) Has(p Permission) bool {
	if u == nil {
		return false
	}
	if RoleAllows(u.Role, p) {
		return true
	}
	for _, granted := range u.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// SetPermission concede o retira p; idempotente.
func (u *StaffUser) SetPermission(p Permission, on bool) {
	out := u.Permissions[:0]
	for _, granted := range u.Permissions {
		if granted != p {
			out = append(out, granted)
		}
	}
	if on {
		out = append(out, p)
	}
	u.Permissions = out
}
