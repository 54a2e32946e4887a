// Package workflow define los pasos del asistente de onboarding y las
// transiciones permitidas de cada entidad con estado de verificación.
package workflow

import "github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"

// Pasos del asistente, en el orden en que el usuario los recorre.
const (
	StepPackage         = "package"
	StepProfile         = "profile"
	StepLocations       = "locations"
	StepLocationPayment = "location-payment"
	StepPayment         = "payment"
)

// NextAfterProfile paso siguiente tras guardar el perfil.
// Un perfil privado no registra ubicaciones y pasa directo al pago.
func NextAfterProfile(p *entity.OrganizationProfile) string {
	if p != nil && p.IsPublicProfile {
		return StepLocations
	}
	return StepPayment
}

// NextAfterLocations paso siguiente tras cargar ubicaciones.
// El pago de ubicaciones solo aparece para perfiles verificados con ubicaciones pendientes.
func NextAfterLocations(p *entity.OrganizationProfile) string {
	if LocationPaymentVisible(p) && len(p.UnpaidLocations()) > 0 {
		return StepLocationPayment
	}
	return StepPayment
}

// LocationPaymentVisible compuerta del paso de pago de ubicaciones.
func LocationPaymentVisible(p *entity.OrganizationProfile) bool {
	return p.IsVerified()
}
