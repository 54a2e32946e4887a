package workflow

import (
	"errors"
	"fmt"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

// ErrInvalidTransition cambio de estado no permitido por la máquina de estados.
var ErrInvalidTransition = errors.New("transición de estado inválida")

type machine map[string][]string

func (m machine) check(name, from, to string) error {
	for _, allowed := range m[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %s -> %s", ErrInvalidTransition, name, from, to)
}

// draft -> submitted -> {approved | rejected}; los dos últimos son terminales.
var verificationMachine = machine{
	entity.VerificationDraft:     {entity.VerificationSubmitted},
	entity.VerificationSubmitted: {entity.VerificationApproved, entity.VerificationRejected},
}

// not_started -> in_progress -> {verified | rejected}.
var organizationMachine = machine{
	entity.OrgVerificationNotStarted: {entity.OrgVerificationInProgress},
	entity.OrgVerificationInProgress: {entity.OrgVerificationVerified, entity.OrgVerificationRejected},
}

var locationReviewMachine = machine{
	entity.LocationReviewPending: {entity.LocationReviewApproved, entity.LocationReviewRejected},
}

var paymentMachine = machine{
	entity.PaymentPending: {entity.PaymentSuccessful, entity.PaymentFailed},
}

// CheckVerification valida un cambio de estado del cuestionario de campo.
func CheckVerification(from, to string) error {
	return verificationMachine.check("verification", from, to)
}

// CheckOrganization valida un cambio en la verificación de la organización.
func CheckOrganization(from, to string) error {
	if from == "" {
		from = entity.OrgVerificationNotStarted
	}
	return organizationMachine.check("organization", from, to)
}

// CheckLocationReview valida la revisión de una ubicación pagada.
func CheckLocationReview(from, to string) error {
	return locationReviewMachine.check("location_verification", from, to)
}

// CheckPayment valida el cierre de una transacción.
func CheckPayment(from, to string) error {
	return paymentMachine.check("payment", from, to)
}

// ReviewDecisionValid el revisor solo puede aprobar o rechazar.
func ReviewDecisionValid(status string) bool {
	return status == entity.VerificationApproved || status == entity.VerificationRejected
}
