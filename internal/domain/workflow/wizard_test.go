package workflow_test

import (
	"testing"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Perfil privado: el asistente salta las ubicaciones y va al pago.
func TestNextAfterProfile_PrivadoVaAlPago(t *testing.T) {
	p := &entity.OrganizationProfile{IsPublicProfile: false}
	assert.Equal(t, workflow.StepPayment, workflow.NextAfterProfile(p))
}

// Perfil público sin verificar: va a ubicaciones, nunca directo a location-payment.
func TestNextAfterProfile_PublicoNoVerificado(t *testing.T) {
	p := &entity.OrganizationProfile{IsPublicProfile: true, VerificationStatus: entity.ProfileUnverified}
	assert.Equal(t, workflow.StepLocations, workflow.NextAfterProfile(p))
	assert.False(t, workflow.LocationPaymentVisible(p))
}

func TestNextAfterLocations(t *testing.T) {
	unpaid := entity.LocationData{ID: "l1", PaymentStatus: entity.LocationUnpaid}
	paid := entity.LocationData{ID: "l2", PaymentStatus: entity.LocationPaid}

	cases := []struct {
		name    string
		profile *entity.OrganizationProfile
		want    string
	}{
		{"no verificado", &entity.OrganizationProfile{VerificationStatus: entity.ProfileUnverified, Locations: []entity.LocationData{unpaid}}, workflow.StepPayment},
		{"verificado con pendientes", &entity.OrganizationProfile{VerificationStatus: entity.ProfileVerified, Locations: []entity.LocationData{unpaid, paid}}, workflow.StepLocationPayment},
		{"verificado todo pagado", &entity.OrganizationProfile{VerificationStatus: entity.ProfileVerified, Locations: []entity.LocationData{paid}}, workflow.StepPayment},
		{"sin perfil", nil, workflow.StepPayment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, workflow.NextAfterLocations(tc.profile))
		})
	}
}

func TestTransitions(t *testing.T) {
	require.NoError(t, workflow.CheckVerification(entity.VerificationDraft, entity.VerificationSubmitted))
	require.NoError(t, workflow.CheckVerification(entity.VerificationSubmitted, entity.VerificationRejected))
	assert.ErrorIs(t, workflow.CheckVerification(entity.VerificationDraft, entity.VerificationApproved), workflow.ErrInvalidTransition)
	assert.ErrorIs(t, workflow.CheckVerification(entity.VerificationApproved, entity.VerificationRejected), workflow.ErrInvalidTransition)

	require.NoError(t, workflow.CheckOrganization("", entity.OrgVerificationInProgress))
	assert.ErrorIs(t, workflow.CheckOrganization(entity.OrgVerificationNotStarted, entity.OrgVerificationVerified), workflow.ErrInvalidTransition)

	require.NoError(t, workflow.CheckLocationReview(entity.LocationReviewPending, entity.LocationReviewApproved))
	assert.ErrorIs(t, workflow.CheckLocationReview(entity.LocationReviewRejected, entity.LocationReviewApproved), workflow.ErrInvalidTransition)

	require.NoError(t, workflow.CheckPayment(entity.PaymentPending, entity.PaymentFailed))
	assert.ErrorIs(t, workflow.CheckPayment(entity.PaymentSuccessful, entity.PaymentFailed), workflow.ErrInvalidTransition)
}
