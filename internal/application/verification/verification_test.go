package verification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/verification"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/memory"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullPictures() entity.BuildingPictures {
	return entity.BuildingPictures{
		FrontView:          "https://cdn.example.com/front.jpg",
		StreetPicture:      "https://cdn.example.com/street.jpg",
		AgentInFront:       "https://cdn.example.com/agent.jpg",
		WhatsAppLocation:   "https://cdn.example.com/wa.jpg",
		InsideOrganization: "https://cdn.example.com/inside.jpg",
		WithStaff:          "https://cdn.example.com/staff.jpg",
		NeighborVideo:      "https://cdn.example.com/neighbor.mp4",
	}
}

func newDataService() (*verification.DataVerificationService, *memory.StaffRepo) {
	staff := memory.NewStaffRepository(memory.DefaultStaff()...)
	return verification.NewDataVerificationService(memory.NewVerificationRepository(), staff, nil, nil, logger.Nop()), staff
}

func TestDataVerification_CicloCompleto(t *testing.T) {
	svc, _ := newDataService()
	ctx := context.Background()

	created, err := svc.CreateVerification(ctx, "1", dto.VerificationRequest{
		OrganizationID: "org-1",
		TransportationCost: entity.TransportationCost{
			Legs:             []entity.JourneyLeg{{StartPoint: "Office", NextDestination: "Allen", FareSpent: decimal.NewFromInt(300)}},
			FinalDestination: "Allen Avenue",
			FinalFare:        decimal.NewFromInt(200),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationDraft, created.Status)
	assert.Len(t, created.AuditTrail, 1)

	_, err = svc.SubmitVerification(ctx, "1", created.ID)
	require.Error(t, err, "sin las siete fotos no se envía")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.UpdateDraft(ctx, "1", created.ID, dto.VerificationRequest{OrganizationID: "org-1", BuildingPictures: fullPictures()})
	require.NoError(t, err)
	submitted, err := svc.SubmitVerification(ctx, "1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationSubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	reviewed, err := svc.ReviewVerification(ctx, "admin-1", created.ID, dto.ReviewRequest{Status: entity.VerificationApproved, Comments: "ok"})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationApproved, reviewed.Status)
	assert.Equal(t, "admin-1", reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewedAt)
	require.Len(t, reviewed.AuditTrail, len(submitted.AuditTrail)+1, "la revisión agrega exactamente una entrada")
	last := reviewed.AuditTrail[len(reviewed.AuditTrail)-1]
	assert.Equal(t, entity.VerificationSubmitted, last.FromStatus)
	assert.Equal(t, entity.VerificationApproved, last.ToStatus)

	_, err = svc.ReviewVerification(ctx, "admin-1", created.ID, dto.ReviewRequest{Status: entity.VerificationRejected})
	assert.ErrorIs(t, err, domain.ErrConflict, "approved es terminal")
}

func TestDataVerification_RevisionSoloDeEnviados(t *testing.T) {
	svc, _ := newDataService()
	ctx := context.Background()
	created, err := svc.CreateVerification(ctx, "1", dto.VerificationRequest{OrganizationID: "org-1"})
	require.NoError(t, err)

	_, err = svc.ReviewVerification(ctx, "admin-1", created.ID, dto.ReviewRequest{Status: entity.VerificationApproved})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.ReviewVerification(ctx, "admin-1", created.ID, dto.ReviewRequest{Status: "submitted"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDataVerification_OtroAgenteNoEdita(t *testing.T) {
	svc, _ := newDataService()
	ctx := context.Background()
	created, err := svc.CreateVerification(ctx, "1", dto.VerificationRequest{OrganizationID: "org-1"})
	require.NoError(t, err)

	_, err = svc.UpdateDraft(ctx, "2", created.ID, dto.VerificationRequest{OrganizationID: "org-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAssignRole(t *testing.T) {
	svc, staff := newDataService()
	ctx := context.Background()

	out, err := svc.AssignRole(ctx, "2", dto.AssignRoleRequest{Assign: true})
	require.NoError(t, err)
	assert.True(t, out.DataVerification)
	out, err = svc.AssignRole(ctx, "2", dto.AssignRoleRequest{Assign: true})
	require.NoError(t, err)
	assert.True(t, out.DataVerification)

	u, err := staff.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, u.Permissions, 1)

	out, err = svc.AssignRole(ctx, "2", dto.AssignRoleRequest{Assign: false})
	require.NoError(t, err)
	assert.False(t, out.DataVerification)

	_, err = svc.AssignRole(ctx, "99", dto.AssignRoleRequest{Assign: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func TestLocationReview(t *testing.T) {
	ctx := context.Background()
	reviews := memory.NewLocationVerificationRepository()
	profiles := memory.NewProfileRepository()
	payments := memory.NewPaymentRepository()
	notifier := &recordingNotifier{}
	svc := verification.NewLocationReviewService(reviews, profiles, payments, notifier, nil, logger.Nop())

	require.NoError(t, profiles.AddLocation(ctx, &entity.LocationData{
		ID: "loc-a", OrganizationID: "org-1", PaymentStatus: entity.LocationPaid,
		VerificationStatus: entity.LocationPendingVerification,
	}))
	require.NoError(t, payments.Create(ctx, &entity.PaymentTransaction{
		TransactionID: "LOC-1", OrganizationID: "org-1", Status: entity.PaymentSuccessful,
		Payer: entity.Payer{Email: "owner@example.com"}, CreatedAt: time.Now(),
	}))
	require.NoError(t, reviews.Create(ctx, &entity.LocationVerification{
		ID: "lv-1", LocationID: "loc-a", OrganizationID: "org-1", TransactionID: "LOC-1",
		PaymentStatus: entity.LocationPaid, VerificationStatus: entity.LocationReviewPending,
	}))
	require.NoError(t, reviews.Create(ctx, &entity.LocationVerification{
		ID: "lv-2", LocationID: "loc-b", OrganizationID: "org-1",
		PaymentStatus: entity.LocationUnpaid, VerificationStatus: entity.LocationReviewPending,
	}))

	_, err := svc.Reject(ctx, "admin-1", "lv-1", " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := svc.Approve(ctx, "admin-1", "lv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.LocationReviewApproved, out.VerificationStatus)
	assert.Equal(t, "admin-1", out.ReviewedBy)

	loc, err := profiles.GetLocation(ctx, "loc-a")
	require.NoError(t, err)
	assert.Equal(t, entity.LocationApproved, loc.VerificationStatus)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "owner@example.com", notifier.sent[0].To)

	_, err = svc.Reject(ctx, "admin-1", "lv-1", "blurry photos")
	assert.ErrorIs(t, err, domain.ErrConflict, "approved es terminal")

	_, err = svc.Approve(ctx, "admin-1", "lv-2")
	assert.ErrorIs(t, err, domain.ErrConflict, "sin pago no se aprueba")

	pending, err := svc.List(ctx, entity.LocationReviewPending, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "lv-2", pending[0].ID)
}

func TestDataVerification_AprobacionVerificaElPerfil(t *testing.T) {
	staff := memory.NewStaffRepository(memory.DefaultStaff()...)
	profiles := memory.NewProfileRepository()
	ctx := context.Background()
	require.NoError(t, profiles.Upsert(ctx, &entity.OrganizationProfile{
		ID: "p-1", OrganizationID: "org-1", IsPublicProfile: true,
		VerificationStatus:       entity.ProfileUnverified,
		OrganizationVerification: entity.OrgVerificationInProgress,
	}))
	svc := verification.NewDataVerificationService(memory.NewVerificationRepository(), staff, profiles, nil, logger.Nop())

	created, err := svc.CreateVerification(ctx, "1", dto.VerificationRequest{OrganizationID: "org-1", BuildingPictures: fullPictures()})
	require.NoError(t, err)
	_, err = svc.SubmitVerification(ctx, "1", created.ID)
	require.NoError(t, err)
	_, err = svc.ReviewVerification(ctx, "admin-1", created.ID, dto.ReviewRequest{Status: entity.VerificationApproved})
	require.NoError(t, err)

	p, err := profiles.GetByOrganization(ctx, "org-1")
	require.NoError(t, err)
	assert.True(t, p.IsVerified())
	assert.Equal(t, entity.OrgVerificationVerified, p.OrganizationVerification)
}

func TestDataVerification_AgenteSoloLeeLosPropios(t *testing.T) {
	svc, _ := newDataService()
	ctx := context.Background()
	created, err := svc.CreateVerification(ctx, "1", dto.VerificationRequest{OrganizationID: "org-1"})
	require.NoError(t, err)

	own, err := svc.GetVerification(ctx, "1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, own.ID)

	_, err = svc.GetVerification(ctx, "2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	anyAgent, err := svc.GetVerification(ctx, "", created.ID)
	require.NoError(t, err, "sin agente se lee cualquiera")
	assert.Equal(t, "1", anyAgent.AgentID)

	_, err = svc.GetVerification(ctx, "1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// flakyProfiles falla SetVerification mientras failing sea true.
type flakyProfiles struct {
	*memory.ProfileRepo
	failing bool
}

func (p *flakyProfiles) SetVerification(ctx context.Context, organizationID, profileStatus, orgStatus string) error {
	if p.failing {
		return errors.New("connection reset")
	}
	return p.ProfileRepo.SetVerification(ctx, organizationID, profileStatus, orgStatus)
}

func TestDataVerification_FalloDelPerfilPermiteReintentar(t *testing.T) {
	ctx := context.Background()
	profiles := &flakyProfiles{ProfileRepo: memory.NewProfileRepository(), failing: true}
	require.NoError(t, profiles.Upsert(ctx, &entity.OrganizationProfile{
		ID: "p-1", OrganizationID: "org-1", IsPublicProfile: true,
		VerificationStatus:       entity.ProfileUnverified,
		OrganizationVerification: entity.OrgVerificationInProgress,
	}))
	repo := memory.NewVerificationRepository()
	svc := verification.NewDataVerificationService(repo, memory.NewStaffRepository(memory.DefaultStaff()...), profiles, nil, logger.Nop())

	created, err := svc.CreateVerification(ctx, "1", dto.VerificationRequest{OrganizationID: "org-1", BuildingPictures: fullPictures()})
	require.NoError(t, err)
	_, err = svc.SubmitVerification(ctx, "1", created.ID)
	require.NoError(t, err)

	_, err = svc.ReviewVerification(ctx, "admin-1", created.ID, dto.ReviewRequest{Status: entity.VerificationApproved})
	require.Error(t, err)
	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationSubmitted, stored.Status, "la revisión no queda grabada")

	profiles.failing = false
	reviewed, err := svc.ReviewVerification(ctx, "admin-1", created.ID, dto.ReviewRequest{Status: entity.VerificationApproved})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationApproved, reviewed.Status)

	p, err := profiles.GetByOrganization(ctx, "org-1")
	require.NoError(t, err)
	assert.True(t, p.IsVerified())
}
