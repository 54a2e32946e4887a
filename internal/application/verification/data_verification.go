// Package verification cubre la verificación de campo de organizaciones y la
// revisión de ubicaciones pagadas por parte del super-admin.
package verification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/workflow"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
)

// Acciones registradas en el historial.
const (
	ActionCreated   = "created"
	ActionSubmitted = "submitted"
	ActionReviewed  = "reviewed"
)

// DataVerificationService cuestionario del agente de campo y su revisión.
type DataVerificationService struct {
	repo     repository.VerificationRepository
	staff    repository.StaffRepository
	profiles repository.ProfileRepository
	metrics  ports.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewDataVerificationService construye el servicio. Con profiles, la revisión
// propaga el resultado al perfil de la organización.
func NewDataVerificationService(
	repo repository.VerificationRepository,
	staff repository.StaffRepository,
	profiles repository.ProfileRepository,
	metrics ports.Metrics,
	log *logger.Logger,
) *DataVerificationService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &DataVerificationService{repo: repo, staff: staff, profiles: profiles, metrics: metrics, log: log.Named("data_verification"), now: time.Now}
}

// CreateVerification guarda un borrador. Fotos e itinerario se guardan sin cálculo alguno.
func (s *DataVerificationService) CreateVerification(ctx context.Context, agentID string, in dto.VerificationRequest) (*dto.VerificationResponse, error) {
	if strings.TrimSpace(in.OrganizationID) == "" {
		return nil, domain.Validation("organizationId is required")
	}
	now := s.now()
	v := &entity.VerificationData{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		Status:    entity.VerificationDraft,
		CreatedAt: now,
	}
	apply(v, in)
	v.UpdatedAt = now
	v.AuditTrail = []entity.AuditEntry{{
		Actor: agentID, Action: ActionCreated, ToStatus: entity.VerificationDraft, At: now,
	}}
	if err := s.repo.Create(ctx, v); err != nil {
		s.log.Error().Err(err).Str("agent_id", agentID).Msg("create verification")
		return nil, domain.Internal(err, "create verification")
	}
	s.log.Info().Str("verification_id", v.ID).Str("organization_id", v.OrganizationID).Msg("verification draft created")
	out := dto.FromVerification(v)
	return &out, nil
}

// UpdateDraft edita un borrador propio.
func (s *DataVerificationService) UpdateDraft(ctx context.Context, agentID, id string, in dto.VerificationRequest) (*dto.VerificationResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.AgentID != agentID {
		return nil, domain.Forbidden("verification belongs to another agent")
	}
	if v.Status != entity.VerificationDraft {
		return nil, domain.Conflict("only drafts can be edited (status %s)", v.Status)
	}
	if strings.TrimSpace(in.OrganizationID) == "" {
		return nil, domain.Validation("organizationId is required")
	}
	apply(v, in)
	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, domain.Internal(err, "update verification")
	}
	out := dto.FromVerification(v)
	return &out, nil
}

// SubmitVerification draft -> submitted. Exige las siete evidencias.
func (s *DataVerificationService) SubmitVerification(ctx context.Context, agentID, id string) (*dto.VerificationResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.AgentID != agentID {
		return nil, domain.Forbidden("verification belongs to another agent")
	}
	if err := workflow.CheckVerification(v.Status, entity.VerificationSubmitted); err != nil {
		return nil, domain.Conflict("%s", err.Error())
	}
	if missing := v.BuildingPictures.Missing(); len(missing) > 0 {
		return nil, domain.Validation("buildingPictures missing: %s", strings.Join(missing, ", "))
	}
	now := s.now()
	s.transition(v, agentID, ActionSubmitted, entity.VerificationSubmitted, "", now)
	v.SubmittedAt = &now
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, domain.Internal(err, "submit verification")
	}
	s.log.Info().Str("verification_id", id).Msg("verification submitted")
	out := dto.FromVerification(v)
	return &out, nil
}

// ReviewVerification submitted -> approved|rejected. Agrega exactamente una entrada al historial.
func (s *DataVerificationService) ReviewVerification(ctx context.Context, reviewerID, id string, in dto.ReviewRequest) (*dto.VerificationResponse, error) {
	if !workflow.ReviewDecisionValid(in.Status) {
		return nil, domain.Validation("status must be approved or rejected")
	}
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := workflow.CheckVerification(v.Status, in.Status); err != nil {
		return nil, domain.Conflict("%s", err.Error())
	}
	now := s.now()
	s.transition(v, reviewerID, ActionReviewed, in.Status, in.Comments, now)
	v.Comments = in.Comments
	v.ReviewedBy = reviewerID
	v.ReviewedAt = &now
	// El perfil va antes que la revisión; si falla, el cuestionario sigue en submitted.
	if err := s.syncOrganization(ctx, v.OrganizationID, in.Status); err != nil {
		s.log.Error().Err(err).Str("verification_id", id).Msg("sync organization")
		return nil, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, domain.Internal(err, "review verification")
	}
	s.metrics.ObserveReview("data_verification", in.Status)
	s.log.Info().Str("verification_id", id).Str("status", in.Status).Str("reviewer", reviewerID).Msg("verification reviewed")
	out := dto.FromVerification(v)
	return &out, nil
}

// AssignRole concede o retira el permiso data_verification. Es idempotente.
func (s *DataVerificationService) AssignRole(ctx context.Context, userID string, in dto.AssignRoleRequest) (*dto.AssignRoleResponse, error) {
	u, err := s.staff.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, "load user")
	}
	if u == nil {
		return nil, domain.NotFound("user %s not found", userID)
	}
	u.SetPermission(entity.PermDataVerification, in.Assign)
	u.UpdatedAt = s.now()
	if err := s.staff.Update(ctx, u); err != nil {
		return nil, domain.Internal(err, "update user")
	}
	s.log.Info().Str("user_id", userID).Bool("assign", in.Assign).Msg("data_verification permission changed")
	return &dto.AssignRoleResponse{UserID: userID, DataVerification: u.Has(entity.PermDataVerification)}, nil
}

// GetVerification cuestionario por id; agentID vacío lee cualquiera (super-admin).
func (s *DataVerificationService) GetVerification(ctx context.Context, agentID, id string) (*dto.VerificationResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if agentID != "" && v.AgentID != agentID {
		return nil, domain.Forbidden("verification belongs to another agent")
	}
	out := dto.FromVerification(v)
	return &out, nil
}

// ListVerifications listado filtrado; agentID vacío lista todos (super-admin).
func (s *DataVerificationService) ListVerifications(ctx context.Context, agentID string, in dto.VerificationListRequest) ([]dto.VerificationResponse, error) {
	in.DefaultPage()
	list, err := s.repo.List(ctx, repository.VerificationFilter{
		Status:         in.Status,
		AgentID:        agentID,
		OrganizationID: in.OrganizationID,
		Limit:          in.Limit,
		Offset:         in.Offset,
	})
	if err != nil {
		return nil, domain.Internal(err, "list verifications")
	}
	out := make([]dto.VerificationResponse, 0, len(list))
	for _, v := range list {
		out = append(out, dto.FromVerification(v))
	}
	return out, nil
}

// DeleteVerification borrado definitivo (solo super-admin).
func (s *DataVerificationService) DeleteVerification(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.Internal(err, "delete verification")
	}
	s.log.Info().Str("verification_id", id).Msg("verification deleted")
	return nil
}

// syncOrganization approved deja el perfil verified; rejected solo cierra la verificación
// de la organización. Un perfil inexistente o ya cerrado no cambia.
func (s *DataVerificationService) syncOrganization(ctx context.Context, organizationID, decision string) error {
	if s.profiles == nil {
		return nil
	}
	p, err := s.profiles.GetByOrganization(ctx, organizationID)
	if err != nil {
		return domain.Internal(err, "load profile")
	}
	if p == nil {
		return nil
	}
	profileStatus, orgStatus := "", entity.OrgVerificationRejected
	if decision == entity.VerificationApproved {
		profileStatus, orgStatus = entity.ProfileVerified, entity.OrgVerificationVerified
	}
	if err := workflow.CheckOrganization(p.OrganizationVerification, orgStatus); err != nil {
		s.log.Warn().Str("organization_id", organizationID).Str("from", p.OrganizationVerification).Msg("organization status unchanged")
		return nil
	}
	if err := s.profiles.SetVerification(ctx, organizationID, profileStatus, orgStatus); err != nil {
		return domain.Internal(err, "update organization verification")
	}
	return nil
}

func (s *DataVerificationService) load(ctx context.Context, id string) (*entity.VerificationData, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load verification")
	}
	if v == nil {
		return nil, domain.NotFound("verification %s not found", id)
	}
	return v, nil
}

func (s *DataVerificationService) transition(v *entity.VerificationData, actor, action, to, comments string, at time.Time) {
	v.AuditTrail = append(v.AuditTrail, entity.AuditEntry{
		Actor:      actor,
		Action:     action,
		FromStatus: v.Status,
		ToStatus:   to,
		Comments:   comments,
		At:         at,
	})
	v.Status = to
	v.UpdatedAt = at
}

func apply(v *entity.VerificationData, in dto.VerificationRequest) {
	v.OrganizationID = in.OrganizationID
	v.OrganizationName = in.OrganizationName
	v.ContactPerson = in.ContactPerson
	v.ContactPhone = in.ContactPhone
	v.Address = in.Address.ToAddress()
	v.Notes = in.Notes
	v.BuildingPictures = in.BuildingPictures
	v.TransportationCost = in.TransportationCost
}
