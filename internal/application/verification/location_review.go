package verification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/workflow"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
)

// LocationReviewService cola de revisión de ubicaciones pagadas.
type LocationReviewService struct {
	reviews  repository.LocationVerificationRepository
	profiles repository.ProfileRepository
	payments repository.PaymentRepository
	notifier ports.Notifier
	metrics  ports.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewLocationReviewService construye el servicio.
func NewLocationReviewService(
	reviews repository.LocationVerificationRepository,
	profiles repository.ProfileRepository,
	payments repository.PaymentRepository,
	notifier ports.Notifier,
	metrics ports.Metrics,
	log *logger.Logger,
) *LocationReviewService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &LocationReviewService{
		reviews:  reviews,
		profiles: profiles,
		payments: payments,
		notifier: notifier,
		metrics:  metrics,
		log:      log.Named("location_review"),
		now:      time.Now,
	}
}

// List cola filtrada por estado (vacío = todos).
func (s *LocationReviewService) List(ctx context.Context, status string, page dto.PageRequest) ([]dto.LocationVerificationResponse, error) {
	switch status {
	case "", entity.LocationReviewPending, entity.LocationReviewApproved, entity.LocationReviewRejected:
	default:
		return nil, domain.Validation("status must be pending, approved or rejected")
	}
	page.DefaultPage()
	list, err := s.reviews.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Internal(err, "list location verifications")
	}
	out := make([]dto.LocationVerificationResponse, 0, len(list))
	for _, v := range list {
		out = append(out, dto.FromLocationVerification(v))
	}
	return out, nil
}

// Get elemento de la cola.
func (s *LocationReviewService) Get(ctx context.Context, id string) (*dto.LocationVerificationResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromLocationVerification(v)
	return &out, nil
}

// Approve aprueba una ubicación pagada y actualiza su estado.
func (s *LocationReviewService) Approve(ctx context.Context, actor, id string) (*dto.LocationVerificationResponse, error) {
	return s.decide(ctx, actor, id, entity.LocationReviewApproved, "")
}

// Reject rechaza una ubicación pagada; el motivo es obligatorio.
func (s *LocationReviewService) Reject(ctx context.Context, actor, id, reason string) (*dto.LocationVerificationResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.Validation("reason is required")
	}
	return s.decide(ctx, actor, id, entity.LocationReviewRejected, reason)
}

func (s *LocationReviewService) decide(ctx context.Context, actor, id, to, reason string) (*dto.LocationVerificationResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.PaymentStatus != entity.LocationPaid {
		return nil, domain.Conflict("location %s has not been paid", v.LocationID)
	}
	if err := workflow.CheckLocationReview(v.VerificationStatus, to); err != nil {
		return nil, domain.Conflict("%s", err.Error())
	}
	now := s.now()
	v.VerificationStatus = to
	v.ReviewedBy = actor
	v.ReviewedAt = &now
	v.Reason = reason
	v.UpdatedAt = now
	if err := s.reviews.Update(ctx, v); err != nil {
		return nil, domain.Internal(err, "update location verification")
	}

	locStatus := entity.LocationApproved
	if to == entity.LocationReviewRejected {
		locStatus = entity.LocationRejected
	}
	if err := s.profiles.SetLocationStatus(ctx, []string{v.LocationID}, "", locStatus); err != nil {
		return nil, domain.Internal(err, "update location status")
	}
	s.metrics.ObserveReview("location", to)
	s.log.Info().Str("location_verification_id", id).Str("status", to).Str("reviewer", actor).Msg("location reviewed")
	s.notify(ctx, v)

	out := dto.FromLocationVerification(v)
	return &out, nil
}

// notify avisa al pagador; un fallo de envío no revierte la revisión.
func (s *LocationReviewService) notify(ctx context.Context, v *entity.LocationVerification) {
	if s.notifier == nil || s.payments == nil {
		return
	}
	tx, err := s.payments.GetByTransactionID(ctx, v.TransactionID)
	if err != nil || tx == nil || tx.Payer.Email == "" {
		s.log.Warn().Str("transaction_id", v.TransactionID).Msg("no contact for location review notification")
		return
	}
	place := strings.TrimSpace(v.Address.Street + ", " + v.Address.CityRegion + ", " + v.Address.City)
	body := fmt.Sprintf("Your %s location (%s) verification was %s.", v.LocationType, strings.Trim(place, ", "), v.VerificationStatus)
	if v.Reason != "" {
		body += " Reason: " + v.Reason
	}
	err = s.notifier.Notify(ctx, ports.Notification{
		To:      tx.Payer.Email,
		Subject: "Location verification " + v.VerificationStatus,
		Body:    body,
	})
	if err != nil {
		s.log.Error().Err(err).Str("location_verification_id", v.ID).Msg("send notification")
	}
}

func (s *LocationReviewService) load(ctx context.Context, id string) (*entity.LocationVerification, error) {
	v, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, "load location verification")
	}
	if v == nil {
		return nil, domain.NotFound("location verification %s not found", id)
	}
	return v, nil
}
