package memory

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var (
	_ repository.VerificationRepository         = (*VerificationRepo)(nil)
	_ repository.LocationVerificationRepository = (*LocationVerificationRepo)(nil)
)

// VerificationRepo cuestionarios de campo.
type VerificationRepo struct{ t *table[entity.VerificationData] }

func NewVerificationRepository() *VerificationRepo {
	t := newTable(func(v *entity.VerificationData) string { return v.ID })
	t.cloneFn = func(v entity.VerificationData) entity.VerificationData {
		v.AuditTrail = append([]entity.AuditEntry(nil), v.AuditTrail...)
		v.TransportationCost.Legs = append([]entity.JourneyLeg(nil), v.TransportationCost.Legs...)
		return v
	}
	return &VerificationRepo{t: t}
}

func (r *VerificationRepo) Create(ctx context.Context, v *entity.VerificationData) error {
	return r.t.create(ctx, v)
}

func (r *VerificationRepo) GetByID(ctx context.Context, id string) (*entity.VerificationData, error) {
	return r.t.get(ctx, id)
}

func (r *VerificationRepo) Update(ctx context.Context, v *entity.VerificationData) error {
	return r.t.update(ctx, v)
}

func (r *VerificationRepo) List(_ context.Context, f repository.VerificationFilter) ([]*entity.VerificationData, error) {
	all := r.t.listReverse(func(v *entity.VerificationData) bool {
		return (f.Status == "" || v.Status == f.Status) &&
			(f.AgentID == "" || v.AgentID == f.AgentID) &&
			(f.OrganizationID == "" || v.OrganizationID == f.OrganizationID)
	})
	return paginate(all, f.Limit, f.Offset), nil
}

func (r *VerificationRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

// LocationVerificationRepo cola de revisión de ubicaciones.
type LocationVerificationRepo struct{ t *table[entity.LocationVerification] }

func NewLocationVerificationRepository() *LocationVerificationRepo {
	return &LocationVerificationRepo{t: newTable(func(v *entity.LocationVerification) string { return v.ID })}
}

func (r *LocationVerificationRepo) Create(ctx context.Context, v *entity.LocationVerification) error {
	return r.t.create(ctx, v)
}

func (r *LocationVerificationRepo) GetByID(ctx context.Context, id string) (*entity.LocationVerification, error) {
	return r.t.get(ctx, id)
}

func (r *LocationVerificationRepo) GetByLocation(_ context.Context, locationID string) (*entity.LocationVerification, error) {
	found := r.t.listReverse(func(v *entity.LocationVerification) bool { return v.LocationID == locationID })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *LocationVerificationRepo) Update(ctx context.Context, v *entity.LocationVerification) error {
	return r.t.update(ctx, v)
}

func (r *LocationVerificationRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.LocationVerification, error) {
	all := r.t.listReverse(func(v *entity.LocationVerification) bool {
		return status == "" || v.VerificationStatus == status
	})
	return paginate(all, limit, offset), nil
}
