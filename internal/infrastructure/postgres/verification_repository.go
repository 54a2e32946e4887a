package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var (
	_ repository.VerificationRepository         = (*VerificationRepo)(nil)
	_ repository.LocationVerificationRepository = (*LocationVerificationRepo)(nil)
)

// VerificationRepo cuestionarios de campo.
type VerificationRepo struct {
	q Querier
}

func NewVerificationRepository(q Querier) *VerificationRepo {
	return &VerificationRepo{q: q}
}

const verificationColumns = `id, organization_id, organization_name, agent_id, contact_person, contact_phone, address, notes,
	building_pictures, transportation_cost, status, comments, reviewed_by, reviewed_at, submitted_at, audit_trail,
	created_at, updated_at`

type verificationDocs struct {
	address, pictures, transport, audit []byte
}

func encodeVerification(v *entity.VerificationData) (verificationDocs, error) {
	var d verificationDocs
	var err error
	if d.address, err = jsonb(v.Address); err != nil {
		return d, err
	}
	if d.pictures, err = jsonb(v.BuildingPictures); err != nil {
		return d, err
	}
	if d.transport, err = jsonb(v.TransportationCost); err != nil {
		return d, err
	}
	audit := v.AuditTrail
	if audit == nil {
		audit = []entity.AuditEntry{}
	}
	d.audit, err = jsonb(audit)
	return d, err
}

func (r *VerificationRepo) Create(ctx context.Context, v *entity.VerificationData) error {
	d, err := encodeVerification(v)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO verification_data (`+verificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		v.ID, v.OrganizationID, v.OrganizationName, v.AgentID, v.ContactPerson, v.ContactPhone, d.address, v.Notes,
		d.pictures, d.transport, v.Status, v.Comments, v.ReviewedBy, v.ReviewedAt, v.SubmittedAt, d.audit,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}
	return nil
}

func (r *VerificationRepo) GetByID(ctx context.Context, id string) (*entity.VerificationData, error) {
	v, err := scanVerification(r.q.QueryRow(ctx, `SELECT `+verificationColumns+` FROM verification_data WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get verification: %w", err)
	}
	return v, nil
}

func (r *VerificationRepo) Update(ctx context.Context, v *entity.VerificationData) error {
	d, err := encodeVerification(v)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		UPDATE verification_data SET organization_id = $2, organization_name = $3, contact_person = $4,
			contact_phone = $5, address = $6, notes = $7, building_pictures = $8, transportation_cost = $9,
			status = $10, comments = $11, reviewed_by = $12, reviewed_at = $13, submitted_at = $14,
			audit_trail = $15, updated_at = $16
		WHERE id = $1`,
		v.ID, v.OrganizationID, v.OrganizationName, v.ContactPerson, v.ContactPhone, d.address, v.Notes,
		d.pictures, d.transport, v.Status, v.Comments, v.ReviewedBy, v.ReviewedAt, v.SubmittedAt, d.audit, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update verification: %w", err)
	}
	return nil
}

// List filtros opcionales, más recientes primero.
func (r *VerificationRepo) List(ctx context.Context, f repository.VerificationFilter) ([]*entity.VerificationData, error) {
	var where []string
	var args []any
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("status", f.Status)
	add("agent_id", f.AgentID)
	add("organization_id", f.OrganizationID)

	sql := `SELECT ` + verificationColumns + ` FROM verification_data`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	sql += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	defer rows.Close()
	out := []*entity.VerificationData{}
	for rows.Next() {
		v, err := scanVerification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VerificationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM verification_data WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete verification: %w", err)
	}
	return nil
}

func scanVerification(row pgx.Row) (*entity.VerificationData, error) {
	var v entity.VerificationData
	var d verificationDocs
	if err := row.Scan(
		&v.ID, &v.OrganizationID, &v.OrganizationName, &v.AgentID, &v.ContactPerson, &v.ContactPhone, &d.address, &v.Notes,
		&d.pictures, &d.transport, &v.Status, &v.Comments, &v.ReviewedBy, &v.ReviewedAt, &v.SubmittedAt, &d.audit,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	for _, doc := range []struct {
		raw []byte
		dst any
	}{
		{d.address, &v.Address},
		{d.pictures, &v.BuildingPictures},
		{d.transport, &v.TransportationCost},
		{d.audit, &v.AuditTrail},
	} {
		if err := fromJSONB(doc.raw, doc.dst); err != nil {
			return nil, err
		}
	}
	return &v, nil
}

// LocationVerificationRepo cola de revisión de ubicaciones pagadas.
type LocationVerificationRepo struct {
	q Querier
}

func NewLocationVerificationRepository(q Querier) *LocationVerificationRepo {
	return &LocationVerificationRepo{q: q}
}

const locationReviewColumns = `id, location_id, organization_id, organization_name, location_type, address, gallery,
	payment_status, payment_amount, transaction_id, verification_status, reviewed_by, reviewed_at, reason,
	created_at, updated_at`

func (r *LocationVerificationRepo) Create(ctx context.Context, v *entity.LocationVerification) error {
	addr, err := jsonb(v.Address)
	if err != nil {
		return err
	}
	gallery, err := jsonb(v.Gallery)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO location_verifications (`+locationReviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		v.ID, v.LocationID, v.OrganizationID, v.OrganizationName, v.LocationType, addr, gallery,
		v.PaymentStatus, v.PaymentAmount, v.TransactionID, v.VerificationStatus, v.ReviewedBy, v.ReviewedAt, v.Reason,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location verification: %w", err)
	}
	return nil
}

func (r *LocationVerificationRepo) GetByID(ctx context.Context, id string) (*entity.LocationVerification, error) {
	return r.one(ctx, `SELECT `+locationReviewColumns+` FROM location_verifications WHERE id = $1`, id)
}

func (r *LocationVerificationRepo) GetByLocation(ctx context.Context, locationID string) (*entity.LocationVerification, error) {
	return r.one(ctx, `SELECT `+locationReviewColumns+` FROM location_verifications WHERE location_id = $1`, locationID)
}

// Update solo la decisión del revisor cambia.
func (r *LocationVerificationRepo) Update(ctx context.Context, v *entity.LocationVerification) error {
	_, err := r.q.Exec(ctx, `
		UPDATE location_verifications SET verification_status = $2, reviewed_by = $3, reviewed_at = $4,
			reason = $5, updated_at = $6
		WHERE id = $1`, v.ID, v.VerificationStatus, v.ReviewedBy, v.ReviewedAt, v.Reason, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update location verification: %w", err)
	}
	return nil
}

func (r *LocationVerificationRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.LocationVerification, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+locationReviewColumns+` FROM location_verifications
		WHERE ($1 = '' OR verification_status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list location verifications: %w", err)
	}
	defer rows.Close()
	out := []*entity.LocationVerification{}
	for rows.Next() {
		v, err := scanLocationReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location verification: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *LocationVerificationRepo) one(ctx context.Context, sql, arg string) (*entity.LocationVerification, error) {
	v, err := scanLocationReview(r.q.QueryRow(ctx, sql, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location verification: %w", err)
	}
	return v, nil
}

func scanLocationReview(row pgx.Row) (*entity.LocationVerification, error) {
	var v entity.LocationVerification
	var addr, gallery []byte
	if err := row.Scan(
		&v.ID, &v.LocationID, &v.OrganizationID, &v.OrganizationName, &v.LocationType, &addr, &gallery,
		&v.PaymentStatus, &v.PaymentAmount, &v.TransactionID, &v.VerificationStatus, &v.ReviewedBy, &v.ReviewedAt, &v.Reason,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := fromJSONB(addr, &v.Address); err != nil {
		return nil, err
	}
	if err := fromJSONB(gallery, &v.Gallery); err != nil {
		return nil, err
	}
	return &v, nil
}
