package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo perfiles de organización y sus ubicaciones (usable con pool o tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const locationColumns = `id, profile_id, organization_id, position, location_type, address, city_region_fee,
	fee_resolved, gallery, payment_status, verification_status, created_at, updated_at`

// GetByOrganization perfil con sus ubicaciones en orden; nil si no existe.
func (r *ProfileRepo) GetByOrganization(ctx context.Context, organizationID string) (*entity.OrganizationProfile, error) {
	var p entity.OrganizationProfile
	err := r.q.QueryRow(ctx, `
		SELECT id, organization_id, business_type, is_public_profile, verification_status,
		       organization_verification, current_step, created_at, updated_at
		FROM organization_profiles WHERE organization_id = $1`, organizationID).Scan(
		&p.ID, &p.OrganizationID, &p.BusinessType, &p.IsPublicProfile, &p.VerificationStatus,
		&p.OrganizationVerification, &p.CurrentStep, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	locs, err := r.ListLocations(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	p.Locations = locs
	return &p, nil
}

// Upsert crea o actualiza el perfil; no toca ubicaciones.
func (r *ProfileRepo) Upsert(ctx context.Context, p *entity.OrganizationProfile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO organization_profiles (id, organization_id, business_type, is_public_profile, verification_status,
			organization_verification, current_step, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (organization_id) DO UPDATE SET
			business_type = EXCLUDED.business_type,
			is_public_profile = EXCLUDED.is_public_profile,
			verification_status = EXCLUDED.verification_status,
			organization_verification = EXCLUDED.organization_verification,
			current_step = EXCLUDED.current_step,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.OrganizationID, p.BusinessType, p.IsPublicProfile, p.VerificationStatus,
		p.OrganizationVerification, p.CurrentStep, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) UpdateStep(ctx context.Context, organizationID, step string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE organization_profiles SET current_step = $2, updated_at = now() WHERE organization_id = $1`,
		organizationID, step)
	if err != nil {
		return fmt.Errorf("update step: %w", err)
	}
	return nil
}

// SetVerification un estado vacío no se modifica.
func (r *ProfileRepo) SetVerification(ctx context.Context, organizationID, profileStatus, orgVerification string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE organization_profiles SET
			verification_status = COALESCE(NULLIF($2, ''), verification_status),
			organization_verification = COALESCE(NULLIF($3, ''), organization_verification),
			updated_at = now()
		WHERE organization_id = $1`, organizationID, profileStatus, orgVerification)
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}
	return nil
}

// AddLocation inserta la ubicación. Una segunda sede viola el índice parcial y se informa como conflicto.
func (r *ProfileRepo) AddLocation(ctx context.Context, l *entity.LocationData) error {
	addr, err := jsonb(l.Address)
	if err != nil {
		return err
	}
	gallery, err := jsonb(l.Gallery)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO locations (`+locationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		l.ID, l.ProfileID, l.OrganizationID, l.Position, l.LocationType, addr, l.CityRegionFee,
		l.FeeResolved, gallery, l.PaymentStatus, l.VerificationStatus, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("organization already has a headquarters")
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *ProfileRepo) GetLocation(ctx context.Context, id string) (*entity.LocationData, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

func (r *ProfileRepo) ListLocations(ctx context.Context, organizationID string) ([]entity.LocationData, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE organization_id = $1 ORDER BY position, created_at`,
		organizationID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	out := []entity.LocationData{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// DeleteLocation borra y renumera las posiciones restantes.
func (r *ProfileRepo) DeleteLocation(ctx context.Context, organizationID, id string) error {
	var pos int
	err := r.q.QueryRow(ctx,
		`DELETE FROM locations WHERE organization_id = $1 AND id = $2 RETURNING position`,
		organizationID, id).Scan(&pos)
	if err != nil {
		if noRows(err) {
			return nil
		}
		return fmt.Errorf("delete location: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`UPDATE locations SET position = position - 1 WHERE organization_id = $1 AND position > $2`,
		organizationID, pos)
	if err != nil {
		return fmt.Errorf("renumber locations: %w", err)
	}
	return nil
}

// SetLocationStatus un estado vacío no se modifica.
func (r *ProfileRepo) SetLocationStatus(ctx context.Context, ids []string, paymentStatus, verificationStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		UPDATE locations SET
			payment_status = COALESCE(NULLIF($2, ''), payment_status),
			verification_status = COALESCE(NULLIF($3, ''), verification_status),
			updated_at = now()
		WHERE id = ANY($1::uuid[])`, ids, paymentStatus, verificationStatus)
	if err != nil {
		return fmt.Errorf("set location status: %w", err)
	}
	return nil
}

func scanLocation(row pgx.Row) (*entity.LocationData, error) {
	var l entity.LocationData
	var addr, gallery []byte
	if err := row.Scan(
		&l.ID, &l.ProfileID, &l.OrganizationID, &l.Position, &l.LocationType, &addr, &l.CityRegionFee,
		&l.FeeResolved, &gallery, &l.PaymentStatus, &l.VerificationStatus, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := fromJSONB(addr, &l.Address); err != nil {
		return nil, err
	}
	if err := fromJSONB(gallery, &l.Gallery); err != nil {
		return nil, err
	}
	return &l, nil
}
