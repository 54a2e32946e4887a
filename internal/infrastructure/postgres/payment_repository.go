package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var (
	_ repository.PaymentRepository      = (*PaymentRepo)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)
)

// PaymentRepo transacciones de pago (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, transaction_id, organization_id, kind, amount, currency, status, description, breakdown,
	package_id, duration, payer_email, payer_name, payer_phone, authorization_url, gateway_message,
	verified_at, created_at, updated_at`

func (r *PaymentRepo) Create(ctx context.Context, tx *entity.PaymentTransaction) error {
	breakdown, err := jsonb(tx.Breakdown)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO payment_transactions (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		tx.ID, tx.TransactionID, tx.OrganizationID, tx.Kind, tx.Amount, tx.Currency, tx.Status, tx.Description, breakdown,
		tx.PackageID, tx.Duration, tx.Payer.Email, tx.Payer.Name, tx.Payer.Phone, tx.AuthorizationURL, tx.GatewayMessage,
		tx.VerifiedAt, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("transaction %s already exists", tx.TransactionID)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*entity.PaymentTransaction, error) {
	tx, err := scanPayment(r.q.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payment_transactions WHERE transaction_id = $1`, transactionID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return tx, nil
}

func (r *PaymentRepo) FindPending(ctx context.Context, organizationID, kind string) (*entity.PaymentTransaction, error) {
	tx, err := scanPayment(r.q.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM payment_transactions
		WHERE organization_id = $1 AND kind = $2 AND status = 'pending'
		ORDER BY created_at DESC LIMIT 1`, organizationID, kind))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find pending payment: %w", err)
	}
	return tx, nil
}

// Update solo cambian estado, URL, mensaje y fecha de verificación.
func (r *PaymentRepo) Update(ctx context.Context, tx *entity.PaymentTransaction) error {
	_, err := r.q.Exec(ctx, `
		UPDATE payment_transactions SET status = $2, authorization_url = $3, gateway_message = $4,
			verified_at = $5, updated_at = $6
		WHERE transaction_id = $1`,
		tx.TransactionID, tx.Status, tx.AuthorizationURL, tx.GatewayMessage, tx.VerifiedAt, tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]*entity.PaymentTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+paymentColumns+` FROM payment_transactions
		WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	out := []*entity.PaymentTransaction{}
	for rows.Next() {
		tx, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.PaymentTransaction, error) {
	var tx entity.PaymentTransaction
	var breakdown []byte
	if err := row.Scan(
		&tx.ID, &tx.TransactionID, &tx.OrganizationID, &tx.Kind, &tx.Amount, &tx.Currency, &tx.Status, &tx.Description, &breakdown,
		&tx.PackageID, &tx.Duration, &tx.Payer.Email, &tx.Payer.Name, &tx.Payer.Phone, &tx.AuthorizationURL, &tx.GatewayMessage,
		&tx.VerifiedAt, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := fromJSONB(breakdown, &tx.Breakdown); err != nil {
		return nil, err
	}
	return &tx, nil
}

// SubscriptionRepo suscripciones activadas por pagos verificados.
type SubscriptionRepo struct {
	q Querier
}

func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionColumns = `id, organization_id, package_id, duration, status, transaction_id, starts_at, expires_at, created_at`

func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.OrganizationSubscription) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO organization_subscriptions (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.OrganizationID, s.PackageID, s.Duration, s.Status, s.TransactionID, s.StartsAt, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("subscription for transaction %s already exists", s.TransactionID)
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) GetByTransactionID(ctx context.Context, transactionID string) (*entity.OrganizationSubscription, error) {
	return r.one(ctx, `SELECT `+subscriptionColumns+` FROM organization_subscriptions WHERE transaction_id = $1`, transactionID)
}

// GetActive la suscripción vigente que vence más tarde.
func (r *SubscriptionRepo) GetActive(ctx context.Context, organizationID string) (*entity.OrganizationSubscription, error) {
	return r.one(ctx, `
		SELECT `+subscriptionColumns+` FROM organization_subscriptions
		WHERE organization_id = $1 AND status = 'active' AND expires_at > now()
		ORDER BY expires_at DESC LIMIT 1`, organizationID)
}

func (r *SubscriptionRepo) one(ctx context.Context, sql string, arg string) (*entity.OrganizationSubscription, error) {
	var s entity.OrganizationSubscription
	err := r.q.QueryRow(ctx, sql, arg).Scan(
		&s.ID, &s.OrganizationID, &s.PackageID, &s.Duration, &s.Status, &s.TransactionID, &s.StartsAt, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}
