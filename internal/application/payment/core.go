package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/pricing"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/workflow"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	// pendingWindow una transacción pendiente más nueva que esto bloquea una nueva apertura.
	pendingWindow = 30 * time.Minute
	lockTTL       = 30 * time.Second
)

// Deps dependencias compartidas por los servicios de pago.
type Deps struct {
	Repos    Repos
	Tx       TxRunner
	Gateway  ports.PaymentGateway
	Locker   ports.Locker
	Metrics  ports.Metrics
	Currency string
	Log      *logger.Logger
	// Now reloj inyectable; nil usa time.Now.
	Now func() time.Time
}

// core lógica común de apertura y verificación.
type core struct {
	Deps
	now func() time.Time
}

func newCore(d Deps, component string) core {
	if d.Metrics == nil {
		d.Metrics = ports.NopMetrics{}
	}
	if d.Currency == "" {
		d.Currency = "NGN"
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	d.Log = d.Log.Named(component)
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return core{Deps: d, now: now}
}

// lock toma la clave o devuelve Conflict si otra petición la tiene.
func (c *core) lock(ctx context.Context, key, busyMessage string) (func(), error) {
	if c.Locker == nil {
		return func() {}, nil
	}
	release, ok, err := c.Locker.Acquire(ctx, key, lockTTL)
	if err != nil {
		c.Log.Error().Err(err).Str("key", key).Msg("acquire lock")
		return nil, domain.Internal(err, "acquire lock")
	}
	if !ok {
		return nil, domain.Conflict("%s", busyMessage)
	}
	return release, nil
}

// Tipos de pago que compiten por lo mismo: las tarifas de ubicación las cobran
// location y combined, la suscripción la activan package y combined.
var (
	locationKinds = []string{entity.PaymentKindLocation, entity.PaymentKindCombined}
	packageKinds  = []string{entity.PaymentKindPackage, entity.PaymentKindCombined}
	combinedKinds = []string{entity.PaymentKindLocation, entity.PaymentKindPackage, entity.PaymentKindCombined}
)

// initLockKey una sola clave por organización para todas las aperturas.
func initLockKey(organizationID string) string {
	return "init:" + organizationID
}

// guardPending rechaza una nueva apertura mientras exista una pendiente reciente
// de cualquiera de kinds. Las pendientes vencidas se cierran como fallidas.
func (c *core) guardPending(ctx context.Context, organizationID string, kinds ...string) error {
	for _, kind := range kinds {
		pending, err := c.Repos.Payments.FindPending(ctx, organizationID, kind)
		if err != nil {
			return domain.Internal(err, "find pending payment")
		}
		if pending == nil {
			continue
		}
		if c.now().Sub(pending.CreatedAt) < pendingWindow {
			return domain.Conflict("a %s payment is already pending (%s)", pending.Kind, pending.TransactionID)
		}
		pending.Status = entity.PaymentFailed
		pending.GatewayMessage = "expired before verification"
		pending.UpdatedAt = c.now()
		if err := c.Repos.Payments.Update(ctx, pending); err != nil {
			return domain.Internal(err, "expire pending payment")
		}
		c.Log.Info().Str("transaction_id", pending.TransactionID).Str("kind", pending.Kind).Msg("stale pending payment expired")
	}
	return nil
}

func validatePayer(p dto.PayerRequest) error {
	var missing []string
	if strings.TrimSpace(p.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return domain.Validation("payer %s required", strings.Join(missing, ", "))
	}
	if !strings.Contains(p.Email, "@") {
		return domain.Validation("payer email is invalid")
	}
	return nil
}

func reference(kind string) string {
	prefix := map[string]string{
		entity.PaymentKindLocation: "LOC",
		entity.PaymentKindPackage:  "PKG",
		entity.PaymentKindCombined: "CMB",
	}[kind]
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// open crea la transacción pendiente y abre la sesión en la pasarela.
func (c *core) open(ctx context.Context, tx *entity.PaymentTransaction) (*dto.InitializePaymentResponse, error) {
	now := c.now()
	tx.ID = uuid.New().String()
	tx.TransactionID = reference(tx.Kind)
	tx.Currency = c.Currency
	tx.Status = entity.PaymentPending
	tx.Amount = pricing.Total(tx.Breakdown)
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if !tx.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("nothing to pay")
	}
	if err := c.Repos.Payments.Create(ctx, tx); err != nil {
		return nil, domain.Internal(err, "create payment")
	}

	meta := map[string]string{"organization_id": tx.OrganizationID, "kind": tx.Kind}
	if tx.PackageID != "" {
		meta["package_id"] = tx.PackageID
		meta["duration"] = tx.Duration
	}
	session, err := c.Gateway.Initialize(ctx, ports.GatewayInit{
		Reference:   tx.TransactionID,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Email:       tx.Payer.Email,
		Name:        tx.Payer.Name,
		Phone:       tx.Payer.Phone,
		Description: tx.Description,
		Metadata:    meta,
	})
	if err != nil {
		tx.Status = entity.PaymentFailed
		tx.GatewayMessage = err.Error()
		tx.UpdatedAt = c.now()
		if uerr := c.Repos.Payments.Update(ctx, tx); uerr != nil {
			c.Log.Error().Err(uerr).Str("transaction_id", tx.TransactionID).Msg("mark payment failed")
		}
		c.Metrics.ObservePayment(tx.Kind, "init_failed", tx.Amount)
		c.Log.Error().Err(err).Str("transaction_id", tx.TransactionID).Str("kind", tx.Kind).Msg("gateway initialize")
		return nil, domain.Wrap(err, "initialize payment")
	}

	tx.AuthorizationURL = session.AuthorizationURL
	tx.UpdatedAt = c.now()
	if err := c.Repos.Payments.Update(ctx, tx); err != nil {
		return nil, domain.Internal(err, "save authorization url")
	}
	c.Metrics.ObservePayment(tx.Kind, "initialized", tx.Amount)
	c.Log.Info().
		Str("transaction_id", tx.TransactionID).
		Str("organization_id", tx.OrganizationID).
		Str("kind", tx.Kind).
		Str("amount", tx.Amount.String()).
		Msg("payment initialized")

	return &dto.InitializePaymentResponse{
		TransactionID:    tx.TransactionID,
		AuthorizationURL: tx.AuthorizationURL,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		Breakdown:        dto.FromBreakdown(tx.Breakdown, tx.Currency),
	}, nil
}

// verified resultado interno de una verificación.
type verified struct {
	tx           *entity.PaymentTransaction
	locations    []dto.LocationOutcome
	subscription *entity.OrganizationSubscription
}

// verify consulta la pasarela una sola vez por transacción y aplica el resultado.
// Llamadas repetidas sobre una transacción final devuelven el resultado guardado.
func (c *core) verify(ctx context.Context, organizationID, transactionID, kind string) (*verified, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, domain.Validation("transactionId is required")
	}
	release, err := c.lock(ctx, "verify:"+transactionID, "payment verification already in progress")
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := c.Repos.Payments.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, domain.Internal(err, "load payment")
	}
	if tx == nil || tx.OrganizationID != organizationID {
		return nil, domain.NotFound("transaction %s not found", transactionID)
	}
	if kind != "" && tx.Kind != kind {
		return nil, domain.Validation("transaction %s is a %s payment", transactionID, tx.Kind)
	}
	if tx.IsFinal() {
		c.Log.Debug().Str("transaction_id", transactionID).Str("status", tx.Status).Msg("payment already final")
		return c.stored(ctx, tx)
	}

	verdict, err := c.Gateway.Verify(ctx, transactionID)
	if err != nil {
		c.Log.Error().Err(err).Str("transaction_id", transactionID).Msg("gateway verify")
		return nil, domain.Wrap(err, "verify payment")
	}

	now := c.now()
	// Un éxito sin monto informado tampoco coincide con el monto guardado.
	if !verdict.Success || !verdict.Amount.Equal(tx.Amount) {
		msg := verdict.Message
		if verdict.Success {
			msg = "amount paid does not match transaction amount"
		}
		if err := workflow.CheckPayment(tx.Status, entity.PaymentFailed); err != nil {
			return nil, domain.Conflict("%s", err.Error())
		}
		tx.Status = entity.PaymentFailed
		tx.GatewayMessage = msg
		tx.UpdatedAt = now
		if err := c.Repos.Payments.Update(ctx, tx); err != nil {
			return nil, domain.Internal(err, "mark payment failed")
		}
		c.Metrics.ObservePayment(tx.Kind, "failed", tx.Amount)
		c.Log.Warn().Str("transaction_id", transactionID).Str("reason", msg).Msg("payment not successful")
		return &verified{tx: tx, locations: []dto.LocationOutcome{}}, nil
	}

	out := &verified{locations: []dto.LocationOutcome{}}
	err = c.Tx.RunPayment(ctx, func(r Repos) error {
		return c.finalize(ctx, r, tx, verdict, now, out)
	})
	if err != nil {
		c.Log.Error().Err(err).Str("transaction_id", transactionID).Msg("finalize payment")
		return nil, domain.Wrap(err, "finalize payment")
	}
	c.Metrics.ObservePayment(tx.Kind, "successful", tx.Amount)
	c.Log.Info().
		Str("transaction_id", transactionID).
		Str("organization_id", organizationID).
		Int("locations", len(out.locations)).
		Bool("subscription", out.subscription != nil).
		Msg("payment verified")
	return out, nil
}

// finalize marca el pago exitoso, pasa las ubicaciones a pending_verification,
// crea sus revisiones y activa la suscripción si el pago incluía paquete.
func (c *core) finalize(ctx context.Context, r Repos, tx *entity.PaymentTransaction, v *ports.GatewayVerdict, now time.Time, out *verified) error {
	if err := workflow.CheckPayment(tx.Status, entity.PaymentSuccessful); err != nil {
		return domain.Conflict("%s", err.Error())
	}
	tx.Status = entity.PaymentSuccessful
	tx.GatewayMessage = v.Message
	verifiedAt := now
	if v.PaidAt != nil {
		verifiedAt = *v.PaidAt
	}
	tx.VerifiedAt = &verifiedAt
	tx.UpdatedAt = now
	if err := r.Payments.Update(ctx, tx); err != nil {
		return err
	}

	// Solo se activan ubicaciones que siguen sin pagar; otra transacción pudo cubrirlas.
	var ids []string
	for _, line := range tx.Breakdown.Locations {
		loc, err := r.Profiles.GetLocation(ctx, line.LocationID)
		if err != nil {
			return err
		}
		if loc == nil || loc.PaymentStatus == entity.LocationPaid {
			c.Log.Warn().
				Str("transaction_id", tx.TransactionID).
				Str("location_id", line.LocationID).
				Msg("location already paid, skipped")
			continue
		}
		review := &entity.LocationVerification{
			ID:                 uuid.New().String(),
			LocationID:         line.LocationID,
			OrganizationID:     tx.OrganizationID,
			LocationType:       line.LocationType,
			Address:            loc.Address,
			Gallery:            loc.Gallery,
			PaymentStatus:      entity.LocationPaid,
			PaymentAmount:      line.Fee,
			TransactionID:      tx.TransactionID,
			VerificationStatus: entity.LocationReviewPending,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := r.Reviews.Create(ctx, review); err != nil {
			return err
		}
		ids = append(ids, line.LocationID)
		out.locations = append(out.locations, dto.LocationOutcome{
			LocationID:     line.LocationID,
			Status:         entity.LocationPendingVerification,
			VerificationID: review.ID,
		})
	}
	if len(ids) > 0 {
		if err := r.Profiles.SetLocationStatus(ctx, ids, entity.LocationPaid, entity.LocationPendingVerification); err != nil {
			return err
		}
	}

	if tx.PackageID != "" {
		sub := &entity.OrganizationSubscription{
			ID:             uuid.New().String(),
			OrganizationID: tx.OrganizationID,
			PackageID:      tx.PackageID,
			Duration:       tx.Duration,
			Status:         entity.SubscriptionActive,
			TransactionID:  tx.TransactionID,
			StartsAt:       now,
			ExpiresAt:      now.AddDate(0, entity.DurationMonths(tx.Duration), 0),
			CreatedAt:      now,
		}
		if err := r.Subscriptions.Create(ctx, sub); err != nil {
			return err
		}
		if err := r.Packages.IncrementSubscribers(ctx, tx.PackageID); err != nil {
			return err
		}
		out.subscription = sub
	}
	out.tx = tx
	return nil
}

// stored reconstruye el resultado de una transacción ya cerrada.
func (c *core) stored(ctx context.Context, tx *entity.PaymentTransaction) (*verified, error) {
	out := &verified{tx: tx, locations: []dto.LocationOutcome{}}
	if tx.Status != entity.PaymentSuccessful {
		return out, nil
	}
	for _, id := range tx.LocationIDs() {
		o := dto.LocationOutcome{LocationID: id, Status: entity.LocationPendingVerification}
		review, err := c.Repos.Reviews.GetByLocation(ctx, id)
		if err != nil {
			return nil, domain.Internal(err, "load location verification")
		}
		// La ubicación la pagó otra transacción.
		if review != nil && review.TransactionID != tx.TransactionID {
			continue
		}
		if review != nil {
			o.VerificationID = review.ID
			switch review.VerificationStatus {
			case entity.LocationReviewApproved:
				o.Status = entity.LocationApproved
			case entity.LocationReviewRejected:
				o.Status = entity.LocationRejected
			}
		}
		out.locations = append(out.locations, o)
	}
	if tx.PackageID != "" {
		sub, err := c.Repos.Subscriptions.GetByTransactionID(ctx, tx.TransactionID)
		if err != nil {
			return nil, domain.Internal(err, "load subscription")
		}
		out.subscription = sub
	}
	return out, nil
}

func (c *core) transaction(ctx context.Context, organizationID, transactionID string) (*entity.PaymentTransaction, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, domain.Validation("transactionId is required")
	}
	tx, err := c.Repos.Payments.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, domain.Internal(err, "load payment")
	}
	if tx == nil || tx.OrganizationID != organizationID {
		return nil, domain.NotFound("transaction %s not found", transactionID)
	}
	return tx, nil
}

func subscriptionOutcome(sub *entity.OrganizationSubscription) dto.SubscriptionOutcome {
	if sub == nil {
		return dto.SubscriptionOutcome{Activated: false}
	}
	exp := sub.ExpiresAt
	return dto.SubscriptionOutcome{
		Activated:      sub.Status == entity.SubscriptionActive,
		SubscriptionID: sub.ID,
		PackageID:      sub.PackageID,
		ExpiresAt:      &exp,
	}
}

// pricingError traduce errores de cálculo a validación.
func pricingError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrUnresolvedFee):
		return domain.Validation("every location needs a resolved fee before payment: %s", err.Error())
	case errors.Is(err, pricing.ErrUnknownDuration):
		return domain.Validation("duration must be monthly, quarterly or yearly")
	}
	return domain.Wrap(err, "pricing")
}
