package payment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/payment"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/memory"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID = "org-1"

type fakeGateway struct {
	mu          sync.Mutex
	success     bool
	initCalls   int
	verifyCalls int
	lastInit    ports.GatewayInit
	amounts     map[string]decimal.Decimal
	// paid si no es nil reemplaza el monto informado en Verify.
	paid *decimal.Decimal
}

func (g *fakeGateway) Initialize(_ context.Context, in ports.GatewayInit) (*ports.GatewaySession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initCalls++
	g.lastInit = in
	if g.amounts == nil {
		g.amounts = make(map[string]decimal.Decimal)
	}
	g.amounts[in.Reference] = in.Amount
	return &ports.GatewaySession{AuthorizationURL: "https://pay.example.com/" + in.Reference, Reference: in.Reference}, nil
}

func (g *fakeGateway) Verify(_ context.Context, reference string) (*ports.GatewayVerdict, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyCalls++
	msg := "Approved"
	if !g.success {
		msg = "Declined"
	}
	amount := g.amounts[reference]
	if g.paid != nil {
		amount = *g.paid
	}
	return &ports.GatewayVerdict{Reference: reference, Success: g.success, Amount: amount, Message: msg}, nil
}

type fixture struct {
	deps     payment.Deps
	profiles *memory.ProfileRepo
	reviews  *memory.LocationVerificationRepo
	packages *memory.PackageRepo
	payments *memory.PaymentRepo
	gateway  *fakeGateway
	clock    time.Time
}

// advance mueve el reloj inyectado en los servicios.
func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func newFixture(t *testing.T, verified bool) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := payment.Repos{
		Payments:      memory.NewPaymentRepository(),
		Profiles:      memory.NewProfileRepository(),
		Reviews:       memory.NewLocationVerificationRepository(),
		Subscriptions: memory.NewSubscriptionRepository(),
		Packages:      memory.NewPackageRepository(),
	}
	f := &fixture{
		profiles: repos.Profiles.(*memory.ProfileRepo),
		reviews:  repos.Reviews.(*memory.LocationVerificationRepo),
		packages: repos.Packages.(*memory.PackageRepo),
		payments: repos.Payments.(*memory.PaymentRepo),
		gateway:  &fakeGateway{success: true},
		clock:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	f.deps = payment.Deps{
		Repos:    repos,
		Tx:       memory.NewTxRunner(repos),
		Gateway:  f.gateway,
		Locker:   memory.NewLocker(),
		Currency: "NGN",
		Log:      logger.Nop(),
		Now:      func() time.Time { return f.clock },
	}

	status := entity.ProfileUnverified
	if verified {
		status = entity.ProfileVerified
	}
	require.NoError(t, repos.Profiles.Upsert(ctx, &entity.OrganizationProfile{
		ID: "p-1", OrganizationID: orgID, BusinessType: entity.BusinessTypeRegistered,
		IsPublicProfile: true, VerificationStatus: status,
	}))
	for i, fee := range []int64{5000, 2500} {
		require.NoError(t, repos.Profiles.AddLocation(ctx, &entity.LocationData{
			ID: []string{"loc-a", "loc-b"}[i], OrganizationID: orgID, Position: i,
			LocationType:  entity.LocationBranch,
			Address:       entity.Address{Country: "Nigeria", State: "Lagos", LGA: "Ikeja", City: "Ikeja", CityRegion: "Allen"},
			CityRegionFee: decimal.NewFromInt(fee), FeeResolved: true,
			PaymentStatus: entity.LocationUnpaid, VerificationStatus: entity.LocationVerificationNone,
		}))
	}
	require.NoError(t, repos.Packages.Create(ctx, &entity.SubscriptionPackage{
		ID: "pkg-1", Title: "Basic", IsActive: true,
		Pricing: entity.PackagePricing{
			Monthly: decimal.NewFromInt(10000), Quarterly: decimal.NewFromInt(27000), Yearly: decimal.NewFromInt(100000),
		},
	}))
	return f
}

var payer = dto.PayerRequest{Email: "owner@example.com", Name: "Ada Obi", Phone: "+2348000000000"}

func TestGetPricing_Idempotente(t *testing.T) {
	f := newFixture(t, true)
	svc := payment.NewLocationPaymentService(f.deps)
	ctx := context.Background()

	first, err := svc.GetPricing(ctx, orgID)
	require.NoError(t, err)
	second, err := svc.GetPricing(ctx, orgID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, decimal.NewFromInt(7500).Equal(first.TotalAmount))
	require.Len(t, first.Locations, 2)
	assert.Equal(t, 0, f.gateway.initCalls)
}

func TestCheckPaymentRequired(t *testing.T) {
	f := newFixture(t, true)
	svc := payment.NewLocationPaymentService(f.deps)

	out, err := svc.CheckPaymentRequired(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, dto.PaymentRequiredResponse{Required: true, UnpaidCount: 2, TotalCount: 2}, *out)
}

func TestInitializePayment_PerfilNoVerificado(t *testing.T) {
	f := newFixture(t, false)
	svc := payment.NewLocationPaymentService(f.deps)

	_, err := svc.InitializePayment(context.Background(), orgID, payer)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, 0, f.gateway.initCalls)
}

func TestInitializePayment_ValidaPagadorAntesDeEscribir(t *testing.T) {
	f := newFixture(t, true)
	svc := payment.NewLocationPaymentService(f.deps)

	_, err := svc.InitializePayment(context.Background(), orgID, dto.PayerRequest{Email: "owner@example.com"})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, 0, f.gateway.initCalls)
}

func TestVerifyPayment_ExitoEIdempotencia(t *testing.T) {
	f := newFixture(t, true)
	svc := payment.NewLocationPaymentService(f.deps)
	ctx := context.Background()

	init, err := svc.InitializePayment(ctx, orgID, payer)
	require.NoError(t, err)
	assert.Contains(t, init.AuthorizationURL, init.TransactionID)
	assert.True(t, decimal.NewFromInt(7500).Equal(init.Amount))

	_, err = svc.InitializePayment(ctx, orgID, payer)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err), "una segunda apertura con otra pendiente se rechaza")

	out, err := svc.VerifyPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: init.TransactionID})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSuccessful, out.Status)
	require.Len(t, out.Locations, 2)
	for _, l := range out.Locations {
		assert.Equal(t, entity.LocationPendingVerification, l.Status)
		assert.NotEmpty(t, l.VerificationID)
	}

	locs, err := f.profiles.ListLocations(ctx, orgID)
	require.NoError(t, err)
	for _, l := range locs {
		assert.Equal(t, entity.LocationPaid, l.PaymentStatus)
		assert.Equal(t, entity.LocationPendingVerification, l.VerificationStatus)
	}
	queue, err := f.reviews.List(ctx, entity.LocationReviewPending, 0, 0)
	require.NoError(t, err)
	assert.Len(t, queue, 2)

	again, err := svc.VerifyPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: init.TransactionID})
	require.NoError(t, err)
	assert.Equal(t, out.Locations, again.Locations)
	assert.Equal(t, 1, f.gateway.verifyCalls, "una transacción final no vuelve a la pasarela")

	queue, err = f.reviews.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, queue, 2, "no se duplican revisiones")

	status, err := svc.GetPaymentStatus(ctx, orgID, init.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSuccessful, status.Status)
	assert.NotNil(t, status.VerifiedAt)
}

func TestVerifyPayment_Rechazado(t *testing.T) {
	f := newFixture(t, true)
	f.gateway.success = false
	svc := payment.NewLocationPaymentService(f.deps)
	ctx := context.Background()

	init, err := svc.InitializePayment(ctx, orgID, payer)
	require.NoError(t, err)
	out, err := svc.VerifyPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: init.TransactionID})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentFailed, out.Status)
	assert.Empty(t, out.Locations)

	locs, _ := f.profiles.ListLocations(ctx, orgID)
	for _, l := range locs {
		assert.Equal(t, entity.LocationUnpaid, l.PaymentStatus)
	}
}

func TestVerifyPayment_OtraOrganizacion(t *testing.T) {
	f := newFixture(t, true)
	svc := payment.NewLocationPaymentService(f.deps)
	ctx := context.Background()

	init, err := svc.InitializePayment(ctx, orgID, payer)
	require.NoError(t, err)
	_, err = svc.VerifyPayment(ctx, "org-2", dto.VerifyPaymentRequest{TransactionID: init.TransactionID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCombinedPayment(t *testing.T) {
	f := newFixture(t, true)
	svc := payment.NewCombinedPaymentService(f.deps)
	ctx := context.Background()
	req := dto.CombinedPricingRequest{PackageID: "pkg-1", Duration: entity.DurationYearly, LocationIDs: []string{"loc-a"}}

	quote, err := svc.GetCombinedPricing(ctx, orgID, req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(105000).Equal(quote.TotalAmount))

	wrong := decimal.NewFromInt(100)
	_, err = svc.InitializeCombinedPayment(ctx, orgID, dto.CombinedInitializeRequest{CombinedPricingRequest: req, Amount: &wrong, Payer: payer})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, 0, f.gateway.initCalls)

	init, err := svc.InitializeCombinedPayment(ctx, orgID, dto.CombinedInitializeRequest{CombinedPricingRequest: req, Amount: &quote.TotalAmount, Payer: payer})
	require.NoError(t, err)
	assert.Equal(t, "pkg-1", f.gateway.lastInit.Metadata["package_id"])

	out, err := svc.VerifyCombinedPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: init.TransactionID})
	require.NoError(t, err)
	assert.True(t, out.Subscription.Activated)
	require.NotNil(t, out.Subscription.ExpiresAt)
	assert.True(t, out.Subscription.ExpiresAt.After(f.clock.AddDate(0, 11, 0)))
	require.Len(t, out.Locations, 1)
	assert.Equal(t, "loc-a", out.Locations[0].LocationID)

	pkg, err := f.packages.GetByID(ctx, "pkg-1")
	require.NoError(t, err)
	assert.Equal(t, 1, pkg.SubscriberCount)
}

func TestPackagePayment_DuracionInvalida(t *testing.T) {
	f := newFixture(t, true)
	svc := payment.NewPackagePaymentService(f.deps)

	_, err := svc.InitializePackagePayment(context.Background(), orgID, dto.PackagePaymentRequest{PackageID: "pkg-1", Duration: "weekly", Payer: payer})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestPackagePayment_Activa(t *testing.T) {
	f := newFixture(t, true)
	svc := payment.NewPackagePaymentService(f.deps)
	ctx := context.Background()

	init, err := svc.InitializePackagePayment(ctx, orgID, dto.PackagePaymentRequest{PackageID: "pkg-1", Duration: entity.DurationMonthly, Payer: payer})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10000).Equal(init.Amount))

	out, err := svc.VerifyPackagePayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: init.TransactionID})
	require.NoError(t, err)
	assert.True(t, out.Subscription.Activated)
	assert.Empty(t, out.Locations)
}

func TestInitialize_PendienteDeOtroTipo(t *testing.T) {
	combinedReq := dto.CombinedInitializeRequest{
		CombinedPricingRequest: dto.CombinedPricingRequest{PackageID: "pkg-1", Duration: entity.DurationMonthly},
		Payer:                  payer,
	}
	packageReq := dto.PackagePaymentRequest{PackageID: "pkg-1", Duration: entity.DurationMonthly, Payer: payer}

	type opener func(f *fixture) error
	location := func(f *fixture) error {
		_, err := payment.NewLocationPaymentService(f.deps).InitializePayment(context.Background(), orgID, payer)
		return err
	}
	combined := func(f *fixture) error {
		_, err := payment.NewCombinedPaymentService(f.deps).InitializeCombinedPayment(context.Background(), orgID, combinedReq)
		return err
	}
	pkg := func(f *fixture) error {
		_, err := payment.NewPackagePaymentService(f.deps).InitializePackagePayment(context.Background(), orgID, packageReq)
		return err
	}

	cases := []struct {
		name   string
		first  opener
		second opener
	}{
		{"ubicaciones y luego combinado", location, combined},
		{"combinado y luego ubicaciones", combined, location},
		{"paquete y luego combinado", pkg, combined},
		{"combinado y luego paquete", combined, pkg},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, true)
			require.NoError(t, tc.first(f))

			err := tc.second(f)
			require.Error(t, err)
			assert.Equal(t, domain.KindConflict, domain.KindOf(err))
			assert.Equal(t, 1, f.gateway.initCalls)
		})
	}
}

func TestInitialize_UbicacionesYPaqueteNoCompiten(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := payment.NewLocationPaymentService(f.deps).InitializePayment(ctx, orgID, payer)
	require.NoError(t, err)
	_, err = payment.NewPackagePaymentService(f.deps).InitializePackagePayment(ctx, orgID,
		dto.PackagePaymentRequest{PackageID: "pkg-1", Duration: entity.DurationMonthly, Payer: payer})
	require.NoError(t, err)
	assert.Equal(t, 2, f.gateway.initCalls)
}

func TestInitialize_PendienteVencidaSeCierra(t *testing.T) {
	f := newFixture(t, true)
	loc := payment.NewLocationPaymentService(f.deps)
	cmb := payment.NewCombinedPaymentService(f.deps)
	ctx := context.Background()

	first, err := loc.InitializePayment(ctx, orgID, payer)
	require.NoError(t, err)

	f.advance(29 * time.Minute)
	_, err = cmb.InitializeCombinedPayment(ctx, orgID, dto.CombinedInitializeRequest{
		CombinedPricingRequest: dto.CombinedPricingRequest{PackageID: "pkg-1", Duration: entity.DurationMonthly},
		Payer:                  payer,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	f.advance(2 * time.Minute)
	second, err := cmb.InitializeCombinedPayment(ctx, orgID, dto.CombinedInitializeRequest{
		CombinedPricingRequest: dto.CombinedPricingRequest{PackageID: "pkg-1", Duration: entity.DurationMonthly},
		Payer:                  payer,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(17500).Equal(second.Amount))

	stale, err := f.payments.GetByTransactionID(ctx, first.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentFailed, stale.Status)
	assert.Equal(t, "expired before verification", stale.GatewayMessage)

	out, err := loc.VerifyPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: first.TransactionID})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentFailed, out.Status)
	assert.Equal(t, 0, f.gateway.verifyCalls, "una transacción vencida no vuelve a la pasarela")
}

func TestVerify_MontoNoCoincide(t *testing.T) {
	cases := []struct {
		name string
		paid decimal.Decimal
	}{
		{"monto menor", decimal.NewFromInt(100)},
		{"monto mayor", decimal.NewFromInt(9000)},
		{"sin monto informado", decimal.Zero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, true)
			paid := tc.paid
			f.gateway.paid = &paid
			svc := payment.NewLocationPaymentService(f.deps)
			ctx := context.Background()

			init, err := svc.InitializePayment(ctx, orgID, payer)
			require.NoError(t, err)
			out, err := svc.VerifyPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: init.TransactionID})
			require.NoError(t, err)
			assert.Equal(t, entity.PaymentFailed, out.Status)
			assert.Equal(t, "amount paid does not match transaction amount", out.Message)
			assert.Empty(t, out.Locations)

			locs, err := f.profiles.ListLocations(ctx, orgID)
			require.NoError(t, err)
			for _, l := range locs {
				assert.Equal(t, entity.LocationUnpaid, l.PaymentStatus)
			}
			queue, err := f.reviews.List(ctx, "", 0, 0)
			require.NoError(t, err)
			assert.Empty(t, queue)
		})
	}
}

func TestVerify_UbicacionYaPagadaNoSeCobraDeNuevo(t *testing.T) {
	f := newFixture(t, true)
	cmb := payment.NewCombinedPaymentService(f.deps)
	loc := payment.NewLocationPaymentService(f.deps)
	ctx := context.Background()

	init, err := cmb.InitializeCombinedPayment(ctx, orgID, dto.CombinedInitializeRequest{
		CombinedPricingRequest: dto.CombinedPricingRequest{PackageID: "pkg-1", Duration: entity.DurationMonthly},
		Payer:                  payer,
	})
	require.NoError(t, err)
	paidCombined, err := cmb.VerifyCombinedPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: init.TransactionID})
	require.NoError(t, err)
	require.Len(t, paidCombined.Locations, 2)

	// Transacción de ubicaciones abierta antes de que el combinado se cerrara.
	fee := decimal.NewFromInt(5000)
	require.NoError(t, f.payments.Create(ctx, &entity.PaymentTransaction{
		ID: "tx-old", TransactionID: "LOC-OLD", OrganizationID: orgID,
		Kind: entity.PaymentKindLocation, Status: entity.PaymentPending,
		Amount: fee, Currency: "NGN", CreatedAt: f.clock, UpdatedAt: f.clock,
		Breakdown: entity.PaymentBreakdown{
			PackageAmount: decimal.Zero, LocationTotal: fee,
			Locations: []entity.LocationFee{{LocationID: "loc-a", LocationType: entity.LocationBranch, Fee: fee}},
		},
	}))
	f.gateway.paid = &fee

	out, err := loc.VerifyPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: "LOC-OLD"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSuccessful, out.Status)
	assert.Empty(t, out.Locations)

	queue, err := f.reviews.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, queue, 2, "una revisión por ubicación")

	again, err := loc.VerifyPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: "LOC-OLD"})
	require.NoError(t, err)
	assert.Empty(t, again.Locations, "el resultado guardado no se atribuye revisiones ajenas")
}

func TestCombinedPayment_PerfilNoVerificadoSoloPaquete(t *testing.T) {
	f := newFixture(t, false)
	svc := payment.NewCombinedPaymentService(f.deps)
	ctx := context.Background()
	req := dto.CombinedPricingRequest{PackageID: "pkg-1", Duration: entity.DurationMonthly}

	quote, err := svc.GetCombinedPricing(ctx, orgID, req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10000).Equal(quote.TotalAmount))
	assert.Empty(t, quote.Locations)

	withLocations := req
	withLocations.LocationIDs = []string{"loc-a"}
	_, err = svc.InitializeCombinedPayment(ctx, orgID, dto.CombinedInitializeRequest{CombinedPricingRequest: withLocations, Payer: payer})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	init, err := svc.InitializeCombinedPayment(ctx, orgID, dto.CombinedInitializeRequest{CombinedPricingRequest: req, Payer: payer})
	require.NoError(t, err)
	out, err := svc.VerifyCombinedPayment(ctx, orgID, dto.VerifyPaymentRequest{TransactionID: init.TransactionID})
	require.NoError(t, err)
	assert.True(t, out.Subscription.Activated)
	assert.Empty(t, out.Locations)

	locs, err := f.profiles.ListLocations(ctx, orgID)
	require.NoError(t, err)
	for _, l := range locs {
		assert.Equal(t, entity.LocationUnpaid, l.PaymentStatus)
	}
}
