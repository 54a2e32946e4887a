package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/auth"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/onboarding"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/payment"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/usecase"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/verification"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/backend"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/fees"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/gateway"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/memory"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/metrics"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/notify"
	infrapdf "github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/pdf"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/redisstore"
	httpRouter "github.com/roboticsteamraoatech-creator/datacapture-api/internal/interfaces/http"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/config"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("pricing", cfg.Storage.PricingFrom).
		Msg("iniciando aplicación")

	// Montos como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	var st *stores
	if cfg.Storage.Driver == "memory" {
		st = openMemory()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	} else {
		st, err = openPostgres(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
	}
	defer st.close()

	// Redis es opcional: sin él, sesiones y locks quedan en proceso.
	var (
		rdb          *redis.Client
		sessionStore auth.SessionStore = memory.NewSessionStore()
		locker       ports.Locker      = memory.NewLocker()
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		sessionStore = redisstore.NewSessionStore(rdb)
		locker = redisstore.NewLocker(rdb)
	}

	backendClient := backend.New(cfg.Backend, log)
	directory := backend.NewDirectory(backendClient)

	var feeLookup ports.FeeLookup = fees.NewTableLookup(st.regionFees)
	if cfg.Storage.PricingFrom == "backend" {
		feeLookup = fees.NewDirectoryLookup(directory)
	}
	if rdb != nil {
		feeLookup = redisstore.NewCachedFeeLookup(feeLookup, rdb, cfg.Redis.FeeTTL, log)
	}

	var notifier ports.Notifier = notify.NewLogNotifier(log)
	if cfg.Notify.Enabled {
		ses, err := notify.NewSESNotifier(ctx, cfg.Notify.AWSRegion, cfg.Notify.Sender, log)
		if err != nil {
			log.Fatal().Err(err).Msg("configurar SES")
		}
		notifier = ses
	}

	recorder := metrics.NewRecorder()

	paymentDeps := payment.Deps{
		Repos:    st.paymentRepos(),
		Tx:       st.tx,
		Gateway:  gateway.New(cfg.Gateway, log),
		Locker:   locker,
		Metrics:  recorder,
		Currency: cfg.Gateway.Currency,
		Log:      log,
	}

	staffAuthUC := auth.NewStaffAuthUseCase(st.staff, auth.NewAuthSession(sessionStore, 12*time.Hour), log)

	app := httpRouter.NewApp(httpRouter.ServerOptions{
		Name:           cfg.App.Name,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		SwaggerFile:    cfg.HTTP.SwaggerFile,
		Log:            log,
		Observer:       recorder,
		MetricsHandler: recorder.Handler(),
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Onboarding:       onboarding.NewService(st.profiles, st.payments, feeLookup, cfg.Gateway.Currency, log),
		LocationPayments: payment.NewLocationPaymentService(paymentDeps),
		CombinedPayments: payment.NewCombinedPaymentService(paymentDeps),
		PackagePayments:  payment.NewPackagePaymentService(paymentDeps),
		Receipts:         payment.NewReceiptService(st.payments, infrapdf.NewReceiptRenderer(cfg.App.Name)),
		DataVerification: verification.NewDataVerificationService(st.verifications, st.staff, st.profiles, recorder, log),
		LocationReviews:  verification.NewLocationReviewService(st.reviews, st.profiles, st.payments, notifier, recorder, log),
		StaffAuth:        staffAuthUC,
		Permissions:      usecase.NewPermissionService(st.staff),
		Organizations:    usecase.NewOrganizationUseCase(backend.NewOrganizationClient(backendClient)),
		Categories:       usecase.NewCategoryUseCase(st.categories),
		Industries:       usecase.NewIndustryUseCase(st.industries),
		Commissions:      usecase.NewCommissionUseCase(st.commissions),
		PickupCenters:    usecase.NewPickupCenterUseCase(st.pickupCenters),
		Packages:         usecase.NewPackageUseCase(st.packages),
		Codes:            usecase.NewOneTimeCodeUseCase(st.codes),
		Locations:        directory,
		Proxy:            backend.NewProxy(backendClient),
		ProxyObserver:    recorder,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
