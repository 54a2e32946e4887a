package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/auth"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/onboarding"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/payment"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/usecase"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/verification"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/backend"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Onboarding       *onboarding.Service
	LocationPayments *payment.LocationPaymentService
	CombinedPayments *payment.CombinedPaymentService
	PackagePayments  *payment.PackagePaymentService
	Receipts         *payment.ReceiptService
	DataVerification *verification.DataVerificationService
	LocationReviews  *verification.LocationReviewService
	StaffAuth        *auth.StaffAuthUseCase
	Permissions      *usecase.PermissionService
	Organizations    *usecase.OrganizationUseCase
	Categories       *usecase.CategoryUseCase
	Industries       *usecase.IndustryUseCase
	Commissions      *usecase.CommissionUseCase
	PickupCenters    *usecase.PickupCenterUseCase
	Packages         *usecase.PackageUseCase
	Codes            *usecase.OneTimeCodeUseCase
	Locations        ports.LocationDirectory
	Proxy            *backend.Proxy
	ProxyObserver    proxyObserver
	JWTSecret        string
}

// Router registra las rutas de la API. Las rutas que no se implementan aquí
// bajo los prefijos reenviados van al backend sin autenticación local.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	jwtAuth := AuthMiddleware(deps.JWTSecret)
	superOnly := RequireRole(entity.RoleSuperAdmin)

	// Staff (token mock)
	staffAuth := NewStaffAuthHandler(deps.StaffAuth)
	api.Post("/staff/auth/login", staffAuth.Login)
	api.Get("/staff/auth/verify", staffAuth.Verify)
	api.Post("/staff/auth/logout", staffAuth.Logout)

	vh := NewVerificationHandler(deps.DataVerification)
	staffVer := api.Group("/staff/verifications",
		StaffAuthMiddleware(deps.StaffAuth),
		RequirePermission(entity.PermDataVerification, deps.Permissions),
	)
	staffVer.Post("/", vh.Create)
	staffVer.Get("/", vh.ListMine)
	staffVer.Get("/:id", vh.Get)
	staffVer.Put("/:id", vh.UpdateDraft)
	staffVer.Post("/:id/submit", vh.Submit)

	// Organización (JWT del backend)
	orgOnly := []fiber.Handler{jwtAuth, RequireRole(entity.RoleAdmin, entity.RoleUser), RequireOrganization()}

	oh := NewOnboardingHandler(deps.Onboarding)
	ob := api.Group("/onboarding", orgOnly...)
	ob.Get("/profile", oh.GetProfile)
	ob.Put("/profile", oh.SubmitProfile)
	ob.Get("/locations", oh.ListLocations)
	ob.Post("/locations", oh.AddLocation)
	ob.Post("/locations/complete", oh.CompleteLocations)
	ob.Delete("/locations/:index", oh.RemoveLocation)
	ob.Get("/location-payment", oh.LocationPaymentView)

	ph := NewPaymentHandler(deps.LocationPayments, deps.CombinedPayments, deps.PackagePayments, deps.Receipts)
	lp := api.Group("/location-payments", orgOnly...)
	lp.Get("/required", ph.CheckPaymentRequired)
	lp.Get("/pricing", ph.GetPricing)
	lp.Post("/initialize", ph.InitializeLocationPayment)
	lp.Post("/verify", ph.VerifyLocationPayment)
	lp.Get("/history", ph.PaymentHistory)
	lp.Get("/status/:transactionId", ph.PaymentStatus)

	cp := api.Group("/combined-payments", orgOnly...)
	cp.Post("/pricing", ph.CombinedPricing)
	cp.Post("/initialize", ph.InitializeCombined)
	cp.Post("/verify", ph.VerifyCombined)

	pp := api.Group("/package-payments", orgOnly...)
	pp.Post("/initialize", ph.InitializePackage)
	pp.Post("/verify", ph.VerifyPackage)

	api.Group("/payments", orgOnly...).Get("/:transactionId/receipt", ph.Receipt)

	// Super-admin
	saVer := api.Group("/super-admin/verifications", jwtAuth, superOnly)
	saVer.Get("/", vh.ListAll)
	saVer.Get("/:id", vh.GetAny)
	saVer.Post("/:id/review", vh.Review)
	saVer.Delete("/:id", vh.Delete)

	api.Post("/super-admin/users/:id/data-verification", jwtAuth, superOnly, vh.AssignRole)

	lr := NewLocationReviewHandler(deps.LocationReviews)
	saLoc := api.Group("/super-admin/location-verifications", jwtAuth, superOnly)
	saLoc.Get("/", lr.List)
	saLoc.Get("/:id", lr.Get)
	saLoc.Post("/:id/approve", lr.Approve)
	saLoc.Post("/:id/reject", lr.Reject)

	orgs := NewOrganizationHandler(deps.Organizations)
	saOrg := api.Group("/super-admin/organizations", jwtAuth, superOnly)
	saOrg.Get("/", orgs.List)
	saOrg.Post("/", orgs.Create)
	saOrg.Get("/:id", orgs.Get)
	saOrg.Put("/:id", orgs.Update)
	saOrg.Delete("/:id", orgs.Delete)

	registerCRUD(api.Group("/super-admin/categories", jwtAuth, superOnly), NewCatalogHandler(deps.Categories, "Category"))
	registerCRUD(api.Group("/super-admin/industries", jwtAuth, superOnly), NewCatalogHandler(deps.Industries, "Industry"))
	registerCRUD(api.Group("/super-admin/commissions", jwtAuth, superOnly), NewCommissionHandler(deps.Commissions))
	registerCRUD(api.Group("/super-admin/pickup-centers", jwtAuth, superOnly), NewPickupCenterHandler(deps.PickupCenters))

	pk := NewPackageHandler(deps.Packages)
	packages := api.Group("/subscription-packages")
	packages.Get("/", pk.ListActive)
	packages.Get("/all", jwtAuth, superOnly, pk.ListAll)
	packages.Get("/:id", pk.Get)
	packages.Post("/", jwtAuth, superOnly, pk.Create)
	packages.Put("/:id", jwtAuth, superOnly, pk.Update)
	packages.Delete("/:id", jwtAuth, superOnly, pk.Delete)

	codes := NewOneTimeCodeHandler(deps.Codes)
	adminCodes := api.Group("/admin/one-time-codes",
		jwtAuth,
		RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin),
		RequirePermission(entity.PermManageCodes, deps.Permissions),
	)
	adminCodes.Post("/", codes.Generate)
	adminCodes.Get("/", codes.List)
	adminCodes.Delete("/:id", codes.Delete)

	// Ubicaciones (público)
	loc := NewLocationHandler(deps.Locations)
	api.Get("/locations/countries", loc.Countries)
	api.Get("/locations/states", loc.States)
	api.Get("/locations/lgas", loc.LGAs)
	api.Get("/locations/cities", loc.Cities)
	api.Get("/locations/city-regions", loc.CityRegions)

	// Reenvío al backend
	if deps.Proxy != nil {
		px := NewProxyHandler(deps.Proxy, deps.ProxyObserver)
		for _, prefix := range []string{"/admin/*", "/super-admin/*", "/subscription-packages/*", "/locations/*"} {
			api.All(prefix, px.Forward)
		}
	}
}

// crudHandler lo cumplen los handlers de catálogo.
type crudHandler interface {
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func registerCRUD(r fiber.Router, h crudHandler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}
