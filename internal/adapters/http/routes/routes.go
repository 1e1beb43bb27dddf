package routes

import (
	"time"

	"eksporyuk-api/internal/adapters/http/handlers"
	"eksporyuk-api/internal/adapters/http/middleware"
	"eksporyuk-api/internal/adapters/persistence/repositories"
	"eksporyuk-api/internal/config"
	"eksporyuk-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	grantRepo := repositories.NewMembershipGrantRepository(db)
	enrollmentRepo := repositories.NewCourseEnrollmentRepository(db)
	eventRepo := repositories.NewCommissionEventRepository(db)
	rateRepo := repositories.NewCommissionRateRepository(db)
	walletTxRepo := repositories.NewWalletTransactionRepository(db)

	// Catalog repositories
	membershipRepo := repositories.NewMembershipRepository(db)
	productRepo := repositories.NewProductRepository(db)
	courseRepo := repositories.NewCourseRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	accessService := services.NewAccessLockService(grantRepo, enrollmentRepo, membershipRepo, courseRepo)
	walletService := services.NewWalletService(eventRepo, walletTxRepo)
	commissionService := services.NewCommissionService(rateRepo, eventRepo, walletTxRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	accessHandler := handlers.NewAccessHandler(accessService)
	walletHandler := handlers.NewWalletHandler(walletService)
	commissionHandler := handlers.NewCommissionHandler(commissionService)
	catalogHandler := handlers.NewCatalogHandler(membershipRepo, productRepo, courseRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	cronHandler := handlers.NewCronHandler(accessService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler, accessHandler,
		walletHandler, commissionHandler, catalogHandler, dashboardHandler,
		cronHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	accessHandler *handlers.AccessHandler,
	walletHandler *handlers.WalletHandler,
	commissionHandler *handlers.CommissionHandler,
	catalogHandler *handlers.CatalogHandler,
	dashboardHandler *handlers.DashboardHandler,
	cronHandler *handlers.CronHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Public routes (no auth, cacheable)
	publicRoutes := router.Group("/public")
	publicRoutes.Use(middleware.CacheControl(5 * time.Minute))
	publicRoutes.Get("/commission-settings", commissionHandler.PublicSettings)

	// Catalog routes (public browse)
	catalogRoutes := router.Group("/catalog")
	catalogRoutes.Use(middleware.CatalogCache())
	setupCatalogRoutes(catalogRoutes, catalogHandler)

	// Cron routes (bearer secret, not user auth)
	cronRoutes := router.Group("/cron")
	cronRoutes.Use(middleware.CronAuth(cfg))
	cronRoutes.Post("/lock-expired", cronHandler.LockExpired)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Profile routes (Authenticated users)
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	profileRoutes.Use(middleware.PrivateCacheHeaders(time.Minute))
	setupProfileRoutes(profileRoutes, userHandler)

	// Wallet routes (Authenticated users)
	walletRoutes := router.Group("/wallet")
	walletRoutes.Use(middleware.AuthMiddleware(cfg))
	walletRoutes.Use(middleware.NoCacheHeaders())
	walletRoutes.Get("/", walletHandler.GetWallet)
	walletRoutes.Get("/transactions", walletHandler.ListTransactions)

	// Own commission events (Authenticated users)
	commissionRoutes := router.Group("/commissions")
	commissionRoutes.Use(middleware.AuthMiddleware(cfg))
	commissionRoutes.Get("/", commissionHandler.MyCommissions)

	// Own access (Authenticated users)
	myAccessRoutes := router.Group("/my-access")
	myAccessRoutes.Use(middleware.AuthMiddleware(cfg))
	myAccessRoutes.Get("/", accessHandler.MyAccess)

	// Dashboard routes
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)

	// Admin routes
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, accessHandler, commissionHandler, catalogHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupCatalogRoutes configures public catalog routes
func setupCatalogRoutes(router fiber.Router, handler *handlers.CatalogHandler) {
	router.Get("/memberships", handler.ListMemberships)
	router.Get("/memberships/:id", handler.GetMembership)
	router.Get("/products", handler.ListProducts)
	router.Get("/products/:id", handler.GetProduct)
	router.Get("/courses", handler.ListCourses)
	router.Get("/courses/:id", handler.GetCourse)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", handler.ChangePassword)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	// Auto-detect role dashboard (All authenticated users)
	router.Get("/", handler.GetMyDashboard)

	// Affiliate dashboard (Affiliate/Admin only)
	router.Get("/affiliate", middleware.AffiliateOrAdmin(), handler.GetAffiliateDashboard)

	// Admin dashboard (Admin only)
	router.Get("/admin", middleware.AdminOnly(), handler.GetAdminDashboard)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(
	router fiber.Router,
	accessHandler *handlers.AccessHandler,
	commissionHandler *handlers.CommissionHandler,
	catalogHandler *handlers.CatalogHandler,
) {
	// Membership grants
	router.Post("/grants", accessHandler.CreateGrant)
	router.Get("/grants", accessHandler.ListGrants)
	router.Post("/grants/:id/restore", accessHandler.RestoreGrant)

	// Course enrollments
	router.Post("/enrollments", accessHandler.CreateEnrollment)
	router.Get("/enrollments", accessHandler.ListEnrollments)
	router.Post("/enrollments/:id/restore", accessHandler.RestoreEnrollment)

	// Commission rates
	router.Post("/commission-rates", commissionHandler.CreateRate)
	router.Get("/commission-rates", commissionHandler.ListRates)
	router.Get("/commission-rates/resolve", commissionHandler.ResolveRate)
	router.Get("/commission-rates/:id", commissionHandler.GetRate)
	router.Put("/commission-rates/:id", commissionHandler.UpdateRate)
	router.Delete("/commission-rates/:id", commissionHandler.DeleteRate)

	// Commission events
	router.Post("/commissions", commissionHandler.RecordSale)
	router.Get("/commissions", commissionHandler.ListEvents)
	router.Get("/commissions/stats", commissionHandler.GetStats)
	router.Post("/commissions/mark-available", commissionHandler.MarkAvailable)
	router.Post("/commissions/mark-paid", commissionHandler.MarkPaid)

	// Catalog management
	router.Post("/catalog/memberships", catalogHandler.CreateMembership)
	router.Put("/catalog/memberships/:id", catalogHandler.UpdateMembership)
	router.Delete("/catalog/memberships/:id", catalogHandler.DeleteMembership)
	router.Post("/catalog/products", catalogHandler.CreateProduct)
	router.Put("/catalog/products/:id", catalogHandler.UpdateProduct)
	router.Delete("/catalog/products/:id", catalogHandler.DeleteProduct)
	router.Post("/catalog/courses", catalogHandler.CreateCourse)
	router.Put("/catalog/courses/:id", catalogHandler.UpdateCourse)
	router.Delete("/catalog/courses/:id", catalogHandler.DeleteCourse)
}
