package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/http/handlers"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/http/middleware"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/config"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/services"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
)

// Deps holds everything the routes are built from
type Deps struct {
	Config      *config.Config
	Sessions    *services.SessionManager
	Permissions *services.PermissionResolver
	Initializer *services.StoreInitializer
	Dashboard   *services.DashboardService
	DBPing      handlers.Pinger

	Inventory      *stores.InventoryStore
	Customers      *stores.CustomerStore
	Suppliers      *stores.SupplierStore
	Prescriptions  *stores.PrescriptionStore
	EPrescriptions *stores.EPrescriptionStore
	Returns        *stores.ReturnStore
	Sales          *stores.SaleStore
	Purchases      *stores.PurchaseStore
	Users          *stores.UserStore
	Notifications  *stores.NotificationStore
	Settings       *stores.SettingsStore
}

// crud is the subset of a StoreHandler the routes register
type crud interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// Setup configures all routes for the application
func Setup(app *fiber.App, d Deps) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(d.DBPing, d.Sessions)
	authHandler := handlers.NewAuthHandler(d.Sessions, d.Permissions)
	userHandler := handlers.NewUserHandler(d.Users)
	inventoryHandler := handlers.NewInventoryHandler(d.Inventory, d.Config.Scheduler.ExpiryDays)
	salesHandler := handlers.NewSalesHandler(d.Sales, d.Inventory, d.Dashboard)
	prescriptionHandler := handlers.NewPrescriptionHandler(d.Prescriptions, d.EPrescriptions)
	dashboardHandler := handlers.NewDashboardHandler(d.Dashboard, d.Returns)
	notificationHandler := handlers.NewNotificationHandler(d.Notifications)
	settingsHandler := handlers.NewSettingsHandler(d.Settings)
	syncHandler := handlers.NewSyncHandler(d.Initializer)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/logout", middleware.RequireAuth(d.Sessions), authHandler.Logout)
	authRoutes.Get("/me", middleware.RequireAuth(d.Sessions), middleware.NoCacheHeaders(), authHandler.Me)

	// Everything below needs a signed-in user
	protected := func(prefix string) fiber.Router {
		return apiV1.Group(prefix, middleware.RequireAuth(d.Sessions), middleware.NoCacheHeaders())
	}
	perm := func(module, action string) fiber.Handler {
		return middleware.RequirePermission(d.Permissions, module, action)
	}

	// Inventory
	inventoryRoutes := protected("/inventory")
	inventoryRoutes.Get("/low-stock", perm(domain.ModuleInventory, domain.ActionView), inventoryHandler.LowStock)
	inventoryRoutes.Get("/expiring", perm(domain.ModuleInventory, domain.ActionView), inventoryHandler.Expiring)
	inventoryRoutes.Get("/categories", perm(domain.ModuleInventory, domain.ActionView), middleware.PrivateCacheHeaders(time.Minute), inventoryHandler.Categories)
	inventoryRoutes.Post("/categories", perm(domain.ModuleInventory, domain.ActionAdd), inventoryHandler.AddCategory)
	inventoryRoutes.Get("/manufacturers", perm(domain.ModuleInventory, domain.ActionView), middleware.PrivateCacheHeaders(time.Minute), inventoryHandler.Manufacturers)
	inventoryRoutes.Post("/manufacturers", perm(domain.ModuleInventory, domain.ActionAdd), inventoryHandler.AddManufacturer)
	setupCRUD(inventoryRoutes, perm, domain.ModuleInventory, handlers.InventoryRecords(d.Inventory))

	// Customers and suppliers
	setupCRUD(protected("/customers"), perm, domain.ModuleCustomers, handlers.CustomerRecords(d.Customers))
	setupCRUD(protected("/suppliers"), perm, domain.ModulePurchases, handlers.SupplierRecords(d.Suppliers))

	// Prescriptions
	prescriptionRoutes := protected("/prescriptions")
	prescriptionRoutes.Get("/counts", perm(domain.ModulePrescriptions, domain.ActionView), prescriptionHandler.Counts)
	setupCRUD(prescriptionRoutes, perm, domain.ModulePrescriptions, handlers.PrescriptionRecords(d.Prescriptions))

	ePrescriptionRoutes := protected("/e-prescriptions")
	ePrescriptionRoutes.Post("/:id/convert", perm(domain.ModulePrescriptions, domain.ActionAdd), prescriptionHandler.Convert)
	setupCRUD(ePrescriptionRoutes, perm, domain.ModulePrescriptions, handlers.EPrescriptionRecords(d.EPrescriptions))

	// Returns
	returnRoutes := protected("/returns")
	returnRoutes.Get("/pending-count", perm(domain.ModuleReturns, domain.ActionView), dashboardHandler.PendingReturns)
	setupCRUD(returnRoutes, perm, domain.ModuleReturns, handlers.ReturnRecords(d.Returns))

	// Sales
	saleRoutes := protected("/sales")
	saleRoutes.Get("/stats", perm(domain.ModuleSales, domain.ActionView), salesHandler.Stats)
	saleRecords := handlers.SaleRecords(d.Sales)
	saleRoutes.Get("/", perm(domain.ModuleSales, domain.ActionView), saleRecords.List)
	saleRoutes.Get("/:id", perm(domain.ModuleSales, domain.ActionView), saleRecords.Get)
	saleRoutes.Post("/", perm(domain.ModuleSales, domain.ActionAdd), salesHandler.Create)
	saleRoutes.Put("/:id", perm(domain.ModuleSales, domain.ActionEdit), saleRecords.Update)
	saleRoutes.Delete("/:id", perm(domain.ModuleSales, domain.ActionDelete), saleRecords.Delete)

	// Purchases
	setupCRUD(protected("/purchases"), perm, domain.ModulePurchases, handlers.PurchaseRecords(d.Purchases))

	// Users
	userRoutes := protected("/users")
	userRoutes.Get("/roles", perm(domain.ModuleUsers, domain.ActionView), userHandler.Roles)
	userRoutes.Get("/:id/permissions", perm(domain.ModuleUsers, domain.ActionView), userHandler.GetPermissions)
	userRoutes.Put("/:id/permissions", perm(domain.ModuleUsers, domain.ActionEdit), userHandler.SetPermissions)
	userRoutes.Delete("/:id/permissions", perm(domain.ModuleUsers, domain.ActionEdit), userHandler.ClearPermissions)
	setupCRUD(userRoutes, perm, domain.ModuleUsers, handlers.UserRecords(d.Users))

	// Dashboard
	protected("/dashboard").Get("/", perm(domain.ModuleReports, domain.ActionView), dashboardHandler.Overview)

	// Notifications are per workstation; any signed-in user may manage them
	notificationRoutes := protected("/notifications")
	notificationRoutes.Get("/", notificationHandler.List)
	notificationRoutes.Post("/", notificationHandler.Add)
	notificationRoutes.Post("/read-all", notificationHandler.MarkAllAsRead)
	notificationRoutes.Post("/:id/read", notificationHandler.MarkAsRead)
	notificationRoutes.Delete("/", notificationHandler.Clear)
	notificationRoutes.Delete("/:id", notificationHandler.Remove)

	// Settings
	settingsRoutes := protected("/settings")
	settingsRoutes.Get("/", perm(domain.ModuleSettings, domain.ActionView), settingsHandler.Get)
	settingsRoutes.Put("/general", perm(domain.ModuleSettings, domain.ActionEdit), settingsHandler.UpdateGeneral)
	settingsRoutes.Put("/notifications", perm(domain.ModuleSettings, domain.ActionEdit), settingsHandler.UpdateNotifications)
	settingsRoutes.Put("/profile", perm(domain.ModuleSettings, domain.ActionEdit), settingsHandler.UpdateProfile)

	// Sync
	syncRoutes := protected("/sync")
	syncRoutes.Post("/", syncHandler.Refresh)
	syncRoutes.Get("/report", syncHandler.LastReport)
}

// setupCRUD registers list/get/create/update/delete guarded by module actions
func setupCRUD(router fiber.Router, perm func(module, action string) fiber.Handler, module string, h crud) {
	router.Get("/", perm(module, domain.ActionView), h.List)
	router.Get("/:id", perm(module, domain.ActionView), h.Get)
	router.Post("/", perm(module, domain.ActionAdd), h.Create)
	router.Put("/:id", perm(module, domain.ActionEdit), h.Update)
	router.Delete("/:id", perm(module, domain.ActionDelete), h.Delete)
}
