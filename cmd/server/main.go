package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/http/middleware"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/http/routes"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/persistence/repositories"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/snapshot"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/config"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/services"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"

	_ "github.com/hananmuzaffar/rx-nexus-pharmacy-hub/docs" // Swagger docs
)

// @title Rx Nexus Pharmacy Hub API
// @version 1.0
// @description Pharmacy workstation data-sync API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@rxnexus.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := config.MigrateDatabase(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed demo staff and the starter catalogue
	if err := config.NewSeeder(db).Run(ctx); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Open local snapshot
	snaps, err := snapshot.OpenSQLite(cfg.Snapshot.Path)
	if err != nil {
		log.Fatalf("❌ Failed to open snapshot database: %v", err)
	}
	defer snaps.Close()

	// Initialize repositories
	tables := repositories.NewTables(db)
	authRepo := repositories.NewAuthRepository(db, cfg.Session.Secret, cfg.SessionLifetime())
	permRepo := repositories.NewPermissionRepository(db)

	// Initialize stores
	inventory := stores.NewInventory(tables.Inventory, snaps)
	customers := stores.NewCustomers(tables.Customers)
	suppliers := stores.NewSuppliers(tables.Suppliers, snaps)
	prescriptions := stores.NewPrescriptions(tables.Prescriptions)
	ePrescriptions := stores.NewEPrescriptions(tables.EPrescriptions, prescriptions)
	returns := stores.NewReturns(tables.Returns)
	sales := stores.NewSales(tables.Sales)
	purchases := stores.NewPurchases(tables.Purchases)
	users := stores.NewUsers(tables.Users, permRepo, snaps)
	notifications := stores.NewNotifications(snaps)
	settings := stores.NewSettings(snaps)

	// Initialize services
	sessions := services.NewSessionManager(authRepo, snaps)
	resolver := services.NewPermissionResolver(sessions, users, permRepo)
	initializer := services.NewStoreInitializer(cfg.Scheduler.InitTimeout,
		inventory, customers, suppliers, prescriptions, ePrescriptions,
		returns, sales, purchases, users,
	)
	initializer.Attach(sessions)
	users.Observe(sessions.SyncUser)
	dashboard := services.NewDashboardService(inventory, sales, customers, prescriptions,
		ePrescriptions, returns, notifications, cfg.Scheduler.ExpiryDays)

	// Resume the previous operator, if their session is still valid
	if err := sessions.Restore(ctx); err != nil {
		log.Printf("⚠️ Warning: Failed to restore session: %v", err)
	}

	// Start Cron Service for store refresh, stock alerts and session cleanup
	cronService, err := services.NewCronService(services.CronConfig{
		RefreshSpec: cfg.Scheduler.Refresh,
		AlertSpec:   cfg.Scheduler.Alerts,
		ExpiryDays:  cfg.Scheduler.ExpiryDays,
	}, sessions, initializer, inventory, notifications, settings)
	if err != nil {
		log.Fatalf("❌ Failed to schedule jobs: %v", err)
	}
	if err := cronService.ScheduleSessionCleanup(cfg.Scheduler.Cleanup, authRepo); err != nil {
		log.Fatalf("❌ Failed to schedule session cleanup: %v", err)
	}
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Rx Nexus Pharmacy Hub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, routes.Deps{
		Config:         cfg,
		Sessions:       sessions,
		Permissions:    resolver,
		Initializer:    initializer,
		Dashboard:      dashboard,
		DBPing:         config.HealthCheck,
		Inventory:      inventory,
		Customers:      customers,
		Suppliers:      suppliers,
		Prescriptions:  prescriptions,
		EPrescriptions: ePrescriptions,
		Returns:        returns,
		Sales:          sales,
		Purchases:      purchases,
		Users:          users,
		Notifications:  notifications,
		Settings:       settings,
	})

	// Graceful shutdown
	go gracefulShutdown(app, cfg)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

	// Let a sign-in sync finish writing its snapshots
	initializer.Wait()
	log.Println("✅ Server stopped gracefully")
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, cfg *config.Config) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.Scheduler.ShutdownWait); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
}
