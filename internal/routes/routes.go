// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"chowpay/internal/handlers"
	"chowpay/internal/middleware"
	"chowpay/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes.
type Handlers struct {
	Payment *handlers.PaymentHandler
	Wallet  *handlers.WalletHandler
	Cleanup *handlers.CleanupHandler
	Health  *handlers.HealthHandler
}

type Options struct {
	// SecureCookies marks the csrf cookie Secure.
	SecureCookies bool
	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, h Handlers, auth *middleware.AuthMiddleware, opts Options) {
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app.Get("/health", h.Health.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := app.Group("/api")
	csrf := middleware.CSRF(opts.SecureCookies)

	api.Get("/csrf-token", csrf, handlers.CSRFToken)

	// Customer routes
	api.Post("/wallet-payment", auth.Handler, csrf,
		middleware.HasPermission(models.PermissionPaymentWrite), h.Payment.Pay)

	wallet := api.Group("/wallet", auth.Handler)
	wallet.Get("/", middleware.HasPermission(models.PermissionWalletRead), h.Wallet.GetWallet)
	wallet.Get("/transactions", middleware.HasPermission(models.PermissionWalletRead), h.Wallet.GetTransactions)
	wallet.Get("/loyalty", middleware.HasPermission(models.PermissionWalletRead), h.Wallet.GetLoyaltyHistory)
	wallet.Post("/sync", middleware.HasPermission(models.PermissionWalletWrite), h.Wallet.SyncWallet)

	setupAdminRoutes(api, h, auth)
}

func setupAdminRoutes(api fiber.Router, h Handlers, auth *middleware.AuthMiddleware) {
	admin := api.Group("/admin", auth.Handler, middleware.AdminAuthMiddleware)

	admin.Get("/cleanup", middleware.HasPermission(models.PermissionReadAdmin), h.Cleanup.ListIssues)
	admin.Post("/cleanup", middleware.HasPermission(models.PermissionWriteAdmin), h.Cleanup.Execute)
}
