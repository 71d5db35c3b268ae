// Package routes defines the API routing configuration.
package routes

import (
	"github.com/mahadebmondal004/BrohealBackend/internal/handlers"
	"github.com/mahadebmondal004/BrohealBackend/internal/middleware"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/settlement"
	"github.com/mahadebmondal004/BrohealBackend/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Settlement settlement.Service
	Wallet     wallet.Service
	Settings   handlers.SettingsReader

	// FrontendURL is the redirect base used when Settings cannot be read.
	FrontendURL string
	JWTSecret   string

	Health    map[string]handlers.HealthChecker
	PoolStats handlers.PoolStatsProvider
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	Log *zap.Logger
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	health := handlers.NewHealthHandler(deps.Health, deps.PoolStats)
	app.Get("/health", health.HealthCheck)
	app.Get("/health/cache", health.CacheStats)
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/public/settings", handlers.PublicSettings(deps.Settings))

	auth := middleware.NewAuthMiddleware(deps.JWTSecret, log)

	setupPaymentRoutes(api, auth, handlers.NewPaymentHandler(deps.Settlement, deps.Settings, deps.FrontendURL, log))
	setupTherapistRoutes(api, auth,
		handlers.NewWalletHandler(deps.Wallet),
		handlers.NewBookingHandler(deps.Settlement, log))
}

func setupPaymentRoutes(api fiber.Router, auth *middleware.AuthMiddleware, h *handlers.PaymentHandler) {
	payments := api.Group("/payments")

	// The gateway calls back without a token.
	payments.Get("/callback", h.Callback)
	payments.Post("/callback", h.Callback)

	payments.Post("/initiate", auth.Handler, middleware.RequireRole(models.RoleUser), h.Initiate)
	payments.Get("/verify/:orderId", auth.Handler, h.Verify)
}

func setupTherapistRoutes(api fiber.Router, auth *middleware.AuthMiddleware, walletHandler *handlers.WalletHandler, bookingHandler *handlers.BookingHandler) {
	therapist := api.Group("/therapist", auth.Handler, middleware.RequireRole(models.RoleTherapist))

	therapist.Get("/wallet", walletHandler.GetWallet)
	therapist.Get("/wallet/transactions", walletHandler.GetTransactions)
	therapist.Post("/wallet/withdraw", walletHandler.Withdraw)

	therapist.Patch("/bookings/:id/complete", bookingHandler.Complete)
}
