// Package routes wires repositories, services and handlers onto the
// fiber app.
package routes

import (
	"tembo/internal/config"
	"tembo/internal/handlers"
	"tembo/internal/middleware"
	"tembo/internal/repositories"
	"tembo/internal/services/auth"
	"tembo/internal/services/funding"
	"tembo/internal/services/user"
	"tembo/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	walletRepo := repositories.NewWalletRepository(db)
	userRepo := repositories.NewUserRepository(db)

	userService := user.NewService(userRepo, walletRepo)
	authService := auth.NewService(userRepo)

	engineConfig := wallet.Config{
		MinAmount:    decimal.RequireFromString(config.GetEnv("MIN_TX_AMOUNT", wallet.DefaultMinAmount)),
		MaxAmount:    decimal.RequireFromString(config.GetEnv("MAX_TX_AMOUNT", wallet.DefaultMaxAmount)),
		DailyLimit:   decimal.RequireFromString(config.GetEnv("DAILY_SPEND_LIMIT", wallet.DefaultDailyLimit)),
		MaxRetries:   config.GetIntEnv("TX_MAX_RETRIES", wallet.DefaultMaxRetries),
		RetryBackoff: config.GetDurationEnv("TX_RETRY_BACKOFF", wallet.DefaultRetryBackoff),
	}
	engine := wallet.NewService(
		walletRepo,
		repositories.CacheService,
		userService,
		engineConfig,
		&wallet.NoopMetricsCollector{},
	)

	fundingService := funding.NewService(engine, config.GetEnv("STRIPE_SECRET_KEY", ""))

	authHandler := handlers.NewAuthHandler(authService, userService)
	walletHandler := handlers.NewWalletHandler(engine)
	transferHandler := handlers.NewTransferHandler(engine)
	fundingHandler := handlers.NewFundingHandler(fundingService)
	adminHandler := handlers.NewAdminHandler(userService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	api := app.Group("/api")
	api.Get("/health", handlers.Health)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	protected := api.Group("/", authMiddleware.Handler)
	protected.Post("/logout", authHandler.Logout)

	protected.Post("/wallets", walletHandler.CreateWallet)
	protected.Get("/wallets/:name", walletHandler.GetWallet)
	protected.Get("/wallets/:name/balance", walletHandler.GetBalance)
	protected.Get("/wallets/:name/transactions", walletHandler.GetTransactions)
	protected.Post("/wallets/load", walletHandler.LoadMoney)

	protected.Post("/transfers", transferHandler.Transfer)
	protected.Post("/transfers/internal", transferHandler.InternalTransfer)

	protected.Post("/funding/topup", fundingHandler.TopUp)

	admin := protected.Group("/admin", middleware.AdminOnly)
	admin.Post("/blacklist", adminHandler.SetBlacklist)
}
