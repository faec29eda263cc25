package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"stream-ledger.backend/internal/domain/entities"
	"stream-ledger.backend/internal/interfaces/http/handlers"
	"stream-ledger.backend/internal/interfaces/http/middleware"
	"stream-ledger.backend/pkg/jwt"
)

type routeDeps struct {
	walletHandler     *handlers.WalletHandler
	mediaHandler      *handlers.MediaHandler
	paymentHandler    *handlers.PaymentHandler
	withdrawalHandler *handlers.WithdrawalHandler
	jwtService        *jwt.JWTService
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.AuthMiddleware(d.jwtService)

	v1 := r.Group("/api/v1")
	{
		// Payment provider webhook (server-to-server, delivered at
		// least once; CreditPayment is idempotent on providerRef).
		v1.POST("/payments/webhook", middleware.IdempotencyMiddleware(), d.paymentHandler.HandleWebhook)

		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(auth, middleware.RequireCapability(entities.CapabilityViewOwnWallet))
		{
			wallet.GET("", d.walletHandler.GetWallet)
			wallet.GET("/ledger", d.walletHandler.GetLedger)
			wallet.GET("/earnings", middleware.RequireCapability(entities.CapabilityViewOwnEarnings), d.walletHandler.GetEarnings)
		}

		// Media unlock (protected)
		media := v1.Group("/media")
		media.Use(auth, middleware.RequireCapability(entities.CapabilityUnlockMedia))
		{
			media.POST("/:id/unlock", middleware.IdempotencyMiddleware(), d.mediaHandler.UnlockMedia)
		}

		// Payment history (protected)
		payments := v1.Group("/payments")
		payments.Use(auth)
		{
			payments.GET("", d.paymentHandler.ListPayments)
		}

		// Withdrawal routes (protected, creator roles only)
		withdrawals := v1.Group("/withdrawals")
		withdrawals.Use(auth, middleware.RequireCapability(entities.CapabilityRequestWithdraw))
		{
			withdrawals.POST("", d.withdrawalHandler.CreateWithdrawal)
			withdrawals.GET("", d.withdrawalHandler.ListWithdrawals)
		}

		// Review routes (admin only)
		admin := v1.Group("/admin/withdrawals")
		admin.Use(auth, middleware.RequireCapability(entities.CapabilityReviewWithdraw))
		{
			admin.GET("", d.withdrawalHandler.ListReviewQueue)
			admin.POST("/:id/review", d.withdrawalHandler.ReviewWithdrawal)
		}
	}
}
