package routes

import (
	"github.com/gin-gonic/gin"

	paymentControllers "github.com/lzloop13-dot/LZ-Loop/controllers/payment"
)

// SetupPaymentRoutes registers the hosted-checkout endpoints.
func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	payments := r.Group("/payments")
	{
		payments.POST("/checkout", paymentControllers.CreateCheckout(deps.DB, deps.Payments, deps.Cfg.Currency))
		payments.GET("/status/:sessionID", paymentControllers.StatusHandler(deps.Reconciler))
	}
}
