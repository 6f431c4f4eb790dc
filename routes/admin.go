package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lzloop13-dot/LZ-Loop/auth"
	contactControllers "github.com/lzloop13-dot/LZ-Loop/controllers/contact"
	orderControllers "github.com/lzloop13-dot/LZ-Loop/controllers/order"
	productControllers "github.com/lzloop13-dot/LZ-Loop/controllers/product"
	promoControllers "github.com/lzloop13-dot/LZ-Loop/controllers/promo"
	"github.com/lzloop13-dot/LZ-Loop/middleware"
)

// SetupAdminRoutes registers the back-office endpoints. Everything except the
// login itself sits behind the admin JWT middleware.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	r.POST("/admin/login", auth.AdminLogin(deps.Cfg))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(deps.Cfg.JWTSecret))
	{
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(deps.DB, deps.Cache))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(deps.DB, deps.Cache))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(deps.DB, deps.Cache))
		}

		promoAdmin := adminGroup.Group("/promo-codes")
		{
			promoAdmin.GET("", promoControllers.GetPromoCodes(deps.DB))
			promoAdmin.POST("", promoControllers.CreatePromoCode(deps.DB))
			promoAdmin.PUT("/:id", promoControllers.UpdatePromoCode(deps.DB))
			promoAdmin.DELETE("/:id", promoControllers.DeletePromoCode(deps.DB))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(deps.DB))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(deps.DB))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(deps.DB))

			// websocket feed for the back-office dashboard
			orderAdmin.GET("/ws", orderControllers.OrderFeedHandler)
		}

		adminGroup.GET("/contacts", contactControllers.GetContactMessages(deps.DB))
	}
}
