package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/lzloop13-dot/LZ-Loop/controllers/cart"
	contactControllers "github.com/lzloop13-dot/LZ-Loop/controllers/contact"
	orderControllers "github.com/lzloop13-dot/LZ-Loop/controllers/order"
	productControllers "github.com/lzloop13-dot/LZ-Loop/controllers/product"
)

// SetupShopRoutes registers the public storefront endpoints. No auth: carts
// hang off an anonymous session cookie.
func SetupShopRoutes(r *gin.Engine, deps Deps) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(deps.DB, deps.Cache))
		products.GET("/:id", productControllers.GetProductByID(deps.DB))
	}

	cart := r.Group("/cart")
	{
		cart.GET("", cartControllers.GetCart(deps.DB))
		cart.POST("", cartControllers.AddItem(deps.DB))
		cart.DELETE("/:itemID", cartControllers.RemoveItem(deps.DB))
		cart.DELETE("", cartControllers.ClearCart(deps.DB))
	}

	r.POST("/orders", orderControllers.CreateOrderHandler(deps.DB, deps.Publisher))

	r.POST("/contact", contactControllers.SubmitContact(deps.DB, deps.Publisher))
}
