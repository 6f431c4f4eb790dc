package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lzloop13-dot/LZ-Loop/cache"
	"github.com/lzloop13-dot/LZ-Loop/config"
	paymentControllers "github.com/lzloop13-dot/LZ-Loop/controllers/payment"
	"github.com/lzloop13-dot/LZ-Loop/notify"
	"github.com/lzloop13-dot/LZ-Loop/payments"
)

// Deps carries everything the route groups need. Cache and Publisher may be
// nil when Redis or the broker are not configured.
type Deps struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Cache      *cache.ProductCache
	Publisher  *notify.Publisher
	Payments   payments.Client
	Reconciler *paymentControllers.Reconciler
	Logger     *zap.Logger
}

// SetupRoutes wires up the shop, payment, and admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupShopRoutes(r, deps)
	SetupPaymentRoutes(r, deps)
	SetupAdminRoutes(r, deps)
}
