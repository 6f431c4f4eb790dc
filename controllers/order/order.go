package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartControllers "github.com/lzloop13-dot/LZ-Loop/controllers/cart"
	"github.com/lzloop13-dot/LZ-Loop/models"
	"github.com/lzloop13-dot/LZ-Loop/notify"
	"github.com/lzloop13-dot/LZ-Loop/pricing"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	CustomerName    string              `json:"customer_name" binding:"required"`
	CustomerEmail   string              `json:"customer_email" binding:"required,email"`
	CustomerPhone   string              `json:"customer_phone" binding:"required"`
	ShippingAddress string              `json:"shipping_address" binding:"required"`
	ShippingZone    models.ShippingZone `json:"shipping_zone" binding:"required"`
	PromoCode       string              `json:"promo_code"`
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
}

// -------- Errors --------

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrPromoNotFound      = errors.New("promo code not found")
	ErrPromoNotApplicable = errors.New("promo code not applicable")
	ErrProductUnavailable = errors.New("product no longer available")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusPaid):
		return models.OrderStatusPaid, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// buildOrderItems turns cart lines into immutable order snapshots. Unit
// prices are recomputed from the live product price, never trusted from the
// cart rows. Returns the snapshots and the order subtotal.
func buildOrderItems(cartItems []models.CartItem, productByID map[string]models.Product) ([]models.OrderItem, decimal.Decimal, error) {
	var orderItems []models.OrderItem
	subtotal := decimal.Zero

	for _, line := range cartItems {
		product, ok := productByID[line.ProductID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrProductUnavailable, line.ProductName)
		}

		lineTotal, err := pricing.LineTotal(product.Price, line.Quantity, line.WithCharm)
		if err != nil {
			return nil, decimal.Zero, err
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.ImageURL,
			ProductPrice: product.Price,
			WithCharm:    line.WithCharm,
			UnitPrice:    pricing.UnitPrice(product.Price, line.WithCharm),
			Quantity:     line.Quantity,
			TotalPrice:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	return orderItems, subtotal, nil
}

// orderErrorStatus maps a PlaceOrder failure to an HTTP status. Shopper
// mistakes come back verbatim; anything unrecognized is a server fault and
// must not leak driver text.
func orderErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrPromoNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrCartEmpty),
		errors.Is(err, ErrPromoNotApplicable),
		errors.Is(err, ErrProductUnavailable),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, pricing.ErrInvalidQuantity):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "failed to place order"
	}
}

// -------- Core Logic --------

// PlaceOrder composes an order from the session's authoritative cart inside
// one transaction: products are row-locked, stock is checked and deducted,
// snapshots copied, totals computed, promo validated. The cart itself is NOT
// cleared here; that happens on payment confirmation.
func PlaceOrder(db *gorm.DB, session string, req PlaceOrderRequest) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("session_id = ?", session).Order("added_at ASC").Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		// Lock products and deduct stock
		productByID := make(map[string]models.Product, len(cartItems))
		for _, line := range cartItems {
			if _, seen := productByID[line.ProductID]; seen {
				continue
			}
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ? AND active = ?", line.ProductID, true).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductUnavailable, line.ProductName)
				}
				return err
			}
			productByID[line.ProductID] = product
		}

		for _, line := range cartItems {
			product := productByID[line.ProductID]
			if product.Stock < line.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}
			product.Stock -= line.Quantity
			productByID[line.ProductID] = product
		}
		for _, product := range productByID {
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}

		orderItems, subtotal, err := buildOrderItems(cartItems, productByID)
		if err != nil {
			return err
		}

		shipping := pricing.ShippingCost(req.ShippingZone, subtotal)

		discount := decimal.Zero
		promoCode := ""
		if req.PromoCode != "" {
			var promo models.PromoCode
			code := models.NormalizePromoCode(req.PromoCode)
			if err := tx.First(&promo, "code = ?", code).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPromoNotFound
				}
				return err
			}
			if !promo.Applicable(subtotal) {
				return ErrPromoNotApplicable
			}
			discount = pricing.PromoDiscount(&promo, subtotal)
			promoCode = promo.Code
		}

		order = models.Order{
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			ShippingAddress: req.ShippingAddress,
			ShippingZone:    req.ShippingZone,
			CartSession:     session,
			Items:           orderItems,
			Subtotal:        subtotal,
			ShippingCost:    shipping,
			PromoCode:       promoCode,
			Discount:        discount,
			Total:           pricing.OrderTotal(subtotal, shipping, discount),
			Status:          models.OrderStatusPending,
			CreatedAt:       time.Now(),
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /orders
func CreateOrderHandler(db *gorm.DB, publisher *notify.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		session := cartControllers.SessionID(c)
		order, err := PlaceOrder(db, session, req)
		if err != nil {
			status, msg := orderErrorStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}

		broadcastOrderEvent("order.created", *order)
		publisher.Publish(c.Request.Context(), "order.created", order)

		c.JSON(http.StatusCreated, order)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{"status": newStatus}
		if req.TrackingNumber != "" {
			updates["tracking_number"] = req.TrackingNumber
		}
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		order.Status = newStatus
		broadcastOrderEvent("order.status_changed", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
