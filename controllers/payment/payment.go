package paymentControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lzloop13-dot/LZ-Loop/models"
	"github.com/lzloop13-dot/LZ-Loop/payments"
)

type CreateCheckoutRequest struct {
	OrderID    string `json:"order_id" binding:"required"`
	SuccessURL string `json:"success_url" binding:"required"`
	CancelURL  string `json:"cancel_url" binding:"required"`
}

// POST /payments/checkout
//
// Creates a hosted checkout session for a pending order and returns the
// provider URL the shopper must be redirected to. The success URL must carry
// the session-id placeholder the provider substitutes on redirect back.
func CreateCheckout(db *gorm.DB, provider payments.Client, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !strings.Contains(req.SuccessURL, payments.SessionIDPlaceholder) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "success_url must contain the " + payments.SessionIDPlaceholder + " placeholder",
			})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		if order.Status != models.OrderStatusPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order is not awaiting payment"})
			return
		}

		sess, err := provider.CreateSession(c.Request.Context(), payments.CreateSessionRequest{
			OrderID:     order.ID,
			Amount:      order.Total.StringFixed(2),
			Currency:    currency,
			Description: "LZ Loop order " + order.ID,
			SuccessURL:  req.SuccessURL,
			CancelURL:   req.CancelURL,
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		session := models.PaymentSession{
			ID:          sess.ID,
			OrderID:     order.ID,
			Status:      models.PaymentStatusUnpaid,
			CheckoutURL: sess.URL,
			SuccessURL:  req.SuccessURL,
			CancelURL:   req.CancelURL,
			CreatedAt:   time.Now(),
		}
		if err := db.Create(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store payment session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id": sess.ID,
			"url":        sess.URL,
		})
	}
}

// GET /payments/status/:sessionID
func StatusHandler(rec *Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionID")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionID is required"})
			return
		}

		status, err := rec.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "payment session not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id":     sessionID,
			"payment_status": status,
		})
	}
}
