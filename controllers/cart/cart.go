package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lzloop13-dot/LZ-Loop/models"
	"github.com/lzloop13-dot/LZ-Loop/pricing"
)

type AddItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	WithCharm bool   `json:"with_charm"`
}

// mergeLine folds an additional quantity onto an existing cart line,
// refreshing the price snapshot from the live product. AddedAt is left alone
// so aggregation never reorders the cart listing; gorm bumps UpdatedAt on
// save.
func mergeLine(item *models.CartItem, product models.Product, quantity int, withCharm bool) error {
	item.Quantity += quantity
	item.ProductPrice = product.Price
	item.UnitPrice = pricing.UnitPrice(product.Price, withCharm)

	total, err := pricing.LineTotal(product.Price, item.Quantity, withCharm)
	if err != nil {
		return err
	}
	item.TotalPrice = total
	return nil
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionID(c)

		var items []models.CartItem
		if err := db.Where("session_id = ?", session).Order("added_at ASC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /cart
//
// The server is the serialization point for quantity aggregation: adding the
// same product+charm combination again bumps the existing line instead of
// creating a duplicate, no matter how fast the clicks come in.
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionID(c)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}
		if input.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}

		// Fetch product from DB
		var product models.Product
		if err := db.First(&product, "id = ? AND active = ?", input.ProductID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		unitPrice := pricing.UnitPrice(product.Price, input.WithCharm)

		// Same product+charm already in the cart: aggregate quantity
		var item models.CartItem
		err := db.Where("session_id = ? AND product_id = ? AND with_charm = ?",
			session, product.ID, input.WithCharm).First(&item).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
				return
			}

			total, terr := pricing.LineTotal(product.Price, input.Quantity, input.WithCharm)
			if terr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": terr.Error()})
				return
			}
			newItem := models.CartItem{
				SessionID:    session,
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.ImageURL,
				ProductPrice: product.Price,
				WithCharm:    input.WithCharm,
				UnitPrice:    unitPrice,
				Quantity:     input.Quantity,
				TotalPrice:   total,
				AddedAt:      time.Now(),
			}
			if err := db.Create(&newItem).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, newItem)
			return
		}

		if err := mergeLine(&item, product, input.Quantity, input.WithCharm); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/:itemID
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionID(c)
		itemID := c.Param("itemID")

		result := db.Where("session_id = ? AND id = ?", session, itemID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionID(c)

		if err := db.Where("session_id = ?", session).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
