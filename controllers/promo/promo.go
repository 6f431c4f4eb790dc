package promoControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lzloop13-dot/LZ-Loop/models"
)

type CreatePromoInput struct {
	Code           string              `json:"code" binding:"required"`
	DiscountType   models.DiscountType `json:"discount_type" binding:"required"`
	DiscountValue  decimal.Decimal     `json:"discount_value" binding:"required"`
	MinOrderAmount decimal.Decimal     `json:"min_order_amount"`
	Scope          string              `json:"scope"`
	MaxUses        int                 `json:"max_uses"`
	Active         *bool               `json:"active"`
}

type UpdatePromoInput struct {
	DiscountType   *models.DiscountType `json:"discount_type"`
	DiscountValue  *decimal.Decimal     `json:"discount_value"`
	MinOrderAmount *decimal.Decimal     `json:"min_order_amount"`
	Scope          *string              `json:"scope"`
	MaxUses        *int                 `json:"max_uses"`
	Active         *bool                `json:"active"`
}

func validDiscount(dt models.DiscountType, value decimal.Decimal) error {
	if dt != models.DiscountPercentage && dt != models.DiscountFixed {
		return errors.New("discount_type must be percentage or fixed")
	}
	if value.IsNegative() || value.IsZero() {
		return errors.New("discount_value must be positive")
	}
	if dt == models.DiscountPercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("percentage discount cannot exceed 100")
	}
	return nil
}

// GET /admin/promo-codes
func GetPromoCodes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var promos []models.PromoCode
		if err := db.Order("created_at DESC").Find(&promos).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promo codes"})
			return
		}
		c.JSON(http.StatusOK, promos)
	}
}

// POST /admin/promo-codes
func CreatePromoCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePromoInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := validDiscount(input.DiscountType, input.DiscountValue); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.MinOrderAmount.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_order_amount cannot be negative"})
			return
		}

		code := models.NormalizePromoCode(input.Code)
		var existing models.PromoCode
		if err := db.First(&existing, "code = ?", code).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Promo code already exists"})
			return
		}

		active := true
		if input.Active != nil {
			active = *input.Active
		}
		promo := models.PromoCode{
			Code:           code,
			DiscountType:   input.DiscountType,
			DiscountValue:  input.DiscountValue,
			MinOrderAmount: input.MinOrderAmount,
			Scope:          input.Scope,
			MaxUses:        input.MaxUses,
			Active:         active,
		}
		if err := db.Create(&promo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promo code"})
			return
		}
		c.JSON(http.StatusCreated, promo)
	}
}

// PUT /admin/promo-codes/:id
func UpdatePromoCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var promo models.PromoCode
		if err := db.First(&promo, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promo code"})
			return
		}

		var input UpdatePromoInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.DiscountType != nil {
			promo.DiscountType = *input.DiscountType
		}
		if input.DiscountValue != nil {
			promo.DiscountValue = *input.DiscountValue
		}
		if err := validDiscount(promo.DiscountType, promo.DiscountValue); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.MinOrderAmount != nil {
			if input.MinOrderAmount.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "min_order_amount cannot be negative"})
				return
			}
			promo.MinOrderAmount = *input.MinOrderAmount
		}
		if input.Scope != nil {
			promo.Scope = *input.Scope
		}
		if input.MaxUses != nil {
			promo.MaxUses = *input.MaxUses
		}
		if input.Active != nil {
			promo.Active = *input.Active
		}

		if err := db.Save(&promo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promo code"})
			return
		}
		c.JSON(http.StatusOK, promo)
	}
}

// DELETE /admin/promo-codes/:id
func DeletePromoCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		result := db.Delete(&models.PromoCode{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promo code"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Promo code deleted"})
	}
}
