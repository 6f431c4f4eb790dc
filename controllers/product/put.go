package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lzloop13-dot/LZ-Loop/cache"
	"github.com/lzloop13-dot/LZ-Loop/models"
)

// UpdateProductInput carries partial updates; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Price       *decimal.Decimal        `json:"price"`
	ImageURL    *string                 `json:"image_url"`
	Category    *models.ProductCategory `json:"category"`
	Stock       *int                    `json:"stock"`
	Active      *bool                   `json:"active"`
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() || input.Price.IsZero() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
				return
			}
			product.Price = *input.Price
		}
		if input.ImageURL != nil {
			product.ImageURL = *input.ImageURL
		}
		if input.Category != nil {
			if *input.Category != models.CategoryBag && *input.Category != models.CategoryPouch {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			product.Category = *input.Category
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.Active != nil {
			product.Active = *input.Active
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		pc.Invalidate(c.Request.Context())
		c.JSON(http.StatusOK, product)
	}
}
