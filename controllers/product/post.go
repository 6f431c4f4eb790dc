package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lzloop13-dot/LZ-Loop/cache"
	"github.com/lzloop13-dot/LZ-Loop/models"
)

type CreateProductInput struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price" binding:"required"`
	ImageURL    string                 `json:"image_url"`
	Category    models.ProductCategory `json:"category"`
	Stock       int                    `json:"stock"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() || input.Price.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}
		if input.Category == "" {
			input.Category = models.CategoryBag
		}
		if input.Category != models.CategoryBag && input.Category != models.CategoryPouch {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			ImageURL:    input.ImageURL,
			Category:    input.Category,
			Stock:       input.Stock,
			Active:      true,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		pc.Invalidate(c.Request.Context())
		c.JSON(http.StatusCreated, product)
	}
}
