package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lzloop13-dot/LZ-Loop/cache"
	"github.com/lzloop13-dot/LZ-Loop/models"
)

// GET /products
func GetProducts(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")

		if products, ok := pc.GetProducts(c.Request.Context(), category); ok {
			c.JSON(http.StatusOK, products)
			return
		}

		query := db.Model(&models.Product{}).Where("active = ?", true)
		if category != "" {
			query = query.Where("category = ?", category)
		}

		var products []models.Product
		if err := query.Order("created_at ASC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		pc.SetProducts(c.Request.Context(), category, products)
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ? AND active = ?", id, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
