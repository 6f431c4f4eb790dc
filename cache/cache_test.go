package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lzloop13-dot/LZ-Loop/models"
)

func TestProductsKey(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{category: "", want: "catalog:products"},
		{category: "bag", want: "catalog:products:bag"},
		{category: "pouch", want: "catalog:products:pouch"},
	}

	for _, tt := range tests {
		t.Run("category "+tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, productsKey(tt.category))
		})
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var pc *ProductCache
	ctx := context.Background()

	products, ok := pc.GetProducts(ctx, "")
	assert.False(t, ok)
	assert.Nil(t, products)

	pc.SetProducts(ctx, "bag", []models.Product{{ID: "p-1"}})
	pc.Invalidate(ctx)
	pc.Close()
}

func TestNewWithoutAddr(t *testing.T) {
	assert.Nil(t, New(""))
}
