package cartControllers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzloop13-dot/LZ-Loop/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestMergeLine(t *testing.T) {
	addedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	product := models.Product{ID: "p-a", Name: "Sand", Price: d("30")}

	t.Run("keeps the original add time", func(t *testing.T) {
		item := models.CartItem{
			ProductID:    "p-a",
			ProductPrice: d("30"),
			Quantity:     1,
			TotalPrice:   d("30"),
			AddedAt:      addedAt,
		}

		require.NoError(t, mergeLine(&item, product, 2, false))
		assert.Equal(t, 3, item.Quantity)
		assert.True(t, item.TotalPrice.Equal(d("90")), "got %s", item.TotalPrice)
		assert.Equal(t, addedAt, item.AddedAt, "aggregation must not reorder the cart listing")
	})

	t.Run("refreshes the price snapshot with charm", func(t *testing.T) {
		// product was repriced since the line was added
		item := models.CartItem{
			ProductID:    "p-a",
			ProductPrice: d("25"),
			WithCharm:    true,
			UnitPrice:    d("27"),
			Quantity:     1,
			TotalPrice:   d("27"),
			AddedAt:      addedAt,
		}

		require.NoError(t, mergeLine(&item, product, 1, true))
		assert.True(t, item.ProductPrice.Equal(d("30")))
		assert.True(t, item.UnitPrice.Equal(d("32")))
		assert.True(t, item.TotalPrice.Equal(d("64")), "got %s", item.TotalPrice)
	})
}
