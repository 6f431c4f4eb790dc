package pricing

import (
	"testing"

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

func cartLine(price string, qty int, withCharm bool) models.CartItem {
	total, err := LineTotal(d(price), qty, withCharm)
	if err != nil {
		panic(err)
	}
	return models.CartItem{
		ProductPrice: d(price),
		WithCharm:    withCharm,
		UnitPrice:    UnitPrice(d(price), withCharm),
		Quantity:     qty,
		TotalPrice:   total,
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		price     string
		quantity  int
		withCharm bool
		want      string
		wantErr   error
	}{
		{name: "single unit", price: "25", quantity: 1, want: "25"},
		{name: "charm adds two per unit", price: "30", quantity: 2, withCharm: true, want: "64"},
		{name: "decimal price", price: "19.99", quantity: 3, want: "59.97"},
		{name: "zero quantity rejected", price: "25", quantity: 0, want: "0", wantErr: ErrInvalidQuantity},
		{name: "negative quantity rejected", price: "25", quantity: -1, want: "0", wantErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LineTotal(d(tt.price), tt.quantity, tt.withCharm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestCartSubtotalAndCount(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		assert.True(t, CartSubtotal(nil).IsZero())
		assert.Equal(t, 0, CartCount(nil))
	})

	t.Run("subtotal is the sum of line totals", func(t *testing.T) {
		items := []models.CartItem{
			cartLine("25", 1, false),
			cartLine("30", 2, true),
		}
		assert.True(t, CartSubtotal(items).Equal(d("89")))
		assert.Equal(t, 3, CartCount(items))
	})
}

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name     string
		zone     models.ShippingZone
		subtotal string
		want     string
	}{
		{name: "domestic below threshold", zone: models.ZoneDomestic, subtotal: "79.99", want: "5"},
		{name: "domestic at threshold ships free", zone: models.ZoneDomestic, subtotal: "80", want: "0"},
		{name: "domestic above threshold ships free", zone: models.ZoneDomestic, subtotal: "150", want: "0"},
		{name: "regional flat rate", zone: models.ZoneRegional, subtotal: "500", want: "12"},
		{name: "worldwide flat rate", zone: models.ZoneWorldwide, subtotal: "80", want: "20"},
		{name: "unknown zone falls back to worldwide", zone: "moon", subtotal: "200", want: "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShippingCost(tt.zone, d(tt.subtotal))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestPromoDiscount(t *testing.T) {
	percentage := func(value, min string) *models.PromoCode {
		return &models.PromoCode{
			Code: "WELCOME5", DiscountType: models.DiscountPercentage,
			DiscountValue: d(value), MinOrderAmount: d(min), Active: true,
		}
	}
	fixed := func(value, min string) *models.PromoCode {
		return &models.PromoCode{
			Code: "FIVER", DiscountType: models.DiscountFixed,
			DiscountValue: d(value), MinOrderAmount: d(min), Active: true,
		}
	}

	t.Run("nil promo yields zero", func(t *testing.T) {
		assert.True(t, PromoDiscount(nil, d("100")).IsZero())
	})

	t.Run("inactive promo yields zero", func(t *testing.T) {
		p := percentage("5", "0")
		p.Active = false
		assert.True(t, PromoDiscount(p, d("100")).IsZero())
	})

	t.Run("below minimum yields zero", func(t *testing.T) {
		assert.True(t, PromoDiscount(percentage("5", "30"), d("29.99")).IsZero())
	})

	t.Run("usage cap exhausted yields zero", func(t *testing.T) {
		p := fixed("5", "0")
		p.MaxUses = 10
		p.UsageCount = 10
		assert.True(t, PromoDiscount(p, d("100")).IsZero())
	})

	t.Run("percentage of subtotal", func(t *testing.T) {
		got := PromoDiscount(percentage("5", "30"), d("89"))
		assert.True(t, got.Equal(d("4.45")), "got %s", got)
	})

	t.Run("fixed discount capped at subtotal", func(t *testing.T) {
		got := PromoDiscount(fixed("15", "0"), d("10"))
		assert.True(t, got.Equal(d("10")), "got %s", got)
	})

	t.Run("percentage above 100 capped at subtotal", func(t *testing.T) {
		got := PromoDiscount(percentage("150", "0"), d("40"))
		assert.True(t, got.Equal(d("40")), "got %s", got)
	})
}

func TestOrderTotal(t *testing.T) {
	t.Run("subtotal plus shipping minus discount", func(t *testing.T) {
		got := OrderTotal(d("89"), d("12"), d("4.45"))
		assert.True(t, got.Equal(d("96.55")), "got %s", got)
	})

	t.Run("never negative", func(t *testing.T) {
		got := OrderTotal(d("10"), d("0"), d("999"))
		assert.True(t, got.IsZero())
	})
}

// Full checkout scenarios from the storefront's business rules.
func TestCheckoutScenarios(t *testing.T) {
	items := []models.CartItem{
		cartLine("25", 1, false), // product A
		cartLine("30", 2, true),  // product B with charm
	}
	subtotal := CartSubtotal(items)
	require.True(t, subtotal.Equal(d("89")))

	t.Run("domestic order over the threshold ships free", func(t *testing.T) {
		shipping := ShippingCost(models.ZoneDomestic, subtotal)
		total := OrderTotal(subtotal, shipping, decimal.Zero)
		assert.True(t, total.Equal(d("89")), "got %s", total)
	})

	t.Run("worldwide order pays flat shipping", func(t *testing.T) {
		shipping := ShippingCost(models.ZoneWorldwide, subtotal)
		total := OrderTotal(subtotal, shipping, decimal.Zero)
		assert.True(t, total.Equal(d("109")), "got %s", total)
	})

	t.Run("WELCOME5 on a free-shipping domestic order", func(t *testing.T) {
		promo := &models.PromoCode{
			Code:           "WELCOME5",
			DiscountType:   models.DiscountPercentage,
			DiscountValue:  d("5"),
			MinOrderAmount: d("30"),
			Active:         true,
		}
		discount := PromoDiscount(promo, subtotal)
		require.True(t, discount.Equal(d("4.45")), "got %s", discount)

		shipping := ShippingCost(models.ZoneDomestic, subtotal)
		total := OrderTotal(subtotal, shipping, discount)
		assert.True(t, total.Equal(d("84.55")), "got %s", total)
	})
}
