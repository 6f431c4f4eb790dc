// Package pricing holds the pure money math for the storefront: line totals,
// cart aggregates, shipping, promo discounts and the final order total.
// Everything here is deterministic over its inputs; rounding to two decimals
// happens only at presentation time, never inside the engine.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/lzloop13-dot/LZ-Loop/models"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

var (
	// CharmPrice is the flat add-on charged per unit when a charm is attached.
	CharmPrice = decimal.NewFromInt(2)

	// FreeShippingThreshold is the domestic free-shipping floor.
	FreeShippingThreshold = decimal.NewFromInt(80)

	shippingDomestic  = decimal.NewFromInt(5)
	shippingRegional  = decimal.NewFromInt(12)
	shippingWorldwide = decimal.NewFromInt(20)

	hundred = decimal.NewFromInt(100)
)

// UnitPrice is the effective per-unit price: the product price plus the charm
// add-on when selected.
func UnitPrice(price decimal.Decimal, withCharm bool) decimal.Decimal {
	if withCharm {
		return price.Add(CharmPrice)
	}
	return price
}

// LineTotal computes unit price times quantity for one cart line. Quantities
// below 1 are rejected; the returned total is zero in that case.
func LineTotal(price decimal.Decimal, quantity int, withCharm bool) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, ErrInvalidQuantity
	}
	return UnitPrice(price, withCharm).Mul(decimal.NewFromInt(int64(quantity))), nil
}

// CartSubtotal sums the stored line totals of the cart. An empty cart is 0.
func CartSubtotal(items []models.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	return subtotal
}

// CartCount sums the quantities across all cart lines.
func CartCount(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// ShippingCost returns the flat cost for the zone. Unknown zones fall back to
// the worldwide rate. Domestic orders at or above the threshold ship free.
func ShippingCost(zone models.ShippingZone, subtotal decimal.Decimal) decimal.Decimal {
	var cost decimal.Decimal
	switch zone {
	case models.ZoneDomestic:
		cost = shippingDomestic
	case models.ZoneRegional:
		cost = shippingRegional
	default:
		cost = shippingWorldwide
	}
	if zone == models.ZoneDomestic && subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return cost
}

// PromoDiscount computes the discount a promo grants on the subtotal. A nil,
// inactive, exhausted or below-minimum promo yields zero. The discount never
// exceeds the subtotal.
func PromoDiscount(promo *models.PromoCode, subtotal decimal.Decimal) decimal.Decimal {
	if !promo.Applicable(subtotal) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch promo.DiscountType {
	case models.DiscountPercentage:
		discount = subtotal.Mul(promo.DiscountValue).Div(hundred)
	case models.DiscountFixed:
		discount = promo.DiscountValue
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// OrderTotal is subtotal plus shipping minus discount, floored at zero.
func OrderTotal(subtotal, shipping, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shipping).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
