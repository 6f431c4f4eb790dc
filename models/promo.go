package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromoCode is a discount rule applied against the order subtotal at
// checkout. Codes are stored upper-cased; MaxUses of 0 means uncapped.
type PromoCode struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	Code           string          `gorm:"uniqueIndex;not null" json:"code"`
	DiscountType   DiscountType    `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount_value"`
	MinOrderAmount decimal.Decimal `gorm:"type:numeric(10,2)" json:"min_order_amount"`
	Scope          string          `gorm:"default:'all'" json:"scope"`
	UsageCount     int             `json:"usage_count"`
	MaxUses        int             `json:"max_uses"`
	Active         bool            `gorm:"default:true" json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (p *PromoCode) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Code = NormalizePromoCode(p.Code)
	return nil
}

// Applicable reports whether the promo may be applied to an order with the
// given subtotal: active, subtotal at or above the minimum, and usage below
// the cap when one is set.
func (p *PromoCode) Applicable(subtotal decimal.Decimal) bool {
	if p == nil || !p.Active {
		return false
	}
	if subtotal.LessThan(p.MinOrderAmount) {
		return false
	}
	if p.MaxUses > 0 && p.UsageCount >= p.MaxUses {
		return false
	}
	return true
}

func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
