package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one line of a shopper's cart. Carts are anonymous and keyed by
// the session cookie; product fields are snapshotted at add time so the cart
// keeps rendering even if the product is edited, but order math always
// recomputes from the live product price.
type CartItem struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	SessionID    string          `gorm:"index;not null" json:"-"`
	ProductID    string          `gorm:"not null" json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	ProductPrice decimal.Decimal `gorm:"type:numeric(10,2)" json:"product_price"`
	WithCharm    bool            `json:"with_charm"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_price"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_price"`
	AddedAt      time.Time       `json:"added_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
