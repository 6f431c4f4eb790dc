package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string
type ShippingZone string

const (
	// Order statuses
	OrderStatusPending   OrderStatus = "pending"   // Placed, awaiting payment
	OrderStatusPaid      OrderStatus = "paid"      // Payment confirmed
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the item
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled by admin

	// Shipping zones
	ZoneDomestic  ShippingZone = "domestic"
	ZoneRegional  ShippingZone = "regional_international"
	ZoneWorldwide ShippingZone = "worldwide"
)

type Order struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	CustomerName    string          `gorm:"not null" json:"customer_name"`
	CustomerEmail   string          `gorm:"not null" json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingZone    ShippingZone    `gorm:"type:varchar(30)" json:"shipping_zone"`
	CartSession     string          `gorm:"index" json:"-"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(10,2)" json:"subtotal"`
	ShippingCost    decimal.Decimal `gorm:"type:numeric(10,2)" json:"shipping_cost"`
	PromoCode       string          `json:"promo_code,omitempty"`
	Discount        decimal.Decimal `gorm:"type:numeric(10,2)" json:"discount"`
	Total           decimal.Decimal `gorm:"type:numeric(10,2)" json:"total"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem is an immutable snapshot of a cart line at checkout time.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"-"`
	OrderID      string          `gorm:"index" json:"-"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	ProductPrice decimal.Decimal `gorm:"type:numeric(10,2)" json:"product_price"`
	WithCharm    bool            `json:"with_charm"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_price"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_price"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
