package models

import "time"

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// PaymentSession correlates a provider-hosted checkout transaction with a
// local order. The ID is the opaque session id issued by the provider. A
// session is resolved at most once; once paid it never changes again.
type PaymentSession struct {
	ID          string        `gorm:"primaryKey" json:"session_id"`
	OrderID     string        `gorm:"index;not null" json:"order_id"`
	Status      PaymentStatus `gorm:"type:varchar(20);default:'unpaid'" json:"payment_status"`
	CheckoutURL string        `json:"checkout_url"`
	SuccessURL  string        `json:"-"`
	CancelURL   string        `json:"-"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
