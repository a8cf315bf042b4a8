package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineItem snapshots one product line within an online order.
type OrderLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	ProductName    string    `gorm:"column:product_name;not null" json:"productName"`
	Qty            int       `gorm:"column:qty;not null" json:"quantity"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null" json:"unitPrice"`
	SubtotalCents  int       `gorm:"column:subtotal_cents;not null" json:"subtotal"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
