package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/andresrodas/puntoventa-backend/pkg/enums"
)

// OnlineOrder is a committed storefront order. Like Sale it is created as a
// single unit together with its line items and stock decrements.
type OnlineOrder struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderNumber     string                  `gorm:"column:order_number;uniqueIndex;not null" json:"orderNumber"`
	CustomerID      uuid.UUID               `gorm:"column:customer_id;type:uuid;not null;index" json:"customerId"`
	ShippingAddress string                  `gorm:"column:shipping_address;not null" json:"address"`
	PaymentMethod   string                  `gorm:"column:payment_method;not null" json:"paymentMethod"`
	Status          enums.TransactionStatus `gorm:"column:status;not null;default:'completed'" json:"status"`
	TotalCents      int                     `gorm:"column:total_cents;not null" json:"totalAmount"`
	Items           []OrderLineItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
