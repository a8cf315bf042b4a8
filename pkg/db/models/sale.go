package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/andresrodas/puntoventa-backend/pkg/enums"
)

// Sale is a committed point-of-sale transaction. It is written once, inside
// the same transaction that decrements stock, and never mutated afterwards.
type Sale struct {
	ID               uuid.UUID               `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SaleNumber       string                  `gorm:"column:sale_number;uniqueIndex;not null" json:"saleNumber"`
	CustomerName     string                  `gorm:"column:customer_name;not null" json:"customerName"`
	CustomerDocument *string                 `gorm:"column:customer_document" json:"customerDocument,omitempty"`
	PaymentMethod    string                  `gorm:"column:payment_method;not null" json:"paymentMethod"`
	Status           enums.TransactionStatus `gorm:"column:status;not null;default:'completed'" json:"status"`
	TotalCents       int                     `gorm:"column:total_cents;not null" json:"totalCents"`
	Items            []SaleLineItem          `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
