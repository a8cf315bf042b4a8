package models

import (
	"time"

	"github.com/google/uuid"
)

// SaleLineItem snapshots one product line within a sale. Unit price and the
// product name are copied at commit time so later catalog edits cannot
// rewrite history.
type SaleLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SaleID         uuid.UUID `gorm:"column:sale_id;type:uuid;not null;index" json:"saleId"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	ProductName    string    `gorm:"column:product_name;not null" json:"productName"`
	Qty            int       `gorm:"column:qty;not null" json:"quantity"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null" json:"unitPrice"`
	SubtotalCents  int       `gorm:"column:subtotal_cents;not null" json:"subtotal"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
