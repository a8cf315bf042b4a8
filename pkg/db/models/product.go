package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the canonical catalog entry. The stock column is mutated only
// through the stock ledger's conditional updates; everything else is owned by
// the product-management surface.
type Product struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	SKU        string    `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Stock      int       `gorm:"column:stock;not null;default:0" json:"stock"`
	MinStock   int       `gorm:"column:min_stock;not null;default:5" json:"minStock"`
	CostCents  int       `gorm:"column:cost_cents;not null;default:0" json:"costCents"`
	PriceCents int       `gorm:"column:price_cents;not null" json:"priceCents"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
