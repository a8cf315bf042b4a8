package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryAlert flags a low-stock episode for one product. The partial
// unique index keeps at most one unresolved alert per product; concurrent
// creators lose the insert race instead of duplicating the alert.
type InventoryAlert struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductID  uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index:idx_inventory_alerts_open,unique,where:is_resolved = false" json:"productId"`
	Message    string     `gorm:"column:message;not null" json:"message"`
	IsResolved bool       `gorm:"column:is_resolved;not null;default:false" json:"isResolved"`
	ResolvedAt *time.Time `gorm:"column:resolved_at" json:"resolvedAt,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
