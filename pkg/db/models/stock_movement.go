package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/andresrodas/puntoventa-backend/pkg/enums"
)

// StockMovement is an immutable journal row written in the same transaction
// as the stock change it describes. Delta is negative for sales and orders.
type StockMovement struct {
	ID        uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID                 `gorm:"column:product_id;type:uuid;not null;index" json:"productId"`
	Delta     int                       `gorm:"column:delta;not null" json:"delta"`
	Reason    enums.StockMovementReason `gorm:"column:reason;not null" json:"reason"`
	Reference string                    `gorm:"column:reference;not null" json:"reference"`
	CreatedAt time.Time                 `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
