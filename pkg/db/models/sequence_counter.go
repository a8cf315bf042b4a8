package models

import "github.com/andresrodas/puntoventa-backend/pkg/enums"

// SequenceCounter holds the last ordinal issued for a (kind, day) pair. Rows
// are only touched through an atomic upsert-increment, never read-then-write.
type SequenceCounter struct {
	Kind  enums.SequenceKind `gorm:"column:kind;type:text;primaryKey"`
	Day   string             `gorm:"column:day;primaryKey"` // UTC day, YYYYMMDD
	Value int64              `gorm:"column:value;not null;default:0"`
}
