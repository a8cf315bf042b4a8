package sequence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/enums"
	pkgerrors "github.com/andresrodas/puntoventa-backend/pkg/errors"
)

// Counters are scoped to a (kind, UTC day) pair, so numbers restart at 0001
// each day and sale/order sequences never interfere with each other.
const (
	counterDayFormat = "20060102"
	displayDayFormat = "20060102"
)

// Generator issues day-scoped document numbers like V-20250101-0004. The
// increment happens in a single upsert so concurrent callers inside separate
// transactions can never observe the same ordinal.
type Generator struct {
	db *gorm.DB
}

// NewGenerator builds a generator bound to the provided GORM DB.
func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{db: db}
}

// WithTx returns a generator bound to the provided transaction. Callers that
// want the number to roll back with the rest of their writes must use this.
func (g *Generator) WithTx(tx *gorm.DB) *Generator {
	if tx == nil {
		return g
	}
	return &Generator{db: tx}
}

const upsertIncrementSQL = `
INSERT INTO sequence_counters (kind, day, value)
VALUES (?, ?, 1)
ON CONFLICT (kind, day)
DO UPDATE SET value = sequence_counters.value + 1
RETURNING value
`

// Next reserves the next ordinal for the kind on the given instant's UTC day
// and returns the formatted document number.
func (g *Generator) Next(ctx context.Context, kind enums.SequenceKind, now time.Time) (string, error) {
	if !kind.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid sequence kind %q", kind))
	}

	day := now.UTC().Format(counterDayFormat)

	var value int64
	if err := g.db.WithContext(ctx).Raw(upsertIncrementSQL, kind, day).Scan(&value).Error; err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment sequence counter")
	}

	return Format(kind, now, value), nil
}

// Format renders a document number from its parts: prefix, UTC day, zero
// padded ordinal. Ordinals past 9999 widen rather than wrap.
func Format(kind enums.SequenceKind, now time.Time, ordinal int64) string {
	return fmt.Sprintf("%s-%s-%04d", kind.Prefix(), now.UTC().Format(displayDayFormat), ordinal)
}
