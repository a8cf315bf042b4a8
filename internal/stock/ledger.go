package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	pkgerrors "github.com/andresrodas/puntoventa-backend/pkg/errors"
)

// Ledger owns the authoritative stock count per product. Decrement and
// Increment are conditional single-statement updates so concurrent writers
// racing on the same product can never drive stock negative, no matter how
// many service instances run.
type Ledger struct {
	db *gorm.DB
}

// NewLedger builds a ledger bound to the provided GORM DB.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger bound to the provided transaction.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	if tx == nil {
		return l
	}
	return &Ledger{db: tx}
}

// ValidateAvailability loads the product and checks the requested quantity
// against the current count. It is a pre-flight read: the decrement still
// re-checks the condition atomically.
func (l *Ledger) ValidateAvailability(ctx context.Context, productID uuid.UUID, qty int) (*models.Product, error) {
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	var product models.Product
	err := l.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown product %s", productID))
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if product.Stock < qty {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("insufficient stock for %s: requested %d, available %d", product.Name, qty, product.Stock)).
			WithDetails(map[string]any{
				"productId": productID.String(),
				"requested": qty,
				"available": product.Stock,
			})
	}
	return &product, nil
}

// Decrement subtracts qty from the product's stock only if enough units
// remain, then returns the refreshed row. Losing the race for the last units
// surfaces as a retryable stock conflict.
func (l *Ledger) Decrement(ctx context.Context, productID uuid.UUID, qty int) (*models.Product, error) {
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	result := l.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "decrement stock")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := l.db.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ?", productID).
			Count(&count).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product existence")
		}
		if count == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown product %s", productID))
		}
		return nil, pkgerrors.New(pkgerrors.CodeStockConflict,
			fmt.Sprintf("stock changed concurrently for product %s", productID))
	}

	var product models.Product
	if err := l.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return &product, nil
}

// Increment adds qty back to the product's stock (restocks, cancellations).
func (l *Ledger) Increment(ctx context.Context, productID uuid.UUID, qty int) (*models.Product, error) {
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	result := l.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty))
	if result.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "increment stock")
	}
	if result.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("unknown product %s", productID))
	}

	var product models.Product
	if err := l.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return &product, nil
}

// IsBelowMinimum reports whether the product sits at or under its threshold.
func IsBelowMinimum(product *models.Product) bool {
	return product != nil && product.Stock <= product.MinStock
}
