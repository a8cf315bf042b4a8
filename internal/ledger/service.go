package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/enums"
	pkgerrors "github.com/andresrodas/puntoventa-backend/pkg/errors"
)

// Service records the immutable movement journal. Every stock mutation
// writes one row in the same transaction so the journal always reconciles
// with the product counters.
type Service interface {
	RecordMovement(ctx context.Context, tx *gorm.DB, input MovementInput) error
	History(ctx context.Context, productID uuid.UUID) ([]models.StockMovement, error)
}

// MovementInput describes one journal entry.
type MovementInput struct {
	ProductID uuid.UUID
	Delta     int
	Reason    enums.StockMovementReason
	Reference string
}

type service struct {
	repo Repository
}

// NewService wires ledger dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) RecordMovement(ctx context.Context, tx *gorm.DB, input MovementInput) error {
	if input.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Delta == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "movement delta must be non-zero")
	}
	if !input.Reason.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid movement reason")
	}

	movement := &models.StockMovement{
		ProductID: input.ProductID,
		Delta:     input.Delta,
		Reason:    input.Reason,
		Reference: input.Reference,
	}
	if err := s.repo.WithTx(tx).Create(ctx, movement); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record stock movement")
	}
	return nil
}

func (s *service) History(ctx context.Context, productID uuid.UUID) ([]models.StockMovement, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock movements")
	}
	return rows, nil
}
