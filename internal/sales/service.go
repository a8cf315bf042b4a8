package sales

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/internal/alerts"
	"github.com/andresrodas/puntoventa-backend/internal/ledger"
	"github.com/andresrodas/puntoventa-backend/internal/sequence"
	"github.com/andresrodas/puntoventa-backend/internal/stock"
	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/enums"
	pkgerrors "github.com/andresrodas/puntoventa-backend/pkg/errors"
	"github.com/andresrodas/puntoventa-backend/pkg/logger"
	"github.com/andresrodas/puntoventa-backend/pkg/pagination"
)

// txRunner abstracts the transactional entry point so tests can supply an
// in-memory database.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service processes point-of-sale transactions.
type Service interface {
	Create(ctx context.Context, input CreateSaleInput) (*models.Sale, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
}

// ListResult wraps a page of sales plus the cursor for the next page.
type ListResult struct {
	Items  []models.Sale `json:"items"`
	Cursor string        `json:"cursor"`
}

type service struct {
	runner    txRunner
	repo      Repository
	stock     *stock.Ledger
	sequence  *sequence.Generator
	alerts    alerts.Service
	movements ledger.Service
	logg      *logger.Logger
}

// NewService wires the sale coordinator's collaborators.
func NewService(
	runner txRunner,
	repo Repository,
	stockLedger *stock.Ledger,
	seq *sequence.Generator,
	alertSvc alerts.Service,
	movementSvc ledger.Service,
	logg *logger.Logger,
) (Service, error) {
	if runner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sales repository required")
	}
	if stockLedger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stock ledger required")
	}
	if seq == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sequence generator required")
	}
	if alertSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "alerts service required")
	}
	if movementSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ledger service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		runner:    runner,
		repo:      repo,
		stock:     stockLedger,
		sequence:  seq,
		alerts:    alertSvc,
		movements: movementSvc,
		logg:      logg,
	}, nil
}

// Create runs the whole sale as one unit of work: validate every line before
// any mutation, assign the sale number, decrement stock per line, evaluate
// alerts, journal the movements and persist the document. Any failure rolls
// everything back.
func (s *service) Create(ctx context.Context, input CreateSaleInput) (*models.Sale, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line item is required")
	}
	seen := make(map[string]struct{}, len(input.Items))
	for _, item := range input.Items {
		key := item.ProductID.String()
		if _, dup := seen[key]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("duplicate line item for product %s", item.ProductID))
		}
		seen[key] = struct{}{}
	}

	var sale *models.Sale
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		txStock := s.stock.WithTx(tx)

		// Fail-fast pass over every line before touching any counter.
		products := make([]*models.Product, len(input.Items))
		for i, item := range input.Items {
			product, err := txStock.ValidateAvailability(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if err := verifyDeclaredPricing(product, item); err != nil {
				return err
			}
			products[i] = product
		}

		now := time.Now().UTC()
		saleNumber, err := s.sequence.WithTx(tx).Next(ctx, enums.SequenceKindSale, now)
		if err != nil {
			return err
		}

		doc := &models.Sale{
			SaleNumber:       saleNumber,
			CustomerName:     input.CustomerName,
			CustomerDocument: input.CustomerDocument,
			PaymentMethod:    input.PaymentMethod,
			Status:           enums.TransactionStatusCompleted,
			Items:            make([]models.SaleLineItem, 0, len(input.Items)),
		}

		for i, item := range input.Items {
			product, err := txStock.Decrement(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}

			if _, err := s.alerts.EvaluateAndCreate(ctx, tx, product); err != nil {
				return err
			}

			if err := s.movements.RecordMovement(ctx, tx, ledger.MovementInput{
				ProductID: product.ID,
				Delta:     -item.Quantity,
				Reason:    enums.StockMovementReasonSale,
				Reference: saleNumber,
			}); err != nil {
				return err
			}

			subtotal := products[i].PriceCents * item.Quantity
			doc.Items = append(doc.Items, models.SaleLineItem{
				ProductID:      product.ID,
				ProductName:    products[i].Name,
				Qty:            item.Quantity,
				UnitPriceCents: products[i].PriceCents,
				SubtotalCents:  subtotal,
			})
			doc.TotalCents += subtotal
		}

		if err := s.repo.WithTx(tx).Create(ctx, doc); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist sale")
		}
		sale = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithSequenceNumber(ctx, sale.SaleNumber)
	s.logg.Info(ctx, "sale recorded")
	return sale, nil
}

// verifyDeclaredPricing rejects client-declared prices that disagree with the
// catalog. Zero values mean the client did not declare a price.
func verifyDeclaredPricing(product *models.Product, item LineItemInput) error {
	if item.UnitPrice != 0 && item.UnitPrice != product.PriceCents {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("declared unit price %d does not match catalog price %d for %s",
				item.UnitPrice, product.PriceCents, product.Name))
	}
	if item.Subtotal != 0 && item.Subtotal != product.PriceCents*item.Quantity {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("declared subtotal %d does not match %d for %s",
				item.Subtotal, product.PriceCents*item.Quantity, product.Name))
	}
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, next, err := s.repo.List(ctx, params.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}

	return &ListResult{Items: rows, Cursor: encodeCursor(next)}, nil
}

func encodeCursor(cursor *pagination.Cursor) string {
	if cursor == nil {
		return ""
	}
	return pagination.EncodeCursor(*cursor)
}
