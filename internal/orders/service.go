package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
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

// Service processes online storefront orders.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.OnlineOrder, error)
	FindByID(ctx context.Context, customerID, orderID uuid.UUID, admin bool) (*models.OnlineOrder, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*ListResult, error)
	ListAll(ctx context.Context, params pagination.Params) (*ListResult, error)
}

// ListResult wraps a page of orders plus the cursor for the next page.
type ListResult struct {
	Items  []models.OnlineOrder `json:"items"`
	Cursor string               `json:"cursor"`
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

// NewService wires the order coordinator's collaborators.
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
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
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

// Create mirrors the sale flow but additionally closes the pricing trust
// boundary: the declared total and any declared unit prices must match the
// catalog to the cent, and the stored amounts are recomputed server-side.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.OnlineOrder, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity required")
	}
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

	var order *models.OnlineOrder
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		txStock := s.stock.WithTx(tx)

		// Validate availability and pricing for every line before any
		// counter moves.
		products := make([]*models.Product, len(input.Items))
		serverTotal := 0
		for i, item := range input.Items {
			product, err := txStock.ValidateAvailability(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if item.UnitPrice != 0 && item.UnitPrice != product.PriceCents {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("declared unit price %d does not match catalog price %d for %s",
						item.UnitPrice, product.PriceCents, product.Name))
			}
			subtotal := product.PriceCents * item.Quantity
			if item.Subtotal != 0 && item.Subtotal != subtotal {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("declared subtotal %d does not match %d for %s",
						item.Subtotal, subtotal, product.Name))
			}
			serverTotal += subtotal
			products[i] = product
		}
		if input.TotalAmount != serverTotal {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("declared total %d does not match computed total %d",
					input.TotalAmount, serverTotal)).
				WithDetails(map[string]any{"declared": input.TotalAmount, "computed": serverTotal})
		}

		now := time.Now().UTC()
		orderNumber, err := s.sequence.WithTx(tx).Next(ctx, enums.SequenceKindOrder, now)
		if err != nil {
			return err
		}

		doc := &models.OnlineOrder{
			OrderNumber:     orderNumber,
			CustomerID:      input.CustomerID,
			ShippingAddress: input.Address,
			PaymentMethod:   input.PaymentMethod,
			Status:          enums.TransactionStatusCompleted,
			TotalCents:      serverTotal,
			Items:           make([]models.OrderLineItem, 0, len(input.Items)),
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
				Reason:    enums.StockMovementReasonOrder,
				Reference: orderNumber,
			}); err != nil {
				return err
			}

			doc.Items = append(doc.Items, models.OrderLineItem{
				ProductID:      product.ID,
				ProductName:    products[i].Name,
				Qty:            item.Quantity,
				UnitPriceCents: products[i].PriceCents,
				SubtotalCents:  products[i].PriceCents * item.Quantity,
			})
		}

		if err := s.repo.WithTx(tx).Create(ctx, doc); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}
		order = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithSequenceNumber(ctx, order.OrderNumber)
	s.logg.Info(ctx, "order recorded")
	return order, nil
}

// FindByID loads one order. Customers only see their own orders; an order
// that exists but belongs to someone else reads as not found rather than
// leaking its existence.
func (s *service) FindByID(ctx context.Context, customerID, orderID uuid.UUID, admin bool) (*models.OnlineOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if !admin && order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*ListResult, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity required")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, next, err := s.repo.ListByCustomer(ctx, customerID, params.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return &ListResult{Items: rows, Cursor: encodeCursor(next)}, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, next, err := s.repo.ListAll(ctx, params.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list all orders")
	}
	return &ListResult{Items: rows, Cursor: encodeCursor(next)}, nil
}

func encodeCursor(cursor *pagination.Cursor) string {
	if cursor == nil {
		return ""
	}
	return pagination.EncodeCursor(*cursor)
}
