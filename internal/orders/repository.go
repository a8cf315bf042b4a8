package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/pagination"
)

// Repository exposes persistence helpers for online orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.OnlineOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.OnlineOrder, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.OnlineOrder, *pagination.Cursor, error)
	ListAll(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.OnlineOrder, *pagination.Cursor, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an orders repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, order *models.OnlineOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.OnlineOrder, error) {
	var order models.OnlineOrder
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repositoryImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.OnlineOrder, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OnlineOrder{}).
		Preload("Items").
		Where("customer_id = ?", customerID)
	return r.page(ctx, query, limit, cursor)
}

func (r *repositoryImpl) ListAll(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.OnlineOrder, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.OnlineOrder{}).Preload("Items")
	return r.page(ctx, query, limit, cursor)
}

func (r *repositoryImpl) page(_ context.Context, query *gorm.DB, limit int, cursor *pagination.Cursor) ([]models.OnlineOrder, *pagination.Cursor, error) {
	normalized := pagination.NormalizeLimit(limit)
	buffered := pagination.LimitWithBuffer(limit)

	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.OnlineOrder
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		rows = rows[:normalized]
		// The cursor points at the last returned row; the next query's
		// strict (created_at, id) < filter resumes right after it.
		last := rows[normalized-1]
		return rows, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return rows, nil, nil
}
