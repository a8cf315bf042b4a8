package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/pagination"
)

// Repository exposes persistence helpers for sales documents.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sale *models.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Sale, *pagination.Cursor, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a sales repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, sale *models.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	for i := range sale.Items {
		if sale.Items[i].ID == uuid.Nil {
			sale.Items[i].ID = uuid.New()
		}
		sale.Items[i].SaleID = sale.ID
	}
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repositoryImpl) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Sale, *pagination.Cursor, error) {
	normalized := pagination.NormalizeLimit(limit)
	buffered := pagination.LimitWithBuffer(limit)

	query := r.db.WithContext(ctx).Model(&models.Sale{}).Preload("Items")
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var sales []models.Sale
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&sales).Error; err != nil {
		return nil, nil, err
	}

	if len(sales) > normalized {
		sales = sales[:normalized]
		// The cursor points at the last returned row; the next query's
		// strict (created_at, id) < filter resumes right after it.
		last := sales[normalized-1]
		return sales, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return sales, nil, nil
}
