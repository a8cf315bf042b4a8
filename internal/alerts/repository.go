package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/db"
	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/enums"
)

const openAlertConstraint = "idx_inventory_alerts_open"

// Repository exposes persistence helpers for inventory alerts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateIfAbsent(ctx context.Context, alert *models.InventoryAlert) (bool, error)
	Resolve(ctx context.Context, alertID uuid.UUID, now time.Time) (resolveResult, error)
	List(ctx context.Context, filter enums.AlertFilter) ([]models.InventoryAlert, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an alert repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type resolveResult struct {
	Updated bool
	Found   bool
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// CreateIfAbsent inserts the alert and reports whether a row was written. A
// unique violation on the open-alert index means another unresolved alert
// already covers the product; the insert is swallowed rather than surfaced.
func (r *repositoryImpl) CreateIfAbsent(ctx context.Context, alert *models.InventoryAlert) (bool, error) {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Create(alert).Error
	if err == nil {
		return true, nil
	}
	if db.IsUniqueViolation(err, openAlertConstraint) {
		return false, nil
	}
	return false, err
}

// Resolve flips the alert to resolved with a conditional update. An alert
// that is already resolved counts as found but not updated.
func (r *repositoryImpl) Resolve(ctx context.Context, alertID uuid.UUID, now time.Time) (resolveResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryAlert{}).
		Where("id = ? AND is_resolved = ?", alertID, false).
		UpdateColumns(map[string]any{
			"is_resolved": true,
			"resolved_at": now,
		})
	if result.Error != nil {
		return resolveResult{}, result.Error
	}

	res := resolveResult{Updated: result.RowsAffected > 0}
	if res.Updated {
		res.Found = true
		return res, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryAlert{}).
		Where("id = ?", alertID).
		Count(&count).Error; err != nil {
		return resolveResult{}, err
	}
	res.Found = count > 0
	return res, nil
}

func (r *repositoryImpl) List(ctx context.Context, filter enums.AlertFilter) ([]models.InventoryAlert, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryAlert{})
	switch filter {
	case enums.AlertFilterActive:
		query = query.Where("is_resolved = ?", false)
	case enums.AlertFilterResolved:
		query = query.Where("is_resolved = ?", true)
	}

	var rows []models.InventoryAlert
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
