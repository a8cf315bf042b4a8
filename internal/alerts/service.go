package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/enums"
	pkgerrors "github.com/andresrodas/puntoventa-backend/pkg/errors"
	"github.com/andresrodas/puntoventa-backend/pkg/logger"
)

// Service defines the low-stock alert lifecycle.
type Service interface {
	EvaluateAndCreate(ctx context.Context, tx *gorm.DB, product *models.Product) (bool, error)
	Resolve(ctx context.Context, alertID uuid.UUID) error
	List(ctx context.Context, filter enums.AlertFilter) ([]models.InventoryAlert, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires alert dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "alerts repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// EvaluateAndCreate opens an alert when the product sits at or under its
// minimum and no unresolved alert covers it yet. Returns whether a new alert
// was written. Safe to call once per line item: the open-alert uniqueness
// constraint absorbs repeats.
func (s *service) EvaluateAndCreate(ctx context.Context, tx *gorm.DB, product *models.Product) (bool, error) {
	if product == nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product required")
	}
	if product.Stock > product.MinStock {
		return false, nil
	}

	alert := &models.InventoryAlert{
		ProductID: product.ID,
		Message:   fmt.Sprintf("%s is low on stock: %d left (minimum %d)", product.Name, product.Stock, product.MinStock),
	}

	created, err := s.repo.WithTx(tx).CreateIfAbsent(ctx, alert)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory alert")
	}
	if created {
		ctx = s.logg.WithProductID(ctx, product.ID.String())
		s.logg.Info(ctx, "low stock alert opened")
	}
	return created, nil
}

// Resolve stamps the alert as resolved. Resolving an already-resolved alert
// is a no-op success; only an unknown id errors.
func (s *service) Resolve(ctx context.Context, alertID uuid.UUID) error {
	if alertID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "alert id required")
	}

	result, err := s.repo.Resolve(ctx, alertID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve inventory alert")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "alert not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, filter enums.AlertFilter) ([]models.InventoryAlert, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory alerts")
	}
	return rows, nil
}
