package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/enums"
	pkgerrors "github.com/andresrodas/puntoventa-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:ledger_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.StockMovement{}); err != nil {
		t.Fatalf("migrate movements: %v", err)
	}
	return db
}

func TestRecordMovementAndHistory(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	productID := uuid.New()

	inputs := []MovementInput{
		{ProductID: productID, Delta: -2, Reason: enums.StockMovementReasonSale, Reference: "V-20250101-0001"},
		{ProductID: productID, Delta: -1, Reason: enums.StockMovementReasonOrder, Reference: "O-20250101-0001"},
		{ProductID: productID, Delta: 10, Reason: enums.StockMovementReasonRestock, Reference: ""},
	}
	for _, input := range inputs {
		if err := svc.RecordMovement(ctx, db, input); err != nil {
			t.Fatalf("record %+v: %v", input, err)
		}
	}

	rows, err := svc.History(ctx, productID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 movements, got %d", len(rows))
	}

	total := 0
	for _, row := range rows {
		total += row.Delta
	}
	if total != 7 {
		t.Fatalf("journal must reconcile to net delta 7, got %d", total)
	}
}

func TestRecordMovementValidation(t *testing.T) {
	t.Parallel()

	svc, err := NewService(NewRepository(newTestDB(t)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	cases := []MovementInput{
		{Delta: -1, Reason: enums.StockMovementReasonSale},
		{ProductID: uuid.New(), Delta: 0, Reason: enums.StockMovementReasonSale},
		{ProductID: uuid.New(), Delta: -1, Reason: "donation"},
	}
	for _, input := range cases {
		err := svc.RecordMovement(ctx, nil, input)
		if err == nil {
			t.Fatalf("expected validation error for %+v", input)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}
