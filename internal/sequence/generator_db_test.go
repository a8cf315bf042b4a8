//go:build db
// +build db

package sequence

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("PUNTOVENTA_DB_DSN")
	if dsn == "" {
		t.Skip("PUNTOVENTA_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.SequenceCounter{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestNextConcurrentIssuesDistinctNumbers(t *testing.T) {
	conn := openTestDB(t)
	generator := NewGenerator(conn)
	ctx := context.Background()

	// A synthetic far-past day keeps this run's counter row isolated from
	// real traffic and from reruns against the same database.
	day := time.Date(1991, time.March, 14, 12, 0, 0, 0, time.UTC).
		AddDate(0, 0, int(time.Now().UnixNano()%3650))
	t.Cleanup(func() {
		_ = conn.Exec(
			"DELETE FROM sequence_counters WHERE kind = ? AND day = ?",
			string(enums.SequenceKindSale), day.UTC().Format("20060102"),
		).Error
	})

	const workers = 16
	numbers := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := generator.Next(ctx, enums.SequenceKindSale, day)
			if err != nil {
				t.Errorf("next: %v", err)
				return
			}
			numbers <- number
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]struct{}{}
	for number := range numbers {
		if _, dup := seen[number]; dup {
			t.Fatalf("sequence number %s issued twice", number)
		}
		seen[number] = struct{}{}
	}
	if len(seen) != workers {
		t.Fatalf("expected %d distinct numbers, got %d", workers, len(seen))
	}
}
