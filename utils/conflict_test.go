package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return gdb, mock
}

func TestCheckSlotFree(t *testing.T) {
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	t.Run("no overlap", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		mock.ExpectQuery("FOR UPDATE").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		free, err := CheckSlotFree(gdb, 1, start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !free {
			t.Error("expected slot to be free")
		}
	})

	t.Run("overlapping appointment", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		mock.ExpectQuery("FOR UPDATE").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		free, err := CheckSlotFree(gdb, 1, start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if free {
			t.Error("expected slot to be busy")
		}
	})

	// A failed lock query must surface as an error, never as a free slot.
	t.Run("query error", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		mock.ExpectQuery("FOR UPDATE").
			WillReturnError(errors.New("connection reset"))

		free, err := CheckSlotFree(gdb, 1, start, end)
		if err == nil {
			t.Fatal("expected error to propagate")
		}
		if free {
			t.Error("slot must not report free on query failure")
		}
	})
}

// CheckSlotFree runs on the handed-in transaction, so the row locks survive
// until the caller commits. A transaction whose lock query and insert both
// run through the same tx sees its own expectations in order.
func TestCheckSlotFreeUsesCallerTransaction(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		free, err := CheckSlotFree(tx, 1, start, start.Add(30*time.Minute))
		if err != nil {
			return err
		}
		if !free {
			t.Error("expected slot to be free")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("lock query did not run inside the transaction: %v", err)
	}
}
