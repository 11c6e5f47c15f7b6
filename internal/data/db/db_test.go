package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/data/sheets"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

func TestOpenSQLiteMigrates(t *testing.T) {
	svc, err := Open(logger.Nop(), Config{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "leads.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close()

	rows, err := sheets.Rows(context.Background(), svc.DB(), sheets.Ref{StoreID: "x", Sheet: "Lead"})
	if err != nil {
		t.Fatalf("Rows on migrated db: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(logger.Nop(), Config{Driver: "oracle", DSN: "x"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	if _, err := Open(logger.Nop(), Config{Driver: DriverSQLite}); err == nil {
		t.Fatalf("expected error for missing DSN")
	}
}
