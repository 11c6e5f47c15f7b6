package app

import (
	"context"
	"fmt"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/data/db"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/data/sheets"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/gcp"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

// wireStore opens the configured lead table. The returned closer releases
// any connection the backend holds.
func wireStore(ctx context.Context, log *logger.Logger, cfg Config) (sheets.Table, func() error, error) {
	noop := func() error { return nil }
	log.Info("Wiring store...", "backend", cfg.StoreBackend)

	switch cfg.StoreBackend {
	case BackendGoogle:
		t, err := sheets.NewGoogleTable(ctx, log, sheets.Ref{StoreID: cfg.SpreadsheetID, Sheet: cfg.SheetName}, gcp.ClientOptionsFromEnv()...)
		return t, noop, err
	case BackendXLSX:
		t, err := sheets.NewXLSXTable(log, sheets.Ref{StoreID: cfg.XLSXPath, Sheet: cfg.SheetName})
		return t, noop, err
	case BackendPostgres, BackendSQLite:
		sqlSvc, err := db.Open(log, db.Config{Driver: cfg.StoreBackend, DSN: cfg.DatabaseDSN})
		if err != nil {
			return nil, noop, err
		}
		t, err := sheets.NewGormTable(sqlSvc.DB(), log, sheets.Ref{StoreID: cfg.SQLStoreID, Sheet: cfg.SheetName})
		if err != nil {
			_ = sqlSvc.Close()
			return nil, noop, err
		}
		return t, sqlSvc.Close, nil
	case BackendMemory:
		log.Warn("Memory store in use; leads are lost on restart")
		return sheets.NewMemoryTable(), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}
