package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/data/sheets"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := sheets.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate sheet_row: %w", err)
	}
	return nil
}
