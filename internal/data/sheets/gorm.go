package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

// SheetRow is one row of a SQL-backed table. RowIndex starts at 1 (header).
type SheetRow struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID   string         `gorm:"column:store_id;not null;uniqueIndex:idx_sheet_row,priority:1" json:"store_id"`
	Sheet     string         `gorm:"column:sheet;not null;uniqueIndex:idx_sheet_row,priority:2" json:"sheet"`
	RowIndex  int            `gorm:"column:row_index;not null;uniqueIndex:idx_sheet_row,priority:3" json:"row_index"`
	Cells     datatypes.JSON `gorm:"column:cells;not null" json:"cells"`
	CreatedAt time.Time      `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:current_timestamp" json:"updated_at"`
}

func (SheetRow) TableName() string { return "sheet_row" }

func (r *SheetRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *SheetRow) Values() ([]string, error) {
	var out []string
	if len(r.Cells) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(r.Cells, &out); err != nil {
		return nil, fmt.Errorf("decode cells: %w", err)
	}
	return out, nil
}

// AutoMigrate creates the sheet_row table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&SheetRow{})
}

type gormTable struct {
	db  *gorm.DB
	log *logger.Logger
	ref Ref
}

func NewGormTable(db *gorm.DB, baseLog *logger.Logger, ref Ref) (Table, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	if baseLog == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &gormTable{db: db, log: baseLog.With("store", "SQL", "sheet", ref.String()), ref: ref}, nil
}

func (g *gormTable) scoped(ctx context.Context, tx *gorm.DB) *gorm.DB {
	return tx.WithContext(ctx).Model(&SheetRow{}).Where("store_id = ? AND sheet = ?", g.ref.StoreID, g.ref.Sheet)
}

func (g *gormTable) Header(ctx context.Context) ([]string, error) {
	var row SheetRow
	err := g.scoped(ctx, g.db).Where("row_index = ?", 1).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", g.ref, err)
	}
	vals, err := row.Values()
	if err != nil {
		return nil, err
	}
	return trimHeader(vals), nil
}

func (g *gormTable) Append(ctx context.Context, row []string) error {
	cells, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := g.scoped(ctx, tx).Select("COALESCE(MAX(row_index), 0)").Scan(&last).Error; err != nil {
			return fmt.Errorf("last row %s: %w", g.ref, err)
		}
		rec := &SheetRow{
			StoreID:  g.ref.StoreID,
			Sheet:    g.ref.Sheet,
			RowIndex: last + 1,
			Cells:    datatypes.JSON(cells),
		}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("append row %s: %w", g.ref, err)
		}
		return nil
	})
}

func (g *gormTable) SetHeader(ctx context.Context, header []string) error {
	cells, err := json.Marshal(header)
	if err != nil {
		return err
	}
	rec := &SheetRow{
		StoreID:  g.ref.StoreID,
		Sheet:    g.ref.Sheet,
		RowIndex: 1,
		Cells:    datatypes.JSON(cells),
	}
	err = g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "sheet"}, {Name: "row_index"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"cells": rec.Cells, "updated_at": time.Now()}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("write header %s: %w", g.ref, err)
	}
	return nil
}

// Rows lists every stored row in order, header included.
func Rows(ctx context.Context, db *gorm.DB, ref Ref) ([][]string, error) {
	var rows []SheetRow
	if err := db.WithContext(ctx).
		Where("store_id = ? AND sheet = ?", ref.StoreID, ref.Sheet).
		Order("row_index ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(rows))
	for i := range rows {
		vals, err := rows[i].Values()
		if err != nil {
			return nil, err
		}
		out = append(out, vals)
	}
	return out, nil
}
