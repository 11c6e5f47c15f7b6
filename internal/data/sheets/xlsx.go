package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

// xlsxTable stores the tab in a local workbook. Every write saves the file.
// count tracks written rows, blank ones included, so appends never land on
// an existing row.
type xlsxTable struct {
	log   *logger.Logger
	mu    sync.Mutex
	path  string
	ref   Ref
	file  *excelize.File
	count int
}

// NewXLSXTable opens ref.StoreID as a workbook path, creating the workbook
// and the tab when missing.
func NewXLSXTable(log *logger.Logger, ref Ref) (Table, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	var f *excelize.File
	_, statErr := os.Stat(ref.StoreID)
	switch {
	case statErr == nil:
		opened, err := excelize.OpenFile(ref.StoreID)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", ref.StoreID, err)
		}
		f = opened
	case errors.Is(statErr, fs.ErrNotExist):
		f = excelize.NewFile()
		if err := f.SetSheetName(f.GetSheetName(0), ref.Sheet); err != nil {
			return nil, fmt.Errorf("name sheet: %w", err)
		}
		if err := f.SaveAs(ref.StoreID); err != nil {
			return nil, fmt.Errorf("create workbook %s: %w", ref.StoreID, err)
		}
	default:
		return nil, fmt.Errorf("stat workbook %s: %w", ref.StoreID, statErr)
	}

	idx, err := f.GetSheetIndex(ref.Sheet)
	if err != nil {
		return nil, fmt.Errorf("lookup sheet %s: %w", ref.Sheet, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(ref.Sheet); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", ref.Sheet, err)
		}
		if err := f.Save(); err != nil {
			return nil, fmt.Errorf("save workbook: %w", err)
		}
	}

	x := &xlsxTable{
		log:  log.With("store", "XLSX", "sheet", ref.String()),
		path: ref.StoreID,
		ref:  ref,
		file: f,
	}
	n, err := x.countRows()
	if err != nil {
		return nil, err
	}
	x.count = n
	return x, nil
}

// blankRowHeight marks all-blank rows so the workbook keeps their row element.
const blankRowHeight = 15

// countRows returns the last stored row number. GetRows drops trailing blank
// rows, the streaming reader does not.
func (x *xlsxTable) countRows() (int, error) {
	it, err := x.file.Rows(x.ref.Sheet)
	if err != nil {
		return 0, fmt.Errorf("read rows %s: %w", x.ref, err)
	}
	defer it.Close()
	n := 0
	for it.Next() {
		n++
	}
	if err := it.Error(); err != nil {
		return 0, fmt.Errorf("read rows %s: %w", x.ref, err)
	}
	return n, nil
}

func (x *xlsxTable) rows() ([][]string, error) {
	rows, err := x.file.GetRows(x.ref.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows %s: %w", x.ref, err)
	}
	return rows, nil
}

func (x *xlsxTable) Header(ctx context.Context) ([]string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	rows, err := x.rows()
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return trimHeader(rows[0]), nil
}

func (x *xlsxTable) Append(ctx context.Context, row []string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.writeRow(x.count+1, row); err != nil {
		return err
	}
	x.count++
	return nil
}

func (x *xlsxTable) SetHeader(ctx context.Context, header []string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.writeRow(1, header); err != nil {
		return err
	}
	if x.count == 0 {
		x.count = 1
	}
	return nil
}

func (x *xlsxTable) writeRow(n int, row []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	if err := x.file.SetSheetRow(x.ref.Sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d %s: %w", n, x.ref, err)
	}
	if allBlank(row) {
		if err := x.file.SetRowHeight(x.ref.Sheet, n, blankRowHeight); err != nil {
			return fmt.Errorf("mark blank row %d %s: %w", n, x.ref, err)
		}
	}
	if err := x.file.Save(); err != nil {
		return fmt.Errorf("save workbook %s: %w", x.path, err)
	}
	return nil
}

func allBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
