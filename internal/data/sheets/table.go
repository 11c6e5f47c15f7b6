// Package sheets provides the append-only two-dimensional string table that
// lead records are written to. Row 1 is the header.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Table is one tab of a spreadsheet-like store.
type Table interface {
	// Header returns row 1, or nil when the table is empty.
	Header(ctx context.Context) ([]string, error)
	// Append writes row after the last non-empty row.
	Append(ctx context.Context, row []string) error
	// SetHeader overwrites row 1.
	SetHeader(ctx context.Context, header []string) error
}

// Ref addresses a table: a store id (spreadsheet id, file path or DSN-scoped
// name) and the sheet/tab name.
type Ref struct {
	StoreID string
	Sheet   string
}

func (r Ref) Validate() error {
	if strings.TrimSpace(r.StoreID) == "" {
		return fmt.Errorf("sheets: store id required")
	}
	if strings.TrimSpace(r.Sheet) == "" {
		return fmt.Errorf("sheets: sheet name required")
	}
	return nil
}

func (r Ref) String() string { return r.StoreID + "/" + r.Sheet }

// trimHeader drops trailing empty cells, which some backends return padded.
func trimHeader(h []string) []string {
	end := len(h)
	for end > 0 && strings.TrimSpace(h[end-1]) == "" {
		end--
	}
	if end == 0 {
		return nil
	}
	out := make([]string, end)
	copy(out, h[:end])
	return out
}

// MemoryTable keeps rows in process memory.
type MemoryTable struct {
	mu   sync.Mutex
	rows [][]string
}

func NewMemoryTable() *MemoryTable { return &MemoryTable{} }

func (m *MemoryTable) Header(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, nil
	}
	return trimHeader(m.rows[0]), nil
}

func (m *MemoryTable) Append(ctx context.Context, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(row))
	copy(cp, row)
	m.rows = append(m.rows, cp)
	return nil
}

func (m *MemoryTable) SetHeader(ctx context.Context, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(header))
	copy(cp, header)
	if len(m.rows) == 0 {
		m.rows = append(m.rows, cp)
		return nil
	}
	m.rows[0] = cp
	return nil
}

// Rows returns a copy of every row including the header.
func (m *MemoryTable) Rows() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
