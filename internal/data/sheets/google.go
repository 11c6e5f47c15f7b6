package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

type googleTable struct {
	log *logger.Logger
	svc *gsheets.Service
	ref Ref
}

// NewGoogleTable opens a Google Sheets tab. Credentials come from opts
// (see gcp.ClientOptionsFromEnv).
func NewGoogleTable(ctx context.Context, log *logger.Logger, ref Ref, opts ...option.ClientOption) (Table, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	opts = append([]option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}, opts...)
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &googleTable{
		log: log.With("store", "GoogleSheets", "sheet", ref.String()),
		svc: svc,
		ref: ref,
	}, nil
}

// quoteSheet renders a tab name for A1 notation.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func (g *googleTable) Header(ctx context.Context) ([]string, error) {
	resp, err := g.svc.Spreadsheets.Values.
		Get(g.ref.StoreID, quoteSheet(g.ref.Sheet)+"!1:1").
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", g.ref, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	header := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		header = append(header, fmt.Sprint(cell))
	}
	return trimHeader(header), nil
}

func (g *googleTable) Append(ctx context.Context, row []string) error {
	_, err := g.svc.Spreadsheets.Values.
		Append(g.ref.StoreID, quoteSheet(g.ref.Sheet)+"!A1", &gsheets.ValueRange{Values: [][]interface{}{toCells(row)}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row %s: %w", g.ref, err)
	}
	return nil
}

func (g *googleTable) SetHeader(ctx context.Context, header []string) error {
	_, err := g.svc.Spreadsheets.Values.
		Update(g.ref.StoreID, quoteSheet(g.ref.Sheet)+"!A1", &gsheets.ValueRange{Values: [][]interface{}{toCells(header)}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header %s: %w", g.ref, err)
	}
	g.log.Info("Sheet header updated", "columns", len(header))
	return nil
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
