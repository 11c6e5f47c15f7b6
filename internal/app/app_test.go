package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/data/sheets"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Memory")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StoreBackend != BackendMemory {
		t.Fatalf("backend = %q", cfg.StoreBackend)
	}
	if cfg.SheetName != "Lead" || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected defaults: sheet=%q addr=%q", cfg.SheetName, cfg.Addr())
	}
	if cfg.ExtendHeader {
		t.Fatalf("header extension must be opt-in")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"google without id", Config{StoreBackend: BackendGoogle, SheetName: "Lead"}, false},
		{"google", Config{StoreBackend: BackendGoogle, SpreadsheetID: "abc", SheetName: "Lead"}, true},
		{"sqlite without dsn", Config{StoreBackend: BackendSQLite, SheetName: "Lead"}, false},
		{"unknown", Config{StoreBackend: "csv", SheetName: "Lead"}, false},
		{"memory", Config{StoreBackend: BackendMemory, SheetName: "Lead"}, true},
		{"no sheet", Config{StoreBackend: BackendMemory}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err == nil) != tc.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tc.ok)
			}
		})
	}
}

func TestAppServesLeadsEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("SENDGRID_API_KEY", "")

	a, err := NewWithConfig(context.Background(), logger.Nop(), Config{
		Port:          "0",
		LogMode:       "development",
		StoreBackend:  BackendMemory,
		SheetName:     "Lead",
		SubjectPrefix: "SCG Lead Notification",
		MaxLeadBytes:  1 << 16,
	})
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	defer a.Close()

	body := `{"serviceType":"New Roof Installation","houseArea":"150","fullName":"Somchai","district":"บางนา","province":"กรุงเทพมหานคร"}`
	w := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/exec", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var env map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env["result"] != "success" {
		t.Fatalf("envelope = %v", env)
	}

	mem, ok := a.Table.(*sheets.MemoryTable)
	if !ok {
		t.Fatalf("table is %T", a.Table)
	}
	rows := mem.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0][0] != "serviceType" || rows[1][0] != "New Roof Installation" {
		t.Fatalf("unexpected sheet contents %v", rows)
	}
}
