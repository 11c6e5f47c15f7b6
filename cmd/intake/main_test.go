package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
)

const sampleLead = `service: SCG Metal Roof Replacement
answers:
  houseType: อื่นๆ
  otherHouseType: Townhouse
  roofProblems: [สนิม, อื่นๆ]
  otherProblem: Gutter leak
  roofArea: "120"
contact:
  fullName: Somchai
  phone: "0812345678"
  district: บางนา
  province: กรุงเทพมหานคร
  customerType: เจ้าของบ้าน
`

func writeLead(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "lead.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadLeadFile(t *testing.T) {
	lf, err := loadLeadFile(writeLead(t, sampleLead))
	if err != nil {
		t.Fatalf("loadLeadFile: %v", err)
	}
	if lf.Service != lead.ServiceMetalRoof {
		t.Fatalf("service = %q", lf.Service)
	}
	if got := strings.Join(lf.Answers["roofProblems"], "|"); got != "สนิม|อื่นๆ" {
		t.Fatalf("roofProblems = %q", got)
	}
	if got := lf.Contact["phone"]; len(got) != 1 || got[0] != "0812345678" {
		t.Fatalf("phone = %v", got)
	}

	if _, err := loadLeadFile(writeLead(t, "service: Pool Cleaning\n")); err == nil {
		t.Fatalf("expected unknown service error")
	}
}

func TestFormsCommandListsCategories(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"forms"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("forms: %v", err)
	}
	for _, want := range []string{string(lead.ServiceNewRoof), string(lead.ServiceRenovation), string(lead.ServiceMetalRoof), "otherCustomerType"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("forms output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSubmitCommandPostsMergedLead(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		_, _ = w.Write([]byte(`{"result":"success","message":"Data saved successfully"}`))
	}))
	defer srv.Close()

	t.Setenv("REDIS_ADDR", "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"submit", "-f", writeLead(t, sampleLead), "--endpoint", srv.URL, "--mode", "ack"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(out.String(), "Lead submitted") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if got[lead.FieldServiceType] != string(lead.ServiceMetalRoof) || got["otherHouseType"] != "Townhouse" || got["fullName"] != "Somchai" {
		t.Fatalf("posted record = %v", got)
	}
	if got["timestamp"] == "" {
		t.Fatalf("record not stamped")
	}
}
