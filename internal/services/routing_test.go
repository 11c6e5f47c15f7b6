package services

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
)

func TestParseRoutingRulesRejectsOverlap(t *testing.T) {
	raw := `
renovation:
  areas:
    - name: a
      contact: a@example.com
      districts: [บางนา]
    - name: b
      contact: b@example.com
      districts: ["เขตบางนา"]
`
	_, err := ParseRoutingRules([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "overlap") {
		t.Fatalf("expected overlap error, got %v", err)
	}
}

func TestParseRoutingRulesRequiresContact(t *testing.T) {
	raw := `
renovation:
  areas:
    - name: a
      districts: [บางนา]
`
	if _, err := ParseRoutingRules([]byte(raw)); err == nil {
		t.Fatalf("expected missing contact error")
	}
}

func TestLoadRoutingRulesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	raw := `
newRoof:
  to: [" installer@example.org ", ""]
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	rules, err := LoadRoutingRules(path)
	if err != nil {
		t.Fatalf("LoadRoutingRules: %v", err)
	}
	got := rules.Route("New Roof Installation", "", "")
	if len(got.To) != 1 || got.To[0] != "installer@example.org" {
		t.Fatalf("unexpected recipients: %+v", got)
	}
	if _, err := LoadRoutingRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestNormalizePlace(t *testing.T) {
	cases := map[string]string{
		"  อำเภอเมือง ":    "เมือง",
		"เขต บางนา":        "บางนา",
		"จังหวัดชลบุรี":    "ชลบุรี",
		"Bang  Na":         "bang na",
		"":                 "",
	}
	for in, want := range cases {
		if got := NormalizePlace(in); got != want {
			t.Fatalf("NormalizePlace(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStructLiteralRulesRouteConcurrently(t *testing.T) {
	rules := &RoutingRules{
		Renovation: RenovationRule{
			CC: []string{"cc@example.com"},
			Areas: []Area{
				{Name: "east", Contact: "east@example.com", Districts: []string{"บางนา"}},
				{Name: "north", Contact: "north@example.com", Provinces: []string{"นนทบุรี"}},
			},
		},
	}

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			district, province, want := "เขตบางนา", "", "east@example.com"
			if i%2 == 1 {
				district, province, want = "เมือง", "จังหวัดนนทบุรี", "north@example.com"
			}
			got := rules.Route(lead.ServiceRenovation, district, province)
			if len(got.To) != 1 || got.To[0] != want {
				errs <- want + " routed to " + strings.Join(got.To, ",")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}
