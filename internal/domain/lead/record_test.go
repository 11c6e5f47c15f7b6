package lead

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMergeLaterSourceWins(t *testing.T) {
	service := RecordOf(FieldServiceType, string(ServiceRenovation), "roofArea", "80", "timestamp", "old")
	contact := RecordOf(FieldFullName, "Somchai", "timestamp", "new", "roofArea", "90")

	got := Merge(service, contact)

	if got.Value("roofArea") != "90" || got.Value("timestamp") != "new" {
		t.Fatalf("collision should take contact value: %v", got.Value("roofArea"))
	}
	want := []string{FieldServiceType, "roofArea", "timestamp", FieldFullName}
	if diff := cmp.Diff(want, got.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if service.Value("roofArea") != "80" {
		t.Fatalf("merge mutated its input")
	}
}

func TestRecordJSONKeepsOrder(t *testing.T) {
	body := []byte(`{"serviceType":"Roof Renovation","roofArea":120,"consent":true,"note":null,"tags":["a", "b"],"fullName":"A"}`)
	r, err := ParseRecord(body)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	want := []string{"serviceType", "roofArea", "consent", "note", "tags", "fullName"}
	if diff := cmp.Diff(want, r.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	if r.Value("roofArea") != "120" || r.Value("consent") != "true" || r.Value("note") != "" || r.Value("tags") != `["a","b"]` {
		t.Fatalf("unexpected values: %q %q %q %q", r.Value("roofArea"), r.Value("consent"), r.Value("note"), r.Value("tags"))
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"serviceType":"Roof Renovation","roofArea":"120","consent":"true","note":"","tags":"[\"a\",\"b\"]","fullName":"A"}` {
		t.Fatalf("unexpected JSON: %s", out)
	}
}

func TestParseRecordRejectsNonObject(t *testing.T) {
	if _, err := ParseRecord([]byte(`["x"]`)); err == nil {
		t.Fatalf("expected error for array body")
	}
	if _, err := ParseRecord([]byte(`{"a":`)); err == nil {
		t.Fatalf("expected error for truncated body")
	}
}

func TestProjectDropsExtraAndBlanksMissing(t *testing.T) {
	r := RecordOf("a", "1", "c", "3", "extra", "x")
	got := r.Project([]string{"a", "b", "c"})
	if diff := cmp.Diff([]string{"1", "", "3"}, got); diff != "" {
		t.Fatalf("row (-want +got):\n%s", diff)
	}
}

func TestStampFormat(t *testing.T) {
	r := NewRecord()
	r.Stamp(time.Date(2025, 3, 1, 9, 5, 7, 123456789, time.FixedZone("ICT", 7*3600)))
	if got := r.Value(FieldTimestamp); got != "2025-03-01T02:05:07.123Z" {
		t.Fatalf("timestamp: %q", got)
	}
}

func TestServiceForForm(t *testing.T) {
	for _, st := range ServiceTypes {
		got, ok := ServiceForForm(st.FormID())
		if !ok || got != st {
			t.Fatalf("round trip failed for %s", st)
		}
		if len(st.Schema()) == 0 {
			t.Fatalf("missing schema for %s", st)
		}
	}
	if ServiceType("Unknown Type").Valid() {
		t.Fatalf("unknown type should be invalid")
	}
}
