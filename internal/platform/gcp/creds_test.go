package gcp

import "testing"

func TestClientOptions(t *testing.T) {
	if got := clientOptions(""); got != nil {
		t.Fatalf("expected no options, got %d", len(got))
	}
	if got := clientOptions(`{"type":"service_account"}`); len(got) != 1 {
		t.Fatalf("expected inline JSON option, got %d", len(got))
	}
	if got := clientOptions("/etc/creds.json"); len(got) != 1 {
		t.Fatalf("expected file option, got %d", len(got))
	}
}

func TestClientOptionsFromEnvPrefersJSON(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", `{"type":"service_account"}`)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/does/not/matter.json")
	if got := ClientOptionsFromEnv(); len(got) != 1 {
		t.Fatalf("expected one option, got %d", len(got))
	}
}
