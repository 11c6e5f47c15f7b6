package logger

import "testing"

func TestSanitizeKVsRedactsContactDetails(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "true")

	got := sanitizeKVs([]interface{}{
		"phone", "0812345678",
		"email", "someone@example.com",
		"full_name", "Somchai",
		"recipients", "installer@example.com",
	})

	if got[1] != "[REDACTED]" {
		t.Fatalf("phone not redacted: %v", got[1])
	}
	if got[3] != "[REDACTED]" {
		t.Fatalf("email not redacted: %v", got[3])
	}
	if s, _ := got[5].(string); len(s) != len("hash:")+12 {
		t.Fatalf("full_name not hashed: %v", got[5])
	}
	if got[7] != "installer@example.com" {
		t.Fatalf("recipients should pass through: %v", got[7])
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	got := sanitizeKVs([]interface{}{"service", "x", "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Fatalf("unexpected result: %v", got)
	}
}
