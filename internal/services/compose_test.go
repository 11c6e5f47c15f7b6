package services

import (
	"strings"
	"testing"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
)

func TestComposeNewRoof(t *testing.T) {
	c := NewComposer(ComposerConfig{})
	rec := lead.RecordOf(
		"serviceType", "New Roof Installation",
		"houseArea", "150",
		"constructionPlan", "อื่นๆ",
		"otherPlan", "after rainy season",
		"budget", "1500000",
		"fullName", "<b>Anan</b>",
		"customerType", "ผู้รับเหมา",
	)
	email, err := c.Compose(rec)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if email.Subject != "SCG Lead Notification: New Roof Installation - <b>Anan</b>" {
		t.Fatalf("subject: %q", email.Subject)
	}
	for _, want := range []string{
		"SCG Customer Lead Information",
		"150 ตร.ม.",
		"after rainy season",
		"1,500,000 บาท",
		"&lt;b&gt;Anan&lt;/b&gt;",
		"ผู้รับเหมา",
	} {
		if !strings.Contains(email.HTML, want) {
			t.Fatalf("email missing %q:\n%s", want, email.HTML)
		}
	}
	if strings.Contains(email.HTML, "<b>Anan</b>") {
		t.Fatalf("contact values must be escaped")
	}
}

func TestFormatCurrency(t *testing.T) {
	c := NewComposer(ComposerConfig{})
	cases := map[string]string{
		"1500000":   "1,500,000 บาท",
		"2,500.5":   "2,500.5 บาท",
		"":          "",
		"negotiate": "negotiate",
	}
	for in, want := range cases {
		if got := c.FormatCurrency(in); got != want {
			t.Fatalf("FormatCurrency(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCustomSentinels(t *testing.T) {
	c := NewComposer(ComposerConfig{SubjectPrefix: "Lead", OtherSentinels: []string{"misc"}})
	rec := lead.RecordOf("serviceType", "Roof Renovation", "houseType", "MISC", "otherHouseType", "Villa", "fullName", "A")
	email, err := c.Compose(rec)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.HasPrefix(email.Subject, "Lead: ") || !strings.Contains(email.HTML, ">Villa<") {
		t.Fatalf("unexpected email: %q\n%s", email.Subject, email.HTML)
	}
}
