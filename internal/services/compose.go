package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
)

const (
	DefaultSubjectPrefix = "SCG Lead Notification"
	areaSuffix           = " ตร.ม."
	bahtSuffix           = " บาท"
)

// DefaultOtherSentinels are the answers that defer to a free-text field.
var DefaultOtherSentinels = []string{"Other", lead.OtherOption}

type Email struct {
	Subject string
	HTML    string
}

type ComposerConfig struct {
	SubjectPrefix  string
	OtherSentinels []string
}

// Composer renders notification emails. Display substitutions only affect
// the email; the stored row keeps the raw answers.
type Composer struct {
	prefix    string
	sentinels map[string]bool
	printer   *message.Printer
}

func NewComposer(cfg ComposerConfig) *Composer {
	prefix := strings.TrimSpace(cfg.SubjectPrefix)
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	sentinels := cfg.OtherSentinels
	if len(sentinels) == 0 {
		sentinels = DefaultOtherSentinels
	}
	c := &Composer{
		prefix:    prefix,
		sentinels: map[string]bool{},
		printer:   message.NewPrinter(language.Thai),
	}
	for _, s := range sentinels {
		if s = strings.TrimSpace(s); s != "" {
			c.sentinels[strings.ToLower(s)] = true
		}
	}
	return c
}

type emailRow struct {
	Label string
	Value string
}

type emailView struct {
	Service []emailRow
	Contact []emailRow
}

var emailTmpl = template.Must(template.New("lead").Parse(`<h2>SCG Customer Lead Information</h2>
<table style="border-collapse: collapse; width: 100%;">
<tr><th colspan="2" style="background-color: #0066b3; color: white; padding: 10px; text-align: left;">Service Information</th></tr>
{{- range .Service}}
<tr><td style="border: 1px solid #ddd; padding: 8px; font-weight: bold; width: 30%;">{{.Label}}</td><td style="border: 1px solid #ddd; padding: 8px;">{{.Value}}</td></tr>
{{- end}}
<tr><th colspan="2" style="background-color: #0066b3; color: white; padding: 10px; text-align: left;">Contact Information</th></tr>
{{- range .Contact}}
<tr><td style="border: 1px solid #ddd; padding: 8px; font-weight: bold; width: 30%;">{{.Label}}</td><td style="border: 1px solid #ddd; padding: 8px;">{{.Value}}</td></tr>
{{- end}}
</table>
`))

func (c *Composer) Subject(rec *lead.Record) string {
	return fmt.Sprintf("%s: %s - %s", c.prefix, rec.Value(lead.FieldServiceType), rec.Value(lead.FieldFullName))
}

func (c *Composer) Compose(rec *lead.Record) (Email, error) {
	view := emailView{
		Service: []emailRow{{Label: "Service Type", Value: rec.Value(lead.FieldServiceType)}},
	}
	for _, f := range rec.ServiceType().Schema() {
		view.Service = append(view.Service, emailRow{Label: f.Label, Value: c.display(rec, f)})
	}
	for _, f := range lead.ContactSchema() {
		view.Contact = append(view.Contact, emailRow{Label: f.Label, Value: c.display(rec, f)})
	}
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, view); err != nil {
		return Email{}, fmt.Errorf("render email: %w", err)
	}
	return Email{Subject: c.Subject(rec), HTML: buf.String()}, nil
}

func (c *Composer) isOther(v string) bool {
	return c.sentinels[strings.ToLower(strings.TrimSpace(v))]
}

// display renders one field value for the email.
func (c *Composer) display(rec *lead.Record, f lead.FieldSpec) string {
	v := rec.Value(f.Name)
	switch f.Kind {
	case lead.KindChoice:
		if f.OtherField != "" && c.isOther(v) {
			return rec.Value(f.OtherField)
		}
	case lead.KindCheckboxGroup:
		if f.OtherField == "" || v == "" {
			return v
		}
		parts := strings.Split(v, ", ")
		out := parts[:0]
		for _, p := range parts {
			if c.isOther(p) {
				p = rec.Value(f.OtherField)
			}
			if p != "" {
				out = append(out, p)
			}
		}
		return strings.Join(out, ", ")
	case lead.KindArea:
		if v != "" {
			return v + areaSuffix
		}
	case lead.KindBaht:
		if v != "" {
			return v + bahtSuffix
		}
	case lead.KindCurrency:
		return c.FormatCurrency(v)
	}
	return v
}

// FormatCurrency renders a baht amount with Thai digit grouping. Values that
// are not numbers are returned unchanged.
func (c *Composer) FormatCurrency(v string) string {
	raw := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
	if raw == "" {
		return ""
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return v
	}
	return c.printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2))) + bahtSuffix
}
