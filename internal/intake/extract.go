package intake

import (
	"strings"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
)

const checkboxSeparator = ", "

// Extract turns a form into a record. Checked checkboxes come first, one
// joined value per name in order of first checked occurrence. Every other
// named, enabled input follows in form order; radios only when checked.
// Checkbox names are skipped in the second pass, so no key is produced twice.
func Extract(f *Form) *lead.Record {
	rec := lead.NewRecord()

	grouped := map[string][]string{}
	var order []string
	for _, in := range f.Inputs {
		if in.Type != InputCheckbox || !in.Checked || in.Disabled || in.Name == "" {
			continue
		}
		if _, ok := grouped[in.Name]; !ok {
			order = append(order, in.Name)
		}
		grouped[in.Name] = append(grouped[in.Name], in.Value)
	}
	for _, name := range order {
		rec.Set(name, strings.Join(grouped[name], checkboxSeparator))
	}

	for _, in := range f.Inputs {
		if in.Name == "" || in.Disabled || in.Type == InputCheckbox {
			continue
		}
		if _, isGroup := grouped[in.Name]; isGroup {
			continue
		}
		if in.Type == InputRadio && !in.Checked {
			continue
		}
		rec.Set(in.Name, in.Value)
	}
	return rec
}
