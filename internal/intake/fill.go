package intake

import "fmt"

// Fill answers a form by field name. Text inputs take the first value;
// radio and checkbox groups check every listed option. Free-text "other"
// fields are only writable once their trigger has revealed them.
func Fill(f *Form, values map[string][]string) error {
	for name := range values {
		if !f.hasName(name) {
			return fmt.Errorf("form %s: unknown field %q", f.ID, name)
		}
	}
	for name, vals := range values {
		if !f.hasCheckable(name) {
			continue
		}
		for _, v := range vals {
			if err := f.ChooseValue(name, v); err != nil {
				return err
			}
		}
	}
	// Text goes in after the checks so revealed "other" fields accept it.
	for _, in := range f.Inputs {
		vals, ok := values[in.Name]
		if ok && len(vals) > 0 && !in.checkable() && in.Type != InputHidden && !in.Hidden {
			in.Value = vals[0]
		}
	}
	return nil
}

func (f *Form) hasCheckable(name string) bool {
	for _, in := range f.Inputs {
		if in.Name == name && in.checkable() {
			return true
		}
	}
	return false
}

func (f *Form) hasName(name string) bool {
	for _, in := range f.Inputs {
		if in.Name == name {
			return true
		}
	}
	return false
}
