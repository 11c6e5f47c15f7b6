// Package intake is the client-side aggregator: it models the questionnaire
// forms, extracts their values into lead records, keeps the draft between
// the two steps and submits the merged record.
package intake

import (
	"fmt"
	"strings"
)

type InputType string

const (
	InputText     InputType = "text"
	InputNumber   InputType = "number"
	InputEmail    InputType = "email"
	InputTel      InputType = "tel"
	InputHidden   InputType = "hidden"
	InputRadio    InputType = "radio"
	InputCheckbox InputType = "checkbox"
)

// Input is one form control. Hidden marks a control the user cannot see;
// it is still submitted. Disabled controls are never submitted.
type Input struct {
	ID       string
	Name     string
	Type     InputType
	Value    string
	Checked  bool
	Disabled bool
	Hidden   bool
	Required bool
}

func (in *Input) checkable() bool {
	return in.Type == InputRadio || in.Type == InputCheckbox
}

// Form is an ordered set of inputs plus the other-field toggle pairs.
type Form struct {
	ID      string
	Inputs  []*Input
	toggles map[string]string
}

func (f *Form) Input(id string) *Input {
	for _, in := range f.Inputs {
		if in.ID == id {
			return in
		}
	}
	return nil
}

// Clone deep-copies the form, used to restore the pristine template on reset.
func (f *Form) Clone() *Form {
	out := &Form{ID: f.ID, toggles: map[string]string{}}
	for _, in := range f.Inputs {
		cp := *in
		out.Inputs = append(out.Inputs, &cp)
	}
	for k, v := range f.toggles {
		out.toggles[k] = v
	}
	return out
}

// SetValue types into a text-like input.
func (f *Form) SetValue(id, value string) error {
	in := f.Input(id)
	if in == nil {
		return fmt.Errorf("form %s: no input %q", f.ID, id)
	}
	if in.checkable() {
		return fmt.Errorf("form %s: input %q is a %s", f.ID, id, in.Type)
	}
	in.Value = value
	return nil
}

// Check sets a radio or checkbox. Checking a radio unchecks the rest of its
// group. Toggle pairs whose trigger is affected are re-evaluated.
func (f *Form) Check(id string, checked bool) error {
	in := f.Input(id)
	if in == nil {
		return fmt.Errorf("form %s: no input %q", f.ID, id)
	}
	if !in.checkable() {
		return fmt.Errorf("form %s: input %q is not checkable", f.ID, id)
	}
	if in.Type == InputRadio && checked {
		for _, other := range f.Inputs {
			if other.Type == InputRadio && other.Name == in.Name {
				other.Checked = false
			}
		}
	}
	in.Checked = checked
	for trigger, target := range f.toggles {
		if t := f.Input(trigger); t != nil && t.Name == in.Name {
			f.ToggleOther(trigger, target)
		}
	}
	return nil
}

// ChooseValue checks the radio or checkbox of group name whose value is v.
func (f *Form) ChooseValue(name, v string) error {
	for _, in := range f.Inputs {
		if in.Name == name && in.checkable() && in.Value == v {
			return f.Check(in.ID, true)
		}
	}
	return fmt.Errorf("form %s: no option %q for %q", f.ID, v, name)
}

// ToggleOther shows the target and makes it required when the trigger is
// checked, otherwise hides it and drops the requirement.
func (f *Form) ToggleOther(triggerID, targetID string) {
	trigger, target := f.Input(triggerID), f.Input(targetID)
	if trigger == nil || target == nil {
		return
	}
	target.Hidden = !trigger.Checked
	target.Required = trigger.Checked
}

// Validate checks visible required inputs only. A required radio or checkbox
// group is satisfied by any checked member.
func (f *Form) Validate() error {
	var missing []string
	seen := map[string]bool{}
	for _, in := range f.Inputs {
		if !in.Required || in.Hidden || in.Disabled {
			continue
		}
		if in.checkable() {
			if seen[in.Name] {
				continue
			}
			seen[in.Name] = true
			if !f.anyChecked(in.Name) {
				missing = append(missing, in.Name)
			}
			continue
		}
		if strings.TrimSpace(in.Value) == "" {
			missing = append(missing, in.Name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{FormID: f.ID, Fields: missing}
	}
	return nil
}

func (f *Form) anyChecked(name string) bool {
	for _, in := range f.Inputs {
		if in.Name == name && in.checkable() && in.Checked {
			return true
		}
	}
	return false
}

type ValidationError struct {
	FormID string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form %s: required fields missing: %s", e.FormID, strings.Join(e.Fields, ", "))
}
