package intake

import (
	"fmt"
	"strings"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
)

// otherControls names the trigger and target inputs of each other-field
// pair, per form and field.
type otherControls struct {
	trigger string
	target  string
}

var otherIDs = map[string]map[string]otherControls{
	lead.FormNewRoof: {
		"constructionPlan": {trigger: "planOther", target: "otherPlan"},
	},
	lead.FormRenovation: {
		"houseType":    {trigger: "houseTypeOther", target: "otherHouseType"},
		"roofProblems": {trigger: "problemOther", target: "otherProblem"},
	},
	lead.FormMetalRoof: {
		"houseType":    {trigger: "metalHouseTypeOther", target: "metalOtherHouseType"},
		"roofProblems": {trigger: "metalProblemOther", target: "metalOtherProblem"},
	},
	lead.FormContact: {
		"customerType": {trigger: "customerType4", target: "otherCustomerType"},
	},
}

// idPrefix keeps input ids unique across forms that share field names.
var idPrefix = map[string]string{
	lead.FormMetalRoof: "metal",
}

var requiredFields = map[string]bool{
	lead.FieldFullName: true,
	"phone":            true,
	lead.FieldDistrict: true,
	lead.FieldProvince: true,
}

// ServiceForm builds a fresh questionnaire for t. The category travels as a
// hidden serviceType input so it leads the extracted record.
func ServiceForm(t lead.ServiceType) (*Form, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown service type %q", t)
	}
	f := buildForm(t.FormID(), t.Schema())
	head := &Input{ID: idFor(f.ID, lead.FieldServiceType), Name: lead.FieldServiceType, Type: InputHidden, Value: string(t), Hidden: true}
	f.Inputs = append([]*Input{head}, f.Inputs...)
	return f, nil
}

// ContactForm builds the shared contact form.
func ContactForm() *Form {
	return buildForm(lead.FormContact, lead.ContactSchema())
}

func idFor(formID, name string) string {
	p := idPrefix[formID]
	if p == "" {
		return name
	}
	return p + strings.ToUpper(name[:1]) + name[1:]
}

func buildForm(formID string, schema []lead.FieldSpec) *Form {
	f := &Form{ID: formID, toggles: map[string]string{}}
	others := otherIDs[formID]
	for _, spec := range schema {
		switch spec.Kind {
		case lead.KindChoice, lead.KindCheckboxGroup:
			typ := InputRadio
			if spec.Kind == lead.KindCheckboxGroup {
				typ = InputCheckbox
			}
			ctl, hasOther := others[spec.Name]
			for i, opt := range spec.Options {
				id := fmt.Sprintf("%s%d", idFor(formID, spec.Name), i+1)
				if hasOther && opt == lead.OtherOption {
					id = ctl.trigger
				}
				f.Inputs = append(f.Inputs, &Input{
					ID:       id,
					Name:     spec.Name,
					Type:     typ,
					Value:    opt,
					Required: typ == InputRadio,
				})
			}
			if spec.OtherField != "" && hasOther {
				f.Inputs = append(f.Inputs, &Input{
					ID:     ctl.target,
					Name:   spec.OtherField,
					Type:   InputText,
					Hidden: true,
				})
				f.toggles[ctl.trigger] = ctl.target
			}
		default:
			typ := InputText
			switch {
			case spec.Kind == lead.KindArea, spec.Kind == lead.KindBaht, spec.Kind == lead.KindCurrency:
				typ = InputNumber
			case spec.Name == "email":
				typ = InputEmail
			case spec.Name == "phone":
				typ = InputTel
			}
			f.Inputs = append(f.Inputs, &Input{
				ID:       idFor(formID, spec.Name),
				Name:     spec.Name,
				Type:     typ,
				Required: requiredFields[spec.Name],
			})
		}
	}
	return f
}
