package lead

// ServiceType is the customer's chosen service category.
type ServiceType string

const (
	ServiceNewRoof    ServiceType = "New Roof Installation"
	ServiceRenovation ServiceType = "Roof Renovation"
	ServiceMetalRoof  ServiceType = "SCG Metal Roof Replacement"
)

// Form ids of the questionnaires, as used for back-navigation.
const (
	FormNewRoof    = "newRoofForm"
	FormRenovation = "renovationForm"
	FormMetalRoof  = "metalRoofForm"
	FormContact    = "contactFormData"
)

var ServiceTypes = []ServiceType{ServiceNewRoof, ServiceRenovation, ServiceMetalRoof}

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceNewRoof, ServiceRenovation, ServiceMetalRoof:
		return true
	}
	return false
}

func (t ServiceType) FormID() string {
	switch t {
	case ServiceNewRoof:
		return FormNewRoof
	case ServiceRenovation:
		return FormRenovation
	case ServiceMetalRoof:
		return FormMetalRoof
	}
	return ""
}

// ServiceForForm maps a questionnaire form id back to its category.
func ServiceForForm(formID string) (ServiceType, bool) {
	for _, t := range ServiceTypes {
		if t.FormID() == formID {
			return t, true
		}
	}
	return "", false
}

// FieldKind controls how a value is collected and displayed.
type FieldKind int

const (
	KindText FieldKind = iota
	KindChoice
	KindCheckboxGroup
	KindArea
	KindBaht
	KindCurrency
)

// FieldSpec documents one expected record key.
type FieldSpec struct {
	Name  string
	Label string
	Kind  FieldKind
	// Options for choice and checkbox fields.
	Options []string
	// OtherField names the free-text field that replaces an "other" answer.
	OtherField string
}

// OtherOption is the form's "other" answer value.
const OtherOption = "อื่นๆ"

var newRoofSchema = []FieldSpec{
	{Name: "houseArea", Label: "House Area", Kind: KindArea},
	{Name: "package", Label: "Package", Kind: KindChoice, Options: []string{"Standard", "Premium", "Solar Ready"}},
	{Name: "constructionStatus", Label: "Construction Status", Kind: KindChoice, Options: []string{"ยังไม่เริ่มก่อสร้าง", "กำลังก่อสร้าง", "ก่อสร้างเสร็จแล้ว"}},
	{Name: "constructionPlan", Label: "Construction Plan", Kind: KindChoice, Options: []string{"ภายใน 3 เดือน", "ภายใน 6 เดือน", "ภายใน 1 ปี", OtherOption}, OtherField: "otherPlan"},
	{Name: "budget", Label: "Budget", Kind: KindCurrency},
}

var renovationSchema = []FieldSpec{
	{Name: "houseType", Label: "House Type", Kind: KindChoice, Options: []string{"บ้านเดี่ยว", "ทาวน์เฮาส์", "อาคารพาณิชย์", OtherOption}, OtherField: "otherHouseType"},
	{Name: "roofProblems", Label: "Roof Problems", Kind: KindCheckboxGroup, Options: []string{"หลังคารั่ว", "กระเบื้องแตก", "โครงหลังคาผุ", "ร้อน", OtherOption}, OtherField: "otherProblem"},
	{Name: "serviceInterest", Label: "Service Interest", Kind: KindCheckboxGroup, Options: []string{"ซ่อมแซม", "เปลี่ยนกระเบื้อง", "ติดฉนวนกันความร้อน", "ตรวจสอบหลังคา"}},
	{Name: "roofArea", Label: "Roof Area", Kind: KindArea},
	{Name: "renovationBudget", Label: "Renovation Budget", Kind: KindBaht},
}

var metalRoofSchema = []FieldSpec{
	{Name: "houseType", Label: "House Type", Kind: KindChoice, Options: []string{"บ้านเดี่ยว", "ทาวน์เฮาส์", "โรงงาน", OtherOption}, OtherField: "otherHouseType"},
	{Name: "roofProblems", Label: "Roof Problems", Kind: KindCheckboxGroup, Options: []string{"หลังคารั่ว", "สนิม", "เสียงดัง", "ร้อน", OtherOption}, OtherField: "otherProblem"},
	{Name: "roofArea", Label: "Roof Area", Kind: KindArea},
	{Name: "replacementBudget", Label: "Replacement Budget", Kind: KindBaht},
}

var contactSchema = []FieldSpec{
	{Name: FieldFullName, Label: "Full Name", Kind: KindText},
	{Name: "phone", Label: "Phone", Kind: KindText},
	{Name: "email", Label: "Email", Kind: KindText},
	{Name: "lineId", Label: "LINE ID", Kind: KindText},
	{Name: "address", Label: "Address", Kind: KindText},
	{Name: "subdistrict", Label: "Subdistrict", Kind: KindText},
	{Name: FieldDistrict, Label: "District", Kind: KindText},
	{Name: FieldProvince, Label: "Province", Kind: KindText},
	{Name: "postalCode", Label: "Postal Code", Kind: KindText},
	{Name: "customerType", Label: "Customer Type", Kind: KindChoice, Options: []string{"เจ้าของบ้าน", "ผู้รับเหมา", "สถาปนิก", OtherOption}, OtherField: "otherCustomerType"},
	{Name: "contactTime", Label: "Preferred Contact Time", Kind: KindText},
}

// Schema returns the ordered field specs of a service questionnaire, or nil
// for an unrecognized category.
func (t ServiceType) Schema() []FieldSpec {
	switch t {
	case ServiceNewRoof:
		return newRoofSchema
	case ServiceRenovation:
		return renovationSchema
	case ServiceMetalRoof:
		return metalRoofSchema
	}
	return nil
}

// ContactSchema is shared by every category.
func ContactSchema() []FieldSpec { return contactSchema }
