package domain

// 表单下拉选项

type AgencyOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CaseManagerOption struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	AgencyName  *string `json:"agency_name"`
	DisplayName string  `json:"display_name"`
}

// NoAgencyLabel is shown for case managers whose agency is missing.
const NoAgencyLabel = "No Agency"

// NewCaseManagerOption builds "Name (Agency)" display text.
func NewCaseManagerOption(id, name string, agencyName *string) CaseManagerOption {
	label := NoAgencyLabel
	if agencyName != nil && *agencyName != "" {
		label = *agencyName
	}
	return CaseManagerOption{ID: id, Name: name, AgencyName: agencyName, DisplayName: name + " (" + label + ")"}
}

type ParticipantOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MedicaidID string `json:"medicaid_id"`
}

type CaregiverOption struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AvailableHours int    `json:"available_hours"`
}

// EnumOption is a value/label pair for enumerated form fields.
type EnumOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
