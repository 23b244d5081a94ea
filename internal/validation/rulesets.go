package validation

import (
	"math"

	"homecare-admin/internal/domain"
)

// MaxInteger 整数列（INTEGER）的上限
const MaxInteger = math.MaxInt32

// 表名（exists / unique 规则使用）
const (
	TableAgencies     = "agencies"
	TableCaseManagers = "case_managers"
	TableParticipants = "participants"
	TableCaregivers   = "caregivers"
	TableServices     = "services"
	TableUsers        = "users"
)

func optionalString(name string, max int) Field {
	return Field{Name: name, Nullable: true, Rules: []Rule{String(), MaxLen(max)}}
}

func requiredString(name string, max int) Field {
	return Field{Name: name, Required: true, Rules: []Rule{String(), MaxLen(max)}}
}

func activeFlag() Field {
	return Field{Name: "is_active", Default: true, Rules: []Rule{Boolean()}}
}

// AgencyRules create 与 update 相同
func AgencyRules() RuleSet {
	return RuleSet{
		requiredString("name", 255),
		optionalString("contact_person", 255),
		optionalString("phone", 20),
		{Name: "email", Nullable: true, Rules: []Rule{Email(), MaxLen(255)}},
		optionalString("address", 500),
		optionalString("city", 100),
		optionalString("state", 50),
		optionalString("zip_code", 10),
		optionalString("license_number", 100),
		activeFlag(),
	}
}

// CaseManagerRules; exceptID is the case manager being updated ("" on create).
func CaseManagerRules(exceptID string) RuleSet {
	return RuleSet{
		requiredString("name", 255),
		{Name: "email", Required: true, Rules: []Rule{String(), Email(), MaxLen(255), Unique(TableCaseManagers, "email", exceptID)}},
		optionalString("phone", 20),
		{Name: "agency_id", Required: true, Rules: []Rule{String(), Exists(TableAgencies, "id")}},
	}
}

// NestedServiceRules validates services[] entries of the participant create flow:
// agency_id and type are required, dates are optional.
func NestedServiceRules() RuleSet {
	return RuleSet{
		{Name: "agency_id", Required: true, Rules: []Rule{String(), Exists(TableAgencies, "id")}},
		{Name: "type", Required: true, Rules: []Rule{In(domain.ServiceTypes...)}},
		{Name: "weekly_hours", Nullable: true, Rules: []Rule{Integer(), Min(1), Max(MaxInteger)}},
		{Name: "weekly_units", Nullable: true, Rules: []Rule{Integer(), Min(1), Max(MaxInteger)}},
		{Name: "start_date", Nullable: true, Rules: []Rule{Date()}},
		{Name: "end_date", Nullable: true, Rules: []Rule{Date(), AfterOrEqual("start_date")}},
	}
}

// ParticipantRules; withServices enables the nested services[] array (create flow only).
func ParticipantRules(exceptID string, withServices bool) RuleSet {
	rs := RuleSet{
		requiredString("name", 255),
		{Name: "medicaid_id", Required: true, Rules: []Rule{String(), MaxLen(255), Unique(TableParticipants, "medicaid_id", exceptID)}},
		{Name: "gender", Required: true, Rules: []Rule{In(domain.Genders...)}},
		{Name: "dob", Required: true, Rules: []Rule{Date(), BeforeToday()}},
		requiredString("address", 500),
		requiredString("primary_phone", 20),
		optionalString("secondary_phone", 20),
		optionalString("community", 255),
		activeFlag(),
		{Name: "case_manager_id", Required: true, Rules: []Rule{String(), Exists(TableCaseManagers, "id")}},
	}
	if withServices {
		rs = append(rs, Field{Name: "services", Nullable: true, Rules: []Rule{Array()}, Each: NestedServiceRules()})
	}
	return rs
}

func CaregiverRules(exceptID string) RuleSet {
	return RuleSet{
		requiredString("name", 255),
		{Name: "email", Nullable: true, Rules: []Rule{Email(), MaxLen(255), Unique(TableCaregivers, "email", exceptID)}},
		optionalString("phone", 20),
		activeFlag(),
		{Name: "certifications", Nullable: true, Rules: []Rule{Array()}, EachRules: []Rule{String(), MaxLen(255)}},
		{Name: "available_hours", Required: true, Rules: []Rule{Integer(), Min(domain.MinAvailableHours), Max(domain.MaxAvailableHours)}},
	}
}

// ServiceRules standalone service create/update; every field is caller supplied.
func ServiceRules() RuleSet {
	return RuleSet{
		{Name: "participant_id", Required: true, Rules: []Rule{String(), Exists(TableParticipants, "id")}},
		{Name: "agency_id", Required: true, Rules: []Rule{String(), Exists(TableAgencies, "id")}},
		{Name: "type", Required: true, Rules: []Rule{In(domain.ServiceTypes...)}},
		{Name: "weekly_hours", Nullable: true, Rules: []Rule{Integer(), Min(1), Max(MaxInteger)}},
		{Name: "weekly_units", Nullable: true, Rules: []Rule{Integer(), Min(1), Max(MaxInteger)}},
		{Name: "start_date", Required: true, Rules: []Rule{Date()}},
		{Name: "end_date", Nullable: true, Rules: []Rule{Date(), AfterOrEqual("start_date")}},
		{Name: "status", Required: true, Rules: []Rule{In(domain.ServiceStatuses...)}},
	}
}

func UserRules(exceptID string) RuleSet {
	return RuleSet{
		requiredString("name", 255),
		{Name: "email", Required: true, Rules: []Rule{String(), Email(), MaxLen(255), Unique(TableUsers, "email", exceptID)}},
		{Name: "email_verified_at", Nullable: true, Rules: []Rule{DateTime()}},
	}
}

// AssignmentRules attach a caregiver to a service.
func AssignmentRules() RuleSet {
	return RuleSet{
		{Name: "caregiver_id", Required: true, Rules: []Rule{String(), Exists(TableCaregivers, "id")}},
		{Name: "assigned_hours", Required: true, Rules: []Rule{Integer(), Min(1), Max(MaxInteger)}},
	}
}

// AssignmentUpdateRules change the hours of an existing assignment.
func AssignmentUpdateRules() RuleSet {
	return RuleSet{
		{Name: "assigned_hours", Required: true, Rules: []Rule{Integer(), Min(1), Max(MaxInteger)}},
	}
}
