package domain

import (
	"encoding/json"
	"time"
)

// ServiceType 服务类型
type ServiceType string

const (
	ServiceTypeHomeCare ServiceType = "Home Care"
	ServiceTypeHDM      ServiceType = "HDM"  // Home-Delivered Meals
	ServiceTypeADHC     ServiceType = "ADHC" // Adult Day Health Care
)

var ServiceTypes = []ServiceType{ServiceTypeHomeCare, ServiceTypeHDM, ServiceTypeADHC}

// ServiceStatus 服务状态（无状态机，任意值可随时设置）
type ServiceStatus string

const (
	ServiceStatusPending  ServiceStatus = "pending"
	ServiceStatusApproved ServiceStatus = "approved"
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusExpired  ServiceStatus = "expired"
)

var ServiceStatuses = []ServiceStatus{ServiceStatusPending, ServiceStatusApproved, ServiceStatusActive, ServiceStatusExpired}

const (
	FieldWeeklyHours = "weekly_hours"
	FieldWeeklyUnits = "weekly_units"

	HoursLabel = "Weekly Hours"
	UnitsLabel = "Weekly Units"
)

// Service 服务（Participant 与 Agency 之间，按日期区间）
type Service struct {
	ID            string        `db:"id" json:"id"`
	ParticipantID string        `db:"participant_id" json:"participant_id"`
	AgencyID      string        `db:"agency_id" json:"agency_id"`
	Type          ServiceType   `db:"type" json:"type"`
	WeeklyHours   *int          `db:"weekly_hours" json:"weekly_hours"`
	WeeklyUnits   *int          `db:"weekly_units" json:"weekly_units"`
	StartDate     Date          `db:"start_date" json:"start_date"`
	EndDate       *Date         `db:"end_date" json:"end_date"`
	Status        ServiceStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// AllowedFields returns which numeric inputs a form should show for t.
// It is presentation only; validation accepts both fields for every type.
func AllowedFields(t ServiceType) []string {
	switch t {
	case ServiceTypeHDM:
		return []string{FieldWeeklyUnits}
	default:
		// Home Care、ADHC 及未知类型：两者都允许
		return []string{FieldWeeklyHours, FieldWeeklyUnits}
	}
}

func (s Service) AllowedFields() []string { return AllowedFields(s.Type) }

func (s Service) HoursLabel() string { return HoursLabel }

func (s Service) UnitsLabel() string { return UnitsLabel }

// MarshalJSON appends the derived allowed_fields, hours_label and units_label attributes.
func (s Service) MarshalJSON() ([]byte, error) {
	type plain Service
	return json.Marshal(struct {
		plain
		AllowedFields []string `json:"allowed_fields"`
		HoursLabel    string   `json:"hours_label"`
		UnitsLabel    string   `json:"units_label"`
	}{plain(s), s.AllowedFields(), s.HoursLabel(), s.UnitsLabel()})
}

// ServiceWithParticipant Service + participant（Agency 详情使用）
type ServiceWithParticipant struct {
	Service
	Participant *Participant `json:"participant"`
}

// ServiceWithAgency Service + agency（Participant 详情、编辑使用）
type ServiceWithAgency struct {
	Service
	Agency *Agency `json:"agency"`
}

// ServiceDetail Service 详情：participant、agency 与 caregivers（含 pivot）
type ServiceDetail struct {
	Service
	Participant *Participant        `json:"participant"`
	Agency      *Agency             `json:"agency"`
	Caregivers  []AssignedCaregiver `json:"caregivers"`
}

// 嵌入 Service 的类型会继承 Service.MarshalJSON，需要各自把关联对象并入输出

func (s ServiceWithParticipant) MarshalJSON() ([]byte, error) {
	return marshalServiceWith(s.Service, map[string]any{"participant": s.Participant})
}

func (s ServiceWithAgency) MarshalJSON() ([]byte, error) {
	return marshalServiceWith(s.Service, map[string]any{"agency": s.Agency})
}

func (s ServiceDetail) MarshalJSON() ([]byte, error) {
	return marshalServiceWith(s.Service, map[string]any{
		"participant": s.Participant,
		"agency":      s.Agency,
		"caregivers":  s.Caregivers,
	})
}

func marshalServiceWith(s Service, extra map[string]any) ([]byte, error) {
	base, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}
