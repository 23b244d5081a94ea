package domain

import "time"

// Gender 性别枚举
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the accepted values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Participant 服务对象（照护接受者）
type Participant struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	MedicaidID     string    `db:"medicaid_id" json:"medicaid_id"`
	Gender         Gender    `db:"gender" json:"gender"`
	DOB            Date      `db:"dob" json:"dob"`
	Address        string    `db:"address" json:"address"`
	PrimaryPhone   string    `db:"primary_phone" json:"primary_phone"`
	SecondaryPhone *string   `db:"secondary_phone" json:"secondary_phone"`
	Community      *string   `db:"community" json:"community"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CaseManagerID  *string   `db:"case_manager_id" json:"case_manager_id"` // 删除 CaseManager 时置 NULL
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ParticipantDetail Participant 详情：case manager（含 agency）与 services（含 agency）
type ParticipantDetail struct {
	Participant
	CaseManager *CaseManagerWithAgency `json:"case_manager"`
	Services    []ServiceWithAgency    `json:"services"`
}
