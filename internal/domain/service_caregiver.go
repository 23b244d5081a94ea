package domain

import "time"

// Assignment service_caregiver 关联行（复合主键 service_id + caregiver_id）
type Assignment struct {
	ServiceID     string    `db:"service_id" json:"service_id"`
	CaregiverID   string    `db:"caregiver_id" json:"caregiver_id"`
	AssignedHours int       `db:"assigned_hours" json:"assigned_hours"`
	AssignedAt    time.Time `db:"assigned_at" json:"assigned_at"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// AssignedCaregiver is a caregiver seen from a service, with the pivot row.
type AssignedCaregiver struct {
	Caregiver
	Pivot Assignment `json:"pivot"`
}
