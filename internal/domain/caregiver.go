package domain

import "time"

// Caregiver 护理员，可分配到多个 Service
type Caregiver struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          *string   `db:"email" json:"email"`
	Phone          *string   `db:"phone" json:"phone"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	Certifications []string  `db:"certifications" json:"certifications"` // JSON 数组存储
	AvailableHours int       `db:"available_hours" json:"available_hours"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Weekly capacity bounds of Caregiver.AvailableHours.
const (
	MinAvailableHours = 1
	MaxAvailableHours = 168
)

// CaregiverDetail Caregiver 详情：services（含 participant、agency、pivot）
type CaregiverDetail struct {
	Caregiver
	Services []CaregiverService `json:"services"`
}

// CaregiverService is one service a caregiver is assigned to, seen from the caregiver side.
type CaregiverService struct {
	Service
	Participant *Participant `json:"participant"`
	Agency      *Agency      `json:"agency"`
	Pivot       Assignment   `json:"pivot"`
}

func (s CaregiverService) MarshalJSON() ([]byte, error) {
	return marshalServiceWith(s.Service, map[string]any{
		"participant": s.Participant,
		"agency":      s.Agency,
		"pivot":       s.Pivot,
	})
}
