package domain

import "time"

// CaseManager 个案经理，隶属一个 Agency
type CaseManager struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	AgencyID  string    `db:"agency_id" json:"agency_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CaseManagerWithAgency carries the owning agency (nil when it no longer exists).
type CaseManagerWithAgency struct {
	CaseManager
	Agency *Agency `json:"agency"`
}

// CaseManagerDetail CaseManager 详情：agency 与 participants
type CaseManagerDetail struct {
	CaseManager
	Agency       *Agency       `json:"agency"`
	Participants []Participant `json:"participants"`
}
