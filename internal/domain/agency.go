package domain

import "time"

// Agency 服务机构（拥有 CaseManagers 与 Services）
type Agency struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactPerson *string   `db:"contact_person" json:"contact_person"`
	Phone         *string   `db:"phone" json:"phone"`
	Email         *string   `db:"email" json:"email"`
	Address       *string   `db:"address" json:"address"`
	City          *string   `db:"city" json:"city"`
	State         *string   `db:"state" json:"state"`
	ZipCode       *string   `db:"zip_code" json:"zip_code"`
	LicenseNumber *string   `db:"license_number" json:"license_number"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// AgencyDetail Agency 详情：services（含 participant）与 case managers
type AgencyDetail struct {
	Agency
	Services     []ServiceWithParticipant `json:"services"`
	CaseManagers []CaseManager            `json:"case_managers"`
}
