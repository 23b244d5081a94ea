package domain

// DashboardStats 首页统计
type DashboardStats struct {
	Agencies           int                   `json:"agencies"`
	CaseManagers       int                   `json:"case_managers"`
	Participants       int                   `json:"participants"`
	ActiveParticipants int                   `json:"active_participants"`
	Caregivers         int                   `json:"caregivers"`
	ActiveCaregivers   int                   `json:"active_caregivers"`
	Services           int                   `json:"services"`
	ServicesByStatus   map[ServiceStatus]int `json:"services_by_status"`
}
