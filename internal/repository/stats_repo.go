package repository

import (
	"context"
	"fmt"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

// StatsRepository 汇总计数（dashboard）
type StatsRepository interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type SQLStatsRepository struct {
	db database.Conn
}

func NewSQLStatsRepository(db database.Conn) *SQLStatsRepository {
	return &SQLStatsRepository{db: db}
}

var _ StatsRepository = (*SQLStatsRepository)(nil)

func (r *SQLStatsRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{ServicesByStatus: map[domain.ServiceStatus]int{}}
	for _, st := range domain.ServiceStatuses {
		stats.ServicesByStatus[st] = 0
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM agencies),
			(SELECT COUNT(*) FROM case_managers),
			(SELECT COUNT(*) FROM participants),
			(SELECT COUNT(*) FROM participants WHERE is_active = ?),
			(SELECT COUNT(*) FROM caregivers),
			(SELECT COUNT(*) FROM caregivers WHERE is_active = ?),
			(SELECT COUNT(*) FROM services)
	`
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), true, true).Scan(
		&stats.Agencies, &stats.CaseManagers, &stats.Participants, &stats.ActiveParticipants,
		&stats.Caregivers, &stats.ActiveCaregivers, &stats.Services,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM services GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count services by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status domain.ServiceStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.ServicesByStatus[status] = n
	}
	return stats, rows.Err()
}
