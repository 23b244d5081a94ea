package repository

import (
	"context"

	"homecare-admin/internal/common/database"
)

// Repositories 绑定到同一个连接（DB 或 Tx）的全部 Repository
type Repositories struct {
	Agencies     AgenciesRepository
	CaseManagers CaseManagersRepository
	Participants ParticipantsRepository
	Caregivers   CaregiversRepository
	Services     ServicesRepository
	Assignments  AssignmentsRepository
	Users        UsersRepository
	Stats        StatsRepository
	Lookup       *SQLLookup
}

func NewRepositories(conn database.Conn) *Repositories {
	return &Repositories{
		Agencies:     NewSQLAgenciesRepository(conn),
		CaseManagers: NewSQLCaseManagersRepository(conn),
		Participants: NewSQLParticipantsRepository(conn),
		Caregivers:   NewSQLCaregiversRepository(conn),
		Services:     NewSQLServicesRepository(conn),
		Assignments:  NewSQLAssignmentsRepository(conn),
		Users:        NewSQLUsersRepository(conn),
		Stats:        NewSQLStatsRepository(conn),
		Lookup:       NewSQLLookup(conn),
	}
}

// Store owns the database handle and hands out repositories.
type Store struct {
	db    *database.DB
	repos *Repositories
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db, repos: NewRepositories(db)}
}

func (s *Store) DB() *database.DB { return s.db }

func (s *Store) Repos() *Repositories { return s.repos }

// WithinTx runs fn with repositories bound to a single transaction. fn must only use the
// repositories it is given: SQLite runs on one connection and would block on the outer handle.
func (s *Store) WithinTx(ctx context.Context, fn func(r *Repositories) error) error {
	return s.db.WithinTx(ctx, func(tx *database.Tx) error {
		return fn(NewRepositories(tx))
	})
}
