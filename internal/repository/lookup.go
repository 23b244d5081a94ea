package repository

import (
	"context"
	"fmt"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/validation"
)

// lookupColumns 允许 exists/unique 规则访问的表与列（表名、列名直接拼进 SQL）
var lookupColumns = map[string]map[string]bool{
	validation.TableAgencies:     {"id": true},
	validation.TableCaseManagers: {"id": true, "email": true},
	validation.TableParticipants: {"id": true, "medicaid_id": true},
	validation.TableCaregivers:   {"id": true, "email": true},
	validation.TableServices:     {"id": true},
	validation.TableUsers:        {"id": true, "email": true},
}

// SQLLookup implements validation.Lookup on a connection.
type SQLLookup struct {
	db database.Conn
}

func NewSQLLookup(db database.Conn) *SQLLookup {
	return &SQLLookup{db: db}
}

var _ validation.Lookup = (*SQLLookup)(nil)

func checkLookup(table, column string) error {
	if !lookupColumns[table][column] {
		return fmt.Errorf("lookup on %s.%s is not allowed", table, column)
	}
	return nil
}

func (l *SQLLookup) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	if err := checkLookup(table, column); err != nil {
		return false, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ?`, table, column)
	var n int
	if err := l.db.QueryRowContext(ctx, l.db.Rebind(query), value).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}

func (l *SQLLookup) Taken(ctx context.Context, table, column string, value any, exceptID string) (bool, error) {
	if err := checkLookup(table, column); err != nil {
		return false, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ? AND id <> ?`, table, column)
	var n int
	if err := l.db.QueryRowContext(ctx, l.db.Rebind(query), value, exceptID).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}
