package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"homecare-admin/internal/common/config"

	_ "github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Dialect names the SQL flavour behind a connection.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// 连接池默认值
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = 5 * time.Minute
	DefaultDirPermissions  = 0755
)

// sqliteDriver is go-sqlite3 with unicode_lower registered on every connection.
const sqliteDriver = "sqlite3_homecare"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("unicode_lower", unicodeLower, true)
		},
	})
}

// unicodeLower SQLite 自带的 LOWER() 只处理 ASCII
func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		return strings.ToLower(string(s))
	}
	return v
}

// Lower wraps expr in the dialect's Unicode-aware lower-case function.
func Lower(dialect Dialect, expr string) string {
	if dialect == SQLite {
		return "unicode_lower(" + expr + ")"
	}
	return "LOWER(" + expr + ")"
}

// DetectDSNType returns Postgres for URL or key/value Postgres DSNs and SQLite for everything else.
func DetectDSNType(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return Postgres
	}
	return SQLite
}

// Conn is the query surface repositories use; both *DB and *Tx implement it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Dialect() Dialect
	Rebind(query string) string
}

// DB wraps *sql.DB with its dialect.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Tx wraps *sql.Tx with the dialect of the DB it was started on.
type Tx struct {
	*sql.Tx
	dialect Dialect
}

var (
	_ Conn = (*DB)(nil)
	_ Conn = (*Tx)(nil)
)

// Wrap adopts an already opened *sql.DB (sqlmock in tests).
func Wrap(db *sql.DB, dialect Dialect) *DB {
	return &DB{DB: db, dialect: dialect}
}

// Open opens and pings a database for dsn, choosing the driver via DetectDSNType.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	dsn := cfg.GetDSN()
	if dsn == "" {
		return nil, fmt.Errorf("database DSN not set")
	}
	switch DetectDSNType(dsn) {
	case Postgres:
		return NewPostgresDB(ctx, dsn, cfg.MaxConns, cfg.MaxIdle)
	default:
		return NewSQLiteDB(ctx, dsn)
	}
}

// NewPostgresDB 创建PostgreSQL数据库连接
func NewPostgresDB(ctx context.Context, dsn string, maxConns, maxIdle int) (*DB, error) {
	db, err := sql.Open(string(Postgres), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if maxConns <= 0 {
		maxConns = DefaultMaxOpenConns
	}
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdleConns
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{DB: db, dialect: Postgres}, nil
}

// NewSQLiteDB opens a SQLite file, creating its directory when needed.
// Foreign keys are switched on so ON DELETE CASCADE / SET NULL behave as in Postgres,
// and the pool is limited to one connection so writers never contend for the file lock.
func NewSQLiteDB(ctx context.Context, path string) (*DB, error) {
	file := path
	if i := strings.IndexRune(path, '?'); i >= 0 {
		file = path[:i]
	}
	if file != ":memory:" && !strings.HasPrefix(file, "file:") {
		dir := filepath.Dir(file)
		if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sql.Open(sqliteDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{DB: db, dialect: SQLite}, nil
}

func (db *DB) Dialect() Dialect { return db.dialect }

func (db *DB) Rebind(query string) string { return Rebind(db.dialect, query) }

func (tx *Tx) Dialect() Dialect { return tx.dialect }

func (tx *Tx) Rebind(query string) string { return Rebind(tx.dialect, query) }

// WithinTx runs fn inside a transaction. fn's error (or a panic) rolls back; otherwise it commits.
func (db *DB) WithinTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	sqlTx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	tx := &Tx{Tx: sqlTx, dialect: db.dialect}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rebind rewrites '?' placeholders to $1..$n for Postgres. Question marks inside
// single-quoted literals are left alone. SQLite queries are returned unchanged.
func Rebind(dialect Dialect, query string) string {
	if dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Close 关闭数据库连接
func Close(db *DB) error {
	if db != nil && db.DB != nil {
		return db.DB.Close()
	}
	return nil
}
