package repository

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"homecare-admin/internal/common/database"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// EnsureSchema creates missing tables and indexes for the connection's dialect.
// Statements are idempotent (IF NOT EXISTS); there is no migration bookkeeping.
func EnsureSchema(ctx context.Context, conn database.Conn) error {
	file := "schema/sqlite.sql"
	if conn.Dialect() == database.Postgres {
		file = "schema/postgres.sql"
	}
	raw, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	for _, stmt := range splitStatements(string(raw)) {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// splitStatements splits on ';' at line ends and drops comment-only chunks.
func splitStatements(script string) []string {
	var out []string
	for _, chunk := range strings.Split(script, ";\n") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			if t := strings.TrimSpace(line); t == "" || strings.HasPrefix(t, "--") {
				continue
			}
			lines = append(lines, line)
		}
		if stmt := strings.TrimSpace(strings.TrimSuffix(strings.Join(lines, "\n"), ";")); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
