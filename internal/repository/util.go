package repository

import (
	"encoding/json"
	"fmt"
	"time"
)

// rowScanner *sql.Row 与 *sql.Rows 共用
type rowScanner interface {
	Scan(dest ...any) error
}

func nilIfEmpty(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func encodeStrings(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode certifications: %w", err)
	}
	return string(b), nil
}

func decodeStrings(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode certifications: %w", err)
	}
	return out, nil
}
