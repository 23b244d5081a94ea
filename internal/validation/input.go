package validation

import (
	"time"

	"homecare-admin/internal/domain"
)

// Values wraps the map returned by Validate with typed accessors.
type Values map[string]any

func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// StringPtr returns nil for absent fields.
func (v Values) StringPtr(key string) *string {
	s, ok := v[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func (v Values) Bool(key string, def bool) bool {
	if b, ok := v[key].(bool); ok {
		return b
	}
	return def
}

func (v Values) Int(key string) int {
	n, _ := v[key].(int)
	return n
}

func (v Values) IntPtr(key string) *int {
	n, ok := v[key].(int)
	if !ok {
		return nil
	}
	return &n
}

func (v Values) Date(key string) (domain.Date, bool) {
	d, ok := v[key].(domain.Date)
	return d, ok
}

func (v Values) DatePtr(key string) *domain.Date {
	d, ok := v[key].(domain.Date)
	if !ok {
		return nil
	}
	return &d
}

func (v Values) TimePtr(key string) *time.Time {
	t, ok := v[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

func (v Values) Strings(key string) []string {
	items, _ := v[key].([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Objects returns the validated nested objects of an Each field.
func (v Values) Objects(key string) []Values {
	items, _ := v[key].([]map[string]any)
	out := make([]Values, len(items))
	for i, it := range items {
		out[i] = Values(it)
	}
	return out
}
