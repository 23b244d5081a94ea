package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"homecare-admin/internal/domain"
)

// String requires a string value and trims surrounding whitespace.
func String() Rule {
	return func(c *Check, v any) (any, string, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Sprintf("The %s field must be a string.", c.Label), nil
		}
		return strings.TrimSpace(s), "", nil
	}
}

// MaxLen bounds a string's length in characters.
func MaxLen(n int) Rule {
	return func(c *Check, v any) (any, string, error) {
		s, _ := v.(string)
		if utf8.RuneCountInString(s) > n {
			return nil, fmt.Sprintf("The %s field must not be greater than %d characters.", c.Label, n), nil
		}
		return v, "", nil
	}
}

// Email accepts a bare RFC 5322 address (no display name).
func Email() Rule {
	return func(c *Check, v any) (any, string, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Sprintf("The %s field must be a valid email address.", c.Label), nil
		}
		s = strings.TrimSpace(s)
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndexByte(s, '@')+1:], ".") {
			return nil, fmt.Sprintf("The %s field must be a valid email address.", c.Label), nil
		}
		return s, "", nil
	}
}

// Integer accepts JSON numbers with no fractional part and digit strings; normalizes to int.
func Integer() Rule {
	return func(c *Check, v any) (any, string, error) {
		if n, ok := toInt(v); ok {
			return n, "", nil
		}
		return nil, fmt.Sprintf("The %s field must be an integer.", c.Label), nil
	}
}

// Min is a lower bound on an integer normalized by Integer.
func Min(n int) Rule {
	return func(c *Check, v any) (any, string, error) {
		if i, _ := v.(int); i < n {
			return nil, fmt.Sprintf("The %s field must be at least %d.", c.Label, n), nil
		}
		return v, "", nil
	}
}

// Max is an upper bound on an integer normalized by Integer.
func Max(n int) Rule {
	return func(c *Check, v any) (any, string, error) {
		if i, _ := v.(int); i > n {
			return nil, fmt.Sprintf("The %s field must not be greater than %d.", c.Label, n), nil
		}
		return v, "", nil
	}
}

// Boolean accepts true/false, 1/0 and their string forms.
func Boolean() Rule {
	return func(c *Check, v any) (any, string, error) {
		switch x := v.(type) {
		case bool:
			return x, "", nil
		case string:
			switch strings.ToLower(strings.TrimSpace(x)) {
			case "1", "true", "on":
				return true, "", nil
			case "0", "false", "off":
				return false, "", nil
			}
		default:
			if n, ok := toInt(v); ok && (n == 0 || n == 1) {
				return n == 1, "", nil
			}
		}
		return nil, fmt.Sprintf("The %s field must be true or false.", c.Label), nil
	}
}

// In restricts a string to one of values.
func In[T ~string](values ...T) Rule {
	return func(c *Check, v any) (any, string, error) {
		s, _ := v.(string)
		for _, allowed := range values {
			if s == string(allowed) {
				return s, "", nil
			}
		}
		return nil, fmt.Sprintf("The selected %s is invalid.", c.Label), nil
	}
}

// Date parses YYYY-MM-DD (or an RFC 3339 timestamp) into domain.Date.
func Date() Rule {
	return func(c *Check, v any) (any, string, error) {
		switch x := v.(type) {
		case domain.Date:
			return x, "", nil
		case string:
			if d, err := domain.ParseDate(x); err == nil {
				return d, "", nil
			}
		}
		return nil, fmt.Sprintf("The %s field must be a valid date.", c.Label), nil
	}
}

var dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05", domain.DateLayout}

// DateTime parses a timestamp into a UTC time.Time.
func DateTime() Rule {
	return func(c *Check, v any) (any, string, error) {
		if s, ok := v.(string); ok {
			for _, layout := range dateTimeLayouts {
				if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
					return t.UTC(), "", nil
				}
			}
		}
		return nil, fmt.Sprintf("The %s field must be a valid date.", c.Label), nil
	}
}

// BeforeToday requires a Date strictly before the check's current day.
func BeforeToday() Rule {
	return func(c *Check, v any) (any, string, error) {
		d, _ := v.(domain.Date)
		if !d.Before(domain.NewDate(c.Now)) {
			return nil, fmt.Sprintf("The %s field must be a date before today.", c.Label), nil
		}
		return v, "", nil
	}
}

// AfterOrEqual compares against a sibling date validated earlier in the same object.
// An absent or invalid sibling skips the comparison.
func AfterOrEqual(other string) Rule {
	return func(c *Check, v any) (any, string, error) {
		d, _ := v.(domain.Date)
		ref, ok := c.Scope[other].(domain.Date)
		if !ok {
			return v, "", nil
		}
		if d.Before(ref) {
			label := c.Labels[other]
			if label == "" {
				label = strings.ReplaceAll(other, "_", " ")
			}
			return nil, fmt.Sprintf("The %s field must be a date after or equal to %s.", c.Label, label), nil
		}
		return v, "", nil
	}
}

// Exists requires a row in table whose column equals the value.
func Exists(table, column string) Rule {
	return func(c *Check, v any) (any, string, error) {
		if c.Lookup == nil {
			return nil, "", fmt.Errorf("no lookup configured for exists:%s", table)
		}
		ok, err := c.Lookup.Exists(c.Ctx, table, column, v)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			return nil, fmt.Sprintf("The selected %s is invalid.", c.Label), nil
		}
		return v, "", nil
	}
}

// Unique rejects values held by another row of table; exceptID excludes the row being updated.
func Unique(table, column, exceptID string) Rule {
	return func(c *Check, v any) (any, string, error) {
		if c.Lookup == nil {
			return nil, "", fmt.Errorf("no lookup configured for unique:%s", table)
		}
		taken, err := c.Lookup.Taken(c.Ctx, table, column, v, exceptID)
		if err != nil {
			return nil, "", err
		}
		if taken {
			return nil, fmt.Sprintf("The %s has already been taken.", c.Label), nil
		}
		return v, "", nil
	}
}

// Array requires a JSON array (used for fields validated element-wise).
func Array() Rule {
	return func(c *Check, v any) (any, string, error) {
		if _, ok := v.([]any); ok {
			return v, "", nil
		}
		if ss, ok := v.([]string); ok {
			items := make([]any, len(ss))
			for i, s := range ss {
				items[i] = s
			}
			return items, "", nil
		}
		return nil, fmt.Sprintf("The %s field must be an array.", c.Label), nil
	}
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		// 超出 int64 范围（含 ±Inf、NaN）不是合法整数
		if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
			return int(x), true
		}
	case json.Number:
		if n, err := strconv.Atoi(x.String()); err == nil {
			return n, true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n, true
		}
	}
	return 0, false
}
