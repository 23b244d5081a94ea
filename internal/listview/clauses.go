package listview

import (
	"math"
	"strconv"
	"strings"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

// 过滤子句
const (
	ClauseContains    = "contains"
	ClauseNotContains = "not_contains"
	ClauseStartsWith  = "starts_with"
	ClauseEndsWith    = "ends_with"
	ClauseEquals      = "equals"
	ClauseNotEquals   = "not_equals"
	ClauseIn          = "in"
	ClauseNotIn       = "not_in"
	ClauseBefore      = "before"
	ClauseAfter       = "after"
	ClauseBetween     = "between"
	ClauseIsSet       = "is_set"
	ClauseIsNotSet    = "is_not_set"
	ClauseGT          = "gt"
	ClauseGTE         = "gte"
	ClauseLT          = "lt"
	ClauseLTE         = "lte"
)

// Clauses lists the accepted clauses of a filter; the first is the default.
func (f Filter) Clauses() []string {
	var out []string
	switch f.Type {
	case FilterText:
		out = []string{ClauseContains, ClauseNotContains, ClauseStartsWith, ClauseEndsWith, ClauseEquals, ClauseNotEquals}
	case FilterSet:
		out = []string{ClauseIn, ClauseNotIn}
	case FilterDate:
		out = []string{ClauseEquals, ClauseBefore, ClauseAfter, ClauseBetween}
	case FilterNumeric:
		out = []string{ClauseEquals, ClauseNotEquals, ClauseGT, ClauseGTE, ClauseLT, ClauseLTE, ClauseBetween}
	case FilterBoolean:
		out = []string{ClauseEquals}
	}
	if f.Nullable {
		out = append(out, ClauseIsSet, ClauseIsNotSet)
	}
	return out
}

// condition builds the WHERE fragment for one active filter. ok is false when the value or
// clause does not apply, in which case the filter is ignored.
func (f Filter) condition(dialect database.Dialect, fv FilterValue) (sql string, args []any, ok bool) {
	clauses := f.Clauses()
	clause := fv.Clause
	if clause == "" {
		clause = clauses[0]
	}
	if !contains(clauses, clause) {
		return "", nil, false
	}
	switch clause {
	case ClauseIsSet:
		return f.Expr + " IS NOT NULL", nil, true
	case ClauseIsNotSet:
		return f.Expr + " IS NULL", nil, true
	}

	switch f.Type {
	case FilterText:
		return textCondition(dialect, f.Expr, clause, fv.Value)
	case FilterSet:
		return f.setCondition(clause, fv.Value)
	case FilterDate:
		return dateCondition(dialect, f.Expr, clause, fv.Value)
	case FilterNumeric:
		return numericCondition(f.Expr, clause, fv.Value)
	case FilterBoolean:
		b, ok := parseBool(fv.Value)
		if !ok {
			return "", nil, false
		}
		return f.Expr + " = ?", []any{b}, true
	}
	return "", nil, false
}

func textCondition(dialect database.Dialect, expr, clause, value string) (string, []any, bool) {
	lower := database.Lower(dialect, expr)
	v := strings.ToLower(value)
	switch clause {
	case ClauseContains:
		return lower + ` LIKE ? ESCAPE '\'`, []any{"%" + escapeLike(v) + "%"}, true
	case ClauseNotContains:
		return "(" + expr + " IS NULL OR " + lower + ` NOT LIKE ? ESCAPE '\')`, []any{"%" + escapeLike(v) + "%"}, true
	case ClauseStartsWith:
		return lower + ` LIKE ? ESCAPE '\'`, []any{escapeLike(v) + "%"}, true
	case ClauseEndsWith:
		return lower + ` LIKE ? ESCAPE '\'`, []any{"%" + escapeLike(v)}, true
	case ClauseEquals:
		return lower + " = ?", []any{v}, true
	case ClauseNotEquals:
		return "(" + expr + " IS NULL OR " + lower + " <> ?)", []any{v}, true
	}
	return "", nil, false
}

func (f Filter) setCondition(clause, value string) (string, []any, bool) {
	var args []any
	for _, raw := range strings.Split(value, ",") {
		raw = strings.TrimSpace(raw)
		for _, opt := range f.Options {
			if opt.Value == raw {
				if opt.Arg != nil {
					args = append(args, opt.Arg)
				} else {
					args = append(args, opt.Value)
				}
			}
		}
	}
	if len(args) == 0 {
		return "", nil, false
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
	if clause == ClauseNotIn {
		return f.Expr + " NOT IN (" + placeholders + ")", args, true
	}
	return f.Expr + " IN (" + placeholders + ")", args, true
}

// dateExpr compares on the calendar day for both DATE and timestamp columns.
func dateExpr(dialect database.Dialect, expr string) string {
	if dialect == database.Postgres {
		return "CAST(" + expr + " AS DATE)"
	}
	return "DATE(" + expr + ")"
}

func dateCondition(dialect database.Dialect, expr, clause, value string) (string, []any, bool) {
	de := dateExpr(dialect, expr)
	if clause == ClauseBetween {
		from, to, ok := splitPair(value)
		if !ok {
			return "", nil, false
		}
		a, errA := domain.ParseDate(from)
		b, errB := domain.ParseDate(to)
		if errA != nil || errB != nil {
			return "", nil, false
		}
		return de + " BETWEEN ? AND ?", []any{a.String(), b.String()}, true
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return "", nil, false
	}
	switch clause {
	case ClauseEquals:
		return de + " = ?", []any{d.String()}, true
	case ClauseBefore:
		return de + " < ?", []any{d.String()}, true
	case ClauseAfter:
		return de + " > ?", []any{d.String()}, true
	}
	return "", nil, false
}

func numericCondition(expr, clause, value string) (string, []any, bool) {
	if clause == ClauseBetween {
		from, to, ok := splitPair(value)
		if !ok {
			return "", nil, false
		}
		a, errA := strconv.ParseFloat(from, 64)
		b, errB := strconv.ParseFloat(to, 64)
		if errA != nil || errB != nil {
			return "", nil, false
		}
		return expr + " BETWEEN ? AND ?", []any{numberArg(a), numberArg(b)}, true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", nil, false
	}
	ops := map[string]string{
		ClauseEquals: "=", ClauseNotEquals: "<>", ClauseGT: ">", ClauseGTE: ">=", ClauseLT: "<", ClauseLTE: "<=",
	}
	op, ok := ops[clause]
	if !ok {
		return "", nil, false
	}
	return expr + " " + op + " ?", []any{numberArg(n)}, true
}

// numberArg binds integral values as integers so Postgres INTEGER comparisons accept them.
func numberArg(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func splitPair(v string) (string, string, bool) {
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
