package listview

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
)

// Engine evaluates table definitions against a database connection:
// base query → search → filters → sort → pagination.
type Engine struct {
	db database.Conn
}

func NewEngine(db database.Conn) *Engine {
	return &Engine{db: db}
}

// Row 一行结果：原始值（values）与渲染文本（display）
type Row struct {
	ID      string            `json:"id"`
	Values  map[string]any    `json:"values"`
	Display map[string]string `json:"display"`
	Actions []RowAction       `json:"actions"`
}

type RowAction struct {
	Kind    ActionKind `json:"kind"`
	Label   string     `json:"label"`
	URL     string     `json:"url"`
	Method  string     `json:"method"`
	Confirm *Confirm   `json:"confirm,omitempty"`
	Danger  bool       `json:"danger,omitempty"`
}

// statement is the WHERE/ORDER part shared by count, page and export queries.
type statement struct {
	where   []string
	args    []any
	orderBy string
}

func (e *Engine) build(t *Table, q Query, sel []string) statement {
	var st statement

	if q.Search != "" && len(t.Search) > 0 {
		dialect := e.db.Dialect()
		pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		ors := make([]string, 0, len(t.Search))
		for _, expr := range t.Search {
			ors = append(ors, database.Lower(dialect, expr)+` LIKE ? ESCAPE '\'`)
			st.args = append(st.args, pattern)
		}
		st.where = append(st.where, "("+strings.Join(ors, " OR ")+")")
	}

	for _, key := range q.filterKeys() {
		f, ok := t.filter(key)
		if !ok {
			continue
		}
		cond, args, ok := f.condition(e.db.Dialect(), q.Filters[key])
		if !ok {
			continue
		}
		st.where = append(st.where, cond)
		st.args = append(st.args, args...)
	}

	if len(sel) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(sel)), ", ")
		st.where = append(st.where, t.IDExpr+" IN ("+placeholders+")")
		for _, id := range sel {
			st.args = append(st.args, id)
		}
	}

	key, desc := resolveSort(t, q.Sort)
	order := t.IDExpr
	if c, ok := t.column(key); ok {
		dir := "ASC"
		if desc {
			dir = "DESC"
		}
		order = c.Expr + " " + dir + ", " + t.IDExpr
	}
	st.orderBy = order
	return st
}

// resolveSort falls back to the table default for unknown or non-sortable keys.
func resolveSort(t *Table, sort string) (key string, desc bool) {
	parse := func(s string) (string, bool) {
		if strings.HasPrefix(s, "-") {
			return s[1:], true
		}
		return s, false
	}
	if sort != "" {
		k, d := parse(sort)
		if c, ok := t.column(k); ok && c.Sortable {
			return k, d
		}
	}
	return parse(t.DefaultSort)
}

func (st statement) whereSQL() string {
	if len(st.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(st.where, " AND ")
}

func (e *Engine) selectList(t *Table) string {
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, t.IDExpr)
	for _, c := range t.Columns {
		cols = append(cols, c.Expr)
	}
	return strings.Join(cols, ", ")
}

// Run returns one page of t for q.
func (e *Engine) Run(ctx context.Context, t *Table, q Query) (*Result, error) {
	st := e.build(t, q, nil)

	var total int
	countSQL := `SELECT COUNT(*) FROM ` + t.From + st.whereSQL()
	if err := e.db.QueryRowContext(ctx, e.db.Rebind(countSQL), st.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", t.Name, err)
	}

	perPage := q.PerPage
	if !containsInt(t.perPageOptions(), perPage) {
		perPage = t.defaultPerPage()
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	pageSQL := `SELECT ` + e.selectList(t) + ` FROM ` + t.From + st.whereSQL() +
		` ORDER BY ` + st.orderBy + ` LIMIT ? OFFSET ?`
	args := append(append([]any{}, st.args...), perPage, (page-1)*perPage)
	rows, err := e.query(ctx, t, pageSQL, args)
	if err != nil {
		return nil, err
	}
	return newResult(t, q, rows, total, page, perPage), nil
}

// All returns every row matching q's search and filters (no pagination), limited to
// q.Selected when the table's export allows it and ids are given.
func (e *Engine) All(ctx context.Context, t *Table, q Query) ([]Row, error) {
	var sel []string
	if t.Export != nil && t.Export.LimitToSelectedRows {
		sel = q.Selected
	}
	if t.Export != nil && !t.Export.LimitToFilteredRows {
		q = Query{Sort: q.Sort}
	}
	st := e.build(t, q, sel)
	sqlText := `SELECT ` + e.selectList(t) + ` FROM ` + t.From + st.whereSQL() + ` ORDER BY ` + st.orderBy
	return e.query(ctx, t, sqlText, st.args)
}

func (e *Engine) query(ctx context.Context, t *Table, sqlText string, args []any) ([]Row, error) {
	rows, err := e.db.QueryContext(ctx, e.db.Rebind(sqlText), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.Name, err)
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		raw := make([]any, len(t.Columns)+1)
		dest := make([]any, len(raw))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", t.Name, err)
		}
		out = append(out, renderRow(t, raw))
	}
	return out, rows.Err()
}

func renderRow(t *Table, raw []any) Row {
	id := fmt.Sprint(normalize(raw[0]))
	row := Row{
		ID:      id,
		Values:  make(map[string]any, len(t.Columns)),
		Display: make(map[string]string, len(t.Columns)),
		Actions: make([]RowAction, 0, len(t.Actions)),
	}
	for i, c := range t.Columns {
		v, text := renderValue(c, raw[i+1])
		row.Values[c.Key] = v
		row.Display[c.Key] = text
	}
	for _, a := range t.Actions {
		ra := RowAction{Kind: a.Kind, Label: a.Label, Confirm: a.Confirm, Danger: a.Danger, Method: "GET"}
		switch a.Kind {
		case ActionView:
			ra.URL = t.Path + "/" + id
		case ActionEdit:
			ra.URL = t.Path + "/" + id + "/edit"
		case ActionDelete:
			ra.URL = t.Path + "/" + id
			ra.Method = "DELETE"
		}
		row.Actions = append(row.Actions, ra)
	}
	return row
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// renderValue converts a scanned value to its JSON value and display text by column type.
func renderValue(c Column, v any) (any, string) {
	v = normalize(v)
	if v == nil {
		return nil, ""
	}
	switch c.Type {
	case ColumnBoolean:
		b := toBool(v)
		trueLabel, falseLabel := c.TrueLabel, c.FalseLabel
		if trueLabel == "" {
			trueLabel = "Yes"
		}
		if falseLabel == "" {
			falseLabel = "No"
		}
		if b {
			return true, trueLabel
		}
		return false, falseLabel
	case ColumnDate:
		if d, ok := toDate(v); ok {
			return d.String(), d.String()
		}
		return v, fmt.Sprint(v)
	case ColumnNumeric:
		switch n := v.(type) {
		case int64:
			return n, strconv.FormatInt(n, 10)
		case float64:
			return n, strconv.FormatFloat(n, 'f', -1, 64)
		case string:
			if i, err := strconv.ParseInt(n, 10, 64); err == nil {
				return i, n
			}
		}
		return v, fmt.Sprint(v)
	default:
		if t, ok := v.(time.Time); ok {
			s := t.UTC().Format(time.RFC3339)
			return s, s
		}
		return v, fmt.Sprint(v)
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case string:
		p, _ := parseBool(b)
		return p
	}
	return false
}

func toDate(v any) (domain.Date, bool) {
	switch x := v.(type) {
	case time.Time:
		return domain.NewDate(x.UTC()), true
	case string:
		if d, err := domain.ParseDate(x); err == nil {
			return d, true
		}
		if len(x) >= 10 {
			if d, err := domain.ParseDate(x[:10]); err == nil {
				return d, true
			}
		}
	}
	return domain.Date{}, false
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
