package listview

import "strings"

// ColumnType 列渲染类型
type ColumnType string

const (
	ColumnText    ColumnType = "text"
	ColumnBoolean ColumnType = "boolean"
	ColumnDate    ColumnType = "date"
	ColumnNumeric ColumnType = "numeric"
)

// Column is one projected value of a table row.
type Column struct {
	Key      string // 对外的列名，如 agency.name
	Label    string
	Type     ColumnType
	Sortable bool
	// Expr is the SQL expression selected for the column.
	Expr string
	// Hidden columns are selected and returned with rows (aggregate counts) but not listed as columns.
	Hidden bool

	TrueLabel  string
	FalseLabel string
}

// FilterType 过滤器类型
type FilterType string

const (
	FilterText    FilterType = "text"
	FilterSet     FilterType = "set"
	FilterDate    FilterType = "date"
	FilterNumeric FilterType = "numeric"
	FilterBoolean FilterType = "boolean"
)

// Option is one choice of a set filter. Arg, when set, is bound instead of Value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Arg   any    `json:"-"`
}

type Filter struct {
	Key     string
	Label   string
	Type    FilterType
	Expr    string
	Options []Option
	// Nullable enables the is_set / is_not_set clauses.
	Nullable bool
}

// ActionKind 行操作类型
type ActionKind string

const (
	ActionView   ActionKind = "view"
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
)

type Confirm struct {
	Title         string `json:"title"`
	Message       string `json:"message"`
	ConfirmButton string `json:"confirm_button"`
	CancelButton  string `json:"cancel_button"`
}

type Action struct {
	Kind    ActionKind
	Label   string
	Confirm *Confirm
	Danger  bool
}

// Export describes the bulk export of a table.
type Export struct {
	LimitToFilteredRows bool
	LimitToSelectedRows bool
}

// DefaultPerPageOptions 每页条数可选值
var DefaultPerPageOptions = []int{10, 20, 30, 40, 50}

// Table 声明式表定义：一个实体列表的列、搜索、过滤、排序、操作与导出
type Table struct {
	Name string // 资源名，如 agencies
	Path string // 资源路由，如 /agencies

	From   string // FROM 子句（可含 JOIN）
	IDExpr string
	// DefaultSort is a column key, "-" prefixed for descending.
	DefaultSort string
	// Search lists SQL expressions matched case-insensitively by the free-text search.
	Search []string

	Columns []Column
	Filters []Filter
	Actions []Action
	Export  *Export

	PerPageOptions []int
}

func (t *Table) column(key string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

func (t *Table) filter(key string) (Filter, bool) {
	for _, f := range t.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return Filter{}, false
}

func (t *Table) perPageOptions() []int {
	if len(t.PerPageOptions) > 0 {
		return t.PerPageOptions
	}
	return DefaultPerPageOptions
}

func (t *Table) defaultPerPage() int {
	return t.perPageOptions()[0]
}

// StandardActions view / edit / delete（delete 需确认）
func StandardActions(entity string) []Action {
	return []Action{
		{Kind: ActionView, Label: "View"},
		{Kind: ActionEdit, Label: "Edit"},
		{Kind: ActionDelete, Label: "Delete", Danger: true, Confirm: &Confirm{
			Title:         "Delete " + entity,
			Message:       "Are you sure you want to delete this " + strings.ToLower(entity) + "?",
			ConfirmButton: "Delete",
			CancelButton:  "Cancel",
		}},
	}
}
