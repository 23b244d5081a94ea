package listview

import "strings"

// Result 列表页响应：列、过滤器、操作、导出、数据行、分页与链接
type Result struct {
	Name    string             `json:"name"`
	Columns []ColumnView       `json:"columns"`
	Filters []FilterView       `json:"filters"`
	Actions []ActionDescriptor `json:"actions"`
	Export  *ExportView        `json:"export"`
	Rows    []Row              `json:"rows"`
	Meta    Meta               `json:"meta"`
	State   Query              `json:"state"`
	Links   Links              `json:"links"`
	// History tells the client to replace, not push, browser history entries.
	History string `json:"history"`
}

type ColumnView struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Type     ColumnType `json:"type"`
	Sortable bool       `json:"sortable"`
	// Sorted is "asc", "desc" or "" for the active sort column.
	Sorted  string `json:"sorted,omitempty"`
	SortURL string `json:"sort_url,omitempty"`
}

type FilterView struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Type     FilterType `json:"type"`
	Clauses  []string   `json:"clauses"`
	Options  []Option   `json:"options,omitempty"`
	Nullable bool       `json:"nullable"`
	Active   bool       `json:"active"`
	Value    string     `json:"value,omitempty"`
	Clause   string     `json:"clause,omitempty"`
	// ClearURL drops this filter and returns to page 1.
	ClearURL string `json:"clear_url,omitempty"`
}

type ActionDescriptor struct {
	Kind    ActionKind `json:"kind"`
	Label   string     `json:"label"`
	Confirm *Confirm   `json:"confirm,omitempty"`
	Danger  bool       `json:"danger,omitempty"`
}

type ExportView struct {
	URL                 string `json:"url"`
	Format              string `json:"format"`
	LimitToFilteredRows bool   `json:"limit_to_filtered_rows"`
	LimitToSelectedRows bool   `json:"limit_to_selected_rows"`
}

type Meta struct {
	CurrentPage    int   `json:"current_page"`
	PerPage        int   `json:"per_page"`
	PerPageOptions []int `json:"per_page_options"`
	Total          int   `json:"total"`
	LastPage       int   `json:"last_page"`
	From           int   `json:"from"`
	To             int   `json:"to"`
}

type Links struct {
	First string `json:"first"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last"`
	// PerPage maps each page size option to a link that keeps every other criterion.
	PerPage map[int]string `json:"per_page"`
}

func newResult(t *Table, q Query, rows []Row, total, page, perPage int) *Result {
	state := q.clone()
	state.Page = page
	state.PerPage = perPage
	if state.Sort == "" {
		state.Sort = t.DefaultSort
	}

	lastPage := 1
	if total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}
	meta := Meta{
		CurrentPage:    page,
		PerPage:        perPage,
		PerPageOptions: t.perPageOptions(),
		Total:          total,
		LastPage:       lastPage,
	}
	if len(rows) > 0 {
		meta.From = (page-1)*perPage + 1
		meta.To = meta.From + len(rows) - 1
	}

	links := Links{
		First:   state.WithPage(1).URL(t.Path),
		Last:    state.WithPage(lastPage).URL(t.Path),
		PerPage: map[int]string{},
	}
	if page > 1 {
		links.Prev = state.WithPage(page - 1).URL(t.Path)
	}
	if page < lastPage {
		links.Next = state.WithPage(page + 1).URL(t.Path)
	}
	for _, n := range t.perPageOptions() {
		links.PerPage[n] = state.WithPerPage(n).URL(t.Path)
	}

	res := &Result{
		Name:    t.Name,
		Rows:    rows,
		Meta:    meta,
		State:   state,
		Links:   links,
		History: "replace",
	}

	sortKey, desc := resolveSort(t, q.Sort)
	for _, c := range t.Columns {
		if c.Hidden {
			continue
		}
		cv := ColumnView{Key: c.Key, Label: c.Label, Type: c.Type, Sortable: c.Sortable}
		if c.Sortable {
			next := c.Key
			if c.Key == sortKey {
				cv.Sorted = "asc"
				if desc {
					cv.Sorted = "desc"
				} else {
					next = "-" + c.Key
				}
			}
			cv.SortURL = state.WithSort(next).URL(t.Path)
		}
		res.Columns = append(res.Columns, cv)
	}

	for _, f := range t.Filters {
		fv := FilterView{Key: f.Key, Label: f.Label, Type: f.Type, Clauses: f.Clauses(), Options: f.Options, Nullable: f.Nullable}
		if active, ok := q.Filters[f.Key]; ok {
			fv.Active = true
			fv.Value = active.Value
			fv.Clause = active.Clause
			fv.ClearURL = state.WithoutFilter(f.Key).URL(t.Path)
		}
		res.Filters = append(res.Filters, fv)
	}

	for _, a := range t.Actions {
		res.Actions = append(res.Actions, ActionDescriptor{Kind: a.Kind, Label: a.Label, Confirm: a.Confirm, Danger: a.Danger})
	}

	if t.Export != nil {
		exportState := state.WithPage(1)
		exportState.Page = 0
		exportState.PerPage = 0
		res.Export = &ExportView{
			URL:                 exportState.URL(strings.TrimSuffix(t.Path, "/") + "/export"),
			Format:              "xlsx",
			LimitToFilteredRows: t.Export.LimitToFilteredRows,
			LimitToSelectedRows: t.Export.LimitToSelectedRows,
		}
	}
	return res
}

// VisibleColumns returns the non-hidden columns in declaration order (used by exports).
func (t *Table) VisibleColumns() []Column {
	out := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}
