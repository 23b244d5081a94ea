package listview

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FilterValue 单个过滤器的当前值与子句
type FilterValue struct {
	Value  string `json:"value"`
	Clause string `json:"clause,omitempty"`
}

// Query is the list state carried in the URL.
type Query struct {
	Search   string                 `json:"search"`
	Sort     string                 `json:"sort"`
	Page     int                    `json:"page"`
	PerPage  int                    `json:"per_page"`
	Filters  map[string]FilterValue `json:"filters"`
	Selected []string               `json:"selected,omitempty"`
}

var filterParam = regexp.MustCompile(`^filters\[([^\]]+)\](?:\[(value|clause)\])?$`)

// ParseQuery reads search, sort, page, per_page, filters[k][value], filters[k][clause]
// (or the filters[k]=v shorthand) and selected (repeated or comma separated).
func ParseQuery(values url.Values) Query {
	q := Query{
		Search:  strings.TrimSpace(values.Get("search")),
		Sort:    strings.TrimSpace(values.Get("sort")),
		Page:    atoiDefault(values.Get("page"), 1),
		PerPage: atoiDefault(values.Get("per_page"), 0),
		Filters: map[string]FilterValue{},
	}
	if q.Page < 1 {
		q.Page = 1
	}

	for key, vals := range values {
		m := filterParam.FindStringSubmatch(key)
		if m == nil || len(vals) == 0 {
			continue
		}
		fv := q.Filters[m[1]]
		switch m[2] {
		case "clause":
			fv.Clause = strings.TrimSpace(vals[0])
		default:
			fv.Value = strings.TrimSpace(vals[0])
		}
		q.Filters[m[1]] = fv
	}
	for k, fv := range q.Filters {
		// is_set / is_not_set 不需要 value
		if fv.Value == "" && fv.Clause != ClauseIsSet && fv.Clause != ClauseIsNotSet {
			delete(q.Filters, k)
		}
	}

	for _, v := range values["selected"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				q.Selected = append(q.Selected, id)
			}
		}
	}
	return q
}

// Values encodes q back into URL parameters; defaults are omitted.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	for k, fv := range q.Filters {
		v.Set("filters["+k+"][value]", fv.Value)
		if fv.Clause != "" {
			v.Set("filters["+k+"][clause]", fv.Clause)
		}
	}
	if len(q.Selected) > 0 {
		v.Set("selected", strings.Join(q.Selected, ","))
	}
	return v
}

// Encode renders q as a query string with sorted keys.
func (q Query) Encode() string {
	return q.Values().Encode()
}

// URL returns path?query (or just path).
func (q Query) URL(path string) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func (q Query) clone() Query {
	out := q
	out.Filters = make(map[string]FilterValue, len(q.Filters))
	for k, v := range q.Filters {
		out.Filters[k] = v
	}
	out.Selected = append([]string(nil), q.Selected...)
	return out
}

// 修改过滤、排序、每页条数都回到第 1 页，其它条件保持不变

func (q Query) WithSearch(search string) Query {
	out := q.clone()
	out.Search = strings.TrimSpace(search)
	out.Page = 1
	return out
}

func (q Query) WithSort(sortKey string) Query {
	out := q.clone()
	out.Sort = sortKey
	out.Page = 1
	return out
}

func (q Query) WithFilter(key, value, clause string) Query {
	out := q.clone()
	out.Filters[key] = FilterValue{Value: value, Clause: clause}
	out.Page = 1
	return out
}

func (q Query) WithoutFilter(key string) Query {
	out := q.clone()
	delete(out.Filters, key)
	out.Page = 1
	return out
}

func (q Query) WithPerPage(n int) Query {
	out := q.clone()
	out.PerPage = n
	out.Page = 1
	return out
}

// WithPage is the only transition that keeps the page explicit.
func (q Query) WithPage(page int) Query {
	out := q.clone()
	if page < 1 {
		page = 1
	}
	out.Page = page
	return out
}

func (q Query) WithoutSelection() Query {
	out := q.clone()
	out.Selected = nil
	return out
}

// filterKeys returns filter keys in sorted order so generated SQL is stable.
func (q Query) filterKeys() []string {
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
