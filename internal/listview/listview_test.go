package listview

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"testing"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
	"homecare-admin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "homecare.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.EnsureSchema(ctx, db))
	return repository.NewStore(db)
}

func strPtr(s string) *string { return &s }

// seedAgencies 创建 25 个 agency，每 5 个中有 1 个 inactive
func seedAgencies(t *testing.T, r *repository.Repositories) []*domain.Agency {
	t.Helper()
	var out []*domain.Agency
	for i := 1; i <= 25; i++ {
		a := &domain.Agency{
			Name:     fmt.Sprintf("Agency %02d", i),
			Email:    strPtr(fmt.Sprintf("agency%02d@example.com", i)),
			IsActive: i%5 != 0,
		}
		require.NoError(t, r.Agencies.CreateAgency(context.Background(), a))
		out = append(out, a)
	}
	return out
}

func TestParseQuery(t *testing.T) {
	v, err := url.ParseQuery("search=+care+&sort=-name&page=3&per_page=20" +
		"&filters[name][value]=acme&filters[name][clause]=starts_with&filters[state]=NY" +
		"&filters[created_at][clause]=is_set&filters[city][value]=&selected=a,b&selected=c")
	require.NoError(t, err)

	q := ParseQuery(v)
	assert.Equal(t, "care", q.Search)
	assert.Equal(t, "-name", q.Sort)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.PerPage)
	assert.Equal(t, FilterValue{Value: "acme", Clause: ClauseStartsWith}, q.Filters["name"])
	assert.Equal(t, FilterValue{Value: "NY"}, q.Filters["state"])
	assert.Equal(t, FilterValue{Clause: ClauseIsSet}, q.Filters["created_at"])
	assert.NotContains(t, q.Filters, "city")
	assert.Equal(t, []string{"a", "b", "c"}, q.Selected)

	again := ParseQuery(q.Values())
	assert.Equal(t, q, again)
}

func TestQueryTransitionsResetPage(t *testing.T) {
	q := Query{Search: "x", Page: 4, PerPage: 20, Filters: map[string]FilterValue{"name": {Value: "a"}}}

	assert.Equal(t, 1, q.WithSearch("y").Page)
	assert.Equal(t, 1, q.WithSort("email").Page)
	assert.Equal(t, 1, q.WithFilter("city", "Boston", "").Page)
	assert.Equal(t, 1, q.WithoutFilter("name").Page)
	assert.Equal(t, 1, q.WithPerPage(50).Page)
	assert.Equal(t, 2, q.WithPage(2).Page)

	// 其它条件保持不变，原值不被修改
	next := q.WithFilter("city", "Boston", "")
	assert.Equal(t, "x", next.Search)
	assert.Equal(t, 20, next.PerPage)
	assert.Len(t, next.Filters, 2)
	assert.Len(t, q.Filters, 1)
}

func TestFilterClauses(t *testing.T) {
	f := Filter{Type: FilterDate, Nullable: true}
	assert.Equal(t, []string{ClauseEquals, ClauseBefore, ClauseAfter, ClauseBetween, ClauseIsSet, ClauseIsNotSet}, f.Clauses())

	_, _, ok := Filter{Type: FilterText, Expr: "x"}.condition(database.SQLite, FilterValue{Value: "a", Clause: ClauseIsSet})
	assert.False(t, ok, "is_set is only accepted by nullable filters")

	sql, args, ok := Filter{Type: FilterText, Expr: "x"}.condition(database.SQLite, FilterValue{Value: "50%_off"})
	require.True(t, ok)
	assert.Equal(t, `unicode_lower(x) LIKE ? ESCAPE '\'`, sql)
	assert.Equal(t, []any{`%50\%\_off%`}, args)

	sql, _, ok = Filter{Type: FilterText, Expr: "x"}.condition(database.Postgres, FilterValue{Value: "a", Clause: ClauseEquals})
	require.True(t, ok)
	assert.Equal(t, "LOWER(x) = ?", sql)

	sql, args, ok = Filter{Type: FilterNumeric, Expr: "n"}.condition(database.Postgres, FilterValue{Value: "10,20", Clause: ClauseBetween})
	require.True(t, ok)
	assert.Equal(t, "n BETWEEN ? AND ?", sql)
	assert.Equal(t, []any{int64(10), int64(20)}, args)

	sql, _, ok = Filter{Type: FilterDate, Expr: "d"}.condition(database.Postgres, FilterValue{Value: "2025-01-01", Clause: ClauseBefore})
	require.True(t, ok)
	assert.Equal(t, "CAST(d AS DATE) < ?", sql)

	_, _, ok = Filter{Type: FilterDate, Expr: "d"}.condition(database.SQLite, FilterValue{Value: "not-a-date"})
	assert.False(t, ok)
}

func TestRun_DefaultPageAndLinks(t *testing.T) {
	store := setupStore(t)
	seedAgencies(t, store.Repos())
	e := NewEngine(store.DB())

	res, err := e.Run(context.Background(), AgenciesTable(), Query{})
	require.NoError(t, err)

	assert.Equal(t, 25, res.Meta.Total)
	assert.Equal(t, 10, res.Meta.PerPage)
	assert.Equal(t, 3, res.Meta.LastPage)
	assert.Equal(t, 1, res.Meta.From)
	assert.Equal(t, 10, res.Meta.To)
	require.Len(t, res.Rows, 10)
	assert.Equal(t, "Agency 01", res.Rows[0].Values["name"])
	assert.Equal(t, "replace", res.History)

	assert.Empty(t, res.Links.Prev)
	assert.Contains(t, res.Links.Next, "page=2")
	assert.Contains(t, res.Links.Last, "page=3")
	perPage, err := url.Parse(res.Links.PerPage[50])
	require.NoError(t, err)
	assert.Empty(t, perPage.Query().Get("page"))
	assert.Equal(t, "50", perPage.Query().Get("per_page"))

	// hidden aggregate columns are returned with rows but not listed
	for _, c := range res.Columns {
		assert.NotEqual(t, "services_count", c.Key)
	}
	assert.EqualValues(t, 0, res.Rows[0].Values["services_count"])

	require.Len(t, res.Rows[0].Actions, 3)
	del := res.Rows[0].Actions[2]
	assert.Equal(t, "DELETE", del.Method)
	assert.Equal(t, "/agencies/"+res.Rows[0].ID, del.URL)
	assert.Equal(t, "Are you sure you want to delete this agency?", del.Confirm.Message)

	require.NotNil(t, res.Export)
	assert.Equal(t, "/agencies/export?sort=name", res.Export.URL)
}

func TestRun_SearchFoldsNonASCIICase(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	for _, name := range []string{"Élan Care", "Øresund Home", "Plain Agency"} {
		require.NoError(t, store.Repos().Agencies.CreateAgency(ctx, &domain.Agency{Name: name, IsActive: true}))
	}
	e := NewEngine(store.DB())
	table := AgenciesTable()

	for _, search := range []string{"élan", "ÉLAN", "Élan"} {
		res, err := e.Run(ctx, table, Query{Search: search})
		require.NoError(t, err)
		require.Equal(t, 1, res.Meta.Total, search)
		assert.Equal(t, "Élan Care", res.Rows[0].Values["name"])
	}

	res, err := e.Run(ctx, table, Query{Filters: map[string]FilterValue{"name": {Value: "øRESUND", Clause: ClauseStartsWith}}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Meta.Total)
	assert.Equal(t, "Øresund Home", res.Rows[0].Values["name"])

	// email 为 NULL 的行参与搜索不报错
	res, err = e.Run(ctx, table, Query{Search: "home"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Meta.Total)
}

func TestRun_SearchSortFilterPaginate(t *testing.T) {
	store := setupStore(t)
	seedAgencies(t, store.Repos())
	e := NewEngine(store.DB())
	ctx := context.Background()
	table := AgenciesTable()

	res, err := e.Run(ctx, table, Query{Search: "AGENCY 1"})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Meta.Total)

	res, err = e.Run(ctx, table, Query{Sort: "-name", PerPage: 20, Page: 2})
	require.NoError(t, err)
	require.Len(t, res.Rows, 5)
	assert.Equal(t, "Agency 05", res.Rows[0].Values["name"])
	assert.Equal(t, 21, res.Meta.From)
	assert.Equal(t, 25, res.Meta.To)
	for _, c := range res.Columns {
		if c.Key == "name" {
			assert.Equal(t, "desc", c.Sorted)
			assert.Contains(t, c.SortURL, "sort=name")
		}
	}

	// 非法排序键回退到默认
	res, err = e.Run(ctx, table, Query{Sort: "phone"})
	require.NoError(t, err)
	assert.Equal(t, "Agency 01", res.Rows[0].Values["name"])

	res, err = e.Run(ctx, table, Query{Filters: map[string]FilterValue{"is_active": {Value: "0"}}})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Meta.Total)
	assert.Equal(t, false, res.Rows[0].Values["is_active"])
	assert.Equal(t, "Inactive", res.Rows[0].Display["is_active"])

	res, err = e.Run(ctx, table, Query{Filters: map[string]FilterValue{"email": {Value: "agency2", Clause: ClauseStartsWith}}})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Meta.Total)
	var active *FilterView
	for i := range res.Filters {
		if res.Filters[i].Key == "email" {
			active = &res.Filters[i]
		}
	}
	require.NotNil(t, active)
	assert.True(t, active.Active)
	assert.NotContains(t, active.ClearURL, "filters")

	res, err = e.Run(ctx, table, Query{Filters: map[string]FilterValue{"created_at": {Clause: ClauseIsNotSet}}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Meta.Total)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 1, res.Meta.LastPage)

	res, err = e.Run(ctx, table, Query{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 0, res.Meta.From)
}

func TestAll_ExportSelectedRows(t *testing.T) {
	store := setupStore(t)
	agencies := seedAgencies(t, store.Repos())
	e := NewEngine(store.DB())

	rows, err := e.All(context.Background(), AgenciesTable(), Query{Search: "agency"})
	require.NoError(t, err)
	assert.Len(t, rows, 25)

	rows, err = e.All(context.Background(), AgenciesTable(), Query{Selected: []string{agencies[3].ID, agencies[7].ID}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, agencies[3].ID, rows[0].ID)
	assert.Equal(t, agencies[7].ID, rows[1].ID)
}

func TestRun_ServicesAndParticipants(t *testing.T) {
	store := setupStore(t)
	r := store.Repos()
	ctx := context.Background()

	a := &domain.Agency{Name: "Care Agency", IsActive: true}
	require.NoError(t, r.Agencies.CreateAgency(ctx, a))
	dob, _ := domain.ParseDate("1950-01-01")
	p := &domain.Participant{Name: "AJ", MedicaidID: "12345", Gender: domain.GenderMale, DOB: dob, Address: "1 Main St", PrimaryPhone: "555", IsActive: false}
	require.NoError(t, r.Participants.CreateParticipant(ctx, p))

	start, _ := domain.ParseDate("2025-03-01")
	hours := []int{5, 20, 40}
	for _, h := range hours {
		h := h
		require.NoError(t, r.Services.CreateService(ctx, &domain.Service{
			ParticipantID: p.ID, AgencyID: a.ID, Type: domain.ServiceTypeHomeCare,
			WeeklyHours: &h, StartDate: start, Status: domain.ServiceStatusApproved,
		}))
	}

	e := NewEngine(store.DB())
	res, err := e.Run(ctx, ServicesTable(), Query{Filters: map[string]FilterValue{"weekly_hours": {Value: "20", Clause: ClauseGTE}}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta.Total)
	assert.Equal(t, "AJ", res.Rows[0].Values["participant.name"])
	assert.Equal(t, "Care Agency", res.Rows[0].Values["agency.name"])
	assert.Equal(t, "2025-03-01", res.Rows[0].Display["start_date"])

	res, err = e.Run(ctx, ServicesTable(), Query{Filters: map[string]FilterValue{
		"status":   {Value: "pending,expired"},
		"end_date": {Clause: ClauseIsNotSet},
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Meta.Total)

	res, err = e.Run(ctx, ServicesTable(), Query{Filters: map[string]FilterValue{"start_date": {Value: "2025-01-01,2025-06-30", Clause: ClauseBetween}}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Meta.Total)

	res, err = e.Run(ctx, ParticipantsTable(), Query{Filters: map[string]FilterValue{"is_active": {Value: "false"}}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Meta.Total)
	assert.Equal(t, "No", res.Rows[0].Display["is_active"])
	assert.Nil(t, res.Rows[0].Values["case_manager.name"])
	assert.Equal(t, "1950-01-01", res.Rows[0].Values["dob"])
}
