package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"
	"homecare-admin/internal/export"
	"homecare-admin/internal/repository"
	"homecare-admin/internal/service"
	"homecare-admin/internal/store"
	"homecare-admin/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

func setupAPI(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "homecare.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.EnsureSchema(ctx, db))

	svcs := service.NewServices(service.Deps{
		Store:  repository.NewStore(db),
		Logger: zap.NewNop(),
		Now:    func() time.Time { return fixedNow },
	})
	flash := store.NewFlashStore(store.NewMemoryKV(), time.Minute)
	return NewAPI("homecare-admin", svcs, flash, zap.NewNop())
}

// envelope 解码 Result[T]
type envelope[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

func decode[T any](t *testing.T, body []byte) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

// client keeps the session cookie across requests like a browser would.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, target string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, target, nil)
	case url.Values:
		req = httptest.NewRequest(method, target, strings.NewReader(b.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case string:
		req = httptest.NewRequest(method, target, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		data, err := json.Marshal(b)
		require.NoError(c.t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	if cks := rec.Result().Cookies(); len(cks) > 0 {
		c.cookies = cks
	}
	return rec
}

func TestStore_RedirectsWithFlash(t *testing.T) {
	c := &client{t: t, h: setupAPI(t)}

	rec := c.do(http.MethodPost, "/agencies", map[string]any{"name": "Care Agency", "email": "care@example.com"})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/agencies", rec.Header().Get("Location"))
	require.NotEmpty(t, c.cookies)
	assert.Equal(t, SessionCookie, c.cookies[0].Name)

	created := decode[MutationResponse](t, rec.Body.Bytes())
	assert.Equal(t, ResultSuccess, created.Code)
	assert.Equal(t, "Agency created successfully.", created.Result.Notice)
	assert.NotEmpty(t, created.Result.ID)

	index := decode[struct {
		Table struct {
			Meta struct {
				Total int `json:"total"`
			} `json:"meta"`
		} `json:"table"`
		Flash *store.Flash `json:"flash"`
	}](t, c.do(http.MethodGet, "/agencies", nil).Body.Bytes())
	assert.Equal(t, 1, index.Result.Table.Meta.Total)
	require.NotNil(t, index.Result.Flash)
	assert.Equal(t, store.FlashSuccess, index.Result.Flash.Kind)
	assert.Equal(t, "Agency created successfully.", index.Result.Flash.Message)

	// flash 只显示一次
	again := decode[struct {
		Flash *store.Flash `json:"flash"`
	}](t, c.do(http.MethodGet, "/agencies", nil).Body.Bytes())
	assert.Nil(t, again.Result.Flash)
}

func TestStore_ValidationErrorKeepsOldInput(t *testing.T) {
	c := &client{t: t, h: setupAPI(t)}

	rec := c.do(http.MethodPost, "/case-managers", url.Values{"name": {""}, "email": {"not-an-email"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := decode[ValidationResponse](t, rec.Body.Bytes())
	assert.Equal(t, ResultError, env.Code)
	assert.Contains(t, env.Result.Errors, "name")
	assert.Contains(t, env.Result.Errors, "email")
	assert.Contains(t, env.Result.Errors, "agency_id")
	assert.Equal(t, "not-an-email", env.Result.Old["email"])
}

func TestNotFoundAndBadBody(t *testing.T) {
	c := &client{t: t, h: setupAPI(t)}

	for _, target := range []string{"/agencies/missing", "/participants/missing/edit", "/services/missing"} {
		rec := c.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/caregivers/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPut, "/users/missing", map[string]any{"name": "x"}).Code)

	rec := c.do(http.MethodPost, "/agencies", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ResultError, decode[any](t, rec.Body.Bytes()).Code)

	assert.Equal(t, http.StatusMethodNotAllowed, c.do(http.MethodPost, "/agencies/export", nil).Code)
}

func TestUpdateAndDestroy(t *testing.T) {
	c := &client{t: t, h: setupAPI(t)}

	created := decode[MutationResponse](t, c.do(http.MethodPost, "/caregivers", map[string]any{"name": "Carol", "available_hours": 30}).Body.Bytes())
	id := created.Result.ID

	rec := c.do(http.MethodPatch, "/caregivers/"+id, map[string]any{"name": "Carol", "available_hours": 200})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[ValidationResponse](t, rec.Body.Bytes()).Result.Errors, "available_hours")

	rec = c.do(http.MethodPut, "/caregivers/"+id, map[string]any{"name": "Carol B", "available_hours": 35})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Caregiver updated successfully.", decode[MutationResponse](t, rec.Body.Bytes()).Result.Notice)

	show := decode[map[string]any](t, c.do(http.MethodGet, "/caregivers/"+id, nil).Body.Bytes())
	assert.Equal(t, "Carol B", show.Result["name"])

	rec = c.do(http.MethodDelete, "/caregivers/"+id, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/caregivers", rec.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/caregivers/"+id, nil).Code)
}

func TestForms(t *testing.T) {
	c := &client{t: t, h: setupAPI(t)}

	a := decode[MutationResponse](t, c.do(http.MethodPost, "/agencies", map[string]any{"name": "Care Agency"}).Body.Bytes())
	c.do(http.MethodPost, "/case-managers", map[string]any{"name": "John Doe", "email": "john@example.com", "agency_id": a.Result.ID})

	form := decode[FormResponse](t, c.do(http.MethodGet, "/participants/create", nil).Body.Bytes())
	require.NotNil(t, form.Result.Options)
	require.Len(t, form.Result.Options.CaseManagers, 1)
	assert.Equal(t, "John Doe (Care Agency)", form.Result.Options.CaseManagers[0].DisplayName)
	assert.NotEmpty(t, form.Result.Options.Genders)

	agencyForm := decode[FormResponse](t, c.do(http.MethodGet, "/agencies/create", nil).Body.Bytes())
	assert.Nil(t, agencyForm.Result.Options)

	edit := decode[map[string]any](t, c.do(http.MethodGet, "/agencies/"+a.Result.ID+"/edit", nil).Body.Bytes())
	record, ok := edit.Result["record"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Care Agency", record["name"])
}

func TestExport(t *testing.T) {
	c := &client{t: t, h: setupAPI(t)}
	c.do(http.MethodPost, "/agencies", map[string]any{"name": "Care Agency"})

	rec := c.do(http.MethodGet, "/agencies/export?search=care", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="agencies-20250615-093000.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotZero(t, rec.Body.Len())
}

func TestHomeAndDashboard(t *testing.T) {
	c := &client{t: t, h: setupAPI(t)}

	landing := decode[LandingResponse](t, c.do(http.MethodGet, "/", nil).Body.Bytes())
	assert.Equal(t, "homecare-admin", landing.Result.Name)
	assert.Equal(t, "/case-managers", landing.Result.Resources["case-managers"])
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/nope", nil).Code)

	c.do(http.MethodPost, "/caregivers", map[string]any{"name": "Carol", "available_hours": 20})
	dash := decode[DashboardResponse](t, c.do(http.MethodGet, "/dashboard", nil).Body.Bytes())
	require.NotNil(t, dash.Result.Stats)
	assert.Equal(t, 1, dash.Result.Stats.Caregivers)
	require.NotNil(t, dash.Result.Flash)
	assert.Equal(t, "Caregiver created successfully.", dash.Result.Flash.Message)
}

func TestReadInput_FormArrays(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("name=A&tags[]=a&tags[]=b&dup=1&dup=2"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	in, err := readInput(req)
	require.NoError(t, err)
	assert.Equal(t, "A", in["name"])
	assert.Equal(t, []any{"a", "b"}, in["tags"])
	assert.Equal(t, []any{"1", "2"}, in["dup"])

	empty, err := readInput(httptest.NewRequest(http.MethodPost, "/x", nil))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWithSession_ReusesValidCookie(t *testing.T) {
	var seen string
	h := WithSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookies[0].Value, seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, cookies[0].Value, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.NotEqual(t, "forged", seen)
}

// conflictResource 模拟写入时数据库唯一约束冲突
type conflictResource struct{ err error }

func (r conflictResource) Get(context.Context, string) (any, error) { return nil, domain.ErrNotFound }

func (r conflictResource) Create(context.Context, service.Input) (any, string, error) {
	return nil, "", r.err
}

func (r conflictResource) Update(context.Context, string, service.Input) (any, error) {
	return nil, r.err
}

func (r conflictResource) Delete(context.Context, string) error { return nil }

func (r conflictResource) FormOptions(context.Context) (*service.FormOptions, error) { return nil, nil }

func TestStore_DuplicateIsUnprocessable(t *testing.T) {
	router := NewRouter(zap.NewNop())
	dup := fmt.Errorf("failed to create caregiver: %w: UNIQUE constraint failed", domain.ErrDuplicate)
	router.RegisterResourceRoutes(NewResourceHandler("caregivers", "Caregiver", conflictResource{err: dup}, nil, nil, zap.NewNop()))
	c := &client{t: t, h: WithSession(router)}

	rec := c.do(http.MethodPost, "/caregivers", map[string]any{"name": "Carol"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode[ValidationResponse](t, rec.Body.Bytes())
	assert.Equal(t, ResultError, env.Code)
	assert.Equal(t, "Carol", env.Result.Old["name"])

	field := conflictResource{err: validation.Taken("email")}
	router = NewRouter(zap.NewNop())
	router.RegisterResourceRoutes(NewResourceHandler("caregivers", "Caregiver", field, nil, nil, zap.NewNop()))
	c = &client{t: t, h: WithSession(router)}

	rec = c.do(http.MethodPut, "/caregivers/abc", map[string]any{"email": "carol@example.com"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []string{"The email has already been taken."}, decode[ValidationResponse](t, rec.Body.Bytes()).Result.Errors["email"])
}
