package httpapi

import (
	"net/http"

	"homecare-admin/internal/service"
	"homecare-admin/internal/store"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（Go 1.22 method + 通配路由）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterResourceRoutes 注册 /R 下的标准 CRUD 路由
func (r *Router) RegisterResourceRoutes(h *ResourceHandler) {
	p := h.path()
	r.Handle("GET "+p, h.Index)
	r.Handle("GET "+p+"/create", h.CreateForm)
	r.Handle("POST "+p, h.Store)
	r.Handle("GET "+p+"/export", h.Export)
	r.Handle("GET "+p+"/{id}", h.Show)
	r.Handle("GET "+p+"/{id}/edit", h.EditForm)
	r.Handle("PUT "+p+"/{id}", h.Update)
	r.Handle("PATCH "+p+"/{id}", h.Update)
	r.Handle("DELETE "+p+"/{id}", h.Destroy)
}

func (r *Router) RegisterAssignmentRoutes(h *AssignmentHandler) {
	r.Handle("POST /services/{id}/caregivers", h.Assign)
	r.Handle("PUT /services/{id}/caregivers/{caregiverID}", h.UpdateHours)
	r.Handle("PATCH /services/{id}/caregivers/{caregiverID}", h.UpdateHours)
	r.Handle("DELETE /services/{id}/caregivers/{caregiverID}", h.Unassign)
}

func (r *Router) RegisterHomeRoutes(h *HomeHandler) {
	r.Handle("GET /{$}", h.Landing)
	r.Handle("GET /dashboard", h.Dashboard)
}

var resourceNames = []string{"users", "agencies", "case-managers", "participants", "caregivers", "services"}

// NewAPI wires every route behind the session and access-log middleware.
func NewAPI(name string, svcs *service.Services, flash *store.FlashStore, logger *zap.Logger) http.Handler {
	r := NewRouter(logger)

	resources := map[string]struct {
		entity string
		res    Resource
	}{
		"users":         {"User", userResource{svcs.Users}},
		"agencies":      {"Agency", agencyResource{svcs.Agencies}},
		"case-managers": {"Case Manager", caseManagerResource{svcs.CaseManagers}},
		"participants":  {"Participant", participantResource{svcs.Participants}},
		"caregivers":    {"Caregiver", caregiverResource{svcs.Caregivers}},
		"services":      {"Service", careServiceResource{svcs.Services}},
	}
	for _, n := range resourceNames {
		res := resources[n]
		r.RegisterResourceRoutes(NewResourceHandler(n, res.entity, res.res, svcs.Lists, flash, logger))
	}
	r.RegisterAssignmentRoutes(NewAssignmentHandler(svcs.Services, flash, logger))
	r.RegisterHomeRoutes(NewHomeHandler(name, svcs.Dashboard, flash, logger))

	return AccessLog(logger, WithSession(r))
}
