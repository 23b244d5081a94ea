package httpapi

import (
	"net/http"

	"homecare-admin/internal/domain"
	"homecare-admin/internal/service"
	"homecare-admin/internal/store"

	"go.uber.org/zap"
)

type HomeHandler struct {
	responder
	dashboard *service.DashboardService
	name      string
}

func NewHomeHandler(name string, dashboard *service.DashboardService, flash *store.FlashStore, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{responder: responder{flash: flash, logger: logger}, dashboard: dashboard, name: name}
}

// LandingResponse GET /
type LandingResponse struct {
	Name      string            `json:"name"`
	Resources map[string]string `json:"resources"`
}

type DashboardResponse struct {
	Stats *domain.DashboardStats `json:"stats"`
	Flash *store.Flash           `json:"flash"`
}

func (h *HomeHandler) Landing(w http.ResponseWriter, r *http.Request) {
	resources := map[string]string{"dashboard": "/dashboard"}
	for _, name := range resourceNames {
		resources[name] = "/" + name
	}
	writeJSON(w, http.StatusOK, Ok(LandingResponse{Name: h.name, Resources: resources}))
}

func (h *HomeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, Ok(DashboardResponse{Stats: stats, Flash: h.popFlash(r)}))
}
