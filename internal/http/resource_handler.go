package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"homecare-admin/internal/listview"
	"homecare-admin/internal/service"
	"homecare-admin/internal/store"

	"go.uber.org/zap"
)

// Resource is the CRUD surface a ResourceHandler drives.
type Resource interface {
	Get(ctx context.Context, id string) (any, error)
	Create(ctx context.Context, in service.Input) (record any, id string, err error)
	Update(ctx context.Context, id string, in service.Input) (any, error)
	Delete(ctx context.Context, id string) error
	// FormOptions returns select options for create/edit; nil when the form has none.
	FormOptions(ctx context.Context) (*service.FormOptions, error)
}

// IndexResponse 列表页
type IndexResponse struct {
	Table *listview.Result `json:"table"`
	Flash *store.Flash     `json:"flash"`
}

// FormResponse create / edit 页面
type FormResponse struct {
	Record  any                  `json:"record,omitempty"`
	Options *service.FormOptions `json:"options,omitempty"`
}

// ResourceHandler 一个资源的全部路由：index、create、store、export、show、edit、update、destroy
type ResourceHandler struct {
	responder
	Name     string // 资源名，同时是路由前缀和列表表名，如 case-managers
	Entity   string // 提示文案中的实体名，如 Case Manager
	resource Resource
	lists    *service.ListService
}

func NewResourceHandler(name, entity string, res Resource, lists *service.ListService, flash *store.FlashStore, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		responder: responder{flash: flash, logger: logger},
		Name:      name,
		Entity:    entity,
		resource:  res,
		lists:     lists,
	}
}

func (h *ResourceHandler) path() string { return "/" + h.Name }

func (h *ResourceHandler) notice(verb string) string {
	return fmt.Sprintf("%s %s successfully.", h.Entity, verb)
}

func (h *ResourceHandler) Index(w http.ResponseWriter, r *http.Request) {
	res, err := h.lists.List(r.Context(), h.Name, listview.ParseQuery(r.URL.Query()))
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, Ok(IndexResponse{Table: res, Flash: h.popFlash(r)}))
}

func (h *ResourceHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	opts, err := h.resource.FormOptions(r.Context())
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, Ok(FormResponse{Options: opts}))
}

func (h *ResourceHandler) Store(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	record, id, err := h.resource.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, in)
		return
	}
	h.redirect(w, r, h.path(), h.notice("created"), MutationResponse{ID: id, Record: record})
}

// Export 导出当前搜索/过滤结果（selected 时仅导出选中行）
func (h *ResourceHandler) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.lists.Export(r.Context(), h.Name, listview.ParseQuery(r.URL.Query()))
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

func (h *ResourceHandler) Show(w http.ResponseWriter, r *http.Request) {
	record, err := h.resource.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, Ok(record))
}

func (h *ResourceHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	record, err := h.resource.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	opts, err := h.resource.FormOptions(r.Context())
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, Ok(FormResponse{Record: record, Options: opts}))
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	id := r.PathValue("id")
	record, err := h.resource.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err, in)
		return
	}
	h.redirect(w, r, h.path(), h.notice("updated"), MutationResponse{ID: id, Record: record})
}

func (h *ResourceHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.resource.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.redirect(w, r, h.path(), h.notice("deleted"), MutationResponse{ID: id})
}
