package httpapi

import (
	"errors"
	"net/http"

	"homecare-admin/internal/domain"
	"homecare-admin/internal/service"
	"homecare-admin/internal/store"

	"go.uber.org/zap"
)

// ValidationResponse 422 响应体：字段错误与提交的原值
type ValidationResponse struct {
	Errors map[string][]string `json:"errors"`
	Old    service.Input       `json:"old"`
}

// MutationResponse 写操作成功后的响应（配合 303 Location）
type MutationResponse struct {
	Redirect string `json:"redirect"`
	Notice   string `json:"notice"`
	ID       string `json:"id,omitempty"`
	Record   any    `json:"record,omitempty"`
}

// responder 共享的错误映射与重定向
type responder struct {
	flash  *store.FlashStore
	logger *zap.Logger
}

// writeError maps validation and duplicate errors to 422, not found to 404, a bad body to 400 and anything else to 500.
func (rs responder) writeError(w http.ResponseWriter, r *http.Request, err error, old service.Input) {
	if verr, ok := service.IsValidation(err); ok {
		rs.logger.Debug("Request rejected by validation",
			zap.String("path", r.URL.Path),
			zap.Strings("fields", verr.Fields()),
		)
		if old == nil {
			old = service.Input{}
		}
		writeJSON(w, http.StatusUnprocessableEntity, FailWith(verr.Error(), ValidationResponse{Errors: verr.Errors, Old: old}))
		return
	}
	// 没有映射到字段的唯一约束冲突
	if errors.Is(err, domain.ErrDuplicate) {
		if old == nil {
			old = service.Input{}
		}
		writeJSON(w, http.StatusUnprocessableEntity, FailWith("The record already exists.", ValidationResponse{Errors: map[string][]string{}, Old: old}))
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, Fail("Not found"))
		return
	}
	var bad errBadBody
	if errors.As(err, &bad) {
		writeJSON(w, http.StatusBadRequest, Fail(bad.Error()))
		return
	}
	rs.logger.Error("Request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, Fail("Server error"))
}

// redirect stores notice as the session's flash and answers 303 See Other to location.
func (rs responder) redirect(w http.ResponseWriter, r *http.Request, location, notice string, body MutationResponse) {
	if rs.flash != nil {
		if err := rs.flash.Put(r.Context(), SessionID(r.Context()), store.Flash{Kind: store.FlashSuccess, Message: notice}); err != nil {
			rs.logger.Warn("Failed to store flash notice", zap.Error(err))
		}
	}
	body.Redirect = location
	body.Notice = notice
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusSeeOther, Ok(body))
}

// popFlash 读取并清除当前会话的提示
func (rs responder) popFlash(r *http.Request) *store.Flash {
	if rs.flash == nil {
		return nil
	}
	f, err := rs.flash.Pop(r.Context(), SessionID(r.Context()))
	if err != nil {
		rs.logger.Warn("Failed to read flash notice", zap.Error(err))
		return nil
	}
	return f
}
