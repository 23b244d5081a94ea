package httpapi

import (
	"net/http"

	"homecare-admin/internal/service"
	"homecare-admin/internal/store"

	"go.uber.org/zap"
)

// AssignmentHandler service ↔ caregiver 分配
type AssignmentHandler struct {
	responder
	services *service.CareServiceService
}

func NewAssignmentHandler(services *service.CareServiceService, flash *store.FlashStore, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{responder: responder{flash: flash, logger: logger}, services: services}
}

func servicePath(id string) string { return "/services/" + id }

// Assign POST /services/{id}/caregivers {caregiver_id, assigned_hours}
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	id := r.PathValue("id")
	a, err := h.services.AssignCaregiver(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err, in)
		return
	}
	h.redirect(w, r, servicePath(id), "Caregiver assigned successfully.", MutationResponse{ID: a.CaregiverID, Record: a})
}

// UpdateHours PUT /services/{id}/caregivers/{caregiverID} {assigned_hours}
func (h *AssignmentHandler) UpdateHours(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	id := r.PathValue("id")
	a, err := h.services.UpdateAssignment(r.Context(), id, r.PathValue("caregiverID"), in)
	if err != nil {
		h.writeError(w, r, err, in)
		return
	}
	h.redirect(w, r, servicePath(id), "Assignment updated successfully.", MutationResponse{ID: a.CaregiverID, Record: a})
}

func (h *AssignmentHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	caregiverID := r.PathValue("caregiverID")
	if err := h.services.UnassignCaregiver(r.Context(), id, caregiverID); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.redirect(w, r, servicePath(id), "Caregiver removed successfully.", MutationResponse{ID: caregiverID})
}
