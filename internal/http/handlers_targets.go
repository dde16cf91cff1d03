package httpx

import (
	"net/http"

	"github.com/sigmaport/prodmon-ui/internal/domain/model"
	"github.com/sigmaport/prodmon-ui/internal/service"
)

// TargetHandlers serves RKAP targets.
type TargetHandlers struct {
	Svc *service.DashboardService
	errorResponder
}

// List serves the targets of a year.
// GET /api/rkap/{year}.
func (h *TargetHandlers) List(w http.ResponseWriter, r *http.Request) {
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}
	targets, err := h.Svc.ListTargets(r.Context(), year)
	if err != nil {
		h.write(w, r, err)
		return
	}
	if targets == nil {
		targets = []model.Target{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"year": year, "targets": targets})
}

// Save stores one monthly target. Administrators only.
// POST /api/rkap.
func (h *TargetHandlers) Save(w http.ResponseWriter, r *http.Request) {
	var target model.Target
	if !DecodeJSON(w, r, &target) {
		return
	}
	saved, err := h.Svc.SaveTarget(r.Context(), target)
	if err != nil {
		h.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}
