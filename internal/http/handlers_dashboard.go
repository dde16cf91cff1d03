package httpx

import (
	"net/http"

	"github.com/sigmaport/prodmon-ui/internal/ports"
	"github.com/sigmaport/prodmon-ui/internal/service"
)

// DashboardHandlers serves the read-only dashboard views.
type DashboardHandlers struct {
	Svc *service.DashboardService
	errorResponder
}

// Units lists units annotated with can_manage.
// GET /api/units.
func (h *DashboardHandlers) Units(w http.ResponseWriter, r *http.Request) {
	units, err := h.Svc.Units(r.Context())
	if err != nil {
		h.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"units": units})
}

// Dashboard serves one unit-month dashboard with its daily chart.
// GET /api/dashboard/{module}/{unitId}/{year}/{month}.
func (h *DashboardHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	module, ok := pathModule(w, r)
	if !ok {
		return
	}
	unitID, ok := pathInt(w, r, "unitId")
	if !ok {
		return
	}
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}
	month, ok := pathInt(w, r, "month")
	if !ok {
		return
	}

	view, err := h.Svc.Dashboard(r.Context(), ports.DashboardQuery{Module: module, UnitID: unitID, Year: year, Month: month})
	if err != nil {
		h.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// Release serves a module's yearly release chart.
// GET /api/rilis/{module}/{year}.
func (h *DashboardHandlers) Release(w http.ResponseWriter, r *http.Request) {
	module, ok := pathModule(w, r)
	if !ok {
		return
	}
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}

	chart, err := h.Svc.Release(r.Context(), module, year)
	if err != nil {
		h.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, chart)
}

// Overview serves the release charts of every module.
// GET /api/overview/{year}.
func (h *DashboardHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}

	charts, err := h.Svc.Overview(r.Context(), year)
	if err != nil {
		h.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"year": year, "modules": charts})
}
