package httpx

import (
	"net/http"

	"github.com/sigmaport/prodmon-ui/internal/domain/model"
	"github.com/sigmaport/prodmon-ui/internal/service"
)

// ReportHandlers serves daily report (laporan) CRUD. Writes are gated by
// the service on the operator's group access to the row's unit.
type ReportHandlers struct {
	Svc *service.DashboardService
	errorResponder
}

// List passes the query string through as the backend filter.
// GET /api/laporan/{module}.
func (h *ReportHandlers) List(w http.ResponseWriter, r *http.Request) {
	module, ok := pathModule(w, r)
	if !ok {
		return
	}
	rows, err := h.Svc.ListReports(r.Context(), module, r.URL.Query())
	if err != nil {
		h.write(w, r, err)
		return
	}
	if rows == nil {
		rows = []model.Report{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"reports": rows})
}

// Get serves one report row.
// GET /api/laporan/{module}/{id}.
func (h *ReportHandlers) Get(w http.ResponseWriter, r *http.Request) {
	module, id, ok := reportPath(w, r)
	if !ok {
		return
	}
	row, err := h.Svc.GetReport(r.Context(), module, id)
	if err != nil {
		h.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, row)
}

// Create adds a report row.
// POST /api/laporan/{module}.
func (h *ReportHandlers) Create(w http.ResponseWriter, r *http.Request) {
	module, ok := pathModule(w, r)
	if !ok {
		return
	}
	var report model.Report
	if !DecodeJSON(w, r, &report) {
		return
	}
	row, err := h.Svc.CreateReport(r.Context(), module, report)
	if err != nil {
		h.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, row)
}

// Update replaces a report row.
// PUT /api/laporan/{module}/{id}.
func (h *ReportHandlers) Update(w http.ResponseWriter, r *http.Request) {
	module, id, ok := reportPath(w, r)
	if !ok {
		return
	}
	var report model.Report
	if !DecodeJSON(w, r, &report) {
		return
	}
	row, err := h.Svc.UpdateReport(r.Context(), module, id, report)
	if err != nil {
		h.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, row)
}

// Delete removes a report row.
// DELETE /api/laporan/{module}/{id}.
func (h *ReportHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	module, id, ok := reportPath(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteReport(r.Context(), module, id); err != nil {
		h.write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reportPath(w http.ResponseWriter, r *http.Request) (model.Module, int, bool) {
	module, ok := pathModule(w, r)
	if !ok {
		return "", 0, false
	}
	id, ok := pathInt(w, r, "id")
	if !ok {
		return "", 0, false
	}
	return module, id, true
}
