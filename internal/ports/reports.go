package ports

import (
	"context"
	"errors"
	"net/url"

	"github.com/sigmaport/prodmon-ui/internal/domain/model"
)

var (
	// ErrUnauthorized is returned when the backend answers 401 or 403.
	// Callers end the session when they see it.
	ErrUnauthorized = errors.New("backend rejected credential")
	// ErrNotFound is returned when the backend answers 404.
	ErrNotFound = errors.New("not found")
)

// DashboardQuery selects one unit-month dashboard.
type DashboardQuery struct {
	Module model.Module
	UnitID int
	Year   int
	Month  int
}

// ReportsAPI is the authenticated part of the backend REST API.
// Implementations return ErrUnauthorized on 401/403.
type ReportsAPI interface {
	ListUnits(ctx context.Context) ([]model.Unit, error)
	Dashboard(ctx context.Context, q DashboardQuery) (model.DashboardSummary, error)
	Releases(ctx context.Context, module model.Module, year int) ([]model.ReleaseRow, error)

	ListReports(ctx context.Context, module model.Module, query url.Values) ([]model.Report, error)
	GetReport(ctx context.Context, module model.Module, id int) (model.Report, error)
	CreateReport(ctx context.Context, module model.Module, report model.Report) (model.Report, error)
	UpdateReport(ctx context.Context, module model.Module, id int, report model.Report) (model.Report, error)
	DeleteReport(ctx context.Context, module model.Module, id int) error

	ListTargets(ctx context.Context, year int) ([]model.Target, error)
	SaveTarget(ctx context.Context, target model.Target) (model.Target, error)
}
