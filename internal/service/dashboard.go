package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/domain/model"
	apperrors "github.com/sigmaport/prodmon-ui/internal/errors"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

// CurrentUserSource yields the signed-in user. *SessionManager implements it.
type CurrentUserSource interface {
	CurrentUser(ctx context.Context) (domainauth.User, bool)
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	API     ports.ReportsAPI  // Required
	Session CurrentUserSource // Required
	Logger  *slog.Logger      // Optional

	// Location decides which calendar day a backend timestamp falls on.
	// Defaults to UTC.
	Location *time.Location
}

// DashboardService shapes backend data into dashboard views and applies the
// role and group checks that gate report administration.
type DashboardService struct {
	api     ports.ReportsAPI
	session CurrentUserSource
	logger  *slog.Logger
	loc     *time.Location
}

// NewDashboardService constructs a DashboardService. It panics when a
// required dependency is nil.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.API == nil {
		panic("service: DashboardService requires a reports API")
	}
	if opts.Session == nil {
		panic("service: DashboardService requires a session")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		api:     opts.API,
		session: opts.Session,
		logger:  logger.With("component", "dashboard"),
		loc:     loc,
	}
}

// UnitView is a unit annotated with whether the operator may administer it.
type UnitView struct {
	model.Unit
	CanManage bool `json:"can_manage"`
}

// Units lists units with their can_manage flag.
func (s *DashboardService) Units(ctx context.Context) ([]UnitView, error) {
	user, ok := s.session.CurrentUser(ctx)
	if !ok {
		return nil, apperrors.Unauthorized("not signed in")
	}
	units, err := s.api.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	out := make([]UnitView, len(units))
	for i, u := range units {
		out[i] = UnitView{Unit: u, CanManage: domainauth.CanAccessGroup(&user, u.Group)}
	}
	return out, nil
}

// DashboardView is one unit-month dashboard with its derived chart.
type DashboardView struct {
	Module  model.Module           `json:"module"`
	UnitID  int                    `json:"unit_id"`
	Year    int                    `json:"year"`
	Month   int                    `json:"month"`
	Summary model.DashboardSummary `json:"summary"`
	Chart   DailyChart             `json:"chart"`
}

// Dashboard fetches a unit-month dashboard.
func (s *DashboardService) Dashboard(ctx context.Context, q ports.DashboardQuery) (*DashboardView, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	summary, err := s.api.Dashboard(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("dashboard %s/%d: %w", q.Module, q.UnitID, err)
	}
	return &DashboardView{
		Module:  q.Module,
		UnitID:  q.UnitID,
		Year:    q.Year,
		Month:   q.Month,
		Summary: summary,
		Chart:   BuildDailyChart(summary.DailyReport, s.loc),
	}, nil
}

func validateQuery(q ports.DashboardQuery) error {
	if q.UnitID <= 0 {
		return apperrors.ValidationField("unitId", "unit id must be positive")
	}
	if err := validateYear(q.Year); err != nil {
		return err
	}
	if !validMonth(q.Month) {
		return apperrors.ValidationField("month", "month must be between 1 and 12")
	}
	return nil
}

func validateYear(y int) error {
	if y < 2000 || y > 2100 {
		return apperrors.ValidationField("year", "year out of range")
	}
	return nil
}

// Release builds a module's yearly release chart.
func (s *DashboardService) Release(ctx context.Context, module model.Module, year int) (*ReleaseChart, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	rows, err := s.api.Releases(ctx, module, year)
	if err != nil {
		return nil, fmt.Errorf("releases %s/%d: %w", module, year, err)
	}
	chart := BuildReleaseChart(module, year, rows)
	return &chart, nil
}

// Overview builds release charts of every module for year concurrently.
// Any module failing fails the overview.
func (s *DashboardService) Overview(ctx context.Context, year int) ([]ReleaseChart, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	modules := model.AllModules()
	charts := make([]ReleaseChart, len(modules))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range modules {
		g.Go(func() error {
			chart, err := s.Release(gctx, m, year)
			if err != nil {
				return err
			}
			charts[i] = *chart
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return charts, nil
}

// ListReports passes the filter query through to the backend.
func (s *DashboardService) ListReports(ctx context.Context, module model.Module, query url.Values) ([]model.Report, error) {
	rows, err := s.api.ListReports(ctx, module, query)
	if err != nil {
		return nil, fmt.Errorf("list %s reports: %w", module, err)
	}
	return rows, nil
}

// GetReport fetches one report row.
func (s *DashboardService) GetReport(ctx context.Context, module model.Module, id int) (model.Report, error) {
	row, err := s.api.GetReport(ctx, module, id)
	if err != nil {
		return nil, fmt.Errorf("get %s report %d: %w", module, id, err)
	}
	return row, nil
}

// CreateReport creates a report row for a unit the operator may administer.
func (s *DashboardService) CreateReport(ctx context.Context, module model.Module, report model.Report) (model.Report, error) {
	unitID, ok := report.UnitID()
	if !ok {
		return nil, apperrors.ValidationField("id_unit", "id_unit is required")
	}
	if err := s.authorizeUnit(ctx, unitID); err != nil {
		return nil, err
	}
	row, err := s.api.CreateReport(ctx, module, report)
	if err != nil {
		return nil, fmt.Errorf("create %s report: %w", module, err)
	}
	s.logger.InfoContext(ctx, "report created", "module", string(module), "unit_id", unitID)
	return row, nil
}

// UpdateReport replaces a report row. Both the stored row's unit and the new
// unit, when it changes, must be accessible.
func (s *DashboardService) UpdateReport(ctx context.Context, module model.Module, id int, report model.Report) (model.Report, error) {
	current, err := s.api.GetReport(ctx, module, id)
	if err != nil {
		return nil, fmt.Errorf("get %s report %d: %w", module, id, err)
	}
	if err := s.authorizeRow(ctx, current); err != nil {
		return nil, err
	}
	if newUnit, ok := report.UnitID(); ok {
		if oldUnit, _ := current.UnitID(); newUnit != oldUnit {
			if err := s.authorizeUnit(ctx, newUnit); err != nil {
				return nil, err
			}
		}
	}
	row, err := s.api.UpdateReport(ctx, module, id, report)
	if err != nil {
		return nil, fmt.Errorf("update %s report %d: %w", module, id, err)
	}
	s.logger.InfoContext(ctx, "report updated", "module", string(module), "id", id)
	return row, nil
}

// DeleteReport removes a report row of an accessible unit.
func (s *DashboardService) DeleteReport(ctx context.Context, module model.Module, id int) error {
	current, err := s.api.GetReport(ctx, module, id)
	if err != nil {
		return fmt.Errorf("get %s report %d: %w", module, id, err)
	}
	if err := s.authorizeRow(ctx, current); err != nil {
		return err
	}
	if err := s.api.DeleteReport(ctx, module, id); err != nil {
		return fmt.Errorf("delete %s report %d: %w", module, id, err)
	}
	s.logger.InfoContext(ctx, "report deleted", "module", string(module), "id", id)
	return nil
}

// ListTargets lists RKAP targets for a year.
func (s *DashboardService) ListTargets(ctx context.Context, year int) ([]model.Target, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	targets, err := s.api.ListTargets(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list targets %d: %w", year, err)
	}
	return targets, nil
}

// SaveTarget stores a monthly target. Admin roles only, and the unit's group
// must be accessible.
func (s *DashboardService) SaveTarget(ctx context.Context, target model.Target) (model.Target, error) {
	if err := target.Validate(); err != nil {
		return model.Target{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	user, ok := s.session.CurrentUser(ctx)
	if !ok {
		return model.Target{}, apperrors.Unauthorized("not signed in")
	}
	if !domainauth.IsAdmin(&user) {
		return model.Target{}, apperrors.Forbidden("targets can only be set by administrators")
	}
	if err := s.authorizeUnit(ctx, target.UnitID); err != nil {
		return model.Target{}, err
	}
	saved, err := s.api.SaveTarget(ctx, target)
	if err != nil {
		return model.Target{}, fmt.Errorf("save target: %w", err)
	}
	s.logger.InfoContext(ctx, "target saved", "unit_id", target.UnitID, "year", target.Year, "month", target.Month)
	return saved, nil
}

func (s *DashboardService) authorizeRow(ctx context.Context, row model.Report) error {
	unitID, ok := row.UnitID()
	if !ok {
		return apperrors.Forbidden("report has no unit")
	}
	return s.authorizeUnit(ctx, unitID)
}

// authorizeUnit resolves the unit's group and checks CanAccessGroup.
func (s *DashboardService) authorizeUnit(ctx context.Context, unitID int) error {
	user, ok := s.session.CurrentUser(ctx)
	if !ok {
		return apperrors.Unauthorized("not signed in")
	}
	units, err := s.api.ListUnits(ctx)
	if err != nil {
		return fmt.Errorf("list units: %w", err)
	}
	for _, u := range units {
		if u.ID != unitID {
			continue
		}
		if !domainauth.CanAccessGroup(&user, u.Group) {
			s.logger.WarnContext(ctx, "group access denied",
				"username", user.Username, "unit_id", unitID, "group", u.Group)
			return apperrors.Forbiddenf("no access to group %q", u.Group)
		}
		return nil
	}
	return apperrors.ValidationField("id_unit", fmt.Sprintf("unknown unit %d", unitID))
}
