package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/clearance"
	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/domain/property"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// WidgetStore keeps per-user widget documents
type WidgetStore interface {
	Get(ctx context.Context, userID uuid.UUID, name string) (json.RawMessage, error)
	Put(ctx context.Context, userID uuid.UUID, name string, doc json.RawMessage) error
}

// PropertyCounts is the property card of the dashboard
type PropertyCounts struct {
	Owners     int64            `json:"owners"`
	Properties int64            `json:"properties"`
	Units      map[string]int64 `json:"units"`
}

// FinanceCounts is the voucher card of the dashboard
type FinanceCounts struct {
	ActiveVoucherSeries int64 `json:"active_voucher_series"`
}

// HRCounts is the staff card of the dashboard
type HRCounts struct {
	PendingLeaves  int64  `json:"pending_leaves"`
	TardyToday     int64  `json:"tardy_today"`
	OpenClearances *int64 `json:"open_clearances,omitempty"`
}

// Summary holds the cards visible to one role. A nil card is hidden.
type Summary struct {
	Role        string          `json:"role"`
	GeneratedAt time.Time       `json:"generated_at"`
	Property    *PropertyCounts `json:"property,omitempty"`
	Finance     *FinanceCounts  `json:"finance,omitempty"`
	HR          *HRCounts       `json:"hr,omitempty"`
}

// Repositories groups the read sources of the dashboard
type Repositories struct {
	Owners        property.OwnerRepository
	Properties    property.PropertyRepository
	Units         property.UnitRepository
	VoucherSeries finance.VoucherSeriesRepository
	Leaves        hr.LeaveRepository
	Tardiness     hr.TardinessRepository
	Clearances    clearance.ClearanceRepository
}

// DashboardService serves the landing page counts and widget state
type DashboardService struct {
	repos    Repositories
	widgets  WidgetStore
	location *time.Location
	logger   *zap.Logger
}

// NewDashboardService creates a new dashboard service.
// location decides which calendar day counts as today; nil uses UTC.
func NewDashboardService(repos Repositories, widgets WidgetStore, location *time.Location, logger *zap.Logger) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		repos:    repos,
		widgets:  widgets,
		location: location,
		logger:   logger,
	}
}

// Summary returns the counts the role may see
func (s *DashboardService) Summary(ctx context.Context, role identity.Role) (summary *Summary, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "Summary")
	defer func() { telemetry.EndSpan(span, err) }()

	summary = &Summary{Role: string(role), GeneratedAt: time.Now()}

	if role.HasPermission(identity.PermPropertyRead) {
		if summary.Property, err = s.propertyCounts(ctx); err != nil {
			return nil, err
		}
	}
	if role.HasPermission(identity.PermVoucherSeriesRead) {
		active, err := s.repos.VoucherSeries.Count(ctx, statusFilter(string(finance.VoucherSeriesStatusActive)))
		if err != nil {
			return nil, err
		}
		summary.Finance = &FinanceCounts{ActiveVoucherSeries: active}
	}
	if role.HasPermission(identity.PermLeaveRead) {
		if summary.HR, err = s.hrCounts(ctx, role); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func (s *DashboardService) propertyCounts(ctx context.Context) (*PropertyCounts, error) {
	owners, err := s.repos.Owners.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	properties, err := s.repos.Properties.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repos.Units.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	units := map[string]int64{
		string(property.UnitStatusVacant):      0,
		string(property.UnitStatusOccupied):    0,
		string(property.UnitStatusMaintenance): 0,
	}
	for status, n := range byStatus {
		units[string(status)] = n
	}
	return &PropertyCounts{Owners: owners, Properties: properties, Units: units}, nil
}

func (s *DashboardService) hrCounts(ctx context.Context, role identity.Role) (*HRCounts, error) {
	pending, err := s.repos.Leaves.CountByStatus(ctx, hr.LeaveStatusPending)
	if err != nil {
		return nil, err
	}
	tardy, err := s.repos.Tardiness.CountLateOn(ctx, hr.DateOnly(time.Now().In(s.location)))
	if err != nil {
		return nil, err
	}
	counts := &HRCounts{PendingLeaves: pending, TardyToday: tardy}

	if role.HasPermission(identity.PermClearanceRead) {
		open, err := s.repos.Clearances.Count(ctx, statusFilter(string(clearance.StatusOpen)))
		if err != nil {
			return nil, err
		}
		counts.OpenClearances = &open
	}
	return counts, nil
}

func statusFilter(status string) shared.Filter {
	return shared.Filter{Filters: map[string]any{"status": status}}
}

// Widget returns the caller's stored widget document
func (s *DashboardService) Widget(ctx context.Context, name string) (json.RawMessage, error) {
	actor := shared.ActorFromContext(ctx)
	if actor.IsSystem() {
		return nil, shared.ErrUnauthorized
	}
	return s.widgets.Get(ctx, actor.ID, name)
}

// SaveWidget replaces the caller's widget document
func (s *DashboardService) SaveWidget(ctx context.Context, name string, doc json.RawMessage) error {
	actor := shared.ActorFromContext(ctx)
	if actor.IsSystem() {
		return shared.ErrUnauthorized
	}
	if err := s.widgets.Put(ctx, actor.ID, name, doc); err != nil {
		return err
	}
	s.logger.Debug("Widget saved",
		zap.String("user_id", actor.ID.String()),
		zap.String("widget", name),
		zap.Int("size", len(doc)))
	return nil
}
