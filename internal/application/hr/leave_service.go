package hr

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var errLeaveNotFound = shared.NewDomainError("LEAVE_NOT_FOUND", "Leave not found")

// LeaveService files and decides leave requests
type LeaveService struct {
	leaveRepo    hr.LeaveRepository
	employeeRepo hr.EmployeeRepository
	publisher    shared.EventPublisher
	metrics      *telemetry.BusinessMetrics
	logger       *zap.Logger
}

// NewLeaveService creates a new leave service
func NewLeaveService(
	leaveRepo hr.LeaveRepository,
	employeeRepo hr.EmployeeRepository,
	publisher shared.EventPublisher,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *LeaveService {
	return &LeaveService{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
	}
}

// File creates a pending leave request for an active employee. The dates
// must not overlap another pending or approved leave of the same employee.
func (s *LeaveService) File(ctx context.Context, input FileLeaveInput) (dto *LeaveDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "leave", "File",
		telemetry.AttrEntityID.String(input.EmployeeID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	employee, err := s.employeeRepo.FindByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, missing(err, "EMPLOYEE_NOT_FOUND", "Employee not found")
	}
	if !employee.IsActive() {
		return nil, shared.NewDomainErrorf("INVALID_STATE", "Employee is %s", employee.Status)
	}

	l, err := hr.NewLeave(hr.LeaveRequest{
		EmployeeID: input.EmployeeID,
		Type:       hr.LeaveType(strings.ToLower(strings.TrimSpace(input.Type))),
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Days:       input.Days,
		Reason:     input.Reason,
	})
	if err != nil {
		return nil, err
	}

	existing, err := s.leaveRepo.FindAll(ctx, shared.Filter{
		Filters: map[string]any{"employee_id": input.EmployeeID.String()},
	})
	if err != nil {
		return nil, err
	}
	for i := range existing {
		other := &existing[i]
		if other.Status != hr.LeaveStatusPending && other.Status != hr.LeaveStatusApproved {
			continue
		}
		if other.Overlaps(l.StartDate, l.EndDate) {
			return nil, shared.NewDomainErrorf("LEAVE_OVERLAP",
				"Leave overlaps a %s %s leave from %s", other.Status, other.Type, other.StartDate.Format("2006-01-02"))
		}
	}

	l.SetCreatedBy(shared.ActorFromContext(ctx).ID)
	if err := s.save(ctx, l); err != nil {
		return nil, err
	}
	s.metrics.RecordLeaveRequest(ctx, string(l.Type))
	s.logger.Info("Leave filed",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID.String()),
		zap.String("type", string(l.Type)),
		zap.String("days", l.Days.String()))

	out := ToLeaveDTO(l)
	return &out, nil
}

// GetByID returns a leave
func (s *LeaveService) GetByID(ctx context.Context, id uuid.UUID) (*LeaveDTO, error) {
	l, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToLeaveDTO(l)
	return &dto, nil
}

// List returns a page of leaves
func (s *LeaveService) List(ctx context.Context, input LeaveListInput) (*shared.Paginated[LeaveDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("employee_id", input.EmployeeID).
		With("type", input.Type).
		With("status", input.Status)

	list, err := s.leaveRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list leaves", zap.Error(err))
		return nil, err
	}
	total, err := s.leaveRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]LeaveDTO, len(list))
	for i := range list {
		items[i] = ToLeaveDTO(&list[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Decide approves or rejects a pending leave as the acting user
func (s *LeaveService) Decide(ctx context.Context, id uuid.UUID, input DecideLeaveInput) (*LeaveDTO, error) {
	l, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	actor := shared.ActorFromContext(ctx)
	if actor.IsSystem() {
		return nil, shared.ErrUnauthorized
	}
	if input.Approve {
		err = l.Approve(actor.ID, input.Note)
	} else {
		err = l.Reject(actor.ID, input.Note)
	}
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("Leave decided",
		zap.String("leave_id", id.String()),
		zap.String("status", string(l.Status)),
		zap.String("decided_by", actor.ID.String()))

	dto := ToLeaveDTO(l)
	return &dto, nil
}

// Cancel withdraws a pending or approved leave
func (s *LeaveService) Cancel(ctx context.Context, id uuid.UUID) (*LeaveDTO, error) {
	l, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := l.Cancel(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, l); err != nil {
		return nil, err
	}

	dto := ToLeaveDTO(l)
	return &dto, nil
}

// CountPending returns the number of leaves awaiting a decision
func (s *LeaveService) CountPending(ctx context.Context) (int64, error) {
	return s.leaveRepo.CountByStatus(ctx, hr.LeaveStatusPending)
}

func (s *LeaveService) find(ctx context.Context, id uuid.UUID) (*hr.Leave, error) {
	l, err := s.leaveRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errLeaveNotFound
	}
	return l, err
}

func (s *LeaveService) save(ctx context.Context, l *hr.Leave) error {
	if err := s.leaveRepo.Save(ctx, l); err != nil {
		s.logger.Error("Failed to save leave", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, l)
	return nil
}
