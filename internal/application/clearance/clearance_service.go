package clearance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/clearance"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var errClearanceNotFound = shared.NewDomainError("CLEARANCE_NOT_FOUND", "Clearance not found")

// ClearanceService runs employee exit checklists
type ClearanceService struct {
	clearanceRepo clearance.ClearanceRepository
	templateRepo  clearance.TemplateRepository
	employeeRepo  hr.EmployeeRepository
	publisher     shared.EventPublisher
	metrics       *telemetry.BusinessMetrics
	logger        *zap.Logger
}

// NewClearanceService creates a new clearance service
func NewClearanceService(
	clearanceRepo clearance.ClearanceRepository,
	templateRepo clearance.TemplateRepository,
	employeeRepo hr.EmployeeRepository,
	publisher shared.EventPublisher,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *ClearanceService {
	return &ClearanceService{
		clearanceRepo: clearanceRepo,
		templateRepo:  templateRepo,
		employeeRepo:  employeeRepo,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger,
	}
}

// Start opens a clearance for an employee from their department's template.
// An employee has at most one open clearance.
func (s *ClearanceService) Start(ctx context.Context, employeeID uuid.UUID) (dto *ClearanceDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "clearance", "Start",
		telemetry.AttrEntityType.String(clearance.AggregateTypeClearance),
		telemetry.AttrEntityID.String(employeeID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError("EMPLOYEE_NOT_FOUND", "Employee not found")
	}
	if err != nil {
		return nil, err
	}
	if employee.DepartmentID == nil {
		return nil, shared.NewDomainErrorf("NO_DEPARTMENT", "Employee %s has no department", employee.EmployeeNo)
	}

	if _, err := s.clearanceRepo.FindOpenByEmployee(ctx, employeeID); err == nil {
		return nil, shared.NewDomainErrorf("CLEARANCE_EXISTS", "Employee %s already has an open clearance", employee.EmployeeNo)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	tmpl, err := s.templateRepo.FindByDepartment(ctx, *employee.DepartmentID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	c, err := clearance.NewClearance(employeeID, tmpl)
	if err != nil {
		return nil, err
	}
	c.SetCreatedBy(shared.ActorFromContext(ctx).ID)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	s.metrics.RecordClearanceStarted(ctx)
	s.logger.Info("Clearance started",
		zap.String("clearance_id", c.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.Int("tasks", len(c.Tasks)))

	out := ToClearanceDTO(c)
	return &out, nil
}

// GetByID returns a clearance
func (s *ClearanceService) GetByID(ctx context.Context, id uuid.UUID) (*ClearanceDTO, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToClearanceDTO(c)
	return &dto, nil
}

// List returns a page of clearances
func (s *ClearanceService) List(ctx context.Context, input ListInput) (*shared.Paginated[ClearanceDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, "", input.OrderBy, input.OrderDir).
		With("status", input.Status).
		With("employee_id", input.EmployeeID).
		With("department_id", input.DepartmentID)

	list, err := s.clearanceRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list clearances", zap.Error(err))
		return nil, err
	}
	total, err := s.clearanceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ClearanceDTO, len(list))
	for i := range list {
		items[i] = ToClearanceDTO(&list[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CompleteTask marks a task done. A nil at means now.
func (s *ClearanceService) CompleteTask(ctx context.Context, id, taskID uuid.UUID, at *time.Time) (*ClearanceDTO, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	when := time.Now()
	if at != nil && !at.IsZero() {
		when = *at
	}
	if err := c.CompleteTask(taskID, when); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	if c.Status == clearance.StatusCompleted {
		s.metrics.RecordClearanceCompleted(ctx)
		s.logger.Info("Clearance completed", zap.String("clearance_id", id.String()))
	}

	dto := ToClearanceDTO(c)
	return &dto, nil
}

// ReopenTask moves a completed task back to pending
func (s *ClearanceService) ReopenTask(ctx context.Context, id, taskID uuid.UUID) (*ClearanceDTO, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.ReopenTask(taskID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	dto := ToClearanceDTO(c)
	return &dto, nil
}

// Cancel closes an open clearance
func (s *ClearanceService) Cancel(ctx context.Context, id uuid.UUID) (*ClearanceDTO, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Cancel(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	dto := ToClearanceDTO(c)
	return &dto, nil
}

// CountOpen returns the number of clearances in progress
func (s *ClearanceService) CountOpen(ctx context.Context) (int64, error) {
	return s.clearanceRepo.Count(ctx, shared.Filter{
		Filters: map[string]any{"status": string(clearance.StatusOpen)},
	})
}

func (s *ClearanceService) find(ctx context.Context, id uuid.UUID) (*clearance.Clearance, error) {
	c, err := s.clearanceRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errClearanceNotFound
	}
	return c, err
}

func (s *ClearanceService) save(ctx context.Context, c *clearance.Clearance) error {
	if err := s.clearanceRepo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save clearance", zap.String("clearance_id", c.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, c)
	return nil
}
