package hr

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/organization"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var errEmployeeNotFound = shared.NewDomainError("EMPLOYEE_NOT_FOUND", "Employee not found")

// EmployeeService manages employee records. Separations are published as
// events; the clearance module opens the exit checklist from them.
type EmployeeService struct {
	employeeRepo   hr.EmployeeRepository
	leaveRepo      hr.LeaveRepository
	tardinessRepo  hr.TardinessRepository
	shiftRepo      hr.ShiftScheduleRepository
	departmentRepo organization.DepartmentRepository
	positionRepo   organization.PositionRepository
	publisher      shared.EventPublisher
	logger         *zap.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo hr.EmployeeRepository,
	leaveRepo hr.LeaveRepository,
	tardinessRepo hr.TardinessRepository,
	shiftRepo hr.ShiftScheduleRepository,
	departmentRepo organization.DepartmentRepository,
	positionRepo organization.PositionRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		tardinessRepo:  tardinessRepo,
		shiftRepo:      shiftRepo,
		departmentRepo: departmentRepo,
		positionRepo:   positionRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// Create adds an employee
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*EmployeeDTO, error) {
	e, err := hr.NewEmployee(input.EmployeeNo, input.details())
	if err != nil {
		return nil, err
	}
	taken, err := s.employeeRepo.ExistsByEmployeeNo(ctx, e.EmployeeNo)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainErrorf("EMPLOYEE_NO_EXISTS", "Employee number %s already exists", e.EmployeeNo)
	}
	if err := s.checkAssignments(ctx, e); err != nil {
		return nil, err
	}
	e.SetCreatedBy(shared.ActorFromContext(ctx).ID)

	if err := s.save(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("Employee created", zap.String("employee_id", e.ID.String()), zap.String("employee_no", e.EmployeeNo))

	dto := ToEmployeeDTO(e)
	return &dto, nil
}

// GetByID returns an employee
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeDTO, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToEmployeeDTO(e)
	return &dto, nil
}

// List returns a page of employees
func (s *EmployeeService) List(ctx context.Context, input EmployeeListInput) (*shared.Paginated[EmployeeDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("department_id", input.DepartmentID).
		With("position_id", input.PositionID).
		With("status", input.Status)

	list, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list employees", zap.Error(err))
		return nil, err
	}
	total, err := s.employeeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]EmployeeDTO, len(list))
	for i := range list {
		items[i] = ToEmployeeDTO(&list[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces the editable fields of an employee
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, input EmployeeInput) (*EmployeeDTO, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Update(input.details()); err != nil {
		return nil, err
	}
	if err := s.checkAssignments(ctx, e); err != nil {
		return nil, err
	}
	if err := s.save(ctx, e); err != nil {
		return nil, err
	}

	dto := ToEmployeeDTO(e)
	return &dto, nil
}

// Resign records a resignation effective on date
func (s *EmployeeService) Resign(ctx context.Context, id uuid.UUID, date time.Time) (*EmployeeDTO, error) {
	return s.separate(ctx, id, date, (*hr.Employee).Resign, "Resign")
}

// Terminate records a termination effective on date
func (s *EmployeeService) Terminate(ctx context.Context, id uuid.UUID, date time.Time) (*EmployeeDTO, error) {
	return s.separate(ctx, id, date, (*hr.Employee).Terminate, "Terminate")
}

func (s *EmployeeService) separate(ctx context.Context, id uuid.UUID, date time.Time, apply func(*hr.Employee, time.Time) error, method string) (dto *EmployeeDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "employee", method, telemetry.AttrEntityID.String(id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(e, date); err != nil {
		return nil, err
	}
	if err := s.save(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("Employee separated",
		zap.String("employee_id", id.String()),
		zap.String("status", string(e.Status)),
		zap.Time("effective", *e.SeparatedAt))

	out := ToEmployeeDTO(e)
	return &out, nil
}

// Delete removes an employee with no leave or attendance history
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	filter := shared.Filter{Filters: map[string]any{"employee_id": id.String()}}
	leaves, err := s.leaveRepo.Count(ctx, filter)
	if err != nil {
		return err
	}
	records, err := s.tardinessRepo.Count(ctx, filter)
	if err != nil {
		return err
	}
	if leaves+records > 0 {
		return shared.NewDomainError("EMPLOYEE_HAS_RECORDS", "Employee has leave or attendance records; separate the employee instead")
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	e.AddDomainEvent(hr.NewEmployeeEvent(hr.EventTypeEmployeeDeleted, e))
	publish(ctx, s.publisher, s.logger, e)
	return nil
}

// checkAssignments verifies that the department, position and shift exist
func (s *EmployeeService) checkAssignments(ctx context.Context, e *hr.Employee) error {
	if e.DepartmentID != nil {
		if _, err := s.departmentRepo.FindByID(ctx, *e.DepartmentID); err != nil {
			return missing(err, "DEPARTMENT_NOT_FOUND", "Department not found")
		}
	}
	if e.PositionID != nil {
		pos, err := s.positionRepo.FindByID(ctx, *e.PositionID)
		if err != nil {
			return missing(err, "POSITION_NOT_FOUND", "Position not found")
		}
		if e.DepartmentID != nil && pos.DepartmentID != *e.DepartmentID {
			return shared.NewDomainError("POSITION_DEPARTMENT_MISMATCH", "Position belongs to another department")
		}
	}
	if e.ShiftScheduleID != nil {
		shift, err := s.shiftRepo.FindByID(ctx, *e.ShiftScheduleID)
		if err != nil {
			return missing(err, "SHIFT_NOT_FOUND", "Shift schedule not found")
		}
		if !shift.Active {
			return shared.NewDomainError("SHIFT_INACTIVE", "Shift schedule is inactive")
		}
	}
	return nil
}

func (s *EmployeeService) find(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	e, err := s.employeeRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errEmployeeNotFound
	}
	return e, err
}

func (s *EmployeeService) save(ctx context.Context, e *hr.Employee) error {
	if err := s.employeeRepo.Save(ctx, e); err != nil {
		s.logger.Error("Failed to save employee", zap.String("employee_id", e.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, e)
	return nil
}

// missing maps a not-found lookup to a coded domain error
func missing(err error, code, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(code, message)
	}
	return err
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.AggregateRoot) {
	if err := shared.PublishAndClear(ctx, publisher, aggregate); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.String("aggregate_id", aggregate.GetID().String()),
			zap.Error(err))
	}
}
