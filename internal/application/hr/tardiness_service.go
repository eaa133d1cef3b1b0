package hr

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var errTardinessNotFound = shared.NewDomainError("TARDINESS_NOT_FOUND", "Attendance record not found")

// TardinessService records daily arrivals against each employee's shift
type TardinessService struct {
	tardinessRepo hr.TardinessRepository
	employeeRepo  hr.EmployeeRepository
	shiftRepo     hr.ShiftScheduleRepository
	publisher     shared.EventPublisher
	logger        *zap.Logger
}

// NewTardinessService creates a new tardiness service
func NewTardinessService(
	tardinessRepo hr.TardinessRepository,
	employeeRepo hr.EmployeeRepository,
	shiftRepo hr.ShiftScheduleRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TardinessService {
	return &TardinessService{
		tardinessRepo: tardinessRepo,
		employeeRepo:  employeeRepo,
		shiftRepo:     shiftRepo,
		publisher:     publisher,
		logger:        logger,
	}
}

// Record stores the arrival of an employee. One record per employee and day.
func (s *TardinessService) Record(ctx context.Context, input RecordTardinessInput) (*TardinessDTO, error) {
	employee, err := s.employeeRepo.FindByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, missing(err, "EMPLOYEE_NOT_FOUND", "Employee not found")
	}
	shift, err := s.shiftOf(ctx, employee)
	if err != nil {
		return nil, err
	}

	exists, err := s.tardinessRepo.ExistsForDate(ctx, employee.ID, hr.DateOnly(input.ActualIn))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("TARDINESS_EXISTS",
			"Attendance of %s is already recorded for %s", employee.EmployeeNo, input.ActualIn.Format("2006-01-02"))
	}

	entry, err := hr.NewTardinessEntry(employee, shift, input.ActualIn, input.Remarks)
	if err != nil {
		return nil, err
	}
	entry.SetCreatedBy(shared.ActorFromContext(ctx).ID)
	if err := s.save(ctx, entry); err != nil {
		return nil, err
	}
	if entry.IsLate() {
		s.logger.Info("Late arrival recorded",
			zap.String("employee_id", employee.ID.String()),
			zap.Int("minutes_late", entry.MinutesLate))
	}

	dto := ToTardinessDTO(entry)
	return &dto, nil
}

// GetByID returns an attendance record
func (s *TardinessService) GetByID(ctx context.Context, id uuid.UUID) (*TardinessDTO, error) {
	entry, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToTardinessDTO(entry)
	return &dto, nil
}

// List returns a page of attendance records
func (s *TardinessService) List(ctx context.Context, input TardinessListInput) (*shared.Paginated[TardinessDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("employee_id", input.EmployeeID)
	if input.From != nil {
		filter.Filters["from"] = hr.DateOnly(*input.From)
	}
	if input.To != nil {
		filter.Filters["to"] = hr.DateOnly(*input.To)
	}
	if input.LateOnly {
		filter.Filters["late_only"] = true
	}

	list, err := s.tardinessRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list attendance records", zap.Error(err))
		return nil, err
	}
	total, err := s.tardinessRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]TardinessDTO, len(list))
	for i := range list {
		items[i] = ToTardinessDTO(&list[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Correct replaces the arrival time of a record on the same day
func (s *TardinessService) Correct(ctx context.Context, id uuid.UUID, actualIn time.Time, remarks string) (*TardinessDTO, error) {
	entry, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.FindByID(ctx, entry.EmployeeID)
	if err != nil {
		return nil, missing(err, "EMPLOYEE_NOT_FOUND", "Employee not found")
	}
	shift, err := s.shiftOf(ctx, employee)
	if err != nil {
		return nil, err
	}
	if err := entry.Correct(shift, actualIn, remarks); err != nil {
		return nil, err
	}
	if err := s.save(ctx, entry); err != nil {
		return nil, err
	}

	dto := ToTardinessDTO(entry)
	return &dto, nil
}

// Delete removes an attendance record
func (s *TardinessService) Delete(ctx context.Context, id uuid.UUID) error {
	entry, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tardinessRepo.Delete(ctx, id); err != nil {
		return err
	}
	entry.AddDomainEvent(hr.NewTardinessEvent(hr.EventTypeTardinessDeleted, entry))
	publish(ctx, s.publisher, s.logger, entry)
	return nil
}

// CountLateOn returns how many employees arrived late on day
func (s *TardinessService) CountLateOn(ctx context.Context, day time.Time) (int64, error) {
	return s.tardinessRepo.CountLateOn(ctx, hr.DateOnly(day))
}

func (s *TardinessService) shiftOf(ctx context.Context, employee *hr.Employee) (*hr.OfficeShiftSchedule, error) {
	if employee.ShiftScheduleID == nil {
		return nil, shared.NewDomainErrorf("NO_SHIFT_ASSIGNED", "Employee %s has no shift schedule", employee.EmployeeNo)
	}
	shift, err := s.shiftRepo.FindByID(ctx, *employee.ShiftScheduleID)
	if err != nil {
		return nil, missing(err, "SHIFT_NOT_FOUND", "Shift schedule not found")
	}
	return shift, nil
}

func (s *TardinessService) find(ctx context.Context, id uuid.UUID) (*hr.TardinessEntry, error) {
	entry, err := s.tardinessRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errTardinessNotFound
	}
	return entry, err
}

func (s *TardinessService) save(ctx context.Context, entry *hr.TardinessEntry) error {
	if err := s.tardinessRepo.Save(ctx, entry); err != nil {
		s.logger.Error("Failed to save attendance record", zap.String("tardiness_id", entry.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, entry)
	return nil
}
