package hr

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var errShiftNotFound = shared.NewDomainError("SHIFT_NOT_FOUND", "Shift schedule not found")

// ShiftService manages office shift schedules
type ShiftService struct {
	shiftRepo    hr.ShiftScheduleRepository
	employeeRepo hr.EmployeeRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewShiftService creates a new shift schedule service
func NewShiftService(
	shiftRepo hr.ShiftScheduleRepository,
	employeeRepo hr.EmployeeRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ShiftService {
	return &ShiftService{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create adds a shift schedule
func (s *ShiftService) Create(ctx context.Context, input ShiftInput) (*ShiftDTO, error) {
	shift, err := hr.NewOfficeShiftSchedule(input.details())
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, shift.Name); err != nil {
		return nil, err
	}
	shift.SetCreatedBy(shared.ActorFromContext(ctx).ID)

	if err := s.save(ctx, shift); err != nil {
		return nil, err
	}
	s.logger.Info("Shift schedule created",
		zap.String("shift_id", shift.ID.String()),
		zap.String("name", shift.Name),
		zap.String("start", shift.StartTime.String()))

	dto := ToShiftDTO(shift)
	return &dto, nil
}

// GetByID returns a shift schedule
func (s *ShiftService) GetByID(ctx context.Context, id uuid.UUID) (*ShiftDTO, error) {
	shift, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToShiftDTO(shift)
	return &dto, nil
}

// List returns a page of shift schedules
func (s *ShiftService) List(ctx context.Context, input ShiftListInput) (*shared.Paginated[ShiftDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir)
	if input.Active != nil {
		filter.Filters["active"] = *input.Active
	}

	list, err := s.shiftRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list shift schedules", zap.Error(err))
		return nil, err
	}
	total, err := s.shiftRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ShiftDTO, len(list))
	for i := range list {
		items[i] = ToShiftDTO(&list[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces the times, grace period and work days of a schedule
func (s *ShiftService) Update(ctx context.Context, id uuid.UUID, input ShiftInput) (*ShiftDTO, error) {
	shift, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	before := shift.Name
	if err := shift.Update(input.details()); err != nil {
		return nil, err
	}
	if !strings.EqualFold(before, shift.Name) {
		if err := s.ensureUniqueName(ctx, shift.Name); err != nil {
			return nil, err
		}
	}
	if err := s.save(ctx, shift); err != nil {
		return nil, err
	}

	dto := ToShiftDTO(shift)
	return &dto, nil
}

// SetActive toggles whether the schedule can be assigned to employees
func (s *ShiftService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*ShiftDTO, error) {
	shift, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	shift.SetActive(active)
	if err := s.save(ctx, shift); err != nil {
		return nil, err
	}

	dto := ToShiftDTO(shift)
	return &dto, nil
}

// Delete removes a schedule no employee is assigned to
func (s *ShiftService) Delete(ctx context.Context, id uuid.UUID) error {
	shift, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	assigned, err := s.employeeRepo.CountByShift(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return shared.NewDomainErrorf("SHIFT_IN_USE", "%d employees are assigned to this schedule", assigned)
	}
	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return err
	}
	shift.AddDomainEvent(hr.NewShiftEvent(hr.EventTypeShiftDeleted, shift))
	publish(ctx, s.publisher, s.logger, shift)
	return nil
}

func (s *ShiftService) ensureUniqueName(ctx context.Context, name string) error {
	exists, err := s.shiftRepo.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainErrorf("SHIFT_NAME_EXISTS", "Shift schedule %q already exists", name)
	}
	return nil
}

func (s *ShiftService) find(ctx context.Context, id uuid.UUID) (*hr.OfficeShiftSchedule, error) {
	shift, err := s.shiftRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errShiftNotFound
	}
	return shift, err
}

func (s *ShiftService) save(ctx context.Context, shift *hr.OfficeShiftSchedule) error {
	if err := s.shiftRepo.Save(ctx, shift); err != nil {
		s.logger.Error("Failed to save shift schedule", zap.String("shift_id", shift.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, shift)
	return nil
}
