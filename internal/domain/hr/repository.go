package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// EmployeeRepository persists employees.
// FindAll accepts the "department_id", "position_id" and "status" filters.
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Employee, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error)
	CountByShift(ctx context.Context, shiftID uuid.UUID) (int64, error)
	ExistsByEmployeeNo(ctx context.Context, employeeNo string) (bool, error)
	Save(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeaveRepository persists leaves.
// FindAll accepts the "employee_id", "type" and "status" filters.
type LeaveRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Leave, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Leave, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindApprovedInPeriod returns approved leaves starting in [from, to]
	FindApprovedInPeriod(ctx context.Context, from, to time.Time) ([]Leave, error)
	CountByStatus(ctx context.Context, status LeaveStatus) (int64, error)
	Save(ctx context.Context, l *Leave) error
}

// ShiftScheduleRepository persists office shift schedules
type ShiftScheduleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OfficeShiftSchedule, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]OfficeShiftSchedule, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, s *OfficeShiftSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TardinessRepository persists attendance records.
// FindAll accepts the "employee_id", "from", "to" and "late_only" filters.
type TardinessRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TardinessEntry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]TardinessEntry, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindInPeriod(ctx context.Context, from, to time.Time) ([]TardinessEntry, error)
	ExistsForDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error)
	CountLateOn(ctx context.Context, date time.Time) (int64, error)
	Save(ctx context.Context, e *TardinessEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
