package hr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// ErrNotAWorkday is returned when attendance is recorded on a rest day
var ErrNotAWorkday = shared.NewDomainError("NOT_A_WORKDAY", "the date is not a work day of the employee's shift")

// TardinessEntry records an employee's arrival on one work day
type TardinessEntry struct {
	shared.BaseAggregateRoot
	EmployeeID     uuid.UUID
	Date           time.Time
	ScheduledStart time.Time
	ActualIn       time.Time
	MinutesLate    int
	Remarks        string
}

// NewTardinessEntry computes the minutes late of actualIn against the shift
func NewTardinessEntry(employee *Employee, shift *OfficeShiftSchedule, actualIn time.Time, remarks string) (*TardinessEntry, error) {
	if employee == nil || shift == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "employee and shift are required")
	}
	if !employee.IsActive() {
		return nil, shared.NewDomainErrorf("INVALID_STATE", "employee is %s", employee.Status)
	}
	if actualIn.IsZero() {
		return nil, shared.NewDomainError("INVALID_TIME", "time in is required")
	}
	if !shift.IsWorkDay(actualIn) {
		return nil, ErrNotAWorkday
	}

	e := &TardinessEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employee.ID,
		Date:              DateOnly(actualIn),
		ScheduledStart:    shift.StartTime.On(actualIn),
		ActualIn:          actualIn,
		MinutesLate:       shift.MinutesLate(actualIn),
		Remarks:           strings.TrimSpace(remarks),
	}
	e.AddDomainEvent(NewTardinessEvent(EventTypeTardinessRecorded, e))
	return e, nil
}

// IsLate reports whether the arrival was past the grace period
func (e *TardinessEntry) IsLate() bool {
	return e.MinutesLate > 0
}

// Correct replaces the arrival time and recomputes the minutes late
func (e *TardinessEntry) Correct(shift *OfficeShiftSchedule, actualIn time.Time, remarks string) error {
	if !DateOnly(actualIn).Equal(e.Date) {
		return shared.NewDomainError("INVALID_DATE", "a correction must keep the same date")
	}
	e.ActualIn = actualIn
	e.ScheduledStart = shift.StartTime.On(actualIn)
	e.MinutesLate = shift.MinutesLate(actualIn)
	e.Remarks = strings.TrimSpace(remarks)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	e.AddDomainEvent(NewTardinessEvent(EventTypeTardinessCorrected, e))
	return nil
}
