package hr

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

const maxGraceMinutes = 120

// ClockTime is a wall clock time of day in minutes since midnight
type ClockTime int

// ParseClockTime parses "HH:MM" in 24 hour form
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, shared.NewDomainErrorf("INVALID_TIME", "time %q must be HH:MM", s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// String renders the time as HH:MM
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On returns the instant of c on the date of day, in day's location
func (c ClockTime) On(day time.Time) time.Time {
	return DateOnly(day).Add(time.Duration(c) * time.Minute)
}

// OfficeShiftSchedule is a working schedule assigned to employees
type OfficeShiftSchedule struct {
	shared.BaseAggregateRoot
	Name         string
	StartTime    ClockTime
	EndTime      ClockTime
	GraceMinutes int
	WorkDays     []time.Weekday
	Active       bool
}

// ShiftDetails holds the editable fields of a shift schedule
type ShiftDetails struct {
	Name         string
	StartTime    string
	EndTime      string
	GraceMinutes int
	WorkDays     []time.Weekday
}

// NewOfficeShiftSchedule creates an active schedule
func NewOfficeShiftSchedule(details ShiftDetails) (*OfficeShiftSchedule, error) {
	s := &OfficeShiftSchedule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Active:            true,
	}
	if err := s.apply(details); err != nil {
		return nil, err
	}
	s.AddDomainEvent(NewShiftEvent(EventTypeShiftCreated, s))
	return s, nil
}

// Update replaces the editable fields
func (s *OfficeShiftSchedule) Update(details ShiftDetails) error {
	if err := s.apply(details); err != nil {
		return err
	}
	s.touch()
	s.AddDomainEvent(NewShiftEvent(EventTypeShiftUpdated, s))
	return nil
}

// SetActive toggles whether the schedule can be assigned
func (s *OfficeShiftSchedule) SetActive(active bool) {
	if s.Active == active {
		return
	}
	s.Active = active
	s.touch()
	s.AddDomainEvent(NewShiftEvent(EventTypeShiftUpdated, s))
}

// IsWorkDay reports whether the schedule works on the weekday of day
func (s *OfficeShiftSchedule) IsWorkDay(day time.Time) bool {
	return slices.Contains(s.WorkDays, day.Weekday())
}

// MinutesLate returns the minutes between the scheduled start and actualIn.
// Arriving at or before the start plus the grace period counts as on time.
func (s *OfficeShiftSchedule) MinutesLate(actualIn time.Time) int {
	start := s.StartTime.On(actualIn)
	if !actualIn.After(start.Add(time.Duration(s.GraceMinutes) * time.Minute)) {
		return 0
	}
	return int(actualIn.Sub(start) / time.Minute)
}

// WorkDayMask encodes the work days as a bit set, bit 0 being Sunday
func (s *OfficeShiftSchedule) WorkDayMask() int {
	mask := 0
	for _, d := range s.WorkDays {
		mask |= 1 << int(d)
	}
	return mask
}

// WorkDaysFromMask decodes a bit set written by WorkDayMask
func WorkDaysFromMask(mask int) []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if mask&(1<<int(d)) != 0 {
			days = append(days, d)
		}
	}
	return days
}

func (s *OfficeShiftSchedule) apply(d ShiftDetails) error {
	name := strings.Join(strings.Fields(d.Name), " ")
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "schedule name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "schedule name cannot exceed 100 characters")
	}
	start, err := ParseClockTime(d.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClockTime(d.EndTime)
	if err != nil {
		return err
	}
	if end == start {
		return shared.NewDomainError("INVALID_TIME", "end time must differ from start time")
	}
	if d.GraceMinutes < 0 || d.GraceMinutes > maxGraceMinutes {
		return shared.NewDomainErrorf("INVALID_GRACE", "grace minutes must be between 0 and %d", maxGraceMinutes)
	}
	if len(d.WorkDays) == 0 {
		return shared.NewDomainError("INVALID_WORK_DAYS", "at least one work day is required")
	}
	days := make([]time.Weekday, 0, len(d.WorkDays))
	for _, wd := range d.WorkDays {
		if wd < time.Sunday || wd > time.Saturday {
			return shared.NewDomainError("INVALID_WORK_DAYS", "unknown weekday")
		}
		if !slices.Contains(days, wd) {
			days = append(days, wd)
		}
	}
	slices.Sort(days)

	s.Name = name
	s.StartTime = start
	s.EndTime = end
	s.GraceMinutes = d.GraceMinutes
	s.WorkDays = days
	return nil
}

func (s *OfficeShiftSchedule) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
