package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/shopspring/decimal"
)

// ListInput carries the paging and search values of a list request
type ListInput struct {
	Search   string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// EmployeeListInput filters the employee list
type EmployeeListInput struct {
	ListInput
	DepartmentID string
	PositionID   string
	Status       string
}

// EmployeeInput contains the fields of an employee form
type EmployeeInput struct {
	EmployeeNo      string
	FirstName       string
	LastName        string
	Email           string
	DepartmentID    *uuid.UUID
	PositionID      *uuid.UUID
	ShiftScheduleID *uuid.UUID
	HireDate        time.Time
}

func (in EmployeeInput) details() hr.EmployeeDetails {
	return hr.EmployeeDetails{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		DepartmentID:    in.DepartmentID,
		PositionID:      in.PositionID,
		ShiftScheduleID: in.ShiftScheduleID,
		HireDate:        in.HireDate,
	}
}

// EmployeeDTO represents an employee in responses
type EmployeeDTO struct {
	ID              uuid.UUID  `json:"id"`
	EmployeeNo      string     `json:"employee_no"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email,omitempty"`
	DepartmentID    *uuid.UUID `json:"department_id,omitempty"`
	PositionID      *uuid.UUID `json:"position_id,omitempty"`
	ShiftScheduleID *uuid.UUID `json:"shift_schedule_id,omitempty"`
	HireDate        time.Time  `json:"hire_date"`
	SeparatedAt     *time.Time `json:"separated_at,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Version         int        `json:"version"`
}

// ToEmployeeDTO converts a domain employee
func ToEmployeeDTO(e *hr.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:              e.ID,
		EmployeeNo:      e.EmployeeNo,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		FullName:        e.FullName(),
		Email:           e.Email,
		DepartmentID:    e.DepartmentID,
		PositionID:      e.PositionID,
		ShiftScheduleID: e.ShiftScheduleID,
		HireDate:        e.HireDate,
		SeparatedAt:     e.SeparatedAt,
		Status:          string(e.Status),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}

// LeaveListInput filters the leave list
type LeaveListInput struct {
	ListInput
	EmployeeID string
	Type       string
	Status     string
}

// FileLeaveInput contains the fields of a leave request
type FileLeaveInput struct {
	EmployeeID uuid.UUID
	Type       string
	StartDate  time.Time
	EndDate    time.Time
	Days       *decimal.Decimal
	Reason     string
}

// DecideLeaveInput carries the note of an approval or rejection
type DecideLeaveInput struct {
	Approve bool
	Note    string
}

// LeaveDTO represents a leave in responses
type LeaveDTO struct {
	ID           uuid.UUID       `json:"id"`
	EmployeeID   uuid.UUID       `json:"employee_id"`
	Type         string          `json:"type"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Days         decimal.Decimal `json:"days"`
	Reason       string          `json:"reason,omitempty"`
	Status       string          `json:"status"`
	DecidedBy    *uuid.UUID      `json:"decided_by,omitempty"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
	DecisionNote string          `json:"decision_note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToLeaveDTO converts a domain leave
func ToLeaveDTO(l *hr.Leave) LeaveDTO {
	return LeaveDTO{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		Type:         string(l.Type),
		StartDate:    l.StartDate,
		EndDate:      l.EndDate,
		Days:         l.Days,
		Reason:       l.Reason,
		Status:       string(l.Status),
		DecidedBy:    l.DecidedBy,
		DecidedAt:    l.DecidedAt,
		DecisionNote: l.DecisionNote,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
		Version:      l.Version,
	}
}

// ShiftInput contains the fields of a shift schedule form
type ShiftInput struct {
	Name         string
	StartTime    string
	EndTime      string
	GraceMinutes int
	WorkDays     []time.Weekday
}

func (in ShiftInput) details() hr.ShiftDetails {
	return hr.ShiftDetails{
		Name:         in.Name,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		GraceMinutes: in.GraceMinutes,
		WorkDays:     in.WorkDays,
	}
}

// ShiftListInput filters the shift schedule list
type ShiftListInput struct {
	ListInput
	Active *bool
}

// ShiftDTO represents a shift schedule in responses
type ShiftDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	GraceMinutes int       `json:"grace_minutes"`
	WorkDays     []string  `json:"work_days"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// ToShiftDTO converts a domain shift schedule
func ToShiftDTO(s *hr.OfficeShiftSchedule) ShiftDTO {
	days := make([]string, len(s.WorkDays))
	for i, d := range s.WorkDays {
		days[i] = d.String()
	}
	return ShiftDTO{
		ID:           s.ID,
		Name:         s.Name,
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		GraceMinutes: s.GraceMinutes,
		WorkDays:     days,
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		Version:      s.Version,
	}
}

// TardinessListInput filters the attendance list
type TardinessListInput struct {
	ListInput
	EmployeeID string
	From       *time.Time
	To         *time.Time
	LateOnly   bool
}

// RecordTardinessInput contains the fields of an attendance record
type RecordTardinessInput struct {
	EmployeeID uuid.UUID
	ActualIn   time.Time
	Remarks    string
}

// TardinessDTO represents an attendance record in responses
type TardinessDTO struct {
	ID             uuid.UUID `json:"id"`
	EmployeeID     uuid.UUID `json:"employee_id"`
	Date           time.Time `json:"date"`
	ScheduledStart time.Time `json:"scheduled_start"`
	ActualIn       time.Time `json:"actual_in"`
	MinutesLate    int       `json:"minutes_late"`
	Remarks        string    `json:"remarks,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Version        int       `json:"version"`
}

// ToTardinessDTO converts a domain tardiness entry
func ToTardinessDTO(t *hr.TardinessEntry) TardinessDTO {
	return TardinessDTO{
		ID:             t.ID,
		EmployeeID:     t.EmployeeID,
		Date:           t.Date,
		ScheduledStart: t.ScheduledStart,
		ActualIn:       t.ActualIn,
		MinutesLate:    t.MinutesLate,
		Remarks:        t.Remarks,
		CreatedAt:      t.CreatedAt,
		Version:        t.Version,
	}
}
