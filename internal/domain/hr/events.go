package hr

import (
	"fmt"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

const (
	AggregateTypeEmployee  = "Employee"
	AggregateTypeLeave     = "Leave"
	AggregateTypeShift     = "OfficeShiftSchedule"
	AggregateTypeTardiness = "TardinessEntry"
)

const (
	EventTypeEmployeeCreated    = "EmployeeCreated"
	EventTypeEmployeeUpdated    = "EmployeeUpdated"
	EventTypeEmployeeResigned   = "EmployeeResigned"
	EventTypeEmployeeTerminated = "EmployeeTerminated"
	EventTypeEmployeeDeleted    = "EmployeeDeleted"
	EventTypeLeaveRequested     = "LeaveRequested"
	EventTypeLeaveApproved      = "LeaveApproved"
	EventTypeLeaveRejected      = "LeaveRejected"
	EventTypeLeaveCancelled     = "LeaveCancelled"
	EventTypeShiftCreated       = "ShiftScheduleCreated"
	EventTypeShiftUpdated       = "ShiftScheduleUpdated"
	EventTypeShiftDeleted       = "ShiftScheduleDeleted"
	EventTypeTardinessRecorded  = "TardinessRecorded"
	EventTypeTardinessCorrected = "TardinessCorrected"
	EventTypeTardinessDeleted   = "TardinessDeleted"
)

// EmployeeEvent covers employee lifecycle changes
type EmployeeEvent struct {
	shared.BaseDomainEvent
	EmployeeNo string `json:"employee_no"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	// DepartmentID is empty when the employee has no department
	DepartmentID string `json:"department_id,omitempty"`
}

// NewEmployeeEvent creates an employee event of the given type
func NewEmployeeEvent(eventType string, e *Employee) *EmployeeEvent {
	ev := &EmployeeEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeEmployee, e.ID),
		EmployeeNo:      e.EmployeeNo,
		Name:            e.FullName(),
		Status:          string(e.Status),
	}
	if e.DepartmentID != nil {
		ev.DepartmentID = e.DepartmentID.String()
	}
	return ev
}

func (e *EmployeeEvent) Describe() string {
	switch e.Type {
	case EventTypeEmployeeCreated:
		return fmt.Sprintf("Added employee %s %s", e.EmployeeNo, e.Name)
	case EventTypeEmployeeResigned:
		return fmt.Sprintf("Employee %s %s resigned", e.EmployeeNo, e.Name)
	case EventTypeEmployeeTerminated:
		return fmt.Sprintf("Employee %s %s was terminated", e.EmployeeNo, e.Name)
	case EventTypeEmployeeDeleted:
		return fmt.Sprintf("Deleted employee %s %s", e.EmployeeNo, e.Name)
	}
	return fmt.Sprintf("Updated employee %s %s", e.EmployeeNo, e.Name)
}

// LeaveEvent covers leave requests and decisions
type LeaveEvent struct {
	shared.BaseDomainEvent
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Days       string `json:"days"`
	Status     string `json:"status"`
}

// NewLeaveEvent creates a leave event of the given type
func NewLeaveEvent(eventType string, l *Leave) *LeaveEvent {
	return &LeaveEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeLeave, l.ID),
		EmployeeID:      l.EmployeeID.String(),
		LeaveType:       string(l.Type),
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		Days:            l.Days.String(),
		Status:          string(l.Status),
	}
}

func (e *LeaveEvent) Describe() string {
	if e.Type == EventTypeLeaveRequested {
		return fmt.Sprintf("Filed %s leave %s to %s (%s days)", e.LeaveType, e.StartDate, e.EndDate, e.Days)
	}
	return fmt.Sprintf("Leave %s to %s is now %s", e.StartDate, e.EndDate, e.Status)
}

// ShiftEvent covers shift schedule changes
type ShiftEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// NewShiftEvent creates a shift schedule event of the given type
func NewShiftEvent(eventType string, s *OfficeShiftSchedule) *ShiftEvent {
	return &ShiftEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeShift, s.ID),
		Name:            s.Name,
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
	}
}

func (e *ShiftEvent) Describe() string {
	switch e.Type {
	case EventTypeShiftCreated:
		return fmt.Sprintf("Created shift schedule %s (%s-%s)", e.Name, e.StartTime, e.EndTime)
	case EventTypeShiftDeleted:
		return fmt.Sprintf("Deleted shift schedule %s", e.Name)
	}
	return fmt.Sprintf("Updated shift schedule %s (%s-%s)", e.Name, e.StartTime, e.EndTime)
}

// TardinessEvent covers attendance records
type TardinessEvent struct {
	shared.BaseDomainEvent
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"`
	MinutesLate int    `json:"minutes_late"`
}

// NewTardinessEvent creates a tardiness event of the given type
func NewTardinessEvent(eventType string, t *TardinessEntry) *TardinessEvent {
	return &TardinessEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeTardiness, t.ID),
		EmployeeID:      t.EmployeeID.String(),
		Date:            t.Date.Format("2006-01-02"),
		MinutesLate:     t.MinutesLate,
	}
}

func (e *TardinessEvent) Describe() string {
	switch e.Type {
	case EventTypeTardinessDeleted:
		return fmt.Sprintf("Deleted attendance record of %s", e.Date)
	case EventTypeTardinessCorrected:
		return fmt.Sprintf("Corrected attendance of %s to %d minutes late", e.Date, e.MinutesLate)
	}
	return fmt.Sprintf("Recorded attendance of %s, %d minutes late", e.Date, e.MinutesLate)
}
