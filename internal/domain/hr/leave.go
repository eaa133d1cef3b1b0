package hr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LeaveType classifies a leave request
type LeaveType string

const (
	LeaveTypeVacation  LeaveType = "vacation"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeEmergency LeaveType = "emergency"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
	LeaveTypeUnpaid    LeaveType = "unpaid"
)

// LeaveTypes lists every leave type in display order
var LeaveTypes = []LeaveType{
	LeaveTypeVacation,
	LeaveTypeSick,
	LeaveTypeEmergency,
	LeaveTypeMaternity,
	LeaveTypePaternity,
	LeaveTypeUnpaid,
}

// IsValid reports whether t is a known leave type
func (t LeaveType) IsValid() bool {
	for _, v := range LeaveTypes {
		if v == t {
			return true
		}
	}
	return false
}

// LeaveStatus is the approval state of a leave
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "pending"
	LeaveStatusApproved  LeaveStatus = "approved"
	LeaveStatusRejected  LeaveStatus = "rejected"
	LeaveStatusCancelled LeaveStatus = "cancelled"
)

// Leave is a leave of absence request
type Leave struct {
	shared.BaseAggregateRoot
	EmployeeID   uuid.UUID
	Type         LeaveType
	StartDate    time.Time
	EndDate      time.Time
	Days         decimal.Decimal
	Reason       string
	Status       LeaveStatus
	DecidedBy    *uuid.UUID
	DecidedAt    *time.Time
	DecisionNote string
}

// LeaveRequest carries the fields of a new leave
type LeaveRequest struct {
	EmployeeID uuid.UUID
	Type       LeaveType
	StartDate  time.Time
	EndDate    time.Time
	// Days overrides the inclusive calendar day count, e.g. for half days
	Days   *decimal.Decimal
	Reason string
}

// NewLeave creates a pending leave
func NewLeave(req LeaveRequest) (*Leave, error) {
	if req.EmployeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "employee is required")
	}
	if !req.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_LEAVE_TYPE", "unknown leave type")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "start and end dates are required")
	}
	start, end := DateOnly(req.StartDate), DateOnly(req.EndDate)
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_DATE", "end date cannot be before start date")
	}

	calendar := CalendarDays(start, end)
	days := decimal.NewFromInt(int64(calendar))
	if req.Days != nil {
		days = *req.Days
		if !days.IsPositive() {
			return nil, shared.NewDomainError("INVALID_DAYS", "days must be positive")
		}
		if days.GreaterThan(decimal.NewFromInt(int64(calendar))) {
			return nil, shared.NewDomainError("INVALID_DAYS", "days cannot exceed the calendar days of the period")
		}
		if !days.Mod(decimal.NewFromFloat(0.5)).IsZero() {
			return nil, shared.NewDomainError("INVALID_DAYS", "days must be a multiple of half a day")
		}
	}

	l := &Leave{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        req.EmployeeID,
		Type:              req.Type,
		StartDate:         start,
		EndDate:           end,
		Days:              days,
		Reason:            strings.TrimSpace(req.Reason),
		Status:            LeaveStatusPending,
	}
	l.AddDomainEvent(NewLeaveEvent(EventTypeLeaveRequested, l))
	return l, nil
}

// Overlaps reports whether the leave shares a day with [from, to]
func (l *Leave) Overlaps(from, to time.Time) bool {
	return !l.StartDate.After(DateOnly(to)) && !l.EndDate.Before(DateOnly(from))
}

// Approve accepts a pending leave
func (l *Leave) Approve(by uuid.UUID, note string) error {
	return l.decide(LeaveStatusApproved, by, note, EventTypeLeaveApproved)
}

// Reject declines a pending leave
func (l *Leave) Reject(by uuid.UUID, note string) error {
	return l.decide(LeaveStatusRejected, by, note, EventTypeLeaveRejected)
}

// Cancel withdraws a pending or approved leave
func (l *Leave) Cancel() error {
	if l.Status != LeaveStatusPending && l.Status != LeaveStatusApproved {
		return shared.NewDomainErrorf("INVALID_STATE", "a %s leave cannot be cancelled", l.Status)
	}
	l.Status = LeaveStatusCancelled
	l.touch()
	l.AddDomainEvent(NewLeaveEvent(EventTypeLeaveCancelled, l))
	return nil
}

func (l *Leave) decide(status LeaveStatus, by uuid.UUID, note, eventType string) error {
	if l.Status != LeaveStatusPending {
		return shared.NewDomainErrorf("INVALID_STATE", "only pending leaves can be decided, this one is %s", l.Status)
	}
	now := time.Now()
	l.Status = status
	if by != uuid.Nil {
		l.DecidedBy = &by
	}
	l.DecidedAt = &now
	l.DecisionNote = strings.TrimSpace(note)
	l.touch()
	l.AddDomainEvent(NewLeaveEvent(eventType, l))
	return nil
}

func (l *Leave) touch() {
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// CalendarDays counts the days of [start, end] inclusive
func CalendarDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
