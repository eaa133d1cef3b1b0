package hr

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// EmployeeStatus is the employment state of an employee
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusResigned   EmployeeStatus = "resigned"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

var employeeNoPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,19}$`)

// Employee is a member of the consultancy staff
type Employee struct {
	shared.BaseAggregateRoot
	EmployeeNo      string
	FirstName       string
	LastName        string
	Email           string
	DepartmentID    *uuid.UUID
	PositionID      *uuid.UUID
	ShiftScheduleID *uuid.UUID
	HireDate        time.Time
	SeparatedAt     *time.Time
	Status          EmployeeStatus
}

// EmployeeDetails holds the editable fields of an employee
type EmployeeDetails struct {
	FirstName       string
	LastName        string
	Email           string
	DepartmentID    *uuid.UUID
	PositionID      *uuid.UUID
	ShiftScheduleID *uuid.UUID
	HireDate        time.Time
}

// NewEmployee creates an active employee
func NewEmployee(employeeNo string, details EmployeeDetails) (*Employee, error) {
	employeeNo = strings.ToUpper(strings.TrimSpace(employeeNo))
	if !employeeNoPattern.MatchString(employeeNo) {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE_NO", "employee number must be 2-20 uppercase letters, digits or '-'")
	}
	e := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeNo:        employeeNo,
		Status:            EmployeeStatusActive,
	}
	if err := e.apply(details); err != nil {
		return nil, err
	}
	e.AddDomainEvent(NewEmployeeEvent(EventTypeEmployeeCreated, e))
	return e, nil
}

// FullName returns "First Last"
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// IsActive reports whether the employee is still employed
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// Update replaces the editable fields
func (e *Employee) Update(details EmployeeDetails) error {
	if err := e.apply(details); err != nil {
		return err
	}
	e.touch()
	e.AddDomainEvent(NewEmployeeEvent(EventTypeEmployeeUpdated, e))
	return nil
}

// Resign records a voluntary separation effective on date
func (e *Employee) Resign(date time.Time) error {
	return e.separate(EmployeeStatusResigned, date, EventTypeEmployeeResigned)
}

// Terminate records an involuntary separation effective on date
func (e *Employee) Terminate(date time.Time) error {
	return e.separate(EmployeeStatusTerminated, date, EventTypeEmployeeTerminated)
}

func (e *Employee) separate(status EmployeeStatus, date time.Time, eventType string) error {
	if !e.IsActive() {
		return shared.NewDomainErrorf("INVALID_STATE", "employee is already %s", e.Status)
	}
	if date.IsZero() {
		date = time.Now()
	}
	date = DateOnly(date)
	if date.Before(e.HireDate) {
		return shared.NewDomainError("INVALID_DATE", "separation date cannot be before the hire date")
	}
	e.Status = status
	e.SeparatedAt = &date
	e.touch()
	e.AddDomainEvent(NewEmployeeEvent(eventType, e))
	return nil
}

func (e *Employee) apply(d EmployeeDetails) error {
	first := strings.Join(strings.Fields(d.FirstName), " ")
	last := strings.Join(strings.Fields(d.LastName), " ")
	if first == "" || last == "" {
		return shared.NewDomainError("INVALID_NAME", "first and last name are required")
	}
	if len(first) > 100 || len(last) > 100 {
		return shared.NewDomainError("INVALID_NAME", "names cannot exceed 100 characters")
	}
	email := strings.TrimSpace(d.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewDomainError("INVALID_EMAIL", "email is not a valid address")
		}
	}
	hire := d.HireDate
	if hire.IsZero() {
		hire = time.Now()
	}
	e.FirstName = first
	e.LastName = last
	e.Email = strings.ToLower(email)
	e.DepartmentID = nonNil(d.DepartmentID)
	e.PositionID = nonNil(d.PositionID)
	e.ShiftScheduleID = nonNil(d.ShiftScheduleID)
	e.HireDate = DateOnly(hire)
	return nil
}

func (e *Employee) touch() {
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

func nonNil(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	v := *id
	return &v
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
