package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for employees
type EmployeeModel struct {
	AggregateModel
	EmployeeNo      string            `gorm:"type:varchar(20);not null;uniqueIndex"`
	FirstName       string            `gorm:"type:varchar(100);not null"`
	LastName        string            `gorm:"type:varchar(100);not null;index"`
	Email           string            `gorm:"type:varchar(200)"`
	DepartmentID    *uuid.UUID        `gorm:"type:uuid;index"`
	PositionID      *uuid.UUID        `gorm:"type:uuid;index"`
	ShiftScheduleID *uuid.UUID        `gorm:"type:uuid;index"`
	HireDate        time.Time         `gorm:"type:date;not null"`
	SeparatedAt     *time.Time        `gorm:"type:date"`
	Status          hr.EmployeeStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the model to a domain Employee
func (m *EmployeeModel) ToDomain() *hr.Employee {
	return &hr.Employee{
		BaseAggregateRoot: m.aggregate(),
		EmployeeNo:        m.EmployeeNo,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		DepartmentID:      m.DepartmentID,
		PositionID:        m.PositionID,
		ShiftScheduleID:   m.ShiftScheduleID,
		HireDate:          m.HireDate,
		SeparatedAt:       m.SeparatedAt,
		Status:            m.Status,
	}
}

// EmployeeModelFromDomain creates a model from a domain Employee
func EmployeeModelFromDomain(e *hr.Employee) *EmployeeModel {
	m := &EmployeeModel{
		EmployeeNo:      e.EmployeeNo,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		Email:           e.Email,
		DepartmentID:    e.DepartmentID,
		PositionID:      e.PositionID,
		ShiftScheduleID: e.ShiftScheduleID,
		HireDate:        e.HireDate,
		SeparatedAt:     e.SeparatedAt,
		Status:          e.Status,
	}
	m.setAggregate(e.BaseAggregateRoot)
	return m
}

// LeaveModel is the persistence model for leaves
type LeaveModel struct {
	AggregateModel
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         hr.LeaveType    `gorm:"type:varchar(20);not null"`
	StartDate    time.Time       `gorm:"type:date;not null;index"`
	EndDate      time.Time       `gorm:"type:date;not null"`
	Days         decimal.Decimal `gorm:"type:decimal(6,1);not null"`
	Reason       string          `gorm:"type:text"`
	Status       hr.LeaveStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	DecidedBy    *uuid.UUID      `gorm:"type:uuid"`
	DecidedAt    *time.Time
	DecisionNote string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LeaveModel) TableName() string {
	return "leaves"
}

// ToDomain converts the model to a domain Leave
func (m *LeaveModel) ToDomain() *hr.Leave {
	return &hr.Leave{
		BaseAggregateRoot: m.aggregate(),
		EmployeeID:        m.EmployeeID,
		Type:              m.Type,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Days:              m.Days,
		Reason:            m.Reason,
		Status:            m.Status,
		DecidedBy:         m.DecidedBy,
		DecidedAt:         m.DecidedAt,
		DecisionNote:      m.DecisionNote,
	}
}

// LeaveModelFromDomain creates a model from a domain Leave
func LeaveModelFromDomain(l *hr.Leave) *LeaveModel {
	m := &LeaveModel{
		EmployeeID:   l.EmployeeID,
		Type:         l.Type,
		StartDate:    l.StartDate,
		EndDate:      l.EndDate,
		Days:         l.Days,
		Reason:       l.Reason,
		Status:       l.Status,
		DecidedBy:    l.DecidedBy,
		DecidedAt:    l.DecidedAt,
		DecisionNote: l.DecisionNote,
	}
	m.setAggregate(l.BaseAggregateRoot)
	return m
}

// ShiftScheduleModel is the persistence model for office shift schedules.
// WorkDays is a weekday bit set, bit 0 being Sunday.
type ShiftScheduleModel struct {
	AggregateModel
	Name         string `gorm:"type:varchar(100);not null;uniqueIndex"`
	StartTime    string `gorm:"type:varchar(5);not null"`
	EndTime      string `gorm:"type:varchar(5);not null"`
	GraceMinutes int    `gorm:"not null;default:0"`
	WorkDays     int    `gorm:"not null"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ShiftScheduleModel) TableName() string {
	return "shift_schedules"
}

// ToDomain converts the model to a domain OfficeShiftSchedule
func (m *ShiftScheduleModel) ToDomain() *hr.OfficeShiftSchedule {
	start, _ := hr.ParseClockTime(m.StartTime)
	end, _ := hr.ParseClockTime(m.EndTime)
	return &hr.OfficeShiftSchedule{
		BaseAggregateRoot: m.aggregate(),
		Name:              m.Name,
		StartTime:         start,
		EndTime:           end,
		GraceMinutes:      m.GraceMinutes,
		WorkDays:          hr.WorkDaysFromMask(m.WorkDays),
		Active:            m.Active,
	}
}

// ShiftScheduleModelFromDomain creates a model from a domain OfficeShiftSchedule
func ShiftScheduleModelFromDomain(s *hr.OfficeShiftSchedule) *ShiftScheduleModel {
	m := &ShiftScheduleModel{
		Name:         s.Name,
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		GraceMinutes: s.GraceMinutes,
		WorkDays:     s.WorkDayMask(),
		Active:       s.Active,
	}
	m.setAggregate(s.BaseAggregateRoot)
	return m
}

// TardinessEntryModel is the persistence model for attendance records
type TardinessEntryModel struct {
	AggregateModel
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tardiness_employee_date"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:idx_tardiness_employee_date;index"`
	ScheduledStart time.Time `gorm:"not null"`
	ActualIn       time.Time `gorm:"not null"`
	MinutesLate    int       `gorm:"not null;default:0"`
	Remarks        string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TardinessEntryModel) TableName() string {
	return "tardiness_entries"
}

// ToDomain converts the model to a domain TardinessEntry
func (m *TardinessEntryModel) ToDomain() *hr.TardinessEntry {
	return &hr.TardinessEntry{
		BaseAggregateRoot: m.aggregate(),
		EmployeeID:        m.EmployeeID,
		Date:              m.Date,
		ScheduledStart:    m.ScheduledStart,
		ActualIn:          m.ActualIn,
		MinutesLate:       m.MinutesLate,
		Remarks:           m.Remarks,
	}
}

// TardinessEntryModelFromDomain creates a model from a domain TardinessEntry
func TardinessEntryModelFromDomain(e *hr.TardinessEntry) *TardinessEntryModel {
	m := &TardinessEntryModel{
		EmployeeID:     e.EmployeeID,
		Date:           e.Date,
		ScheduledStart: e.ScheduledStart,
		ActualIn:       e.ActualIn,
		MinutesLate:    e.MinutesLate,
		Remarks:        e.Remarks,
	}
	m.setAggregate(e.BaseAggregateRoot)
	return m
}
