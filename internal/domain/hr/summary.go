package hr

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period is an inclusive date range
type Period struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls on a day of the period
func (p Period) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(p.From)) && !d.After(DateOnly(p.To))
}

// LeaveSummary totals approved leave days of one employee
type LeaveSummary struct {
	EmployeeID   uuid.UUID                     `json:"employee_id"`
	EmployeeNo   string                        `json:"employee_no"`
	EmployeeName string                        `json:"employee_name"`
	DaysByType   map[LeaveType]decimal.Decimal `json:"days_by_type"`
	TotalDays    decimal.Decimal               `json:"total_days"`
}

// TardinessSummary totals late arrivals of one employee
type TardinessSummary struct {
	EmployeeID     uuid.UUID       `json:"employee_id"`
	EmployeeNo     string          `json:"employee_no"`
	EmployeeName   string          `json:"employee_name"`
	LateDays       int             `json:"late_days"`
	TotalMinutes   int             `json:"total_minutes"`
	AverageMinutes decimal.Decimal `json:"average_minutes"`
}

// SummarizeLeaves totals the approved leaves whose start date falls in the
// period. Every employee passed in gets a row, zero filled, sorted by employee number.
func SummarizeLeaves(employees []Employee, leaves []Leave, period Period) []LeaveSummary {
	rows := make(map[uuid.UUID]*LeaveSummary, len(employees))
	for _, e := range employees {
		rows[e.ID] = newLeaveSummary(e)
	}
	for _, l := range leaves {
		if l.Status != LeaveStatusApproved || !period.Contains(l.StartDate) {
			continue
		}
		row, ok := rows[l.EmployeeID]
		if !ok {
			continue
		}
		row.DaysByType[l.Type] = row.DaysByType[l.Type].Add(l.Days)
		row.TotalDays = row.TotalDays.Add(l.Days)
	}

	out := make([]LeaveSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeNo < out[j].EmployeeNo })
	return out
}

func newLeaveSummary(e Employee) *LeaveSummary {
	byType := make(map[LeaveType]decimal.Decimal, len(LeaveTypes))
	for _, t := range LeaveTypes {
		byType[t] = decimal.Zero
	}
	return &LeaveSummary{
		EmployeeID:   e.ID,
		EmployeeNo:   e.EmployeeNo,
		EmployeeName: e.FullName(),
		DaysByType:   byType,
		TotalDays:    decimal.Zero,
	}
}

// SummarizeTardiness counts late days and minutes of entries in the period.
// The average is over late days only, rounded to two places.
func SummarizeTardiness(employees []Employee, entries []TardinessEntry, period Period) []TardinessSummary {
	rows := make(map[uuid.UUID]*TardinessSummary, len(employees))
	for _, e := range employees {
		rows[e.ID] = &TardinessSummary{
			EmployeeID:     e.ID,
			EmployeeNo:     e.EmployeeNo,
			EmployeeName:   e.FullName(),
			AverageMinutes: decimal.Zero,
		}
	}
	for _, t := range entries {
		if !t.IsLate() || !period.Contains(t.Date) {
			continue
		}
		row, ok := rows[t.EmployeeID]
		if !ok {
			continue
		}
		row.LateDays++
		row.TotalMinutes += t.MinutesLate
	}

	out := make([]TardinessSummary, 0, len(rows))
	for _, r := range rows {
		if r.LateDays > 0 {
			r.AverageMinutes = decimal.NewFromInt(int64(r.TotalMinutes)).
				Div(decimal.NewFromInt(int64(r.LateDays))).Round(2)
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeNo < out[j].EmployeeNo })
	return out
}
