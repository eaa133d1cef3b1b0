package export

import (
	"fmt"

	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const periodLayout = "Jan 2, 2006"

var titleCaser = cases.Title(language.English)

// LeaveSummaryWorkbook renders approved leave days per employee and type
func LeaveSummaryWorkbook(rows []hr.LeaveSummary, period hr.Period) ([]byte, error) {
	columns := []column{
		{header: "Employee No", width: 14},
		{header: "Employee", width: 28},
	}
	for _, lt := range hr.LeaveTypes {
		columns = append(columns, column{header: titleCaser.String(string(lt)), width: 12, kind: kindDecimal, total: true})
	}
	columns = append(columns, column{header: "Total Days", width: 12, kind: kindDecimal, total: true})

	return build("Leave Summary", "Leave summary "+periodLabel(period), columns, func(t *table) error {
		for _, r := range rows {
			values := []any{r.EmployeeNo, r.EmployeeName}
			for _, lt := range hr.LeaveTypes {
				values = append(values, r.DaysByType[lt].InexactFloat64())
			}
			values = append(values, r.TotalDays.InexactFloat64())
			if err := t.append(values...); err != nil {
				return err
			}
		}
		return nil
	})
}

// TardinessSummaryWorkbook renders late days and minutes per employee
func TardinessSummaryWorkbook(rows []hr.TardinessSummary, period hr.Period) ([]byte, error) {
	columns := []column{
		{header: "Employee No", width: 14},
		{header: "Employee", width: 28},
		{header: "Late Days", width: 12, kind: kindInt, total: true},
		{header: "Minutes Late", width: 14, kind: kindInt, total: true},
		{header: "Average Minutes", width: 16, kind: kindDecimal},
	}
	return build("Tardiness Summary", "Tardiness summary "+periodLabel(period), columns, func(t *table) error {
		for _, r := range rows {
			if err := t.append(r.EmployeeNo, r.EmployeeName, r.LateDays, r.TotalMinutes, r.AverageMinutes.InexactFloat64()); err != nil {
				return err
			}
		}
		return nil
	})
}

func build(sheet, title string, columns []column, fill func(*table) error) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	t, err := newTable(f, sheet, title, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out %s: %w", sheet, err)
	}
	if err := fill(t); err != nil {
		return nil, fmt.Errorf("failed to write %s rows: %w", sheet, err)
	}
	if err := t.totals("Total"); err != nil {
		return nil, fmt.Errorf("failed to write %s totals: %w", sheet, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func periodLabel(p hr.Period) string {
	return p.From.Format(periodLayout) + " - " + p.To.Format(periodLayout)
}

// Filename returns the attachment name of a summary export
func Filename(kind string, p hr.Period) string {
	return fmt.Sprintf("%s_summary_%s_%s.xlsx", kind, p.From.Format("20060102"), p.To.Format("20060102"))
}
