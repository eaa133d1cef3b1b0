// Package export writes HR summaries as styled XLSX workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of the generated workbooks
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindDecimal
)

type column struct {
	header string
	width  float64
	kind   columnKind
	// total adds the column to the footer row
	total bool
}

type styles struct {
	header  int
	text    int
	integer int
	decimal int
	totalI  int
	totalD  int
	title   int
}

var decimalFormat = "#,##0.00"

func newStyles(f *excelize.File) (*styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "D9D9D9", Style: 1},
		{Type: "right", Color: "D9D9D9", Style: 1},
		{Type: "top", Color: "D9D9D9", Style: 1},
		{Type: "bottom", Color: "D9D9D9", Style: 1},
	}
	s := &styles{}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    border,
		}},
		{&s.text, &excelize.Style{Border: border}},
		{&s.integer, &excelize.Style{Border: border, NumFmt: 3}},
		{&s.decimal, &excelize.Style{Border: border, CustomNumFmt: &decimalFormat}},
		{&s.totalI, &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
			Border: border,
			NumFmt: 3,
		}},
		{&s.totalD, &excelize.Style{
			Font:         &excelize.Font{Bold: true},
			Fill:         excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
			Border:       border,
			CustomNumFmt: &decimalFormat,
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

// table lays out one sheet: a title line, a frozen header row with an auto
// filter, the data rows and an optional totals row
type table struct {
	f       *excelize.File
	sheet   string
	columns []column
	styles  *styles
	row     int
	first   int
}

const (
	titleRow  = 1
	headerRow = 3
)

func newTable(f *excelize.File, sheet, title string, columns []column) (*table, error) {
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, err
		}
	} else if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	t := &table{f: f, sheet: sheet, columns: columns, styles: st, row: headerRow + 1, first: headerRow + 1}

	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", st.title); err != nil {
		return nil, err
	}

	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(sheet, cell, c.header); err != nil {
			return nil, err
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return nil, err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(columns), headerRow)
	if err := f.SetCellStyle(sheet, first, last, st.header); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(sheet, headerRow, 28); err != nil {
		return nil, err
	}

	topLeft, _ := excelize.CoordinatesToCellName(1, headerRow+1)
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}
	if err := f.AutoFilter(sheet, first+":"+last, nil); err != nil {
		return nil, err
	}
	return t, nil
}

// append writes one data row; values follow the column order
func (t *table) append(values ...any) error {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, t.row)
		if err := t.f.SetCellValue(t.sheet, cell, v); err != nil {
			return err
		}
		if err := t.f.SetCellStyle(t.sheet, cell, cell, t.cellStyle(t.columns[i].kind)); err != nil {
			return err
		}
	}
	t.row++
	return nil
}

// totals writes SUM formulas under the columns flagged as totals
func (t *table) totals(label string) error {
	if t.row == t.first {
		return nil
	}
	labelCell, _ := excelize.CoordinatesToCellName(1, t.row)
	if err := t.f.SetCellValue(t.sheet, labelCell, label); err != nil {
		return err
	}
	for i, c := range t.columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, t.row)
		style := t.styles.totalI
		if c.kind == kindDecimal {
			style = t.styles.totalD
		}
		if c.total {
			from, _ := excelize.CoordinatesToCellName(i+1, t.first)
			to, _ := excelize.CoordinatesToCellName(i+1, t.row-1)
			if err := t.f.SetCellFormula(t.sheet, cell, fmt.Sprintf("SUM(%s:%s)", from, to)); err != nil {
				return err
			}
		}
		if err := t.f.SetCellStyle(t.sheet, cell, cell, style); err != nil {
			return err
		}
	}
	t.row++
	return nil
}

func (t *table) cellStyle(kind columnKind) int {
	switch kind {
	case kindInt:
		return t.styles.integer
	case kindDecimal:
		return t.styles.decimal
	default:
		return t.styles.text
	}
}
