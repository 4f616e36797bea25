package workbook

import (
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/iqac-report-api/internal/report"
)

// sheetWriter keeps the first error so a sheet can be written without checking every call.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles styles
	err    error
}

func (w *sheetWriter) do(fn func() error) {
	if w.err != nil {
		return
	}
	w.err = fn()
}

func (w *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) banner(doc report.Document, width int) {
	if width < 1 {
		width = 1
	}
	lines := []struct {
		text   string
		style  int
		height float64
	}{
		{doc.Institution, w.styles.institution, 24},
		{doc.Subtitle, w.styles.subtitle, 18},
		{doc.Title, w.styles.title, 20},
		{doc.AcademicYearLine(), w.styles.bannerLine, 16},
		{doc.DepartmentLine(), w.styles.bannerLine, 16},
	}

	for i, line := range lines {
		row := i + 1
		first, last := w.cell(1, row), w.cell(width, row)
		w.do(func() error { return w.f.SetCellValue(w.sheet, first, line.text) })
		if width > 1 {
			w.do(func() error { return w.f.MergeCell(w.sheet, first, last) })
		}
		w.do(func() error { return w.f.SetCellStyle(w.sheet, first, last, line.style) })
		w.do(func() error { return w.f.SetRowHeight(w.sheet, row, line.height) })
	}
}

func (w *sheetWriter) header(columns []sheetColumn) {
	for i, column := range columns {
		col := i + 1
		name := w.cell(col, headerRow)
		w.do(func() error { return w.f.SetCellValue(w.sheet, name, column.header) })

		letter, err := excelize.ColumnNumberToName(col)
		if err != nil {
			w.do(func() error { return err })
			return
		}
		w.do(func() error { return w.f.SetColWidth(w.sheet, letter, letter, column.width) })
	}

	if len(columns) > 0 {
		w.do(func() error {
			return w.f.SetCellStyle(w.sheet, w.cell(1, headerRow), w.cell(len(columns), headerRow), w.styles.header)
		})
	}
	w.do(func() error { return w.f.SetRowHeight(w.sheet, headerRow, 30) })
	w.do(func() error {
		return w.f.SetPanes(w.sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: w.cell(1, firstData),
			ActivePane:  "bottomLeft",
		})
	})
}

func (w *sheetWriter) rows(rows []report.Row, columns []sheetColumn) {
	for i, row := range rows {
		r := firstData + i
		for j, column := range columns {
			name := w.cell(j+1, r)
			value := column.cell(row)
			w.do(func() error { return w.f.SetCellValue(w.sheet, name, value.Text) })
			if value.IsLink() {
				w.do(func() error { return w.f.SetCellHyperLink(w.sheet, name, value.Link, "External") })
				w.do(func() error { return w.f.SetCellStyle(w.sheet, name, name, w.styles.link) })
				continue
			}
			w.do(func() error { return w.f.SetCellStyle(w.sheet, name, name, w.styles.body) })
		}
	}
}
