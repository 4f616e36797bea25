package document

import (
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/iqac-report-api/internal/report"
)

type rgb struct{ r, g, b int }

var (
	headerFill = rgb{31, 78, 121}
	zebraFill  = rgb{242, 242, 242}
	ruleColor  = rgb{31, 78, 121}
	borderGrey = rgb{191, 191, 191}
	linkBlue   = rgb{0, 0, 238}
	textBlack  = rgb{0, 0, 0}
	mutedGrey  = rgb{100, 100, 100}
)

type drawer struct {
	pdf   *gofpdf.Fpdf
	m     measurer
	doc   report.Document
	plan  Plan
	links []int
}

func (d *drawer) draw(ctx context.Context) error {
	d.pdf.SetTitle(d.doc.Title, true)
	d.pdf.SetCreator(d.doc.Institution, true)
	d.pdf.SetHeaderFunc(d.banner)
	d.pdf.SetFooterFunc(d.footer)

	d.links = make([]int, len(d.doc.Sections))
	for i := range d.links {
		d.links[i] = d.pdf.AddLink()
	}

	for _, page := range d.plan.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}

		d.pdf.AddPage()
		if page.TOC {
			d.tableOfContents(page)
			continue
		}

		section := d.doc.Sections[page.Section]
		if page.Heading {
			d.heading(section, page.Section)
		}
		d.headerRow(section, page)
		for _, placed := range page.Rows {
			d.dataRow(section, page.Section, placed)
		}

		if err := d.pdf.Error(); err != nil {
			return fmt.Errorf("%w: %v", report.ErrRenderFailure, err)
		}
	}

	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", report.ErrRenderFailure, err)
	}
	return nil
}

func (d *drawer) setText(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }
func (d *drawer) setFill(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *drawer) setDraw(c rgb) { d.pdf.SetDrawColor(c.r, c.g, c.b) }

// banner runs on every page through the header callback.
func (d *drawer) banner() {
	pdf := d.pdf
	pdf.SetXY(margin, margin)
	d.setText(textBlack)

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(contentWidth, 7, sanitize(d.doc.Institution), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(contentWidth, 5, sanitize(d.doc.Subtitle), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(contentWidth, 7, sanitize(d.doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(contentWidth, 5, sanitize(d.doc.AcademicYearLine()), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentWidth, 5, sanitize(d.doc.DepartmentLine()), "", 1, "C", false, 0, "")

	d.setDraw(ruleColor)
	pdf.SetLineWidth(0.5)
	ruleY := margin + bannerHeight - 3
	pdf.Line(margin, ruleY, pageWidth-margin, ruleY)
	pdf.SetLineWidth(0.2)
}

func (d *drawer) footer() {
	pdf := d.pdf
	pdf.SetY(-footerReserve)
	pdf.SetFont(fontFamily, "", 8)
	d.setText(mutedGrey)
	pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	d.setText(textBlack)
}

func (d *drawer) tableOfContents(page Page) {
	pdf := d.pdf
	y := margin + bannerHeight
	pdf.SetXY(margin, y)
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(contentWidth, tocTitleHeight, "Table of Contents", "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 11)
	for _, si := range page.TOCEntries {
		entry := d.plan.TOC[si]
		label := fmt.Sprintf("%d. %s", si+1, entry.Title)
		d.setText(linkBlue)
		pdf.CellFormat(contentWidth-30, tocLineHeight, sanitize(label), "", 0, "L", false, d.links[si], "")
		d.setText(textBlack)
		pdf.CellFormat(30, tocLineHeight, fmt.Sprintf("%d", entry.Page), "", 1, "R", false, d.links[si], "")
	}
}

func (d *drawer) heading(section report.DocumentSection, index int) {
	pdf := d.pdf
	y := margin + bannerHeight
	pdf.SetLink(d.links[index], y, -1)
	pdf.SetXY(margin, y)
	pdf.SetFont(fontFamily, "B", 12)
	d.setText(headerFill)
	pdf.CellFormat(contentWidth, headingHeight-2, sanitize(section.Title), "", 1, "L", false, 0, "")
	d.setText(textBlack)
}

func (d *drawer) headerRow(section report.DocumentSection, page Page) {
	pdf := d.pdf
	width := d.plan.ColumnWidths[page.Section]
	cells := d.m.headerLines(section.Columns, width)

	d.setFill(headerFill)
	d.setDraw(borderGrey)
	for i := range section.Columns {
		x := margin + float64(i)*width
		pdf.Rect(x, page.HeaderY, width, page.HeaderHeight, "FD")
		d.setText(rgb{255, 255, 255})
		d.lines(cells[i], x, page.HeaderY, width, 0, len(cells[i]), "C")
	}
	d.setText(textBlack)
}

// dataRow draws one placed row. Fragments of a split row print only their own run of lines.
func (d *drawer) dataRow(section report.DocumentSection, sectionIndex int, placed PlacedRow) {
	pdf := d.pdf
	width := d.plan.ColumnWidths[sectionIndex]
	row := section.Rows[placed.Index]
	cells := d.m.rowLines(row, section.Columns, width)

	d.setDraw(borderGrey)
	d.setFill(zebraFill)
	style := "D"
	if placed.Shaded {
		style = "FD"
	}

	for i, column := range section.Columns {
		x := margin + float64(i)*width
		pdf.Rect(x, placed.Y, width, placed.Height, style)

		cell := row.Cell(column.Key)
		if cell.IsLink() {
			pdf.SetFont(fontFamily, "U", bodyFontSize)
			d.setText(linkBlue)
			d.lines(cells[i], x, placed.Y, width, placed.FirstLine, placed.Lines, "L")
			pdf.LinkString(x, placed.Y, width, placed.Height, cell.Link)
			d.setText(textBlack)
			pdf.SetFont(fontFamily, "", bodyFontSize)
			continue
		}
		d.lines(cells[i], x, placed.Y, width, placed.FirstLine, placed.Lines, "L")
	}
}

func (d *drawer) lines(lines []string, x, y, width float64, first, count int, align string) {
	for k := 0; k < count && first+k < len(lines); k++ {
		d.pdf.SetXY(x+cellPadding, y+cellPadding+float64(k)*lineHeight)
		d.pdf.CellFormat(width-2*cellPadding, lineHeight, lines[first+k], "", 0, align, false, 0, "")
	}
}
