package document

import (
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/iqac-report-api/internal/report"
)

// Page geometry in millimetres, A4 landscape.
const (
	pageWidth     = 297.0
	pageHeight    = 210.0
	margin        = 10.0
	contentWidth  = pageWidth - 2*margin
	footerReserve = 8.0
	printBottom   = pageHeight - margin - footerReserve

	bannerHeight   = 34.0
	headingHeight  = 10.0
	tocTitleHeight = 12.0
	tocLineHeight  = 8.0

	lineHeight  = 5.0
	cellPadding = 1.0

	headerFontSize = 9.0
	bodyFontSize   = 8.0
)

// PlacedRow is a data row, or a run of its wrapped lines, positioned on a page.
// A row taller than a page body is split into several PlacedRows sharing Index.
type PlacedRow struct {
	Index     int
	FirstLine int
	Lines     int
	Y         float64
	Height    float64
	Shaded    bool
}

// Page is one laid-out page. Table pages belong to exactly one section.
type Page struct {
	Number       int
	TOC          bool
	Section      int
	Heading      bool
	HeaderY      float64
	HeaderHeight float64
	TOCEntries   []int
	Rows         []PlacedRow
}

// TOCEntry links a section to the page its heading starts on.
type TOCEntry struct {
	Section int
	Title   string
	Page    int
	Rows    int
}

// Plan is the full page layout of a document, computed before anything is drawn.
type Plan struct {
	Pages        []Page
	TOC          []TOCEntry
	ColumnWidths []float64
}

// TotalPages is the final page count stamped into every footer.
func (p Plan) TotalPages() int {
	return len(p.Pages)
}

type measurer struct {
	pdf *gofpdf.Fpdf
}

// wrap breaks text into lines that fit a cell of the given width in the current font.
// Words wider than the cell are broken between runes.
func (m measurer) wrap(text string, width float64) []string {
	usable := width - 2*cellPadding
	text = strings.TrimRight(strings.ReplaceAll(sanitize(text), "\r", ""), "\n")

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, m.wrapParagraph(paragraph, usable)...)
	}
	return lines
}

func (m measurer) wrapParagraph(paragraph string, usable float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	space := m.pdf.GetStringWidth(" ")
	var lines []string
	line, lineWidth := "", 0.0
	for _, word := range words {
		w := m.pdf.GetStringWidth(word)
		if line != "" && lineWidth+space+w <= usable {
			line += " " + word
			lineWidth += space + w
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		if w <= usable || usable <= 0 {
			line, lineWidth = word, w
			continue
		}

		var chunk []rune
		chunkWidth := 0.0
		for _, r := range word {
			rw := m.pdf.GetStringWidth(string(r))
			if len(chunk) > 0 && chunkWidth+rw > usable {
				lines = append(lines, string(chunk))
				chunk, chunkWidth = chunk[:0], 0
			}
			chunk = append(chunk, r)
			chunkWidth += rw
		}
		line, lineWidth = string(chunk), chunkWidth
	}
	return append(lines, line)
}

func (m measurer) headerLines(columns []report.Column, width float64) [][]string {
	m.pdf.SetFont(fontFamily, "B", headerFontSize)
	cells := make([][]string, len(columns))
	for i, column := range columns {
		cells[i] = m.wrap(column.Header, width)
	}
	return cells
}

func (m measurer) rowLines(row report.Row, columns []report.Column, width float64) [][]string {
	m.pdf.SetFont(fontFamily, "", bodyFontSize)
	cells := make([][]string, len(columns))
	for i, column := range columns {
		cells[i] = m.wrap(row.Cell(column.Key).Text, width)
	}
	return cells
}

func tallest(cells [][]string) int {
	n := 1
	for _, lines := range cells {
		if len(lines) > n {
			n = len(lines)
		}
	}
	return n
}

func blockHeight(lines int) float64 {
	return float64(lines)*lineHeight + 2*cellPadding
}

// linesBetween counts the wrapped lines that fit a cell starting at top without crossing bottom.
func linesBetween(top, bottom float64) int {
	return int((bottom-top-2*cellPadding)/lineHeight + 1e-9)
}

// columnWidth splits the content width evenly; content-aware sizing is intentionally absent.
func columnWidth(columns []report.Column) float64 {
	if len(columns) == 0 {
		return contentWidth
	}
	return contentWidth / float64(len(columns))
}

func layout(m measurer, doc report.Document) Plan {
	plan := Plan{ColumnWidths: make([]float64, len(doc.Sections))}
	bodyTop := margin + bannerHeight

	if doc.Composite {
		perPage := int((printBottom - bodyTop - tocTitleHeight) / tocLineHeight)
		if perPage < 1 {
			perPage = 1
		}
		for i := range doc.Sections {
			if i%perPage == 0 {
				plan.Pages = append(plan.Pages, Page{Number: len(plan.Pages) + 1, TOC: true, Section: -1})
			}
			last := &plan.Pages[len(plan.Pages)-1]
			last.TOCEntries = append(last.TOCEntries, i)
		}
	}

	for si, section := range doc.Sections {
		width := columnWidth(section.Columns)
		plan.ColumnWidths[si] = width
		headerHeight := blockHeight(tallest(m.headerLines(section.Columns, width)))
		continuationRoom := linesBetween(bodyTop+headerHeight, printBottom)

		newPage := func(heading bool) *Page {
			headerY := bodyTop
			if heading {
				headerY += headingHeight
			}
			plan.Pages = append(plan.Pages, Page{
				Number:       len(plan.Pages) + 1,
				Section:      si,
				Heading:      heading,
				HeaderY:      headerY,
				HeaderHeight: headerHeight,
			})
			return &plan.Pages[len(plan.Pages)-1]
		}

		page := newPage(doc.Composite)
		plan.TOC = append(plan.TOC, TOCEntry{Section: si, Title: section.Title, Page: page.Number, Rows: len(section.Rows)})
		cursor := page.HeaderY + headerHeight

		for ri, row := range section.Rows {
			total := tallest(m.rowLines(row, section.Columns, width))
			for first := 0; first < total; {
				remaining := total - first
				room := linesBetween(cursor, printBottom)
				if remaining > room && len(page.Rows) > 0 && (remaining <= continuationRoom || room < 1) {
					page = newPage(false)
					cursor = page.HeaderY + headerHeight
					continue
				}

				n := remaining
				if n > room {
					n = max(room, 1)
				}
				placed := PlacedRow{
					Index:     ri,
					FirstLine: first,
					Lines:     n,
					Y:         cursor,
					Height:    blockHeight(n),
					Shaded:    len(page.Rows)%2 == 1,
				}
				page.Rows = append(page.Rows, placed)
				cursor += placed.Height
				first += n
			}
		}
	}

	if !doc.Composite {
		plan.TOC = nil
	}
	return plan
}
