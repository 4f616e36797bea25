package workbook

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/iqac-report-api/internal/report"
)

// ContentType is the MIME type of rendered workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Banner rows occupy 1-5, the header row follows, data starts below it.
const (
	bannerRows = 5
	headerRow  = bannerRows + 1
	firstData  = headerRow + 1
	maxSheet   = 31
)

// Renderer writes reports as styled XLSX workbooks, one sheet per section.
type Renderer struct {
	logger zerolog.Logger
}

// NewRenderer constructs the workbook renderer.
func NewRenderer(logger zerolog.Logger) *Renderer {
	return &Renderer{logger: logger.With().Str("component", "workbook_renderer").Logger()}
}

// Format implements report.Renderer.
func (r *Renderer) Format() report.Format {
	return report.FormatXLSX
}

// ContentType implements report.Renderer.
func (r *Renderer) ContentType() string {
	return ContentType
}

// sheetColumn is what a sheet actually writes: a header, a width and a cell accessor.
type sheetColumn struct {
	header string
	width  float64
	cell   func(report.Row) report.Cell
}

func schemaColumns(columns []report.Column) []sheetColumn {
	out := make([]sheetColumn, 0, len(columns))
	for _, column := range columns {
		key := column.Key
		out = append(out, sheetColumn{
			header: column.Header,
			width:  column.Width,
			cell:   func(row report.Row) report.Cell { return row.Cell(key) },
		})
	}
	return out
}

// institutionalColumns mirrors the external institutional-events template and ignores the schema.
func institutionalColumns() []sheetColumn {
	fixed := []struct {
		header string
		key    string
		width  float64
	}{
		{"Academic Year", "academic_year", 14},
		{"Event Name", "event", 42},
		{"Participants", "participants", 14},
		{"Date Range", "dates", 26},
		{"Link", "link", 30},
	}

	out := make([]sheetColumn, 0, len(fixed))
	for _, column := range fixed {
		key := column.key
		out = append(out, sheetColumn{
			header: column.header,
			width:  column.width,
			cell:   func(row report.Row) report.Cell { return row.Cell(key) },
		})
	}
	return out
}

// Render builds the whole workbook in memory and serializes it once.
func (r *Renderer) Render(ctx context.Context, doc report.Document) ([]byte, error) {
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("%w: %s", report.ErrNotFound, doc.ActivityType)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("%w: styles: %v", report.ErrRenderFailure, err)
	}

	used := map[string]bool{}
	for i, section := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := sheetName(section.Title, used)
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", report.ErrRenderFailure, name, err)
		}

		columns := schemaColumns(section.Columns)
		if section.Key == report.SectionInstitutionalEvents {
			columns = institutionalColumns()
		}

		w := &sheetWriter{f: f, sheet: name, styles: st}
		w.banner(doc, len(columns))
		w.header(columns)
		w.rows(section.Rows, columns)
		if w.err != nil {
			r.logger.Error().Err(w.err).Str("sheet", name).Msg("failed to write sheet")
			return nil, fmt.Errorf("%w: sheet %q: %v", report.ErrRenderFailure, name, w.err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailure, err)
	}

	r.logger.Debug().
		Str("activity_type", string(doc.ActivityType)).
		Int("sheets", len(doc.Sections)).
		Int("bytes", buf.Len()).
		Msg("workbook rendered")
	return buf.Bytes(), nil
}

func sheetName(title string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "Report"
	}
	name = truncateRunes(name, maxSheet)

	candidate := name
	for n := 2; used[candidate]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(name, maxSheet-len(suffix)) + suffix
	}
	used[candidate] = true
	return candidate
}

// truncateRunes caps s at limit characters; sheet-name limits count runes, not bytes.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
