package report

import (
	"context"
	"fmt"
	"strings"
)

// AllDepartmentsLabel is shown when the report is not scoped to one department.
const AllDepartmentsLabel = "All Departments"

// Format is an output encoding.
type Format string

// Supported output formats.
const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat normalizes a requested output format. An empty value selects PDF.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: unsupported format %q", ErrInvalidRequest, raw)
}

// Request is the normalized input of one report generation.
type Request struct {
	ActivityType string
	AcademicYear string
	DepartmentID *uint
	Format       Format
}

// Section is one entity listing: its spec and the denormalized rows in display order.
type Section struct {
	Spec SectionSpec
	Rows []Row
}

// RenderableRows returns the rows that may appear in an output. Institutional events
// missing an event name or department are skipped instead of rendered with placeholders.
func (s Section) RenderableRows() []Row {
	if s.Spec.Key != SectionInstitutionalEvents {
		return s.Rows
	}

	rows := make([]Row, 0, len(s.Rows))
	for _, row := range s.Rows {
		if event, ok := row.(InstitutionalEventRow); ok && !event.Complete() {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// Result is the aggregated data for one variant, sections in the variant's order.
type Result struct {
	Variant  Variant
	Sections []Section
}

// TotalRows counts rows across sections.
func (r Result) TotalRows() int {
	total := 0
	for _, section := range r.Sections {
		total += len(section.Rows)
	}
	return total
}

// DocumentSection is a section ready to render: columns resolved, rows filtered.
type DocumentSection struct {
	Key     SectionKey
	Title   string
	Columns []Column
	Rows    []Row
}

// Document is the logical model both renderers consume.
type Document struct {
	Institution     string
	Subtitle        string
	Title           string
	ActivityType    ActivityType
	AcademicYear    string
	Department      string
	DepartmentFixed bool
	Composite       bool
	Sections        []DocumentSection
}

// AcademicYearLine is the banner line describing the reporting period.
func (d Document) AcademicYearLine() string {
	return "Academic Year: " + d.AcademicYear
}

// DepartmentLine is the banner line describing the department scope.
func (d Document) DepartmentLine() string {
	return "Department: " + d.Department
}

// TotalRows counts rows across renderable sections.
func (d Document) TotalRows() int {
	total := 0
	for _, section := range d.Sections {
		total += len(section.Rows)
	}
	return total
}

// Header carries the banner fields shared by every report.
type Header struct {
	Institution  string
	Subtitle     string
	AcademicYear string
	Department   string
}

// BuildDocument resolves columns once for every section and drops sections with no renderable rows.
func BuildDocument(result Result, header Header, departmentFixed bool) Document {
	doc := Document{
		Institution:     header.Institution,
		Subtitle:        header.Subtitle,
		Title:           result.Variant.Title,
		ActivityType:    result.Variant.Type,
		AcademicYear:    header.AcademicYear,
		Department:      header.Department,
		DepartmentFixed: departmentFixed,
		Composite:       result.Variant.Composite(),
	}
	if doc.AcademicYear == "" {
		doc.AcademicYear = AllYearsLabel
	}
	if doc.Department == "" {
		doc.Department = AllDepartmentsLabel
	}

	for _, section := range result.Sections {
		rows := section.RenderableRows()
		if len(rows) == 0 {
			continue
		}
		doc.Sections = append(doc.Sections, DocumentSection{
			Key:     section.Spec.Key,
			Title:   section.Spec.Title,
			Columns: ResolveColumns(section.Spec.Key, departmentFixed),
			Rows:    rows,
		})
	}
	return doc
}

// Renderer encodes a Document into one output format.
type Renderer interface {
	Format() Format
	ContentType() string
	Render(ctx context.Context, doc Document) ([]byte, error)
}
