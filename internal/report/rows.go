package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout  = "02 Jan 2006"
	placeholder = "-"
	linkText    = "View"
)

// Cell is a rendered value. A cell with a Link is drawn as a hyperlink labelled Text.
type Cell struct {
	Text string
	Link string
}

// IsLink reports whether the cell carries a hyperlink.
func (c Cell) IsLink() bool {
	return c.Link != ""
}

// Row is a denormalized record: every display field is resolved, renderers only read cells.
type Row interface {
	Cell(key string) Cell
}

func textCell(value string) Cell {
	value = strings.TrimSpace(value)
	if value == "" {
		return Cell{Text: placeholder}
	}
	return Cell{Text: value}
}

func intCell(value int) Cell {
	return Cell{Text: strconv.Itoa(value)}
}

func linkCell(url string) Cell {
	url = strings.TrimSpace(url)
	if url == "" {
		return Cell{Text: placeholder}
	}
	return Cell{Text: linkText, Link: url}
}

// FormatDate renders a date for report cells; zero dates become the placeholder.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format(dateLayout)
}

// FormatDateRange renders "start - end", collapsing single-day and open ranges.
func FormatDateRange(start, end time.Time) string {
	switch {
	case start.IsZero() && end.IsZero():
		return placeholder
	case end.IsZero() || sameDay(start, end):
		return FormatDate(start)
	case start.IsZero():
		return FormatDate(end)
	default:
		return fmt.Sprintf("%s - %s", FormatDate(start), FormatDate(end))
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// PublicationRow is one research publication.
type PublicationRow struct {
	ID          uint
	Title       string
	Authors     string
	Faculty     string
	Department  string
	Type        string
	Venue       string
	Indexing    string
	PublishedOn time.Time
	Link        string
}

func (r PublicationRow) Cell(key string) Cell {
	switch key {
	case "title":
		return textCell(r.Title)
	case "authors":
		return textCell(r.Authors)
	case "faculty":
		return textCell(r.Faculty)
	case DepartmentColumn:
		return textCell(r.Department)
	case "type":
		return textCell(r.Type)
	case "venue":
		return textCell(r.Venue)
	case "indexing":
		return textCell(r.Indexing)
	case "date":
		return Cell{Text: FormatDate(r.PublishedOn)}
	case "link":
		return linkCell(r.Link)
	}
	return Cell{Text: placeholder}
}

// ProfessionalDevelopmentRow is one FDP, workshop or seminar attended by a faculty member.
type ProfessionalDevelopmentRow struct {
	ID           uint
	Faculty      string
	Department   string
	Program      string
	Type         string
	Organizer    string
	Mode         string
	StartDate    time.Time
	EndDate      time.Time
	DurationDays int
	Link         string
}

func (r ProfessionalDevelopmentRow) Cell(key string) Cell {
	switch key {
	case "faculty":
		return textCell(r.Faculty)
	case DepartmentColumn:
		return textCell(r.Department)
	case "program":
		return textCell(r.Program)
	case "type":
		return textCell(r.Type)
	case "organizer":
		return textCell(r.Organizer)
	case "mode":
		return textCell(r.Mode)
	case "dates":
		return Cell{Text: FormatDateRange(r.StartDate, r.EndDate)}
	case "duration":
		return intCell(r.DurationDays)
	case "link":
		return linkCell(r.Link)
	}
	return Cell{Text: placeholder}
}

// CourseRow is one course taught in an academic year.
type CourseRow struct {
	ID           uint
	Faculty      string
	Department   string
	Code         string
	Name         string
	Semester     string
	AcademicYear string
	Credits      int
	Enrolled     int
	Link         string
}

func (r CourseRow) Cell(key string) Cell {
	switch key {
	case "faculty":
		return textCell(r.Faculty)
	case DepartmentColumn:
		return textCell(r.Department)
	case "code":
		return textCell(r.Code)
	case "course":
		return textCell(r.Name)
	case "semester":
		return textCell(r.Semester)
	case "academic_year":
		return textCell(r.AcademicYear)
	case "credits":
		return intCell(r.Credits)
	case "enrolled":
		return intCell(r.Enrolled)
	case "link":
		return linkCell(r.Link)
	}
	return Cell{Text: placeholder}
}

// EventRow is one event organized by a faculty member.
type EventRow struct {
	ID           uint
	Event        string
	Type         string
	Faculty      string
	Department   string
	Role         string
	StartDate    time.Time
	EndDate      time.Time
	Participants int
	Link         string
}

func (r EventRow) Cell(key string) Cell {
	switch key {
	case "event":
		return textCell(r.Event)
	case "type":
		return textCell(r.Type)
	case "faculty":
		return textCell(r.Faculty)
	case DepartmentColumn:
		return textCell(r.Department)
	case "role":
		return textCell(r.Role)
	case "dates":
		return Cell{Text: FormatDateRange(r.StartDate, r.EndDate)}
	case "participants":
		return intCell(r.Participants)
	case "link":
		return linkCell(r.Link)
	}
	return Cell{Text: placeholder}
}

// InstitutionalEventRow is one institution-level event.
type InstitutionalEventRow struct {
	ID           uint
	AcademicYear string
	EventName    string
	Department   string
	Participants int
	StartDate    time.Time
	EndDate      time.Time
	Link         string
}

// Complete reports whether the row carries the fields the institutional template requires.
func (r InstitutionalEventRow) Complete() bool {
	return strings.TrimSpace(r.EventName) != "" && strings.TrimSpace(r.Department) != ""
}

func (r InstitutionalEventRow) Cell(key string) Cell {
	switch key {
	case "academic_year":
		return textCell(r.AcademicYear)
	case "event":
		return textCell(r.EventName)
	case DepartmentColumn:
		return textCell(r.Department)
	case "participants":
		return intCell(r.Participants)
	case "dates":
		return Cell{Text: FormatDateRange(r.StartDate, r.EndDate)}
	case "link":
		return linkCell(r.Link)
	}
	return Cell{Text: placeholder}
}

// StudentDocumentRow is one achievement, career or internship document.
type StudentDocumentRow struct {
	ID           uint
	Student      string
	RollNumber   string
	Department   string
	DocumentType string
	Title        string
	Organization string
	Detail       string
	Date         time.Time
	CreatedAt    time.Time
	Link         string
}

func (r StudentDocumentRow) Cell(key string) Cell {
	switch key {
	case "student":
		return textCell(r.Student)
	case "roll_number":
		return textCell(r.RollNumber)
	case DepartmentColumn:
		return textCell(r.Department)
	case "type":
		return textCell(humanize(r.DocumentType))
	case "title":
		return textCell(r.Title)
	case "organization":
		return textCell(r.Organization)
	case "detail":
		return textCell(r.Detail)
	case "date":
		if r.Date.IsZero() {
			return Cell{Text: FormatDate(r.CreatedAt)}
		}
		return Cell{Text: FormatDate(r.Date)}
	case "link":
		return linkCell(r.Link)
	}
	return Cell{Text: placeholder}
}

func humanize(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
