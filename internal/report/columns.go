package report

// DepartmentColumn is dropped from every schema when the department is fixed.
const DepartmentColumn = "department"

// Column is one entry of a section's tabular shape. Width is a hint in spreadsheet character units.
type Column struct {
	Key    string
	Header string
	Width  float64
}

// SectionSpec is the static description of a section: heading and full column schema.
type SectionSpec struct {
	Key     SectionKey
	Title   string
	Columns []Column
}

var sectionSpecs = map[SectionKey]SectionSpec{
	SectionResearch: {
		Key:   SectionResearch,
		Title: "Research Publications",
		Columns: []Column{
			{Key: "title", Header: "Title", Width: 40},
			{Key: "authors", Header: "Authors", Width: 28},
			{Key: "faculty", Header: "Faculty", Width: 22},
			{Key: DepartmentColumn, Header: "Department", Width: 22},
			{Key: "type", Header: "Type", Width: 14},
			{Key: "venue", Header: "Journal / Conference", Width: 30},
			{Key: "indexing", Header: "Indexing", Width: 14},
			{Key: "date", Header: "Published On", Width: 14},
			{Key: "link", Header: "Link", Width: 18},
		},
	},
	SectionProfessionalDevelopment: {
		Key:   SectionProfessionalDevelopment,
		Title: "Professional Development",
		Columns: []Column{
			{Key: "faculty", Header: "Faculty", Width: 22},
			{Key: DepartmentColumn, Header: "Department", Width: 22},
			{Key: "program", Header: "Program", Width: 36},
			{Key: "type", Header: "Type", Width: 14},
			{Key: "organizer", Header: "Organized By", Width: 26},
			{Key: "mode", Header: "Mode", Width: 10},
			{Key: "dates", Header: "Dates", Width: 24},
			{Key: "duration", Header: "Duration (Days)", Width: 12},
			{Key: "link", Header: "Certificate", Width: 18},
		},
	},
	SectionCourses: {
		Key:   SectionCourses,
		Title: "Courses Taught",
		Columns: []Column{
			{Key: "faculty", Header: "Faculty", Width: 22},
			{Key: DepartmentColumn, Header: "Department", Width: 22},
			{Key: "code", Header: "Course Code", Width: 12},
			{Key: "course", Header: "Course Name", Width: 34},
			{Key: "semester", Header: "Semester", Width: 10},
			{Key: "academic_year", Header: "Academic Year", Width: 14},
			{Key: "credits", Header: "Credits", Width: 8},
			{Key: "enrolled", Header: "Students", Width: 10},
			{Key: "link", Header: "Syllabus", Width: 18},
		},
	},
	SectionEvents: {
		Key:   SectionEvents,
		Title: "Events Organized",
		Columns: []Column{
			{Key: "event", Header: "Event", Width: 36},
			{Key: "type", Header: "Type", Width: 14},
			{Key: "faculty", Header: "Faculty", Width: 22},
			{Key: DepartmentColumn, Header: "Department", Width: 22},
			{Key: "role", Header: "Role", Width: 14},
			{Key: "dates", Header: "Dates", Width: 24},
			{Key: "participants", Header: "Participants", Width: 12},
			{Key: "link", Header: "Report", Width: 18},
		},
	},
	SectionInstitutionalEvents: {
		Key:   SectionInstitutionalEvents,
		Title: "Institutional Events",
		Columns: []Column{
			{Key: "academic_year", Header: "Academic Year", Width: 14},
			{Key: "event", Header: "Event Name", Width: 40},
			{Key: DepartmentColumn, Header: "Department", Width: 22},
			{Key: "participants", Header: "Participants", Width: 12},
			{Key: "dates", Header: "Date Range", Width: 24},
			{Key: "link", Header: "Link", Width: 24},
		},
	},
	SectionAchievements: {
		Key:   SectionAchievements,
		Title: "Student Achievements",
		Columns: []Column{
			{Key: "student", Header: "Student", Width: 22},
			{Key: "roll_number", Header: "Roll No.", Width: 14},
			{Key: DepartmentColumn, Header: "Department", Width: 22},
			{Key: "title", Header: "Achievement", Width: 34},
			{Key: "organization", Header: "Event / Organization", Width: 28},
			{Key: "detail", Header: "Level / Award", Width: 16},
			{Key: "date", Header: "Date", Width: 14},
			{Key: "link", Header: "Certificate", Width: 18},
		},
	},
	SectionCareer: {
		Key:   SectionCareer,
		Title: "Career Progression",
		Columns: []Column{
			{Key: "student", Header: "Student", Width: 22},
			{Key: "roll_number", Header: "Roll No.", Width: 14},
			{Key: DepartmentColumn, Header: "Department", Width: 22},
			{Key: "type", Header: "Type", Width: 14},
			{Key: "organization", Header: "Company / Institution", Width: 28},
			{Key: "detail", Header: "Role / Program", Width: 24},
			{Key: "date", Header: "Date", Width: 14},
			{Key: "link", Header: "Document", Width: 18},
		},
	},
	SectionInternships: {
		Key:   SectionInternships,
		Title: "Internships",
		Columns: []Column{
			{Key: "student", Header: "Student", Width: 22},
			{Key: "roll_number", Header: "Roll No.", Width: 14},
			{Key: DepartmentColumn, Header: "Department", Width: 22},
			{Key: "organization", Header: "Organization", Width: 28},
			{Key: "detail", Header: "Role", Width: 24},
			{Key: "date", Header: "Date", Width: 14},
			{Key: "link", Header: "Document", Width: 18},
		},
	},
}

// Spec returns the static definition of a section. The bool is false for unknown keys.
func Spec(key SectionKey) (SectionSpec, bool) {
	spec, ok := sectionSpecs[key]
	return spec, ok
}

// ResolveColumns returns the ordered columns for a section. When the department is fixed
// every row shares it, so the department column is dropped.
func ResolveColumns(key SectionKey, departmentFixed bool) []Column {
	spec, ok := sectionSpecs[key]
	if !ok {
		return nil
	}

	columns := make([]Column, 0, len(spec.Columns))
	for _, column := range spec.Columns {
		if departmentFixed && column.Key == DepartmentColumn {
			continue
		}
		columns = append(columns, column)
	}
	return columns
}

// Headers lists column headers in order.
func Headers(columns []Column) []string {
	headers := make([]string, 0, len(columns))
	for _, column := range columns {
		headers = append(headers, column.Header)
	}
	return headers
}
