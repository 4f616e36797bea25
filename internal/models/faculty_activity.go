package models

import "time"

// ResearchPublication is a journal article, conference paper or book chapter by a faculty member.
type ResearchPublication struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FacultyID       uint      `gorm:"index;not null" json:"faculty_id"`
	Faculty         Faculty   `gorm:"foreignKey:FacultyID" json:"faculty"`
	Title           string    `gorm:"size:512;not null" json:"title"`
	Authors         string    `gorm:"size:512" json:"authors"`
	PublicationType string    `gorm:"size:64" json:"publication_type"`
	Venue           string    `gorm:"size:255" json:"venue"`
	Indexing        string    `gorm:"size:128" json:"indexing"`
	DOI             string    `gorm:"size:255" json:"doi"`
	PublicationDate time.Time `gorm:"index" json:"publication_date"`
	AttachmentURL   string    `gorm:"size:512" json:"attachment_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProfessionalDevelopmentRecord is an FDP, workshop or seminar a faculty member attended.
type ProfessionalDevelopmentRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FacultyID     uint      `gorm:"index;not null" json:"faculty_id"`
	Faculty       Faculty   `gorm:"foreignKey:FacultyID" json:"faculty"`
	Title         string    `gorm:"size:512;not null" json:"title"`
	ProgramType   string    `gorm:"size:64" json:"program_type"`
	Organizer     string    `gorm:"size:255" json:"organizer"`
	Mode          string    `gorm:"size:32" json:"mode"`
	StartDate     time.Time `gorm:"index" json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	AttachmentURL string    `gorm:"size:512" json:"attachment_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DurationDays counts calendar days inclusive of both ends; open records count as one day.
func (r ProfessionalDevelopmentRecord) DurationDays() int {
	if r.StartDate.IsZero() {
		return 0
	}
	if r.EndDate.IsZero() || r.EndDate.Before(r.StartDate) {
		return 1
	}
	start := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// CourseTaught is a course a faculty member handled in an academic year.
// AcademicYear is a "YYYY-YYYY" label, matched by equality rather than by date window.
type CourseTaught struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	FacultyID        uint      `gorm:"index;not null" json:"faculty_id"`
	Faculty          Faculty   `gorm:"foreignKey:FacultyID" json:"faculty"`
	CourseCode       string    `gorm:"size:32" json:"course_code"`
	CourseName       string    `gorm:"size:255;not null" json:"course_name"`
	Semester         string    `gorm:"size:16" json:"semester"`
	AcademicYear     string    `gorm:"size:16;index" json:"academic_year"`
	Credits          int       `json:"credits"`
	StudentsEnrolled int       `json:"students_enrolled"`
	AttachmentURL    string    `gorm:"size:512" json:"attachment_url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName keeps a readable table name for courses.
func (CourseTaught) TableName() string {
	return "courses_taught"
}

// EventOrganized is an event a faculty member coordinated.
type EventOrganized struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FacultyID     uint      `gorm:"index;not null" json:"faculty_id"`
	Faculty       Faculty   `gorm:"foreignKey:FacultyID" json:"faculty"`
	Title         string    `gorm:"size:512;not null" json:"title"`
	EventType     string    `gorm:"size:64" json:"event_type"`
	Role          string    `gorm:"size:64" json:"role"`
	StartDate     time.Time `gorm:"index" json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Participants  int       `json:"participants"`
	AttachmentURL string    `gorm:"size:512" json:"attachment_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps a readable table name for organized events.
func (EventOrganized) TableName() string {
	return "events_organized"
}
