package models

import "time"

// InstitutionalEvent is an institution-level event. The department is optional at entry time,
// and AcademicYear is a label rather than a date.
type InstitutionalEvent struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	EventName    string      `gorm:"size:512" json:"event_name"`
	AcademicYear string      `gorm:"size:16;index" json:"academic_year"`
	DepartmentID *uint       `gorm:"index" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Participants int         `json:"participants"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	ExternalLink string      `gorm:"size:512" json:"external_link"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
