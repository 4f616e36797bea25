package models

import "time"

// Student document types. Achievement and career documents share one table and are
// told apart by DocumentType.
const (
	DocumentTypeAchievement   = "achievement"
	DocumentTypePlacement     = "placement"
	DocumentTypeHigherStudies = "higher-studies"
	DocumentTypeInternship    = "internship"
)

// StudentDocument is an uploaded achievement or career record owned by a student.
type StudentDocument struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudentID     uint      `gorm:"index;not null" json:"student_id"`
	Student       Student   `gorm:"foreignKey:StudentID" json:"student"`
	DocumentType  string    `gorm:"size:32;index;not null" json:"document_type"`
	Title         string    `gorm:"size:512" json:"title"`
	Organization  string    `gorm:"size:255" json:"organization"`
	Detail        string    `gorm:"size:255" json:"detail"`
	Description   string    `gorm:"type:text" json:"description"`
	EventDate     time.Time `json:"event_date"`
	AttachmentURL string    `gorm:"size:512" json:"attachment_url"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
