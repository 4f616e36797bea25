package models

import "time"

// Department is an academic department. Every report record resolves to exactly one.
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Code      string    `gorm:"size:32;uniqueIndex" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Faculty is a teaching staff member belonging to a department.
type Faculty struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Designation  string     `gorm:"size:128" json:"designation"`
	DepartmentID uint       `gorm:"index;not null" json:"department_id"`
	Department   Department `gorm:"foreignKey:DepartmentID" json:"department"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName keeps the plural table name for faculty members.
func (Faculty) TableName() string {
	return "faculty_members"
}
