package models

import "time"

// Student is a learner enrolled in a department. Student documents resolve their department through it.
type Student struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	RollNumber   string     `gorm:"size:64;index" json:"roll_number"`
	DepartmentID uint       `gorm:"index;not null" json:"department_id"`
	Department   Department `gorm:"foreignKey:DepartmentID" json:"department"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
