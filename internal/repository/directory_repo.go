package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/iqac-report-api/internal/models"
)

// DirectoryRepository resolves departments and their member sets.
type DirectoryRepository interface {
	GetDepartment(ctx context.Context, id uint) (models.Department, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	FacultyIDs(ctx context.Context, departmentID uint) ([]uint, error)
	StudentIDs(ctx context.Context, departmentID uint) ([]uint, error)
	Members(ctx context.Context, departmentID uint) (Membership, error)
}

// Membership is one department with its faculty and student ID sets, read together.
type Membership struct {
	DepartmentID uint
	Name         string
	FacultyIDs   []uint
	StudentIDs   []uint
}

type directoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository constructs the directory repository.
func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) GetDepartment(ctx context.Context, id uint) (models.Department, error) {
	var department models.Department
	err := r.db.WithContext(ctx).First(&department, id).Error
	return department, err
}

func (r *directoryRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *directoryRepository) FacultyIDs(ctx context.Context, departmentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Faculty{}).
		Where("department_id = ?", departmentID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *directoryRepository) StudentIDs(ctx context.Context, departmentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("department_id = ?", departmentID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// Members reads the department row and both of its member sets.
func (r *directoryRepository) Members(ctx context.Context, departmentID uint) (Membership, error) {
	department, err := r.GetDepartment(ctx, departmentID)
	if err != nil {
		return Membership{}, fmt.Errorf("department %d: %w", departmentID, err)
	}
	facultyIDs, err := r.FacultyIDs(ctx, departmentID)
	if err != nil {
		return Membership{}, fmt.Errorf("faculty of department %d: %w", departmentID, err)
	}
	studentIDs, err := r.StudentIDs(ctx, departmentID)
	if err != nil {
		return Membership{}, fmt.Errorf("students of department %d: %w", departmentID, err)
	}

	return Membership{
		DepartmentID: department.ID,
		Name:         department.Name,
		FacultyIDs:   facultyIDs,
		StudentIDs:   studentIDs,
	}, nil
}
