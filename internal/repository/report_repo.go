package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/iqac-report-api/internal/models"
)

// ReportRepository reads the source records of every report section. Records are never mutated here.
type ReportRepository interface {
	ListPublications(ctx context.Context, filter RecordFilter) ([]models.ResearchPublication, error)
	ListProfessionalDevelopment(ctx context.Context, filter RecordFilter) ([]models.ProfessionalDevelopmentRecord, error)
	ListCourses(ctx context.Context, filter RecordFilter) ([]models.CourseTaught, error)
	ListEvents(ctx context.Context, filter RecordFilter) ([]models.EventOrganized, error)
	ListInstitutionalEvents(ctx context.Context, filter RecordFilter) ([]models.InstitutionalEvent, error)
	ListStudentDocuments(ctx context.Context, filter RecordFilter) ([]models.StudentDocument, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) ListPublications(ctx context.Context, filter RecordFilter) ([]models.ResearchPublication, error) {
	var records []models.ResearchPublication
	if filter.Empty() {
		return records, nil
	}
	err := filter.Apply(r.db.WithContext(ctx)).
		Preload("Faculty.Department").
		Order("publication_date DESC").
		Find(&records).Error
	return records, err
}

func (r *reportRepository) ListProfessionalDevelopment(ctx context.Context, filter RecordFilter) ([]models.ProfessionalDevelopmentRecord, error) {
	var records []models.ProfessionalDevelopmentRecord
	if filter.Empty() {
		return records, nil
	}
	err := filter.Apply(r.db.WithContext(ctx)).
		Preload("Faculty.Department").
		Order("start_date DESC").
		Find(&records).Error
	return records, err
}

func (r *reportRepository) ListCourses(ctx context.Context, filter RecordFilter) ([]models.CourseTaught, error) {
	var records []models.CourseTaught
	if filter.Empty() {
		return records, nil
	}
	err := filter.Apply(r.db.WithContext(ctx)).
		Preload("Faculty.Department").
		Order("academic_year DESC").
		Find(&records).Error
	return records, err
}

func (r *reportRepository) ListEvents(ctx context.Context, filter RecordFilter) ([]models.EventOrganized, error) {
	var records []models.EventOrganized
	if filter.Empty() {
		return records, nil
	}
	err := filter.Apply(r.db.WithContext(ctx)).
		Preload("Faculty.Department").
		Order("start_date DESC").
		Find(&records).Error
	return records, err
}

func (r *reportRepository) ListInstitutionalEvents(ctx context.Context, filter RecordFilter) ([]models.InstitutionalEvent, error) {
	var records []models.InstitutionalEvent
	if filter.Empty() {
		return records, nil
	}
	err := filter.Apply(r.db.WithContext(ctx)).
		Preload("Department").
		Order("start_date DESC").
		Find(&records).Error
	return records, err
}

func (r *reportRepository) ListStudentDocuments(ctx context.Context, filter RecordFilter) ([]models.StudentDocument, error) {
	var records []models.StudentDocument
	if filter.Empty() {
		return records, nil
	}
	err := filter.Apply(r.db.WithContext(ctx)).
		Preload("Student.Department").
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
