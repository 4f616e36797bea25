package dto

import (
	"github.com/noah-isme/iqac-report-api/internal/report"
)

// ReportQuery is the query string accepted by the report endpoints.
type ReportQuery struct {
	ActivityType string `query:"activityType" validate:"required,max=64"`
	AcademicYear string `query:"academicYear" validate:"omitempty,max=16"`
	Department   *uint  `query:"department" validate:"omitempty,gt=0"`
	Format       string `query:"format" validate:"omitempty,oneof=pdf xlsx PDF XLSX"`
}

// ActivityTypeResponse describes one selectable report variant.
type ActivityTypeResponse struct {
	Value     string   `json:"value"`
	Title     string   `json:"title"`
	Sections  []string `json:"sections"`
	Composite bool     `json:"composite"`
}

// NewActivityTypeResponse converts a variant into its catalog entry.
func NewActivityTypeResponse(variant report.Variant) ActivityTypeResponse {
	sections := make([]string, 0, len(variant.Sections))
	for _, key := range variant.Sections {
		sections = append(sections, string(key))
	}
	return ActivityTypeResponse{
		Value:     string(variant.Type),
		Title:     variant.Title,
		Sections:  sections,
		Composite: variant.Composite(),
	}
}

// ReportSectionSummary is the row count of one section.
type ReportSectionSummary struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Rows  int    `json:"rows"`
}

// ReportSummaryResponse previews what a download would contain.
type ReportSummaryResponse struct {
	ActivityType string                 `json:"activity_type"`
	Title        string                 `json:"title"`
	AcademicYear string                 `json:"academic_year"`
	Department   string                 `json:"department"`
	TotalRows    int                    `json:"total_rows"`
	Sections     []ReportSectionSummary `json:"sections"`
}

// DepartmentResponse is a selectable department.
type DepartmentResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
