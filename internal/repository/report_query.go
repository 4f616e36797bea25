package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/iqac-report-api/internal/models"
	"github.com/noah-isme/iqac-report-api/internal/report"
)

// MembershipSource yields the owner ID sets used to scope records to a department.
// One call resolves the name and both sets, so a request never mixes two snapshots.
type MembershipSource interface {
	Members(ctx context.Context, departmentID uint) (Membership, error)
}

// QueryScope holds the department and period inputs shared by every section of one request.
type QueryScope struct {
	DepartmentID   *uint
	DepartmentName string
	FacultyIDs     []uint
	StudentIDs     []uint
	Range          *report.YearRange
}

// Label returns the academic year label used for label-typed fields, or "" when unfiltered.
func (s QueryScope) Label() string {
	if s.Range == nil {
		return ""
	}
	return s.Range.Label
}

type ownerKind int

const (
	ownerFaculty ownerKind = iota
	ownerStudent
	ownerDepartment
)

// sectionQuery binds a section to its owner path and exactly one period field.
type sectionQuery struct {
	owner         ownerKind
	ownerColumn   string
	dateColumn    string
	labelColumn   string
	documentTypes []string
}

var sectionQueries = map[report.SectionKey]sectionQuery{
	report.SectionResearch:                {owner: ownerFaculty, ownerColumn: "faculty_id", dateColumn: "publication_date"},
	report.SectionProfessionalDevelopment: {owner: ownerFaculty, ownerColumn: "faculty_id", dateColumn: "start_date"},
	report.SectionCourses:                 {owner: ownerFaculty, ownerColumn: "faculty_id", labelColumn: "academic_year"},
	report.SectionEvents:                  {owner: ownerFaculty, ownerColumn: "faculty_id", dateColumn: "start_date"},
	report.SectionInstitutionalEvents:     {owner: ownerDepartment, ownerColumn: "department_id", labelColumn: "academic_year"},
	report.SectionAchievements: {
		owner: ownerStudent, ownerColumn: "student_id", dateColumn: "created_at",
		documentTypes: []string{models.DocumentTypeAchievement},
	},
	report.SectionCareer: {
		owner: ownerStudent, ownerColumn: "student_id", dateColumn: "created_at",
		documentTypes: []string{models.DocumentTypePlacement, models.DocumentTypeHigherStudies},
	},
	report.SectionInternships: {
		owner: ownerStudent, ownerColumn: "student_id", dateColumn: "created_at",
		documentTypes: []string{models.DocumentTypeInternship},
	},
}

// RecordFilter is the per-section query: owner scope, period and discriminator.
type RecordFilter struct {
	Section       report.SectionKey
	Scoped        bool
	OwnerColumn   string
	OwnerIDs      []uint
	DateColumn    string
	Range         *report.YearRange
	LabelColumn   string
	Label         string
	DocumentTypes []string
}

// Empty reports a scoped filter whose owner set is empty; it can match nothing.
func (f RecordFilter) Empty() bool {
	return f.Scoped && len(f.OwnerIDs) == 0
}

// Apply renders the filter as gorm clauses.
func (f RecordFilter) Apply(db *gorm.DB) *gorm.DB {
	query := db
	if f.Scoped {
		query = query.Where(fmt.Sprintf("%s IN ?", f.OwnerColumn), f.OwnerIDs)
	}
	if f.DateColumn != "" && f.Range != nil {
		query = query.Where(fmt.Sprintf("%s BETWEEN ? AND ?", f.DateColumn), f.Range.Start, f.Range.End)
	}
	if f.LabelColumn != "" && f.Label != "" {
		query = query.Where(fmt.Sprintf("%s = ?", f.LabelColumn), f.Label)
	}
	if len(f.DocumentTypes) > 0 {
		query = query.Where("document_type IN ?", f.DocumentTypes)
	}
	return query
}

// RecordQueryBuilder turns request inputs into per-section record filters.
type RecordQueryBuilder struct {
	members MembershipSource
}

// NewRecordQueryBuilder constructs a builder resolving department membership through members.
func NewRecordQueryBuilder(members MembershipSource) *RecordQueryBuilder {
	return &RecordQueryBuilder{members: members}
}

// Scope resolves department membership and the academic-year window once per request.
// An unknown department is report.ErrNotFound; any other directory failure is ErrUpstreamLookup.
// Owner scoping is omitted entirely when no department is given.
func (b *RecordQueryBuilder) Scope(ctx context.Context, departmentID *uint, academicYear string) (QueryScope, error) {
	scope := QueryScope{}
	if r, ok := report.ParseAcademicYear(academicYear); ok {
		scope.Range = &r
	}
	if departmentID == nil {
		return scope, nil
	}

	id := *departmentID
	scope.DepartmentID = &id

	members, err := b.members.Members(ctx, id)
	switch {
	case errors.Is(err, report.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return QueryScope{}, fmt.Errorf("%w: department %d", report.ErrNotFound, id)
	case err != nil:
		return QueryScope{}, fmt.Errorf("%w: department %d: %v", report.ErrUpstreamLookup, id, err)
	}

	scope.DepartmentName = members.Name
	scope.FacultyIDs = members.FacultyIDs
	scope.StudentIDs = members.StudentIDs
	return scope, nil
}

// Filter builds the record filter of one section from a shared scope.
func (b *RecordQueryBuilder) Filter(section report.SectionKey, scope QueryScope) (RecordFilter, error) {
	q, ok := sectionQueries[section]
	if !ok {
		return RecordFilter{}, fmt.Errorf("%w: unknown section %q", report.ErrInvalidRequest, section)
	}

	filter := RecordFilter{
		Section:       section,
		OwnerColumn:   q.ownerColumn,
		DateColumn:    q.dateColumn,
		LabelColumn:   q.labelColumn,
		DocumentTypes: append([]string(nil), q.documentTypes...),
	}

	if scope.DepartmentID != nil {
		filter.Scoped = true
		switch q.owner {
		case ownerFaculty:
			filter.OwnerIDs = scope.FacultyIDs
		case ownerStudent:
			filter.OwnerIDs = scope.StudentIDs
		case ownerDepartment:
			filter.OwnerIDs = []uint{*scope.DepartmentID}
		}
	}

	if q.dateColumn != "" {
		filter.Range = scope.Range
	}
	if q.labelColumn != "" {
		filter.Label = scope.Label()
	}

	return filter, nil
}
