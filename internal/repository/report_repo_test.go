package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/iqac-report-api/internal/models"
	"github.com/noah-isme/iqac-report-api/internal/report"
)

type reportFixture struct {
	db      *gorm.DB
	cse     models.Department
	ece     models.Department
	alice   models.Faculty
	bob     models.Faculty
	charlie models.Student
	dana    models.Student
}

func setupReportDB(t *testing.T) reportFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	f := reportFixture{db: db}
	f.cse = models.Department{Name: "Computer Science", Code: "CSE"}
	f.ece = models.Department{Name: "Electronics", Code: "ECE"}
	require.NoError(t, db.Create(&f.cse).Error)
	require.NoError(t, db.Create(&f.ece).Error)

	f.alice = models.Faculty{Name: "Alice", Email: "alice@example.edu", DepartmentID: f.cse.ID}
	f.bob = models.Faculty{Name: "Bob", Email: "bob@example.edu", DepartmentID: f.ece.ID}
	require.NoError(t, db.Create(&f.alice).Error)
	require.NoError(t, db.Create(&f.bob).Error)

	f.charlie = models.Student{Name: "Charlie", Email: "charlie@example.edu", RollNumber: "CS001", DepartmentID: f.cse.ID}
	f.dana = models.Student{Name: "Dana", Email: "dana@example.edu", RollNumber: "EC001", DepartmentID: f.ece.ID}
	require.NoError(t, db.Create(&f.charlie).Error)
	require.NoError(t, db.Create(&f.dana).Error)

	return f
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint { return &v }

func TestRecordQueryBuilderScopesFacultyByDepartment(t *testing.T) {
	f := setupReportDB(t)
	repo := NewReportRepository(f.db)
	builder := NewRecordQueryBuilder(NewDirectoryRepository(f.db))

	require.NoError(t, f.db.Create(&models.ResearchPublication{FacultyID: f.alice.ID, Title: "In window", PublicationDate: date(2023, time.September, 1)}).Error)
	require.NoError(t, f.db.Create(&models.ResearchPublication{FacultyID: f.alice.ID, Title: "Before window", PublicationDate: date(2023, time.May, 20)}).Error)
	require.NoError(t, f.db.Create(&models.ResearchPublication{FacultyID: f.bob.ID, Title: "Other department", PublicationDate: date(2023, time.October, 1)}).Error)

	scope, err := builder.Scope(context.Background(), uintPtr(f.cse.ID), "2023-2024")
	require.NoError(t, err)
	require.Equal(t, []uint{f.alice.ID}, scope.FacultyIDs)
	require.Equal(t, "Computer Science", scope.DepartmentName)

	filter, err := builder.Filter(report.SectionResearch, scope)
	require.NoError(t, err)
	records, err := repo.ListPublications(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "In window", records[0].Title)
	require.Equal(t, "Computer Science", records[0].Faculty.Department.Name)

	unscoped, err := builder.Scope(context.Background(), nil, "all")
	require.NoError(t, err)
	filter, err = builder.Filter(report.SectionResearch, unscoped)
	require.NoError(t, err)
	require.False(t, filter.Scoped)
	records, err = repo.ListPublications(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, records, 3)
}

func TestRecordQueryBuilderUsesLabelEqualityForCourses(t *testing.T) {
	f := setupReportDB(t)
	repo := NewReportRepository(f.db)
	builder := NewRecordQueryBuilder(NewDirectoryRepository(f.db))

	require.NoError(t, f.db.Create(&models.CourseTaught{FacultyID: f.alice.ID, CourseName: "Compilers", AcademicYear: "2023-2024", CreatedAt: date(2022, time.January, 1)}).Error)
	require.NoError(t, f.db.Create(&models.CourseTaught{FacultyID: f.alice.ID, CourseName: "Databases", AcademicYear: "2022-2023", CreatedAt: date(2023, time.September, 1)}).Error)

	scope, err := builder.Scope(context.Background(), nil, "2023-2024")
	require.NoError(t, err)
	filter, err := builder.Filter(report.SectionCourses, scope)
	require.NoError(t, err)
	require.Empty(t, filter.DateColumn)
	require.Nil(t, filter.Range)
	require.Equal(t, "2023-2024", filter.Label)

	records, err := repo.ListCourses(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Compilers", records[0].CourseName)
}

func TestRecordQueryBuilderAppliesDocumentDiscriminator(t *testing.T) {
	f := setupReportDB(t)
	repo := NewReportRepository(f.db)
	builder := NewRecordQueryBuilder(NewDirectoryRepository(f.db))

	docs := []models.StudentDocument{
		{StudentID: f.charlie.ID, DocumentType: models.DocumentTypeAchievement, Title: "Hackathon winner"},
		{StudentID: f.charlie.ID, DocumentType: models.DocumentTypePlacement, Title: "Offer letter"},
		{StudentID: f.charlie.ID, DocumentType: models.DocumentTypeInternship, Title: "Summer intern"},
		{StudentID: f.dana.ID, DocumentType: models.DocumentTypeHigherStudies, Title: "MS admit"},
	}
	require.NoError(t, f.db.Create(&docs).Error)

	scope, err := builder.Scope(context.Background(), nil, "")
	require.NoError(t, err)

	cases := map[report.SectionKey][]string{
		report.SectionAchievements: {"Hackathon winner"},
		report.SectionInternships:  {"Summer intern"},
		report.SectionCareer:       {"Offer letter", "MS admit"},
	}
	for section, expected := range cases {
		filter, err := builder.Filter(section, scope)
		require.NoError(t, err)
		records, err := repo.ListStudentDocuments(context.Background(), filter)
		require.NoError(t, err)

		titles := make([]string, 0, len(records))
		for _, record := range records {
			titles = append(titles, record.Title)
		}
		require.ElementsMatch(t, expected, titles, section)
	}

	scoped, err := builder.Scope(context.Background(), uintPtr(f.ece.ID), "")
	require.NoError(t, err)
	filter, err := builder.Filter(report.SectionCareer, scoped)
	require.NoError(t, err)
	records, err := repo.ListStudentDocuments(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Dana", records[0].Student.Name)
	require.Equal(t, "Electronics", records[0].Student.Department.Name)
}

func TestRecordQueryBuilderScopesInstitutionalEventsDirectly(t *testing.T) {
	f := setupReportDB(t)
	repo := NewReportRepository(f.db)
	builder := NewRecordQueryBuilder(NewDirectoryRepository(f.db))

	require.NoError(t, f.db.Create(&models.InstitutionalEvent{EventName: "Tech Fest", AcademicYear: "2023-2024", DepartmentID: uintPtr(f.cse.ID)}).Error)
	require.NoError(t, f.db.Create(&models.InstitutionalEvent{EventName: "Robotics Expo", AcademicYear: "2023-2024", DepartmentID: uintPtr(f.ece.ID)}).Error)
	require.NoError(t, f.db.Create(&models.InstitutionalEvent{EventName: "Orientation", AcademicYear: "2023-2024"}).Error)

	scope, err := builder.Scope(context.Background(), uintPtr(f.cse.ID), "2023-2024")
	require.NoError(t, err)
	filter, err := builder.Filter(report.SectionInstitutionalEvents, scope)
	require.NoError(t, err)
	require.Equal(t, []uint{f.cse.ID}, filter.OwnerIDs)

	records, err := repo.ListInstitutionalEvents(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Department)
	require.Equal(t, "Computer Science", records[0].Department.Name)
}

func TestRecordFilterEmptyOwnerSetSkipsQuery(t *testing.T) {
	f := setupReportDB(t)
	repo := NewReportRepository(f.db)

	empty := models.Department{Name: "Mathematics", Code: "MAT"}
	require.NoError(t, f.db.Create(&empty).Error)
	require.NoError(t, f.db.Create(&models.ResearchPublication{FacultyID: f.alice.ID, Title: "Paper", PublicationDate: date(2023, time.July, 1)}).Error)

	builder := NewRecordQueryBuilder(NewDirectoryRepository(f.db))
	scope, err := builder.Scope(context.Background(), uintPtr(empty.ID), "")
	require.NoError(t, err)

	filter, err := builder.Filter(report.SectionResearch, scope)
	require.NoError(t, err)
	require.True(t, filter.Empty())

	records, err := repo.ListPublications(context.Background(), filter)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestRecordQueryBuilderSharesScopeAcrossSections(t *testing.T) {
	f := setupReportDB(t)
	builder := NewRecordQueryBuilder(NewDirectoryRepository(f.db))

	scope, err := builder.Scope(context.Background(), uintPtr(f.cse.ID), "2023-2024")
	require.NoError(t, err)

	variant, err := report.LookupVariant("comprehensive")
	require.NoError(t, err)
	for _, section := range variant.Sections {
		filter, err := builder.Filter(section, scope)
		require.NoError(t, err)
		require.True(t, filter.Scoped, section)
		if filter.DateColumn != "" {
			require.Equal(t, scope.Range, filter.Range, section)
			require.Empty(t, filter.Label, section)
		} else {
			require.Equal(t, "2023-2024", filter.Label, section)
			require.Nil(t, filter.Range, section)
		}
	}
}

type failingMembers struct{}

func (failingMembers) Members(context.Context, uint) (Membership, error) {
	return Membership{}, fmt.Errorf("directory offline")
}

func TestRecordQueryBuilderWrapsLookupFailure(t *testing.T) {
	builder := NewRecordQueryBuilder(failingMembers{})
	_, err := builder.Scope(context.Background(), uintPtr(1), "2023-2024")
	require.ErrorIs(t, err, report.ErrUpstreamLookup)

	_, err = builder.Filter(report.SectionKey("sports"), QueryScope{})
	require.ErrorIs(t, err, report.ErrInvalidRequest)
}

func TestRecordQueryBuilderReportsUnknownDepartment(t *testing.T) {
	f := setupReportDB(t)
	builder := NewRecordQueryBuilder(NewDirectoryRepository(f.db))

	_, err := builder.Scope(context.Background(), uintPtr(9999), "2023-2024")
	require.ErrorIs(t, err, report.ErrNotFound)
	require.NotErrorIs(t, err, report.ErrUpstreamLookup)
}

func TestDirectoryMembersReadsNameAndBothSets(t *testing.T) {
	f := setupReportDB(t)

	members, err := NewDirectoryRepository(f.db).Members(context.Background(), f.cse.ID)
	require.NoError(t, err)
	require.Equal(t, Membership{
		DepartmentID: f.cse.ID,
		Name:         "Computer Science",
		FacultyIDs:   []uint{f.alice.ID},
		StudentIDs:   []uint{f.charlie.ID},
	}, members)
}
