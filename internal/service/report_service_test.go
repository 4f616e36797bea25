package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/iqac-report-api/internal/models"
	"github.com/noah-isme/iqac-report-api/internal/observability"
	"github.com/noah-isme/iqac-report-api/internal/render/document"
	"github.com/noah-isme/iqac-report-api/internal/render/workbook"
	"github.com/noah-isme/iqac-report-api/internal/report"
	"github.com/noah-isme/iqac-report-api/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ReportEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event ReportEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type reportHarness struct {
	fixture   serviceFixture
	service   ReportService
	activity  *memoryActivityRepo
	publisher *recordingPublisher
}

func newReportHarness(t *testing.T) reportHarness {
	t.Helper()
	f := setupServiceDB(t)
	_, client := setupRedis(t)

	departments := NewDepartmentCache(repository.NewDirectoryRepository(f.db), client, time.Minute, testLogger())
	builder := repository.NewRecordQueryBuilder(departments)
	aggregator := NewReportAggregator(repository.NewReportRepository(f.db), builder, nil, testLogger())
	activity := &memoryActivityRepo{}
	publisher := &recordingPublisher{}
	pdf, err := document.NewRenderer(document.Options{}, testLogger())
	require.NoError(t, err)

	svc := NewReportService(
		departments,
		builder,
		aggregator,
		[]report.Renderer{
			pdf,
			workbook.NewRenderer(testLogger()),
		},
		NewActivityService(activity, testLogger()),
		publisher,
		ReportServiceConfig{Institution: "Test Institute of Technology", Subtitle: "Internal Quality Assurance Cell", Timeout: 10 * time.Second},
		testLogger(),
	)

	return reportHarness{fixture: f, service: svc, activity: activity, publisher: publisher}
}

func TestGenerateResearchWorkbookForDepartment(t *testing.T) {
	h := newReportHarness(t)
	f := h.fixture
	f.seedPublications(t, f.alice, 5, day(2023, time.September, 1))
	f.seedPublications(t, f.bob, 3, day(2023, time.September, 1))

	ctx := observability.WithCorrelationID(context.Background(), "corr-research")
	artifact, err := h.service.Generate(ctx, report.Request{
		ActivityType: "research",
		AcademicYear: "2023-2024",
		DepartmentID: uintPtr(f.cse.ID),
		Format:       report.FormatXLSX,
	}, ActivityActor{ID: 9, Role: "iqac"})
	require.NoError(t, err)
	require.Equal(t, workbook.ContentType, artifact.ContentType)
	require.Regexp(t, `^IQAC_research_2023-2024_\d+\.xlsx$`, artifact.Filename)
	require.Equal(t, 5, artifact.Rows)
	require.Equal(t, "Computer Science", artifact.Department)

	book, err := excelize.OpenReader(bytes.NewReader(artifact.Body))
	require.NoError(t, err)
	defer func() { _ = book.Close() }()
	require.Equal(t, []string{"Research Publications"}, book.GetSheetList())

	rows, err := book.GetRows("Research Publications")
	require.NoError(t, err)
	require.Len(t, rows[5:], 6, "header plus five data rows after the banner")
	require.NotContains(t, rows[5], "Department")

	entries := h.activity.snapshot()
	require.Len(t, entries, 1)
	require.Equal(t, "report.generated", entries[0].Action)
	require.Equal(t, "research", entries[0].Metadata["activity_type"])
	require.Equal(t, "corr-research", entries[0].CorrelationID)

	require.Len(t, h.publisher.events, 1)
	require.Equal(t, artifact.ID, h.publisher.events[0].ID)
	require.Equal(t, "Computer Science", h.publisher.events[0].Department)
	require.Equal(t, "corr-research", h.publisher.events[0].CorrelationID)
}

func TestGenerateComprehensivePDF(t *testing.T) {
	h := newReportHarness(t)
	f := h.fixture
	f.seedPublications(t, f.alice, 2, day(2023, time.September, 1))
	require.NoError(t, f.db.Create(&models.StudentDocument{
		StudentID: f.dan.ID, DocumentType: models.DocumentTypeHigherStudies, Title: "MS admit", Organization: "State University",
	}).Error)

	artifact, err := h.service.Generate(context.Background(), report.Request{
		ActivityType: "comprehensive",
		Format:       report.FormatPDF,
	}, ActivityActor{ID: 1, Role: "admin"})
	require.NoError(t, err)
	require.Equal(t, document.ContentType, artifact.ContentType)
	require.Regexp(t, `^Comprehensive_IQAC_Report_\d+\.pdf$`, artifact.Filename)
	require.Equal(t, 2, artifact.Sections)
	require.True(t, bytes.HasPrefix(artifact.Body, []byte("%PDF")))
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	h := newReportHarness(t)

	_, err := h.service.Generate(context.Background(), report.Request{ActivityType: "sports"}, ActivityActor{})
	require.ErrorIs(t, err, report.ErrInvalidRequest)

	_, err = h.service.Generate(context.Background(), report.Request{ActivityType: "research", Format: "docx"}, ActivityActor{})
	require.ErrorIs(t, err, report.ErrInvalidRequest)
	require.Empty(t, h.activity.snapshot())
}

func TestGenerateEmptyReportIsNotFound(t *testing.T) {
	h := newReportHarness(t)

	_, err := h.service.Generate(context.Background(), report.Request{
		ActivityType: "courses",
		AcademicYear: "2023-2024",
		Format:       report.FormatXLSX,
	}, ActivityActor{ID: 1, Role: "admin"})
	require.ErrorIs(t, err, report.ErrNotFound)
	require.Empty(t, h.publisher.events)
}

func TestGenerateUnknownDepartmentIsNotFound(t *testing.T) {
	h := newReportHarness(t)

	_, err := h.service.Generate(context.Background(), report.Request{
		ActivityType: "research",
		DepartmentID: uintPtr(404),
	}, ActivityActor{ID: 1, Role: "admin"})
	require.ErrorIs(t, err, report.ErrNotFound)
}

func TestGenerateDropsIncompleteInstitutionalEvents(t *testing.T) {
	h := newReportHarness(t)
	f := h.fixture
	events := []models.InstitutionalEvent{
		{EventName: "Orientation", AcademicYear: "2023-2024", DepartmentID: uintPtr(f.cse.ID), StartDate: day(2023, time.August, 1)},
		{EventName: "", AcademicYear: "2023-2024", DepartmentID: uintPtr(f.cse.ID), StartDate: day(2023, time.August, 2)},
		{EventName: "Tech Fest", AcademicYear: "2023-2024", DepartmentID: uintPtr(f.ece.ID), StartDate: day(2024, time.February, 2)},
	}
	require.NoError(t, f.db.Create(&events).Error)

	artifact, err := h.service.Generate(context.Background(), report.Request{
		ActivityType: "institutional-events",
		AcademicYear: "2023-2024",
		Format:       report.FormatXLSX,
	}, ActivityActor{ID: 1, Role: "iqac"})
	require.NoError(t, err)
	require.Equal(t, len(events)-1, artifact.Rows)
}

func TestGenerateSurvivesAuditFailures(t *testing.T) {
	h := newReportHarness(t)
	h.fixture.seedPublications(t, h.fixture.alice, 1, day(2023, time.September, 1))
	h.activity.err = errors.New("database unavailable")
	h.publisher.err = errors.New("nats unavailable")

	artifact, err := h.service.Generate(context.Background(), report.Request{ActivityType: "research"}, ActivityActor{ID: 1, Role: "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, artifact.Body)
}

func TestSummaryCountsSections(t *testing.T) {
	h := newReportHarness(t)
	f := h.fixture
	f.seedPublications(t, f.alice, 3, day(2023, time.September, 1))

	summary, err := h.service.Summary(context.Background(), report.Request{ActivityType: "all-faculty", AcademicYear: "2023-2024"})
	require.NoError(t, err)
	require.Equal(t, 3, summary.TotalRows)
	require.Equal(t, "All Departments", summary.Department)
	require.Len(t, summary.Sections, 1)
	require.Equal(t, "research", summary.Sections[0].Key)
}

func TestActivityTypesAndDepartments(t *testing.T) {
	h := newReportHarness(t)

	types := h.service.ActivityTypes()
	require.Len(t, types, 11)

	departments, err := h.service.Departments(context.Background())
	require.NoError(t, err)
	require.Len(t, departments, 2)
	require.Equal(t, "Computer Science", departments[0].Name)
}
