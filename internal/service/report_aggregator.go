package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/iqac-report-api/internal/models"
	"github.com/noah-isme/iqac-report-api/internal/report"
	"github.com/noah-isme/iqac-report-api/internal/repository"
)

// ReportAggregator fetches and denormalizes the sections of a report variant.
type ReportAggregator interface {
	Aggregate(ctx context.Context, variant report.Variant, scope repository.QueryScope) (report.Result, error)
}

type reportAggregator struct {
	repo        repository.ReportRepository
	builder     *repository.RecordQueryBuilder
	attachments AttachmentResolver
	sanitizer   *bluemonday.Policy
	tracer      trace.Tracer
	logger      zerolog.Logger
}

// NewReportAggregator constructs the aggregator. A nil resolver leaves attachment references untouched.
func NewReportAggregator(repo repository.ReportRepository, builder *repository.RecordQueryBuilder, attachments AttachmentResolver, logger zerolog.Logger) ReportAggregator {
	if attachments == nil {
		attachments = passthroughAttachments{}
	}
	return &reportAggregator{
		repo:        repo,
		builder:     builder,
		attachments: attachments,
		sanitizer:   bluemonday.StrictPolicy(),
		tracer:      otel.Tracer("github.com/noah-isme/iqac-report-api/internal/service/report_aggregator"),
		logger:      logger.With().Str("component", "report_aggregator").Logger(),
	}
}

func (a *reportAggregator) Aggregate(ctx context.Context, variant report.Variant, scope repository.QueryScope) (report.Result, error) {
	ctx, span := a.tracer.Start(ctx, "report.aggregate")
	span.SetAttributes(
		attribute.String("report.activity_type", string(variant.Type)),
		attribute.Int("report.sections", len(variant.Sections)),
	)
	defer span.End()

	sections := make([]report.Section, len(variant.Sections))

	if !variant.Composite() {
		for i, key := range variant.Sections {
			section, err := a.fetchSection(ctx, key, scope)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "fetch_section_failed")
				return report.Result{}, err
			}
			sections[i] = section
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		for i, key := range variant.Sections {
			i, key := i, key
			group.Go(func() error {
				section, err := a.fetchSection(groupCtx, key, scope)
				if err != nil {
					return err
				}
				sections[i] = section
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fetch_section_failed")
			return report.Result{}, err
		}
	}

	result := report.Result{Variant: variant, Sections: sections}
	span.SetAttributes(attribute.Int("report.rows", result.TotalRows()))

	if result.TotalRows() == 0 {
		return report.Result{}, fmt.Errorf("%w: %s", report.ErrNotFound, variant.Type)
	}

	return result, nil
}

func (a *reportAggregator) fetchSection(ctx context.Context, key report.SectionKey, scope repository.QueryScope) (report.Section, error) {
	ctx, span := a.tracer.Start(ctx, "report.section")
	span.SetAttributes(attribute.String("report.section", string(key)))
	defer span.End()

	spec, ok := report.Spec(key)
	if !ok {
		return report.Section{}, fmt.Errorf("%w: unknown section %q", report.ErrInvalidRequest, key)
	}

	filter, err := a.builder.Filter(key, scope)
	if err != nil {
		return report.Section{}, err
	}

	rows, err := a.loadRows(ctx, key, filter)
	if err != nil {
		span.RecordError(err)
		a.logger.Error().Err(err).Str("section", string(key)).Msg("failed to load report section")
		return report.Section{}, fmt.Errorf("load %s: %w", key, err)
	}

	span.SetAttributes(attribute.Int("report.section_rows", len(rows)))
	return report.Section{Spec: spec, Rows: rows}, nil
}

func (a *reportAggregator) loadRows(ctx context.Context, key report.SectionKey, filter repository.RecordFilter) ([]report.Row, error) {
	switch key {
	case report.SectionResearch:
		records, err := a.repo.ListPublications(ctx, filter)
		if err != nil {
			return nil, err
		}
		return a.publicationRows(records), nil
	case report.SectionProfessionalDevelopment:
		records, err := a.repo.ListProfessionalDevelopment(ctx, filter)
		if err != nil {
			return nil, err
		}
		return a.professionalDevelopmentRows(records), nil
	case report.SectionCourses:
		records, err := a.repo.ListCourses(ctx, filter)
		if err != nil {
			return nil, err
		}
		return a.courseRows(records), nil
	case report.SectionEvents:
		records, err := a.repo.ListEvents(ctx, filter)
		if err != nil {
			return nil, err
		}
		return a.eventRows(records), nil
	case report.SectionInstitutionalEvents:
		records, err := a.repo.ListInstitutionalEvents(ctx, filter)
		if err != nil {
			return nil, err
		}
		return a.institutionalEventRows(records), nil
	case report.SectionAchievements, report.SectionCareer, report.SectionInternships:
		records, err := a.repo.ListStudentDocuments(ctx, filter)
		if err != nil {
			return nil, err
		}
		return a.studentDocumentRows(records), nil
	}
	return nil, fmt.Errorf("%w: unknown section %q", report.ErrInvalidRequest, key)
}

func (a *reportAggregator) clean(value string) string {
	return strings.TrimSpace(html.UnescapeString(a.sanitizer.Sanitize(value)))
}

func (a *reportAggregator) publicationRows(records []models.ResearchPublication) []report.Row {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].PublicationDate.Equal(records[j].PublicationDate) {
			return records[i].PublicationDate.After(records[j].PublicationDate)
		}
		return records[i].ID > records[j].ID
	})

	rows := make([]report.Row, 0, len(records))
	for _, record := range records {
		link := strings.TrimSpace(record.DOI)
		if link != "" && !strings.HasPrefix(strings.ToLower(link), "http") {
			link = "https://doi.org/" + link
		}
		if link == "" {
			link = a.attachments.URL(record.AttachmentURL)
		}
		rows = append(rows, report.PublicationRow{
			ID:          record.ID,
			Title:       a.clean(record.Title),
			Authors:     a.clean(record.Authors),
			Faculty:     record.Faculty.Name,
			Department:  record.Faculty.Department.Name,
			Type:        a.clean(record.PublicationType),
			Venue:       a.clean(record.Venue),
			Indexing:    a.clean(record.Indexing),
			PublishedOn: record.PublicationDate,
			Link:        link,
		})
	}
	return rows
}

func (a *reportAggregator) professionalDevelopmentRows(records []models.ProfessionalDevelopmentRecord) []report.Row {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].StartDate.Equal(records[j].StartDate) {
			return records[i].StartDate.After(records[j].StartDate)
		}
		return records[i].ID > records[j].ID
	})

	rows := make([]report.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, report.ProfessionalDevelopmentRow{
			ID:           record.ID,
			Faculty:      record.Faculty.Name,
			Department:   record.Faculty.Department.Name,
			Program:      a.clean(record.Title),
			Type:         a.clean(record.ProgramType),
			Organizer:    a.clean(record.Organizer),
			Mode:         a.clean(record.Mode),
			StartDate:    record.StartDate,
			EndDate:      record.EndDate,
			DurationDays: record.DurationDays(),
			Link:         a.attachments.URL(record.AttachmentURL),
		})
	}
	return rows
}

func (a *reportAggregator) courseRows(records []models.CourseTaught) []report.Row {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].AcademicYear != records[j].AcademicYear {
			return records[i].AcademicYear > records[j].AcademicYear
		}
		return records[i].ID > records[j].ID
	})

	rows := make([]report.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, report.CourseRow{
			ID:           record.ID,
			Faculty:      record.Faculty.Name,
			Department:   record.Faculty.Department.Name,
			Code:         a.clean(record.CourseCode),
			Name:         a.clean(record.CourseName),
			Semester:     a.clean(record.Semester),
			AcademicYear: record.AcademicYear,
			Credits:      record.Credits,
			Enrolled:     record.StudentsEnrolled,
			Link:         a.attachments.URL(record.AttachmentURL),
		})
	}
	return rows
}

func (a *reportAggregator) eventRows(records []models.EventOrganized) []report.Row {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].StartDate.Equal(records[j].StartDate) {
			return records[i].StartDate.After(records[j].StartDate)
		}
		return records[i].ID > records[j].ID
	})

	rows := make([]report.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, report.EventRow{
			ID:           record.ID,
			Event:        a.clean(record.Title),
			Type:         a.clean(record.EventType),
			Faculty:      record.Faculty.Name,
			Department:   record.Faculty.Department.Name,
			Role:         a.clean(record.Role),
			StartDate:    record.StartDate,
			EndDate:      record.EndDate,
			Participants: record.Participants,
			Link:         a.attachments.URL(record.AttachmentURL),
		})
	}
	return rows
}

func (a *reportAggregator) institutionalEventRows(records []models.InstitutionalEvent) []report.Row {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].StartDate.Equal(records[j].StartDate) {
			return records[i].StartDate.After(records[j].StartDate)
		}
		return records[i].ID > records[j].ID
	})

	rows := make([]report.Row, 0, len(records))
	for _, record := range records {
		department := ""
		if record.Department != nil {
			department = record.Department.Name
		}
		rows = append(rows, report.InstitutionalEventRow{
			ID:           record.ID,
			AcademicYear: record.AcademicYear,
			EventName:    a.clean(record.EventName),
			Department:   department,
			Participants: record.Participants,
			StartDate:    record.StartDate,
			EndDate:      record.EndDate,
			Link:         a.attachments.URL(record.ExternalLink),
		})
	}
	return rows
}

func (a *reportAggregator) studentDocumentRows(records []models.StudentDocument) []report.Row {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID > records[j].ID
	})

	rows := make([]report.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, report.StudentDocumentRow{
			ID:           record.ID,
			Student:      record.Student.Name,
			RollNumber:   record.Student.RollNumber,
			Department:   record.Student.Department.Name,
			DocumentType: record.DocumentType,
			Title:        a.clean(record.Title),
			Organization: a.clean(record.Organization),
			Detail:       a.clean(record.Detail),
			Date:         record.EventDate,
			CreatedAt:    record.CreatedAt,
			Link:         a.attachments.URL(record.AttachmentURL),
		})
	}
	return rows
}
