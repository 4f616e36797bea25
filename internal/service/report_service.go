package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/iqac-report-api/internal/dto"
	"github.com/noah-isme/iqac-report-api/internal/models"
	"github.com/noah-isme/iqac-report-api/internal/observability"
	"github.com/noah-isme/iqac-report-api/internal/report"
	"github.com/noah-isme/iqac-report-api/internal/repository"
)

// DepartmentDirectory lists departments for the picker endpoint.
type DepartmentDirectory interface {
	List(ctx context.Context) ([]models.Department, error)
}

// Artifact is a rendered report ready to stream.
type Artifact struct {
	ID           string
	Filename     string
	ContentType  string
	Format       report.Format
	ActivityType report.ActivityType
	AcademicYear string
	Department   string
	Body         []byte
	Rows         int
	Sections     int
}

// ReportService generates IQAC reports.
type ReportService interface {
	ActivityTypes() []dto.ActivityTypeResponse
	Departments(ctx context.Context) ([]dto.DepartmentResponse, error)
	Summary(ctx context.Context, req report.Request) (dto.ReportSummaryResponse, error)
	Generate(ctx context.Context, req report.Request, actor ActivityActor) (Artifact, error)
}

// ReportServiceConfig carries the banner text and limits of report generation.
type ReportServiceConfig struct {
	Institution string
	Subtitle    string
	Timeout     time.Duration
}

type reportService struct {
	departments DepartmentDirectory
	builder     *repository.RecordQueryBuilder
	aggregator  ReportAggregator
	renderers   map[report.Format]report.Renderer
	recorder    ActivityRecorder
	events      ReportEventPublisher
	cfg         ReportServiceConfig
	now         func() time.Time
	tracer      trace.Tracer
	logger      zerolog.Logger
}

// NewReportService constructs the report orchestrator. recorder and events may be nil.
func NewReportService(
	departments DepartmentDirectory,
	builder *repository.RecordQueryBuilder,
	aggregator ReportAggregator,
	renderers []report.Renderer,
	recorder ActivityRecorder,
	events ReportEventPublisher,
	cfg ReportServiceConfig,
	logger zerolog.Logger,
) ReportService {
	registry := make(map[report.Format]report.Renderer, len(renderers))
	for _, renderer := range renderers {
		registry[renderer.Format()] = renderer
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}

	return &reportService{
		departments: departments,
		builder:     builder,
		aggregator:  aggregator,
		renderers:   registry,
		recorder:    recorder,
		events:      events,
		cfg:         cfg,
		now:         time.Now,
		tracer:      otel.Tracer("github.com/noah-isme/iqac-report-api/internal/service/report"),
		logger:      logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) ActivityTypes() []dto.ActivityTypeResponse {
	variants := report.Variants()
	out := make([]dto.ActivityTypeResponse, 0, len(variants))
	for _, variant := range variants {
		out = append(out, dto.NewActivityTypeResponse(variant))
	}
	return out
}

func (s *reportService) Departments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: departments: %v", report.ErrUpstreamLookup, err)
	}
	out := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		out = append(out, dto.DepartmentResponse{ID: department.ID, Name: department.Name, Code: department.Code})
	}
	return out, nil
}

func (s *reportService) Summary(ctx context.Context, req report.Request) (dto.ReportSummaryResponse, error) {
	variant, err := report.LookupVariant(req.ActivityType)
	if err != nil {
		return dto.ReportSummaryResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	doc, err := s.document(ctx, variant, req)
	if err != nil {
		return dto.ReportSummaryResponse{}, err
	}

	summary := dto.ReportSummaryResponse{
		ActivityType: string(doc.ActivityType),
		Title:        doc.Title,
		AcademicYear: doc.AcademicYear,
		Department:   doc.Department,
		TotalRows:    doc.TotalRows(),
		Sections:     make([]dto.ReportSectionSummary, 0, len(doc.Sections)),
	}
	for _, section := range doc.Sections {
		summary.Sections = append(summary.Sections, dto.ReportSectionSummary{
			Key:   string(section.Key),
			Title: section.Title,
			Rows:  len(section.Rows),
		})
	}
	return summary, nil
}

func (s *reportService) Generate(ctx context.Context, req report.Request, actor ActivityActor) (Artifact, error) {
	start := s.now()

	variant, err := report.LookupVariant(req.ActivityType)
	if err != nil {
		return Artifact{}, err
	}
	format, err := report.ParseFormat(string(req.Format))
	if err != nil {
		return Artifact{}, err
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: no renderer for %s", report.ErrInvalidRequest, format)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "report.generate", trace.WithAttributes(
		attribute.String("report.activity_type", string(variant.Type)),
		attribute.String("report.format", string(format)),
	))
	defer span.End()

	artifact, err := s.generate(ctx, variant, format, renderer, req)
	outcome := outcomeLabel(err)
	observability.ReportsGenerated().WithLabelValues(string(variant.Type), string(format), outcome).Inc()
	observability.ReportDuration().WithLabelValues(string(variant.Type), string(format)).Observe(s.now().Sub(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		s.logger.Warn().Err(err).
			Str("activity_type", string(variant.Type)).
			Str("format", string(format)).
			Str("outcome", outcome).
			Msg("report generation failed")
		return Artifact{}, err
	}

	observability.ReportRows().WithLabelValues(string(variant.Type)).Add(float64(artifact.Rows))
	span.SetAttributes(attribute.Int("report.rows", artifact.Rows), attribute.Int("report.bytes", len(artifact.Body)))

	s.audit(ctx, artifact, req, actor)

	s.logger.Info().
		Str("report_id", artifact.ID).
		Str("activity_type", string(variant.Type)).
		Str("format", string(format)).
		Int("rows", artifact.Rows).
		Int("bytes", len(artifact.Body)).
		Dur("duration", s.now().Sub(start)).
		Msg("report generated")

	return artifact, nil
}

func (s *reportService) generate(ctx context.Context, variant report.Variant, format report.Format, renderer report.Renderer, req report.Request) (Artifact, error) {
	doc, err := s.document(ctx, variant, req)
	if err != nil {
		return Artifact{}, err
	}

	body, err := renderer.Render(ctx, doc)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		ID:           uuid.NewString(),
		Filename:     report.Filename(doc, format, s.now()),
		ContentType:  renderer.ContentType(),
		Format:       format,
		ActivityType: variant.Type,
		AcademicYear: doc.AcademicYear,
		Department:   doc.Department,
		Body:         body,
		Rows:         doc.TotalRows(),
		Sections:     len(doc.Sections),
	}, nil
}

// document resolves the banner, scopes and aggregates the records, and drops unrenderable rows.
func (s *reportService) document(ctx context.Context, variant report.Variant, req report.Request) (report.Document, error) {
	header := report.Header{
		Institution:  s.cfg.Institution,
		Subtitle:     s.cfg.Subtitle,
		AcademicYear: report.AcademicYearLabel(req.AcademicYear),
		Department:   report.AllDepartmentsLabel,
	}

	scope, err := s.builder.Scope(ctx, req.DepartmentID, req.AcademicYear)
	if err != nil {
		return report.Document{}, err
	}
	if req.DepartmentID != nil {
		header.Department = scope.DepartmentName
	}

	result, err := s.aggregator.Aggregate(ctx, variant, scope)
	if err != nil {
		return report.Document{}, err
	}

	doc := report.BuildDocument(result, header, req.DepartmentID != nil)
	if len(doc.Sections) == 0 {
		return report.Document{}, fmt.Errorf("%w: %s has no renderable rows", report.ErrNotFound, variant.Type)
	}
	return doc, nil
}

func (s *reportService) audit(ctx context.Context, artifact Artifact, req report.Request, actor ActivityActor) {
	metadata := map[string]interface{}{
		"report_id":     artifact.ID,
		"activity_type": string(artifact.ActivityType),
		"format":        string(artifact.Format),
		"academic_year": artifact.AcademicYear,
		"rows":          artifact.Rows,
		"filename":      artifact.Filename,
	}
	if req.DepartmentID != nil {
		metadata["department_id"] = *req.DepartmentID
	}

	if s.recorder != nil {
		if _, err := s.recorder.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "report.generated",
			EntityType: "report",
			EntityID:   req.DepartmentID,
			Metadata:   metadata,
		}); err != nil {
			s.logger.Warn().Err(err).Str("report_id", artifact.ID).Msg("failed to record report audit entry")
		}
	}

	if s.events != nil {
		event := ReportEvent{
			ID:            artifact.ID,
			ActivityType:  string(artifact.ActivityType),
			Format:        string(artifact.Format),
			AcademicYear:  artifact.AcademicYear,
			DepartmentID:  req.DepartmentID,
			Department:    artifact.Department,
			ActorID:       actor.ID,
			ActorRole:     normalizeRole(actor.Role),
			Rows:          artifact.Rows,
			Sections:      artifact.Sections,
			Filename:      artifact.Filename,
			CorrelationID: observability.CorrelationID(ctx),
			GeneratedAt:   s.now().UTC(),
		}
		if err := s.events.Publish(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("report_id", artifact.ID).Msg("failed to publish report event")
		}
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, report.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, report.ErrNotFound):
		return "not_found"
	case errors.Is(err, report.ErrUpstreamLookup):
		return "upstream_lookup"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "render_failure"
	}
}
