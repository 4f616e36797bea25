package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/iqac-report-api/internal/dto"
	"github.com/noah-isme/iqac-report-api/internal/middleware"
	"github.com/noah-isme/iqac-report-api/internal/report"
	"github.com/noah-isme/iqac-report-api/internal/service"
	"github.com/noah-isme/iqac-report-api/internal/utils"
)

var errDepartmentForbidden = errors.New("role may not request reports")

// ReportHandler exposes report catalog, summary and download endpoints.
type ReportHandler struct {
	service   service.ReportService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(service service.ReportService, validate *validator.Validate, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches report routes to the router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/activity-types", h.activityTypes)
	router.Get("/departments", h.departments)
	router.Get("/summary", h.summary)
	router.Get("/download", h.download)
}

func (h *ReportHandler) activityTypes(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "report activity types", h.service.ActivityTypes())
}

func (h *ReportHandler) departments(c *fiber.Ctx) error {
	departments, err := h.service.Departments(c.UserContext())
	if err != nil {
		return h.writeError(c, err)
	}
	return utils.SendSuccess(c, "departments", departments)
}

func (h *ReportHandler) summary(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return h.writeError(c, err)
	}

	summary, err := h.service.Summary(c.UserContext(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return utils.SendSuccess(c, "report summary", summary)
}

func (h *ReportHandler) download(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return h.writeError(c, err)
	}

	artifact, err := h.service.Generate(c.UserContext(), req, activityActorFromContext(c))
	if err != nil {
		return h.writeError(c, err)
	}

	if !bodyMatches(artifact.ContentType, artifact.Body) {
		requestLogger(h.logger, c).Error().
			Str("content_type", artifact.ContentType).
			Str("detected", mimetype.Detect(artifact.Body).String()).
			Msg("rendered report does not match its content type")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to render report")
	}

	c.Attachment(artifact.Filename)
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Set("X-Report-ID", artifact.ID)
	return c.Status(fiber.StatusOK).Send(artifact.Body)
}

// parseRequest validates the query and pins hod and faculty users to their own department.
func (h *ReportHandler) parseRequest(c *fiber.Ctx) (report.Request, error) {
	var query dto.ReportQuery
	if err := c.QueryParser(&query); err != nil {
		return report.Request{}, fmt.Errorf("%w: malformed query", report.ErrInvalidRequest)
	}
	query.ActivityType = strings.TrimSpace(query.ActivityType)
	if err := h.validator.Struct(query); err != nil {
		return report.Request{}, fmt.Errorf("%w: %v", report.ErrInvalidRequest, err)
	}

	req := report.Request{
		ActivityType: query.ActivityType,
		AcademicYear: strings.TrimSpace(query.AcademicYear),
		DepartmentID: query.Department,
		Format:       report.Format(strings.ToLower(query.Format)),
	}

	role := userRoleFromContext(c)
	switch {
	case middleware.CanChooseDepartment(role):
	case role == middleware.RoleHOD || role == middleware.RoleFaculty:
		department := departmentIDFromContext(c)
		if department == 0 {
			return report.Request{}, errDepartmentForbidden
		}
		req.DepartmentID = &department
	default:
		return report.Request{}, errDepartmentForbidden
	}

	return req, nil
}

func (h *ReportHandler) writeError(c *fiber.Ctx, err error) error {
	log := requestLogger(h.logger, c)

	switch {
	case errors.Is(err, errDepartmentForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.Is(err, report.ErrInvalidRequest):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, report.ErrNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "no records found for the selected filters")
	case errors.Is(err, report.ErrUpstreamLookup):
		log.Error().Err(err).Msg("report lookup failed")
		return utils.SendError(c, fiber.StatusBadGateway, "failed to resolve report scope")
	default:
		log.Error().Err(err).Msg("report generation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate report")
	}
}

// bodyMatches sniffs the rendered bytes. XLSX is accepted when detected as any zip container.
func bodyMatches(contentType string, body []byte) bool {
	if len(body) == 0 {
		return false
	}
	for mt := mimetype.Detect(body); mt != nil; mt = mt.Parent() {
		if mt.Is(contentType) {
			return true
		}
		if mt.Is("application/zip") && strings.Contains(contentType, "openxmlformats") {
			return true
		}
	}
	return false
}
