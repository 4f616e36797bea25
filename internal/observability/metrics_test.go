package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesReportCollectors(t *testing.T) {
	ReportsGenerated().WithLabelValues("research", "pdf", "success").Inc()
	ReportDuration().WithLabelValues("research", "pdf").Observe(0.2)

	app := fiber.New()
	app.Get("/metrics", MetricsHandler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `iqac_reports_generated_total{activity_type="research",format="pdf",outcome="success"} 1`))
	require.Contains(t, string(body), "iqac_report_duration_seconds_bucket")
}
