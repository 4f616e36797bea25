package report

import (
	"fmt"
	"strings"
	"time"
)

// Filename builds the download name for an artifact. Timestamps keep repeated downloads
// from colliding in client caches.
func Filename(doc Document, format Format, at time.Time) string {
	switch format {
	case FormatXLSX:
		return fmt.Sprintf("IQAC_%s_%s_%d.xlsx", doc.ActivityType, doc.AcademicYear, at.Unix())
	default:
		title := strings.Join(strings.Fields(doc.Title), "_")
		return fmt.Sprintf("%s_%d.%s", title, at.Unix(), FormatPDF)
	}
}
