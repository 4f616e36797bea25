package report

import (
	"strconv"
	"strings"
	"time"
)

// AllYearsLabel is used in banners and filenames when no academic year filter applies.
const AllYearsLabel = "All"

// YearRange is the June 1 – May 31 reporting window of one academic year.
type YearRange struct {
	Label string
	Start time.Time
	End   time.Time
}

// ParseAcademicYear converts a "YYYY-YYYY" label into its date window.
// Empty, "all" and malformed input return ok=false, meaning the date filter is omitted.
func ParseAcademicYear(value string) (YearRange, bool) {
	label := strings.TrimSpace(value)
	if label == "" || strings.EqualFold(label, "all") {
		return YearRange{}, false
	}

	parts := strings.Split(label, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return YearRange{}, false
	}

	first, err := strconv.Atoi(parts[0])
	if err != nil || first <= 0 {
		return YearRange{}, false
	}
	second, err := strconv.Atoi(parts[1])
	if err != nil || second != first+1 {
		return YearRange{}, false
	}

	return YearRange{
		Label: label,
		Start: time.Date(first, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(second, time.May, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC),
	}, true
}

// AcademicYearLabel returns the normalized label for banners: the year itself or "All".
func AcademicYearLabel(value string) string {
	if r, ok := ParseAcademicYear(value); ok {
		return r.Label
	}
	return AllYearsLabel
}
