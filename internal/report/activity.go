package report

import (
	"fmt"
	"strings"
)

// ActivityType is the requested report kind.
type ActivityType string

// The eleven supported activity types.
const (
	ActivityResearch                ActivityType = "research"
	ActivityProfessionalDevelopment ActivityType = "professional-development"
	ActivityCourses                 ActivityType = "courses"
	ActivityEvents                  ActivityType = "events"
	ActivityInstitutionalEvents     ActivityType = "institutional-events"
	ActivityAchievements            ActivityType = "achievements"
	ActivityCareer                  ActivityType = "career"
	ActivityInternships             ActivityType = "internships"
	ActivityAllFaculty              ActivityType = "all-faculty"
	ActivityAllStudent              ActivityType = "all-student"
	ActivityComprehensive           ActivityType = "comprehensive"
)

// SectionKey identifies one underlying entity listing inside a report.
type SectionKey string

// Section keys, one per entity listing.
const (
	SectionResearch                SectionKey = "research"
	SectionProfessionalDevelopment SectionKey = "professional-development"
	SectionCourses                 SectionKey = "courses"
	SectionEvents                  SectionKey = "events"
	SectionInstitutionalEvents     SectionKey = "institutional-events"
	SectionAchievements            SectionKey = "achievements"
	SectionCareer                  SectionKey = "career"
	SectionInternships             SectionKey = "internships"
)

// Variant describes how one activity type is assembled: its title and the sections it merges.
type Variant struct {
	Type     ActivityType
	Title    string
	Sections []SectionKey
}

// Composite reports merge more than one section and carry a table of contents.
func (v Variant) Composite() bool {
	return len(v.Sections) > 1
}

var variants = []Variant{
	{Type: ActivityResearch, Title: "Research Publications", Sections: []SectionKey{SectionResearch}},
	{Type: ActivityProfessionalDevelopment, Title: "Professional Development Programs", Sections: []SectionKey{SectionProfessionalDevelopment}},
	{Type: ActivityCourses, Title: "Courses Taught", Sections: []SectionKey{SectionCourses}},
	{Type: ActivityEvents, Title: "Events Organized", Sections: []SectionKey{SectionEvents}},
	{Type: ActivityInstitutionalEvents, Title: "Institutional Events", Sections: []SectionKey{SectionInstitutionalEvents}},
	{Type: ActivityAchievements, Title: "Student Achievements", Sections: []SectionKey{SectionAchievements}},
	{Type: ActivityCareer, Title: "Career Progression", Sections: []SectionKey{SectionCareer}},
	{Type: ActivityInternships, Title: "Student Internships", Sections: []SectionKey{SectionInternships}},
	{Type: ActivityAllFaculty, Title: "All Faculty Activities", Sections: []SectionKey{
		SectionResearch, SectionProfessionalDevelopment, SectionCourses, SectionEvents,
	}},
	{Type: ActivityAllStudent, Title: "All Student Activities", Sections: []SectionKey{
		SectionAchievements, SectionCareer, SectionInternships,
	}},
	{Type: ActivityComprehensive, Title: "Comprehensive IQAC Report", Sections: []SectionKey{
		SectionResearch, SectionProfessionalDevelopment, SectionCourses, SectionEvents,
		SectionInstitutionalEvents, SectionAchievements, SectionCareer,
	}},
}

var variantIndex = func() map[ActivityType]Variant {
	index := make(map[ActivityType]Variant, len(variants))
	for _, v := range variants {
		index[v.Type] = v
	}
	return index
}()

// Variants lists every supported activity type in a stable order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// LookupVariant resolves a raw activity type. Unknown values wrap ErrInvalidRequest.
func LookupVariant(raw string) (Variant, error) {
	normalized := ActivityType(strings.ToLower(strings.TrimSpace(raw)))
	v, ok := variantIndex[normalized]
	if !ok {
		return Variant{}, fmt.Errorf("%w: unsupported activity type %q", ErrInvalidRequest, raw)
	}
	return v, nil
}
