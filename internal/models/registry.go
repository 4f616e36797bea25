package models

// All lists every model the report queries read, in dependency order.
// Test fixtures migrate the full set onto sqlite.
func All() []interface{} {
	return []interface{}{
		&Department{},
		&Faculty{},
		&Student{},
		&ResearchPublication{},
		&ProfessionalDevelopmentRecord{},
		&CourseTaught{},
		&EventOrganized{},
		&InstitutionalEvent{},
		&StudentDocument{},
		&ActivityLog{},
	}
}

// Owned lists the tables this service creates and alters. The records tables belong to
// the faculty and student portals and are only read.
func Owned() []interface{} {
	return []interface{}{
		&ActivityLog{},
	}
}
