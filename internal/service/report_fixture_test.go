package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/iqac-report-api/internal/models"
)

type serviceFixture struct {
	db    *gorm.DB
	cse   models.Department
	ece   models.Department
	alice models.Faculty
	bob   models.Faculty
	carol models.Student
	dan   models.Student
}

func setupServiceDB(t *testing.T) serviceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	f := serviceFixture{db: db}
	f.cse = models.Department{Name: "Computer Science", Code: "CSE"}
	f.ece = models.Department{Name: "Electronics", Code: "ECE"}
	require.NoError(t, db.Create(&f.cse).Error)
	require.NoError(t, db.Create(&f.ece).Error)

	f.alice = models.Faculty{Name: "Alice", Email: "alice@example.edu", DepartmentID: f.cse.ID}
	f.bob = models.Faculty{Name: "Bob", Email: "bob@example.edu", DepartmentID: f.ece.ID}
	require.NoError(t, db.Create(&f.alice).Error)
	require.NoError(t, db.Create(&f.bob).Error)

	f.carol = models.Student{Name: "Carol", Email: "carol@example.edu", RollNumber: "CS001", DepartmentID: f.cse.ID}
	f.dan = models.Student{Name: "Dan", Email: "dan@example.edu", RollNumber: "EC001", DepartmentID: f.ece.ID}
	require.NoError(t, db.Create(&f.carol).Error)
	require.NoError(t, db.Create(&f.dan).Error)

	return f
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint { return &v }

func (f serviceFixture) seedPublications(t *testing.T, faculty models.Faculty, n int, at time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.db.Create(&models.ResearchPublication{
			FacultyID:       faculty.ID,
			Title:           fmt.Sprintf("%s paper %d", faculty.Name, i+1),
			Authors:         faculty.Name,
			PublicationType: "Journal",
			Venue:           "IEEE Access",
			Indexing:        "Scopus",
			PublicationDate: at.AddDate(0, 0, i),
		}).Error)
	}
}
