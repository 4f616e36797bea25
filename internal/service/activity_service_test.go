package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/iqac-report-api/internal/dto"
	"github.com/noah-isme/iqac-report-api/internal/models"
	"github.com/noah-isme/iqac-report-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type memoryActivityRepo struct {
	mu      sync.Mutex
	entries []models.ActivityLog
	err     error
}

func (m *memoryActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	entry.ID = uint(len(m.entries) + 1)
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryActivityRepo) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ActivityLog(nil), m.entries...), int64(len(m.entries)), nil
}

func (m *memoryActivityRepo) snapshot() []models.ActivityLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ActivityLog(nil), m.entries...)
}

func TestActivityServiceRecordMasksEmail(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := NewActivityService(repo, testLogger())

	entry, err := svc.Record(context.Background(), ActivityEntry{
		ActorID:    1,
		ActorRole:  "IQAC",
		Action:     "Report.Generated",
		EntityType: "report",
		Metadata: map[string]interface{}{
			"requested_by_email": "coordinator@example.edu",
			"activity_type":      "research",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "***", entry.Metadata["requested_by_email"])
	require.Equal(t, "research", entry.Metadata["activity_type"])
	require.Equal(t, "iqac", entry.ActorRole)
	require.Equal(t, "report.generated", entry.Action)
}

func TestActivityServiceRecordRequiresAction(t *testing.T) {
	svc := NewActivityService(&memoryActivityRepo{}, testLogger())

	_, err := svc.Record(context.Background(), ActivityEntry{EntityType: "report"})
	require.Error(t, err)
}

func TestActivityServiceListPaginates(t *testing.T) {
	repo := &memoryActivityRepo{}
	svc := NewActivityService(repo, testLogger())
	for i := 0; i < 3; i++ {
		_, err := svc.Record(context.Background(), ActivityEntry{ActorID: 1, Action: "report.generated", EntityType: "report"})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), dto.ActivityListRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	require.Equal(t, int64(3), list.Pagination.TotalItems)
	require.Equal(t, 2, list.Pagination.TotalPages)
}
