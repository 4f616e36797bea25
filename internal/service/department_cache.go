package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/iqac-report-api/internal/models"
	"github.com/noah-isme/iqac-report-api/internal/report"
	"github.com/noah-isme/iqac-report-api/internal/repository"
)

// ErrDepartmentNotFound is returned when a requested department does not exist. It matches report.ErrNotFound.
var ErrDepartmentNotFound = fmt.Errorf("department %w", report.ErrNotFound)

// DepartmentSnapshot is the cached view of one department and its members.
type DepartmentSnapshot struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	FacultyIDs []uint `json:"faculty_ids"`
	StudentIDs []uint `json:"student_ids"`
}

// DepartmentCache is a time-bounded read-through cache over the directory. It is owned by
// the report service and passed explicitly; a nil Redis client disables caching.
type DepartmentCache struct {
	directory repository.DirectoryRepository
	cache     *redis.Client
	ttl       time.Duration
	prefix    string
	logger    zerolog.Logger
}

// NewDepartmentCache constructs the department cache.
func NewDepartmentCache(directory repository.DirectoryRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) *DepartmentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DepartmentCache{
		directory: directory,
		cache:     cache,
		ttl:       ttl,
		prefix:    "iqac:department:",
		logger:    logger.With().Str("component", "department_cache").Logger(),
	}
}

// Snapshot returns the department with its faculty and student ID sets.
func (c *DepartmentCache) Snapshot(ctx context.Context, departmentID uint) (DepartmentSnapshot, error) {
	key := fmt.Sprintf("%s%d", c.prefix, departmentID)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key).Result()
		if err == nil {
			var snapshot DepartmentSnapshot
			if unmarshalErr := json.Unmarshal([]byte(cached), &snapshot); unmarshalErr == nil {
				return snapshot, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Uint("department_id", departmentID).Msg("failed to read department cache")
		}
	}

	members, err := c.directory.Members(ctx, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentSnapshot{}, ErrDepartmentNotFound
		}
		return DepartmentSnapshot{}, err
	}

	snapshot := DepartmentSnapshot{
		ID:         members.DepartmentID,
		Name:       members.Name,
		FacultyIDs: members.FacultyIDs,
		StudentIDs: members.StudentIDs,
	}

	if c.cache != nil {
		payload, err := json.Marshal(snapshot)
		if err == nil {
			if err := c.cache.Set(ctx, key, payload, c.ttl).Err(); err != nil {
				c.logger.Warn().Err(err).Uint("department_id", departmentID).Msg("failed to store department cache")
			}
		}
	}

	return snapshot, nil
}

// Members implements repository.MembershipSource from a single snapshot.
func (c *DepartmentCache) Members(ctx context.Context, departmentID uint) (repository.Membership, error) {
	snapshot, err := c.Snapshot(ctx, departmentID)
	if err != nil {
		return repository.Membership{}, err
	}
	return repository.Membership{
		DepartmentID: snapshot.ID,
		Name:         snapshot.Name,
		FacultyIDs:   snapshot.FacultyIDs,
		StudentIDs:   snapshot.StudentIDs,
	}, nil
}

// List returns every department. Listings are not cached.
func (c *DepartmentCache) List(ctx context.Context) ([]models.Department, error) {
	return c.directory.ListDepartments(ctx)
}
