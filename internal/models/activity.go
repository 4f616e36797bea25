package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is one row of the report audit trail. Metadata holds the report parameters
// (activity type, format, academic year, row count) as JSON.
type ActivityLog struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ActorID       uint              `gorm:"index;not null" json:"actor_id"`
	ActorRole     string            `gorm:"size:32;not null" json:"actor_role"`
	Action        string            `gorm:"size:64;index;not null" json:"action"`
	EntityType    string            `gorm:"size:64;not null" json:"entity_type"`
	EntityID      *uint             `json:"entity_id"`
	CorrelationID string            `gorm:"size:128" json:"correlation_id"`
	Metadata      datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt     time.Time         `gorm:"index" json:"created_at"`
}

// TableName pins the audit table name.
func (ActivityLog) TableName() string {
	return "report_activity_logs"
}
