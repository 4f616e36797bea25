package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// ReportEvent is published after every successful report generation.
type ReportEvent struct {
	ID            string    `json:"id"`
	ActivityType  string    `json:"activity_type"`
	Format        string    `json:"format"`
	AcademicYear  string    `json:"academic_year"`
	DepartmentID  *uint     `json:"department_id,omitempty"`
	Department    string    `json:"department"`
	ActorID       uint      `json:"actor_id"`
	ActorRole     string    `json:"actor_role"`
	Rows          int       `json:"rows"`
	Sections      int       `json:"sections"`
	Filename      string    `json:"filename"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// ReportEventPublisher fans generation events out to other services.
type ReportEventPublisher interface {
	Publish(ctx context.Context, event ReportEvent) error
}

type natsReportPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSReportPublisher publishes events on subject. A nil connection yields a publisher
// that drops events.
func NewNATSReportPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) ReportEventPublisher {
	return &natsReportPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "report_events").Logger(),
	}
}

func (p *natsReportPublisher) Publish(ctx context.Context, event ReportEvent) error {
	if p.conn == nil || p.subject == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return err
	}

	p.logger.Debug().Str("event_id", event.ID).Str("subject", p.subject).Msg("report event published")
	return nil
}
