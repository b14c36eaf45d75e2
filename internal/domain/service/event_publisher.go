package service

import (
	"context"
	"time"
)

// ReminderRunEvent asks a worker to perform one reminder run.
type ReminderRunEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	RunID       string    `json:"run_id"`
	RequestedAt time.Time `json:"requested_at"`
	Source      string    `json:"source,omitempty"` // scheduler, api
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishReminderRun publishes a run request for async processing
	PublishReminderRun(ctx context.Context, event *ReminderRunEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
