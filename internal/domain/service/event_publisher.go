package service

import (
	"context"
	"time"
)

// Identity event types.
const (
	EventIdentityRegistered   = "identity.registered"
	EventIdentityRoleAssigned = "identity.role_assigned"
)

// IdentityEvent is published after an identity changes. It never carries secrets.
type IdentityEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishIdentityEvent publishes an identity lifecycle event
	PublishIdentityEvent(ctx context.Context, event *IdentityEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
