// Package events publish domain events to the message broker.
// Publishing is best effort, a failed publish never fails the request that caused it.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Queue names
const (
	QueueInternshipPosted   = "internship.posted"
	QueueApplicationCreated = "application.created"
)

// Event is a payload bound to one queue
type Event interface {
	Queue() string
}

// Publisher deliver events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// InternshipPostedEvent is published after a company post an internship
type InternshipPostedEvent struct {
	InternshipID uuid.UUID `json:"internship_id"`
	CompanyID    uuid.UUID `json:"company_id"`
	Title        string    `json:"title"`
	Capacity     int       `json:"capacity"`
	PostedAt     time.Time `json:"posted_at"`
}

// Queue implements Event
func (InternshipPostedEvent) Queue() string { return QueueInternshipPosted }

// ApplicationCreatedEvent is published after a candidate apply to an internship
type ApplicationCreatedEvent struct {
	ApplicationID uuid.UUID `json:"application_id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	InternshipID  uuid.UUID `json:"internship_id"`
	CompanyID     uuid.UUID `json:"company_id"`
	AppliedAt     time.Time `json:"applied_at"`
}

// Queue implements Event
func (ApplicationCreatedEvent) Queue() string { return QueueApplicationCreated }

// NopPublisher drop every event, used when no broker is configured
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }
