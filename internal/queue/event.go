// Package queue defines the notification bus the reconciliation
// engine publishes to and subscribes on.  Topics follow the
// "<category>:<tourId>" convention; payloads are flat string maps
// with no enforced schema.
package queue

import (
	"strings"
	"time"
)

// Event categories.  The full topic is "<category>:<tourId>".
const (
	CategoryGuideChange        = "guide-change"
	CategoryParticipantChange  = "participant-change"
	CategoryTicketRequirements = "ticket-requirements-updated"
)

// Event is a change notification for a single tour.
type Event struct {
	Category   string            `json:"category"`
	TourID     string            `json:"tour_id"`
	Payload    map[string]string `json:"payload,omitempty"`
	OccurredAt string            `json:"occurred_at"`
}

// NewEvent builds an event stamped with the current UTC time.
func NewEvent(category, tourID string, payload map[string]string) Event {
	return Event{
		Category:   category,
		TourID:     tourID,
		Payload:    payload,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Topic returns the conventional "<category>:<tourId>" topic string.
func (e Event) Topic() string {
	return e.Category + ":" + e.TourID
}

// SplitTopic parses a "<category>:<tourId>" topic.  The first
// separator wins.
func SplitTopic(topic string) (category, tourID string) {
	if i := strings.Index(topic, ":"); i >= 0 {
		return topic[:i], topic[i+1:]
	}
	return topic, ""
}
