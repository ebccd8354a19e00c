package domain

import (
	"context"
	"time"
)

// Event is a yearly event registrants enroll in.
// swagger:model Event
type Event struct {
	ID        string     `json:"id"`
	Year      int        `json:"year"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// NewEvent returns a new Event for the given year. ID and timestamps are set by the repository on create.
func NewEvent(year int) *Event {
	return &Event{Year: year}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetMany(ctx context.Context) ([]*Event, error)
	// MostRecent returns the last inserted event.
	MostRecent(ctx context.Context) (*Event, error)
}
