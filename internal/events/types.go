package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic names for domain events
const (
	TopicUserRegistered = "user.registered"
	TopicListingCreated = "listing.created"
)

// Event is the base payload embedded in every domain event
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates a base event with a fresh ID and timestamp
func NewEvent() Event {
	return Event{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
	}
}

// UserRegistered is published when a previously unseen telegram identifier
// results in a new user row.
type UserRegistered struct {
	Event
	UserID     uint   `json:"user_id"`
	TelegramID string `json:"telegram_id"`
}

// ListingCreated is published after every successful ad creation.
type ListingCreated struct {
	Event
	AdID     uint   `json:"ad_id"`
	AuthorID uint   `json:"author_id"`
	Category string `json:"category"`
}
