package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated EventType = "complaint_created"
	EventComplaintUpdated EventType = "complaint_updated"
	EventComplaintDeleted EventType = "complaint_deleted"
	EventUserRegistered   EventType = "user_registered"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	EntityID   int64     `json:"entity_id"`
	Actor      Actor     `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// ComplaintPayload describes the complaint an event refers to.
type ComplaintPayload struct {
	ComplaintNumber string  `json:"complaint_number"`
	Department      string  `json:"department,omitempty"`
	Customer        string  `json:"customer,omitempty"`
	TotalCost       float64 `json:"total_cost"`
}

// UserRegisteredPayload describes a freshly created account.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
