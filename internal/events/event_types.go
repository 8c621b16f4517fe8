package events

import (
	"time"

	"github.com/spec-kit/wa-group-directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventGroupCreated       EventType = "group_created"
	EventGroupUpdated       EventType = "group_updated"
	EventGroupStatusChanged EventType = "group_status_changed"
	EventGroupDeleted       EventType = "group_deleted"
)

// Actor identifies the admin behind a mutation.
type Actor struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	GroupID   int64       `json:"group_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// GroupCreatedPayload payload.
type GroupCreatedPayload struct {
	Nama  string `json:"nama"`
	Link  string `json:"link"`
	Jenis string `json:"jenis"`
}

// GroupUpdatedPayload lists the fields of a partial update that were applied.
type GroupUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// GroupStatusChangedPayload payload.
type GroupStatusChangedPayload struct {
	OldStatus domain.GroupStatus `json:"old_status"`
	NewStatus domain.GroupStatus `json:"new_status"`
}

// GroupDeletedPayload payload.
type GroupDeletedPayload struct {
	Nama string `json:"nama"`
}
