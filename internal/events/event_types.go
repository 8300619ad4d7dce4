package events

import (
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated    EventType = "ticket_created"
	EventSLAStatusChanged EventType = "sla_status_changed"
	EventHolidaysSeeded   EventType = "holidays_seeded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  string    `json:"ticket_id,omitempty"`
	ActorID   *string   `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	SectorID     string                `json:"sector_id"`
	Priority     domain.TicketPriority `json:"priority"`
	Title        string                `json:"title"`
	BusinessDays int                   `json:"business_days"`
	DueDate      time.Time             `json:"due_date"`
	SLAStatus    domain.SLAStatus      `json:"sla_status"`
}

// SLAStatusChangedPayload is emitted when a read refreshes a ticket into a new bucket.
type SLAStatusChangedPayload struct {
	OldStatus     domain.SLAStatus `json:"old_status"`
	NewStatus     domain.SLAStatus `json:"new_status"`
	RemainingDays int              `json:"remaining_days"`
	DueDate       time.Time        `json:"due_date"`
}

// HolidaysSeededPayload payload.
type HolidaysSeededPayload struct {
	Year     int `json:"year"`
	Fixed    int `json:"fixed"`
	Movable  int `json:"movable"`
	Inserted int `json:"inserted"`
}
