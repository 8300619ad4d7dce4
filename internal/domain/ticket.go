package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Ticket carries the SLA snapshot taken when it was opened.
// SLAStatus is a cache refreshed whenever the ticket is read.
type Ticket struct {
	ID                   string
	ExternalKey          string
	RequesterID          string
	SectorID             string
	Title                string
	Description          string
	Status               TicketStatus
	Priority             TicketPriority
	BusinessDaysAllotted int
	DueDate              time.Time
	SLAStatus            SLAStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
