package dto

import (
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	SectorID    string                `json:"sector_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
}

// TicketResponse carries a ticket with its refreshed SLA view.
type TicketResponse struct {
	ID                    string                `json:"id"`
	ExternalKey           string                `json:"external_key"`
	RequesterID           string                `json:"requester_id"`
	SectorID              string                `json:"sector_id"`
	Title                 string                `json:"title"`
	Description           string                `json:"description,omitempty"`
	Status                domain.TicketStatus   `json:"status"`
	Priority              domain.TicketPriority `json:"priority"`
	BusinessDaysAllotted  int                   `json:"business_days_allotted"`
	DueDate               time.Time             `json:"due_date"`
	SLAStatus             domain.SLAStatus      `json:"sla_status"`
	RemainingBusinessDays int                   `json:"remaining_business_days"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}
