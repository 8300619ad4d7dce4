package dto

import (
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// SLAPolicyRequest payload. Zero business_days on update keeps the current value.
type SLAPolicyRequest struct {
	SectorID     string `json:"sector_id"`
	BusinessDays int    `json:"business_days"`
	Description  string `json:"description"`
	Active       *bool  `json:"active"`
}

// SLAPolicyResponse describes a policy.
type SLAPolicyResponse struct {
	ID           string    `json:"id"`
	SectorID     string    `json:"sector_id"`
	BusinessDays int       `json:"business_days"`
	Description  string    `json:"description,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DueDateResponse answers a due-date computation.
type DueDateResponse struct {
	Start        time.Time `json:"start"`
	BusinessDays int       `json:"business_days"`
	DueDate      time.Time `json:"due_date"`
}

// RemainingResponse answers a remaining-days computation.
type RemainingResponse struct {
	DueDate       time.Time        `json:"due_date"`
	AsOf          time.Time        `json:"as_of"`
	RemainingDays int              `json:"remaining_business_days"`
	Status        domain.SLAStatus `json:"sla_status"`
}
