package domain

import "time"

// SLAStatus is the due-status bucket of a ticket.
type SLAStatus string

const (
	SLAStatusOnTrack SLAStatus = "on_track"
	SLAStatusNearDue SLAStatus = "near_due"
	SLAStatusOverdue SLAStatus = "overdue"
)

// SLAPolicy assigns a number of business days to a sector.
type SLAPolicy struct {
	ID           string
	SectorID     string
	BusinessDays int
	Description  string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	MinPolicyBusinessDays = 1
	MaxPolicyBusinessDays = 365
)
