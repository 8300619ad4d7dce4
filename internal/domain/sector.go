package domain

import "time"

// Sector is the organizational unit a ticket is routed to and an SLA policy belongs to.
type Sector struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
