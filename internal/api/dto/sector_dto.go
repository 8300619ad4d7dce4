package dto

import "time"

// SectorRequest payload.
type SectorRequest struct {
	Name string `json:"name"`
}

// SectorResponse describes a sector.
type SectorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
