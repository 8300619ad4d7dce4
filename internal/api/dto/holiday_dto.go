package dto

import (
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// HolidayRequest is the create and update payload. Date is YYYY-MM-DD.
type HolidayRequest struct {
	Name        string             `json:"name"`
	Date        string             `json:"date"`
	Kind        domain.HolidayKind `json:"kind"`
	Active      *bool              `json:"active"`
	Description *string            `json:"description"`
}

// HolidayResponse describes a stored holiday.
type HolidayResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Date        string             `json:"date"`
	Kind        domain.HolidayKind `json:"kind"`
	Active      bool               `json:"active"`
	Description *string            `json:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// SeedHolidaysResponse summarizes a default-holiday run.
type SeedHolidaysResponse struct {
	Year     int               `json:"year"`
	Fixed    int               `json:"fixed"`
	Movable  int               `json:"movable"`
	Inserted []HolidayResponse `json:"inserted"`
}

// BusinessDayResponse answers a business-day check.
type BusinessDayResponse struct {
	Date          string `json:"date"`
	IsBusinessDay bool   `json:"is_business_day"`
	IsWeekend     bool   `json:"is_weekend"`
	IsHoliday     bool   `json:"is_holiday"`
}
