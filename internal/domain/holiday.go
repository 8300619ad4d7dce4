package domain

import "time"

// HolidayKind tags the origin of a holiday. It does not affect business-day math.
type HolidayKind string

const (
	HolidayKindNational  HolidayKind = "NATIONAL"
	HolidayKindState     HolidayKind = "STATE"
	HolidayKindMunicipal HolidayKind = "MUNICIPAL"
	HolidayKindCompany   HolidayKind = "COMPANY"
)

// Valid reports whether k is a known kind.
func (k HolidayKind) Valid() bool {
	switch k {
	case HolidayKindNational, HolidayKindState, HolidayKindMunicipal, HolidayKindCompany:
		return true
	}
	return false
}

// Holiday is a calendar exception. Date carries no time component.
type Holiday struct {
	ID          string
	Name        string
	Date        time.Time
	Kind        HolidayKind
	Active      bool
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
