package memory

import "github.com/thallyson03/ceapdesk/internal/repository"

// NewSet returns a fresh set of in-memory repositories.
func NewSet() repository.Set {
	return repository.Set{
		Holidays: NewHolidayStore(),
		Sectors:  NewSectorStore(),
		Policies: NewSLAPolicyStore(),
		Tickets:  NewTicketStore(),
		Users:    NewUserStore(),
	}
}
