package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Set groups the repositories the services depend on.
type Set struct {
	Holidays HolidayRepository
	Sectors  SectorRepository
	Policies SLAPolicyRepository
	Tickets  TicketRepository
	Users    UserRepository
}

// NewPostgresSet returns Postgres-backed repositories sharing pool.
func NewPostgresSet(pool *pgxpool.Pool) Set {
	return Set{
		Holidays: NewHolidayRepository(pool),
		Sectors:  NewSectorRepository(pool),
		Policies: NewSLAPolicyRepository(pool),
		Tickets:  NewTicketRepository(pool),
		Users:    NewUserRepository(pool),
	}
}
