package sla

import (
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

type fixedHoliday struct {
	name  string
	month time.Month
	day   int
}

var brazilianFixedHolidays = []fixedHoliday{
	{"Confraternização Universal", time.January, 1},
	{"Tiradentes", time.April, 21},
	{"Dia do Trabalho", time.May, 1},
	{"Independência do Brasil", time.September, 7},
	{"Nossa Senhora Aparecida", time.October, 12},
	{"Finados", time.November, 2},
	{"Proclamação da República", time.November, 15},
	{"Natal", time.December, 25},
}

const (
	carnivalOffset      = -47
	corpusChristiOffset = 60
)

// Easter returns Easter Sunday of the Gregorian calendar (Meeus/Jones/Butcher).
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// FixedHolidays lists the fixed-date national holidays of year.
func FixedHolidays(year int) []domain.Holiday {
	out := make([]domain.Holiday, 0, len(brazilianFixedHolidays))
	for _, fh := range brazilianFixedHolidays {
		out = append(out, nationalHoliday(fh.name, time.Date(year, fh.month, fh.day, 0, 0, 0, 0, time.UTC)))
	}
	return out
}

// MovableHolidays lists Carnival, Easter and Corpus Christi for year.
func MovableHolidays(year int) []domain.Holiday {
	easter := Easter(year)
	return []domain.Holiday{
		nationalHoliday("Carnaval", easter.AddDate(0, 0, carnivalOffset)),
		nationalHoliday("Páscoa", easter),
		nationalHoliday("Corpus Christi", easter.AddDate(0, 0, corpusChristiOffset)),
	}
}

func nationalHoliday(name string, date time.Time) domain.Holiday {
	return domain.Holiday{
		Name:   name,
		Date:   date,
		Kind:   domain.HolidayKindNational,
		Active: true,
	}
}
