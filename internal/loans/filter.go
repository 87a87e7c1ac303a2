// Package loans holds the pure, client-side loan-screen logic: list
// filtering, the current-week window, open/closed partitioning, and the
// patron type-ahead search.
package loans

import (
	"strings"
	"time"
	"unicode/utf8"

	"biblio-cli/internal/model"
)

// Filter is the loan list filter. All criteria AND together; empty
// criteria always pass. Semana takes precedence over Fecha when both are
// set.
type Filter struct {
	// Clave is a case-insensitive substring match on the loan code.
	Clave string
	// Usuario is a case-insensitive substring match on the patron name.
	Usuario string
	// Fecha restricts the expected-return date to one calendar day,
	// formatted "2006-01-02". Ignored while Semana is on.
	Fecha string
	// Semana restricts the expected-return date to the current
	// Monday-Sunday window.
	Semana bool
}

// Vacio reports whether no criterion is set.
func (f Filter) Vacio() bool {
	return f.Clave == "" && f.Usuario == "" && f.Fecha == "" && !f.Semana
}

// WeekBounds returns the Monday 00:00:00.000 and Sunday 23:59:59.999 of
// the week containing now. Weekday 0 is Sunday, so a Sunday "now" maps to
// the Monday six days back.
func WeekBounds(now time.Time) (monday, sunday time.Time) {
	back := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		back = 6
	}
	monday = time.Date(now.Year(), now.Month(), now.Day()-back, 0, 0, 0, 0, now.Location())
	sunday = time.Date(monday.Year(), monday.Month(), monday.Day()+6, 23, 59, 59, int(999*time.Millisecond), now.Location())
	return monday, sunday
}

// returnDateLayouts accepted for fechaDevolucionEsperada values.
var returnDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseReturnDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range returnDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Matches reports whether one loan passes the filter at the given time.
// A loan whose expected-return date fails to parse never matches any
// date-based criterion.
func (f Filter) Matches(p model.Prestamo, now time.Time) bool {
	if f.Clave != "" && !containsFold(p.ClavePrestamo, f.Clave) {
		return false
	}
	if f.Usuario != "" && !containsFold(p.UsuarioNombre, f.Usuario) {
		return false
	}

	if f.Semana {
		fecha, ok := parseReturnDate(p.FechaDevolucionEsperada, now.Location())
		if !ok {
			return false
		}
		monday, sunday := WeekBounds(now)
		return !fecha.Before(monday) && !fecha.After(sunday)
	}

	if f.Fecha != "" {
		fecha, ok := parseReturnDate(p.FechaDevolucionEsperada, now.Location())
		if !ok {
			return false
		}
		day, err := time.ParseInLocation("2006-01-02", f.Fecha, now.Location())
		if err != nil {
			// malformed filter day disables the date criterion
			return true
		}
		start := day
		end := day.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		return !fecha.Before(start) && !fecha.After(end)
	}

	return true
}

// Filtrar applies the filter to a list, preserving order.
func Filtrar(list []model.Prestamo, f Filter, now time.Time) []model.Prestamo {
	out := make([]model.Prestamo, 0, len(list))
	for _, p := range list {
		if f.Matches(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// Partition splits loans into the open table (activo, retrasado) and the
// closed one (devuelto, perdido and anything else).
func Partition(list []model.Prestamo) (abiertos, cerrados []model.Prestamo) {
	for _, p := range list {
		if p.Abierto() {
			abiertos = append(abiertos, p)
		} else {
			cerrados = append(cerrados, p)
		}
	}
	return abiertos, cerrados
}

// SearchUsuarios is the patron type-ahead: queries of one character or
// fewer after trimming yield no candidates; longer queries match a
// case-insensitive substring of last name, identification or email.
func SearchUsuarios(usuarios []model.Usuario, query string) []model.Usuario {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) <= 1 {
		return nil
	}
	var out []model.Usuario
	for _, u := range usuarios {
		if strings.Contains(strings.ToLower(u.Apellido), q) ||
			strings.Contains(strings.ToLower(u.Identificacion), q) ||
			strings.Contains(strings.ToLower(u.Correo), q) {
			out = append(out, u)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
