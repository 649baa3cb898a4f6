// Package clock expone la fecha/hora actual en la zona horaria configurada del sistema.
package clock

import "time"

// Clock fuente de tiempo inyectable.
type Clock interface {
	// Now fecha y hora actual en la zona del sistema.
	Now() time.Time
	// Today fecha actual (medianoche) en la zona del sistema.
	Today() time.Time
}

// Zoned reloj del sistema fijado a una zona horaria.
type Zoned struct {
	loc *time.Location
}

// NewZoned construye el reloj; loc nil equivale a UTC.
func NewZoned(loc *time.Location) *Zoned {
	if loc == nil {
		loc = time.UTC
	}
	return &Zoned{loc: loc}
}

// Now implementa Clock.
func (z *Zoned) Now() time.Time {
	return time.Now().In(z.loc)
}

// Today implementa Clock.
func (z *Zoned) Today() time.Time {
	return DateOf(z.Now())
}

// Fixed reloj fijo, útil en tests.
type Fixed struct {
	At time.Time
}

// Now implementa Clock.
func (f Fixed) Now() time.Time { return f.At }

// Today implementa Clock.
func (f Fixed) Today() time.Time { return DateOf(f.At) }

// DateOf trunca t a la medianoche de su propia zona.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
