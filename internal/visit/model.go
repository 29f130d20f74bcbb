// Package visit provides the visit domain model, the booking rules and data access.
package visit

import (
	"fmt"
	"strings"
)

// Visit is a scheduled appointment linking a patient and a doctor at a date and hour.
type Visit struct {
	VisitID     int64  `json:"visit_id"`
	VisitDate   Date   `json:"visit_date"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
}

// Slot is the (date, doctor) pair a doctor can be booked for only once.
type Slot struct {
	Date   Date
	Doctor string
}

// Slot returns the booking slot the visit occupies.
func (v Visit) Slot() Slot {
	return Slot{Date: v.VisitDate, Doctor: v.DoctorName}
}

// Date is a visit date encoded as CYYMMDDHH, where C is always 1 so that
// years below 2010 keep their leading zero.
type Date int64

// Hour returns the hour of day.
func (d Date) Hour() int { return int(d % 100) }

// Day returns the day of month.
func (d Date) Day() int { return int(d / 100 % 100) }

// Month returns the month.
func (d Date) Month() int { return int(d / 10000 % 100) }

// Year returns the full year (2000 + YY).
func (d Date) Year() int { return 2000 + int(d/1000000) - 100 }

// StartOfDay returns the encoded date with the hour cleared.
func (d Date) StartOfDay() Date { return d / 100 * 100 }

// DayWindow returns the half-open range [start, end) covering every hour of d's day.
func (d Date) DayWindow() (Date, Date) {
	start := d.StartOfDay()
	return start, start + 100
}

// String formats the date the way the clinic prints it: 20YY/M/D HH.00
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d %d.00", d.Year(), d.Month(), d.Day(), d.Hour())
}

// DefaultRoster is the clinic's doctor list used when none is configured.
var DefaultRoster = []string{
	"Mariusz Nowak",
	"Marzena Borowik",
	"Jan Kowalski",
	"Stanislaw Nowak",
	"Adam Nadobny",
	"Piotr Krzyszczak",
}

// Roster is the set of doctors visits may be booked with.
type Roster struct {
	names []string
	index map[string]struct{}
}

// NewRoster builds a roster from doctor names. Blank and repeated names are dropped.
func NewRoster(names []string) Roster {
	r := Roster{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := r.index[n]; ok {
			continue
		}
		r.index[n] = struct{}{}
		r.names = append(r.names, n)
	}
	return r
}

// Names returns the doctors in configuration order.
func (r Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Contains reports whether name is on the roster.
func (r Roster) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Check returns ErrUnknownDoctor unless name is on the roster.
func (r Roster) Check(name string) error {
	if !r.Contains(name) {
		return reject(ErrUnknownDoctor, "This doctor is not available...")
	}
	return nil
}
