package visit

import (
	"errors"
	"testing"
)

func TestDateParts(t *testing.T) {
	d := Date(112123012)

	if d.Year() != 2012 {
		t.Errorf("Year() = %d, want 2012", d.Year())
	}
	if d.Month() != 12 {
		t.Errorf("Month() = %d, want 12", d.Month())
	}
	if d.Day() != 30 {
		t.Errorf("Day() = %d, want 30", d.Day())
	}
	if d.Hour() != 12 {
		t.Errorf("Hour() = %d, want 12", d.Hour())
	}
	if got := d.String(); got != "2012/12/30 12.00" {
		t.Errorf("String() = %q, want %q", got, "2012/12/30 12.00")
	}
}

func TestDateDayWindow(t *testing.T) {
	from, to := Date(114090909).DayWindow()
	if from != 114090900 {
		t.Errorf("from = %d, want 114090900", from)
	}
	if to != 114091000 {
		t.Errorf("to = %d, want 114091000", to)
	}
}

func TestRoster(t *testing.T) {
	r := NewRoster([]string{"Adam Nadobny", " ", "Jan Kowalski", "Adam Nadobny"})

	names := r.Names()
	if len(names) != 2 {
		t.Fatalf("got %d names, want 2: %v", len(names), names)
	}
	if !r.Contains("Jan Kowalski") {
		t.Error("expected Jan Kowalski on roster")
	}
	if err := r.Check("Dr. Nobody"); !errors.Is(err, ErrUnknownDoctor) {
		t.Errorf("Check(unknown) = %v, want %v", err, ErrUnknownDoctor)
	}
	if err := r.Check("Adam Nadobny"); err != nil {
		t.Errorf("Check(known) = %v, want nil", err)
	}

	names[0] = "changed"
	if r.Names()[0] != "Adam Nadobny" {
		t.Error("Names() must return a copy")
	}
}

func TestDefaultRoster(t *testing.T) {
	r := NewRoster(DefaultRoster)
	if len(r.Names()) != 6 {
		t.Errorf("default roster has %d doctors, want 6", len(r.Names()))
	}
}
