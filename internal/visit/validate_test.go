package visit

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      int64
		wantErr error
	}{
		{"valid noon", 112123012, nil},
		{"opening hour", 122102208, nil},
		{"closing hour", 114090918, nil},
		{"lower bound", 100010108, nil},
		{"below range", 100010008, ErrInvalidFormat},
		{"month zero below range", 100000108, ErrInvalidFormat},
		{"ten digits", 1112123012, ErrInvalidFormat},
		{"eight digits", 12123012, ErrInvalidFormat},
		{"hour 99", 100000099, ErrOutsideOperatingHours},
		{"too early", 112123007, ErrOutsideOperatingHours},
		{"too late", 112123019, ErrOutsideOperatingHours},
		{"month 13", 112133012, ErrImpossibleDate},
		{"day 32", 112013212, ErrImpossibleDate},
		{"february 31 accepted", 112023112, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if int64(d) != tt.in {
					t.Errorf("date = %d, want %d", d, tt.in)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckDateFormat(t *testing.T) {
	tests := []struct {
		in   int64
		want bool
	}{
		{int64(MinDate), true},
		{int64(MaxDate), true},
		{112123000, true},
		{int64(MinDate) - 1, false},
		{int64(MaxDate) + 1, false},
		{99, false},
	}
	for _, tt := range tests {
		err := CheckDateFormat(tt.in)
		if (err == nil) != tt.want {
			t.Errorf("CheckDateFormat(%d) = %v, want ok=%v", tt.in, err, tt.want)
		}
	}
}

func TestParseDateInput(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr error
	}{
		{"12123012", 112123012, nil},
		{" 09010110 ", 109010110, nil},
		{"", 0, ErrInvalidFormat},
		{"abc", 0, ErrInvalidFormat},
		{"-1", 0, ErrInvalidFormat},
		{"12123020", 0, ErrOutsideOperatingHours},
	}

	for _, tt := range tests {
		got, err := ParseDateInput(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseDateInput(%q) err = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDateInput(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDateInput(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidatePatientID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12345678934", "12345678934", false},
		{"10000000000", "10000000000", false},
		{"99999999999", "99999999999", false},
		{" 31415928624", "31415928624", false},
		{"9999999999", "", true},
		{"100000000000", "", true},
		{"01234567890", "", true},
		{"1234567893x", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ValidatePatientID(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPatientID) {
				t.Errorf("ValidatePatientID(%q) err = %v, want %v", tt.in, err, ErrInvalidPatientID)
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ValidatePatientID(%q) err = %v, want it to be an %v", tt.in, err, ErrInvalidFormat)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidatePatientID(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ValidatePatientID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRosterValidate(t *testing.T) {
	r := NewRoster(DefaultRoster)

	tests := []struct {
		name    string
		mutate  func(v *Visit)
		wantErr error
	}{
		{"valid", func(v *Visit) {}, nil},
		{"zero id", func(v *Visit) { v.VisitID = 0 }, ErrInvalidFormat},
		{"bad date", func(v *Visit) { v.VisitDate = 5 }, ErrInvalidFormat},
		{"closed", func(v *Visit) { v.VisitDate = 112123020 }, ErrOutsideOperatingHours},
		{"bad patient", func(v *Visit) { v.PatientID = "123" }, ErrInvalidPatientID},
		{"unknown doctor", func(v *Visit) { v.DoctorName = "Dr. Nobody" }, ErrUnknownDoctor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := sampleVisit(1)
			tt.mutate(&v)
			_, err := r.Validate(v)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if !IsValidation(err) {
				t.Errorf("IsValidation(%v) = false, want true", err)
			}
		})
	}
}
