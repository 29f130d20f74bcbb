package visit

import (
	"strconv"
	"strings"
)

// Bounds of the encodable date space and of patient identifiers.
const (
	MinDate Date = 100010100
	MaxDate Date = 199123124

	OpeningHour = 8
	ClosingHour = 18

	// nine digits starting with the disambiguation digit
	minEncoded = 100000000
	maxEncoded = 199999999

	minPatientID = 10_000_000_000
	maxPatientID = 99_999_999_999
)

// ParseDateInput converts the YYMMDDHH form typed by a user into an encoded
// Date by prefixing the disambiguation digit, then validates it.
func ParseDateInput(s string) (Date, error) {
	s = strings.TrimSpace(s)
	raw, err := strconv.ParseInt("1"+s, 10, 64)
	if err != nil || s == "" {
		return 0, reject(ErrInvalidFormat, "Wrong date format...")
	}
	return ParseDate(raw)
}

// CheckDateFormat reports whether v lies in the encodable date space.
func CheckDateFormat(v int64) error {
	if Date(v) < MinDate || Date(v) > MaxDate {
		return reject(ErrInvalidFormat, "Invalid date format...")
	}
	return nil
}

// ParseDate validates an encoded date. A value that is not a nine digit
// encoded date is a format error; otherwise the hour is checked first, then
// month and day, then the remaining bounds of the encodable space. The month
// and day are only range checked, so day 31 is accepted for every month.
func ParseDate(v int64) (Date, error) {
	if v < minEncoded || v > maxEncoded {
		return 0, reject(ErrInvalidFormat, "Wrong date format...")
	}
	d := Date(v)
	if d.Hour() < OpeningHour || d.Hour() > ClosingHour {
		return 0, reject(ErrOutsideOperatingHours, "At this time hospital is closed...")
	}
	if d.Month() > 12 || d.Day() > 31 {
		return 0, reject(ErrImpossibleDate, "Impossible date...")
	}
	if err := CheckDateFormat(v); err != nil {
		return 0, err
	}
	return d, nil
}

// ValidatePatientID checks that s is an 11 digit number and returns it normalized.
func ValidatePatientID(s string) (string, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < minPatientID || n > maxPatientID {
		return "", reject(ErrInvalidPatientID, "Wrong id, it should have 11 numbers...")
	}
	return strconv.FormatInt(n, 10), nil
}

// Validate checks every field of v against the roster and returns the
// normalized visit.
func (r Roster) Validate(v Visit) (Visit, error) {
	if v.VisitID <= 0 {
		return Visit{}, reject(ErrInvalidFormat, "Visit ID must be a positive number...")
	}
	d, err := ParseDate(int64(v.VisitDate))
	if err != nil {
		return Visit{}, err
	}
	pid, err := ValidatePatientID(v.PatientID)
	if err != nil {
		return Visit{}, err
	}
	if err := r.Check(v.DoctorName); err != nil {
		return Visit{}, err
	}
	v.VisitDate = d
	v.PatientID = pid
	return v, nil
}
