package visit

import (
	"context"
	"fmt"
)

// Mode selects how Find filters visits.
type Mode string

const (
	ModeAll      Mode = "all"
	ModeID       Mode = "id"
	ModePatient  Mode = "patient"
	ModeDoctor   Mode = "doctor"
	ModeDate     Mode = "date"
	ModeSelected Mode = "selected"
)

// Modes lists every lookup mode.
var Modes = []Mode{ModeAll, ModeID, ModePatient, ModeDoctor, ModeDate, ModeSelected}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", reject(ErrInvalidFormat, "Invalid specifier...")
}

// Lookup is a query over stored visits. Only the fields used by Mode are read.
type Lookup struct {
	Mode        Mode
	VisitID     int64
	PatientID   string
	PatientName string
	DoctorName  string
	VisitDate   Date
}

// Filter translates the lookup into a store filter.
func (l Lookup) Filter() (Filter, error) {
	switch l.Mode {
	case ModeAll:
		return Filter{}, nil
	case ModeID:
		return ByID(l.VisitID), nil
	case ModePatient:
		return Filter{PatientID: &l.PatientID}, nil
	case ModeDoctor:
		return Filter{DoctorName: &l.DoctorName}, nil
	case ModeDate:
		if err := CheckDateFormat(int64(l.VisitDate)); err != nil {
			return Filter{}, err
		}
		from, to := l.VisitDate.DayWindow()
		return Filter{DateFrom: &from, DateTo: &to}, nil
	case ModeSelected:
		return ByBooking(Visit{
			VisitDate:   l.VisitDate,
			PatientID:   l.PatientID,
			PatientName: l.PatientName,
			DoctorName:  l.DoctorName,
		}), nil
	default:
		return Filter{}, reject(ErrInvalidFormat, "Invalid specifier...")
	}
}

// Find runs a lookup. An empty result is ErrNoMatch for every mode except
// ModeAll, which returns an empty slice.
func (s *Service) Find(ctx context.Context, l Lookup) ([]Visit, error) {
	f, err := l.Filter()
	if err != nil {
		return nil, err
	}

	visits, err := s.store.Query(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("finding visits: %w", err)
	}

	if len(visits) == 0 {
		if l.Mode == ModeAll {
			return []Visit{}, nil
		}
		return nil, noMatch(l)
	}
	return visits, nil
}

func noMatch(l Lookup) error {
	switch l.Mode {
	case ModeID:
		return reject(ErrNoMatch, "There is no appointment with ID:%d...", l.VisitID)
	case ModePatient:
		return reject(ErrNoMatch, "This patient has no appointments...")
	case ModeDoctor:
		return reject(ErrNoMatch, "This doctor has no appointments...")
	default:
		return reject(ErrNoMatch, "Such visit doesn't exist...")
	}
}
