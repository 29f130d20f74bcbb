package visit

import "context"

// Store is durable storage for visits keyed by visit ID. Each call commits
// before it returns.
//
// Insert and Update return ErrIDTaken or ErrSlotTaken when a backend
// constraint rejects the row; Update and Delete return ErrNotFound for a
// missing ID. Query returns visits in insertion order.
type Store interface {
	Insert(ctx context.Context, v Visit) error
	Update(ctx context.Context, oldID int64, v Visit) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	Query(ctx context.Context, f Filter) ([]Visit, error)
}

// Filter selects visits. Nil fields match everything; set fields must match
// exactly. DateFrom and DateTo bound visit_date as [DateFrom, DateTo).
type Filter struct {
	VisitID     *int64
	VisitDate   *Date
	PatientID   *string
	PatientName *string
	DoctorName  *string
	DateFrom    *Date
	DateTo      *Date
}

// ByID matches a single visit ID.
func ByID(id int64) Filter {
	return Filter{VisitID: &id}
}

// BySlot matches visits holding the given slot.
func BySlot(s Slot) Filter {
	return Filter{VisitDate: &s.Date, DoctorName: &s.Doctor}
}

// ByBooking matches visits with the same date, patient and doctor as v.
func ByBooking(v Visit) Filter {
	return Filter{
		VisitDate:   &v.VisitDate,
		PatientID:   &v.PatientID,
		PatientName: &v.PatientName,
		DoctorName:  &v.DoctorName,
	}
}

// Matches reports whether v satisfies the filter.
func (f Filter) Matches(v Visit) bool {
	switch {
	case f.VisitID != nil && v.VisitID != *f.VisitID:
		return false
	case f.VisitDate != nil && v.VisitDate != *f.VisitDate:
		return false
	case f.PatientID != nil && v.PatientID != *f.PatientID:
		return false
	case f.PatientName != nil && v.PatientName != *f.PatientName:
		return false
	case f.DoctorName != nil && v.DoctorName != *f.DoctorName:
		return false
	case f.DateFrom != nil && v.VisitDate < *f.DateFrom:
		return false
	case f.DateTo != nil && v.VisitDate >= *f.DateTo:
		return false
	}
	return true
}
