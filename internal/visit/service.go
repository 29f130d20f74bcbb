package visit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Service enforces the booking rules in front of a Store. The store is never
// mutated by a request that fails validation or conflicts with stored visits.
type Service struct {
	store  Store
	roster Roster
	log    *slog.Logger
}

// NewService creates a booking service. A nil logger uses slog.Default().
func NewService(store Store, roster Roster, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, roster: roster, log: log}
}

// Roster returns the doctors visits can be booked with.
func (s *Service) Roster() Roster {
	return s.roster
}

// Create books a new visit.
//
// The slot check and the insert are separate store calls, so two concurrent
// creates for one slot can both pass the check. After inserting, the slot is
// checked again and the new visit is removed if it is not alone. Stores with
// a unique slot constraint reject the second insert outright.
func (s *Service) Create(ctx context.Context, in Visit) error {
	v, err := s.checkCreate(ctx, in)
	if err != nil {
		s.rejected("create", in, err)
		return err
	}

	if err := s.store.Insert(ctx, v); err != nil {
		switch {
		case errors.Is(err, ErrIDTaken):
			err = idTaken(v.VisitID)
		case errors.Is(err, ErrSlotTaken):
			err = reject(ErrSlotTaken, "Someone just took this date...")
		default:
			return fmt.Errorf("creating visit %d: %w", v.VisitID, err)
		}
		s.rejected("create", v, err)
		return err
	}

	holders, err := s.store.Query(ctx, BySlot(v.Slot()))
	if err != nil {
		return fmt.Errorf("rechecking slot: %w", err)
	}
	if len(holders) > 1 {
		if err := s.store.Delete(ctx, v.VisitID); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("rolling back visit %d: %w", v.VisitID, err)
		}
		s.log.Warn("double booking rolled back",
			"visit_id", v.VisitID,
			"visit_date", int64(v.VisitDate),
			"doctor", v.DoctorName,
			"holders", len(holders),
		)
		return reject(ErrSlotTaken, "Someone just took this date...")
	}

	s.log.Debug("visit created", "visit_id", v.VisitID, "visit_date", int64(v.VisitDate), "doctor", v.DoctorName)
	return nil
}

// checkCreate runs the create rules in order: a taken ID wins over any
// other problem with the request, then field validation, then duplicate
// and slot conflicts.
func (s *Service) checkCreate(ctx context.Context, in Visit) (Visit, error) {
	if in.VisitID <= 0 {
		return Visit{}, reject(ErrInvalidFormat, "Visit ID must be a positive number...")
	}
	taken, err := s.exists(ctx, ByID(in.VisitID))
	if err != nil {
		return Visit{}, err
	}
	if taken {
		return Visit{}, idTaken(in.VisitID)
	}

	v, err := s.roster.Validate(in)
	if err != nil {
		return Visit{}, err
	}

	dup, err := s.exists(ctx, ByBooking(v))
	if err != nil {
		return Visit{}, err
	}
	if dup {
		return Visit{}, reject(ErrDuplicateAppointment, "You've already made such appointment...")
	}

	busy, err := s.exists(ctx, BySlot(v.Slot()))
	if err != nil {
		return Visit{}, err
	}
	if busy {
		return Visit{}, reject(ErrSlotTaken, "The given date is taken...")
	}
	return v, nil
}

// Update overwrites the visit stored under targetID with in. The visit ID
// itself may change as long as the new one is free.
func (s *Service) Update(ctx context.Context, targetID int64, in Visit) error {
	current, err := s.store.Query(ctx, ByID(targetID))
	if err != nil {
		return fmt.Errorf("loading visit %d: %w", targetID, err)
	}
	if len(current) == 0 {
		err := reject(ErrNotFound, "Such visit doesn't exist, cannot update...")
		s.rejected("update", in, err)
		return err
	}
	existing := current[0]

	v, err := s.roster.Validate(in)
	if err != nil {
		s.rejected("update", in, err)
		return err
	}

	if v.VisitID != targetID {
		taken, err := s.exists(ctx, ByID(v.VisitID))
		if err != nil {
			return err
		}
		if taken {
			err := idTaken(v.VisitID)
			s.rejected("update", v, err)
			return err
		}
	}

	if v.Slot() != existing.Slot() {
		holders, err := s.store.Query(ctx, BySlot(v.Slot()))
		if err != nil {
			return fmt.Errorf("checking slot: %w", err)
		}
		for _, h := range holders {
			if h.VisitID != targetID {
				err := reject(ErrSlotTaken, "The given date is taken, cannot update...")
				s.rejected("update", v, err)
				return err
			}
		}
	}

	if err := s.store.Update(ctx, targetID, v); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			err = reject(ErrNotFound, "Such visit doesn't exist, cannot update...")
		case errors.Is(err, ErrIDTaken):
			err = idTaken(v.VisitID)
		case errors.Is(err, ErrSlotTaken):
			err = reject(ErrSlotTaken, "The given date is taken, cannot update...")
		default:
			return fmt.Errorf("updating visit %d: %w", targetID, err)
		}
		s.rejected("update", v, err)
		return err
	}

	s.log.Debug("visit updated", "target_id", targetID, "visit_id", v.VisitID)
	return nil
}

// Delete removes one visit.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Info("visit rejected", "op", "delete", "visit_id", id, "reason", ErrNotFound.Error())
			return reject(ErrNotFound, "Such visit doesn't exist...")
		}
		return fmt.Errorf("deleting visit %d: %w", id, err)
	}
	s.log.Debug("visit deleted", "visit_id", id)
	return nil
}

// DeleteAll removes every visit and returns how many there were. An empty
// store is not an error.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clearing visits: %w", err)
	}
	s.log.Info("all visits deleted", "count", n)
	return n, nil
}

func (s *Service) exists(ctx context.Context, f Filter) (bool, error) {
	found, err := s.store.Query(ctx, f)
	if err != nil {
		return false, fmt.Errorf("querying visits: %w", err)
	}
	return len(found) > 0, nil
}

func (s *Service) rejected(op string, v Visit, err error) {
	var rej *Error
	if !errors.As(err, &rej) {
		return
	}
	s.log.Info("visit rejected",
		"op", op,
		"visit_id", v.VisitID,
		"reason", rej.Kind.Error(),
	)
}

func idTaken(id int64) error {
	return reject(ErrIDTaken, "Visit ID %d is already taken...", id)
}
