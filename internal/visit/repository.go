package visit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Repository stores visits in SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a visit repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `visit_id, visit_date, patient_id, patient_name, doctor_name`

// Insert adds a visit.
func (r *Repository) Insert(ctx context.Context, v Visit) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO visits (visit_id, visit_date, patient_id, patient_name, doctor_name) VALUES (?, ?, ?, ?, ?)",
		v.VisitID, v.VisitDate, v.PatientID, v.PatientName, v.DoctorName,
	)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("inserting visit: %w", err)
	}
	return nil
}

// Update overwrites every field of the visit stored under oldID.
func (r *Repository) Update(ctx context.Context, oldID int64, v Visit) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE visits SET visit_id = ?, visit_date = ?, patient_id = ?, patient_name = ?, doctor_name = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE visit_id = ?`,
		v.VisitID, v.VisitDate, v.PatientID, v.PatientName, v.DoctorName, oldID,
	)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("updating visit %d: %w", oldID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a visit by ID.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM visits WHERE visit_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting visit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAll removes every visit and returns how many were removed.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM visits")
	if err != nil {
		return 0, fmt.Errorf("deleting visits: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows, nil
}

// Query returns the visits matching f in insertion order.
func (r *Repository) Query(ctx context.Context, f Filter) (visits []Visit, err error) {
	query := fmt.Sprintf("SELECT %s FROM visits", selectColumns)
	var args []interface{}
	var conditions []string

	add := func(cond string, arg interface{}) {
		conditions = append(conditions, cond)
		args = append(args, arg)
	}
	if f.VisitID != nil {
		add("visit_id = ?", *f.VisitID)
	}
	if f.VisitDate != nil {
		add("visit_date = ?", *f.VisitDate)
	}
	if f.PatientID != nil {
		add("patient_id = ?", *f.PatientID)
	}
	if f.PatientName != nil {
		add("patient_name = ?", *f.PatientName)
	}
	if f.DoctorName != nil {
		add("doctor_name = ?", *f.DoctorName)
	}
	if f.DateFrom != nil {
		add("visit_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("visit_date < ?", *f.DateTo)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.VisitID, &v.VisitDate, &v.PatientID, &v.PatientName, &v.DoctorName); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}

	return visits, nil
}

// constraintError maps SQLite unique violations onto the store's conflict errors.
func constraintError(err error) error {
	var sqErr sqlite3.Error
	if !errors.As(err, &sqErr) || sqErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return nil
	}
	// The message names the violated columns, e.g. "UNIQUE constraint failed: visits.visit_id".
	if strings.Contains(sqErr.Error(), "visits.visit_id") {
		return ErrIDTaken
	}
	return ErrSlotTaken
}
