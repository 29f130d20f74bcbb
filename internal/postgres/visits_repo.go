package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/evcraddock/clinic-visits/internal/visit"
)

// visitRow is the bun model for one row of the visits table.
type visitRow struct {
	bun.BaseModel `bun:"table:visits"`

	Seq         int64     `bun:"seq,pk,autoincrement"`
	VisitID     int64     `bun:"visit_id,notnull"`
	VisitDate   int64     `bun:"visit_date,notnull"`
	PatientID   string    `bun:"patient_id,notnull"`
	PatientName string    `bun:"patient_name,notnull"`
	DoctorName  string    `bun:"doctor_name,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}

func (r visitRow) toVisit() visit.Visit {
	return visit.Visit{
		VisitID:     r.VisitID,
		VisitDate:   visit.Date(r.VisitDate),
		PatientID:   r.PatientID,
		PatientName: r.PatientName,
		DoctorName:  r.DoctorName,
	}
}

// VisitRepo implements visit.Store on PostgreSQL.
type VisitRepo struct {
	db bun.IDB
}

// NewVisitRepo returns a VisitRepo running its queries on db, which may be
// a *bun.DB or a transaction.
func NewVisitRepo(db bun.IDB) *VisitRepo {
	return &VisitRepo{db: db}
}

var _ visit.Store = (*VisitRepo)(nil)

// Insert adds v. A clash on the visit id or the date and doctor pair
// returns visit.ErrIDTaken or visit.ErrSlotTaken.
func (r *VisitRepo) Insert(ctx context.Context, v visit.Visit) error {
	row := visitRow{
		VisitID:     v.VisitID,
		VisitDate:   int64(v.VisitDate),
		PatientID:   v.PatientID,
		PatientName: v.PatientName,
		DoctorName:  v.DoctorName,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return mapError(err, "inserting visit")
	}
	return nil
}

// Update replaces the visit stored under oldID with v. It returns
// visit.ErrNotFound when no visit has oldID.
func (r *VisitRepo) Update(ctx context.Context, oldID int64, v visit.Visit) error {
	res, err := r.db.NewUpdate().
		Model((*visitRow)(nil)).
		Set("visit_id = ?", v.VisitID).
		Set("visit_date = ?", int64(v.VisitDate)).
		Set("patient_id = ?", v.PatientID).
		Set("patient_name = ?", v.PatientName).
		Set("doctor_name = ?", v.DoctorName).
		Set("updated_at = now()").
		Where("visit_id = ?", oldID).
		Exec(ctx)
	if err != nil {
		return mapError(err, fmt.Sprintf("updating visit %d", oldID))
	}
	return requireAffected(res)
}

// Delete removes the visit with id, or returns visit.ErrNotFound.
func (r *VisitRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*visitRow)(nil)).
		Where("visit_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("deleting visit %d: %w", id, err)
	}
	return requireAffected(res)
}

// DeleteAll removes every visit and reports how many were removed.
func (r *VisitRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*visitRow)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting visits: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}

// Query returns the visits matching every set field of f, oldest first.
func (r *VisitRepo) Query(ctx context.Context, f visit.Filter) ([]visit.Visit, error) {
	var rows []visitRow
	q := r.db.NewSelect().Model(&rows)
	if f.VisitID != nil {
		q = q.Where("visit_id = ?", *f.VisitID)
	}
	if f.VisitDate != nil {
		q = q.Where("visit_date = ?", int64(*f.VisitDate))
	}
	if f.PatientID != nil {
		q = q.Where("patient_id = ?", *f.PatientID)
	}
	if f.PatientName != nil {
		q = q.Where("patient_name = ?", *f.PatientName)
	}
	if f.DoctorName != nil {
		q = q.Where("doctor_name = ?", *f.DoctorName)
	}
	if f.DateFrom != nil {
		q = q.Where("visit_date >= ?", int64(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("visit_date < ?", int64(*f.DateTo))
	}
	if err := q.OrderExpr("seq ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}

	out := make([]visit.Visit, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toVisit())
	}
	return out, nil
}

func requireAffected(res interface{ RowsAffected() (int64, error) }) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return visit.ErrNotFound
	}
	return nil
}

// mapError turns unique violations into the store's conflict errors and
// wraps anything else with op.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case constraintVisitID:
			return visit.ErrIDTaken
		case constraintSlot:
			return visit.ErrSlotTaken
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
