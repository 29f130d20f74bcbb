package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

const (
	constraintVisitID = "visits_visit_id_key"
	constraintSlot    = "visits_slot_key"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS visits (
		seq          BIGSERIAL   PRIMARY KEY,
		visit_id     BIGINT      NOT NULL,
		visit_date   BIGINT      NOT NULL,
		patient_id   TEXT        NOT NULL,
		patient_name TEXT        NOT NULL DEFAULT '',
		doctor_name  TEXT        NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ,
		CONSTRAINT ` + constraintVisitID + ` UNIQUE (visit_id),
		CONSTRAINT ` + constraintSlot + ` UNIQUE (visit_date, doctor_name)
	)`,
	`CREATE INDEX IF NOT EXISTS visits_patient_idx ON visits (patient_id)`,
}

// Migrate creates the visits table and its indexes. It is safe to run on every start.
func Migrate(ctx context.Context, db bun.IDB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
