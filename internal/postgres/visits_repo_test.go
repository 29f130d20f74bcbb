package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/evcraddock/clinic-visits/internal/visit"
)

func TestMapError(t *testing.T) {
	other := errors.New("boom")
	uniqueOther := &pgconn.PgError{Code: "23505", ConstraintName: "something_else"}
	notNull := &pgconn.PgError{Code: "23502", ConstraintName: constraintSlot}

	tests := []struct {
		name    string
		in      error
		want    error
		wrapped bool
	}{
		{"visit id", &pgconn.PgError{Code: "23505", ConstraintName: constraintVisitID}, visit.ErrIDTaken, false},
		{"slot", &pgconn.PgError{Code: "23505", ConstraintName: constraintSlot}, visit.ErrSlotTaken, false},
		{"other constraint", uniqueOther, uniqueOther, true},
		{"not null", notNull, notNull, true},
		{"plain", other, other, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in, "inserting visit")
			if !errors.Is(got, tt.want) {
				t.Fatalf("mapError() = %v, want %v", got, tt.want)
			}
			if tt.wrapped {
				if !strings.HasPrefix(got.Error(), "inserting visit: ") {
					t.Errorf("mapError() = %q, want it prefixed with the operation", got)
				}
				if errors.Is(got, visit.ErrIDTaken) || errors.Is(got, visit.ErrSlotTaken) {
					t.Errorf("mapError() = %v, want no conflict error", got)
				}
			} else if got != tt.want {
				t.Errorf("mapError() = %v, want %v unwrapped", got, tt.want)
			}
		})
	}

	if err := mapError(nil, "inserting visit"); err != nil {
		t.Errorf("mapError(nil) = %v", err)
	}
}

// TestVisitRepoIntegration needs a disposable database in CV_TEST_DATABASE_URL.
func TestVisitRepoIntegration(t *testing.T) {
	url := os.Getenv("CV_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CV_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := Open(ctx, url, PoolConfig{MaxOpenConns: 4})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	repo := NewVisitRepo(db)
	if _, err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	v := visit.Visit{VisitID: 1, VisitDate: 112123012, PatientID: "12345678934", PatientName: "Jan Kowalski", DoctorName: "Marzena Borowik"}
	if err := repo.Insert(ctx, v); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, v); !errors.Is(err, visit.ErrIDTaken) {
		t.Errorf("duplicate id err = %v, want %v", err, visit.ErrIDTaken)
	}

	clash := v
	clash.VisitID = 2
	clash.PatientID = "98765432134"
	if err := repo.Insert(ctx, clash); !errors.Is(err, visit.ErrSlotTaken) {
		t.Errorf("slot clash err = %v, want %v", err, visit.ErrSlotTaken)
	}

	moved := v
	moved.VisitID = 5
	moved.VisitDate = 112123013
	if err := repo.Update(ctx, 1, moved); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.Update(ctx, 1, moved); !errors.Is(err, visit.ErrNotFound) {
		t.Errorf("update missing err = %v, want %v", err, visit.ErrNotFound)
	}

	from, to := moved.VisitDate.DayWindow()
	got, err := repo.Query(ctx, visit.Filter{DateFrom: &from, DateTo: &to})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0] != moved {
		t.Errorf("query = %+v, want [%+v]", got, moved)
	}

	if err := repo.Delete(ctx, 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, 5); !errors.Is(err, visit.ErrNotFound) {
		t.Errorf("second delete err = %v, want %v", err, visit.ErrNotFound)
	}

	// The service must behave the same on either store.
	svc := visit.NewService(repo, visit.NewRoster(visit.DefaultRoster), nil)
	if err := svc.Create(ctx, v); err != nil {
		t.Fatalf("service create: %v", err)
	}
	if _, err := svc.Find(ctx, visit.Lookup{Mode: visit.ModeID, VisitID: 1}); err != nil {
		t.Errorf("service find: %v", err)
	}
}
