package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/clinic-visits/internal/visit"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != ":5000" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":5000")
	}
	if cfg.DatabaseDriver != DriverSQLite {
		t.Errorf("DatabaseDriver = %q, want %q", cfg.DatabaseDriver, DriverSQLite)
	}
	if !strings.HasSuffix(cfg.SQLitePath, filepath.Join("cv", "visits.db")) {
		t.Errorf("SQLitePath = %q, want suffix cv/visits.db", cfg.SQLitePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 10*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("timeouts = %v/%v, want 10s/10s", cfg.RequestTimeout, cfg.ShutdownTimeout)
	}
	if !reflect.DeepEqual(cfg.Doctors, visit.DefaultRoster) {
		t.Errorf("Doctors = %v, want default roster", cfg.Doctors)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CV_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("CV_DATABASE_DRIVER", "Postgres")
	t.Setenv("CV_DATABASE_URL", "postgres://x@localhost/visits")
	t.Setenv("CV_LOG_LEVEL", "debug")
	t.Setenv("CV_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DatabaseDriver != DriverPostgres {
		t.Errorf("DatabaseDriver = %q, want %q", cfg.DatabaseDriver, DriverPostgres)
	}
	if cfg.DatabaseURL != "postgres://x@localhost/visits" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 3s", cfg.ShutdownTimeout)
	}
}

func TestLoadDoctorsFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CV_DOCTORS", "Jan Kowalski, Anna Nowak,,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"Jan Kowalski", "Anna Nowak"}
	if !reflect.DeepEqual(cfg.Doctors, want) {
		t.Errorf("Doctors = %q, want %q", cfg.Doctors, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "clinic.yaml")
	content := `server:
  addr: ":8080"
  request_timeout: 2s
doctors:
  - Anna Lis
  - Piotr Wrona
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("RequestTimeout = %v, want 2s", cfg.RequestTimeout)
	}
	want := []string{"Anna Lis", "Piotr Wrona"}
	if !reflect.DeepEqual(cfg.Doctors, want) {
		t.Errorf("Doctors = %v, want %v", cfg.Doctors, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{"missing explicit file", nil, "does-not-exist.yaml"},
		{"bad duration", map[string]string{"CV_SHUTDOWN_TIMEOUT": "soon"}, ""},
		{"bad driver", map[string]string{"CV_DATABASE_DRIVER": "mysql"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.file); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
