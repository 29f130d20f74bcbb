package cli

import (
	"testing"
)

func TestArgsValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"book no args", []string{"book"}},
		{"book three args", []string{"book", "1", "12123012", "12345678934"}},
		{"book bad id", []string{"book", "x", "12123012", "12345678934", "Adam Nadobny"}},
		{"book zero id", []string{"book", "0", "12123012", "12345678934", "Adam Nadobny"}},
		{"book bad date", []string{"book", "1", "1212", "12345678934", "Adam Nadobny"}},
		{"book closed", []string{"book", "1", "12123020", "12345678934", "Adam Nadobny"}},
		{"book bad patient", []string{"book", "1", "12123012", "123", "Adam Nadobny"}},
		{"update no args", []string{"update"}},
		{"update bad target", []string{"update", "x", "12123012", "12345678934", "Adam Nadobny"}},
		{"find no mode", []string{"find"}},
		{"find unknown mode", []string{"find", "everything"}},
		{"find id not a number", []string{"find", "id", "abc"}},
		{"find patient without value", []string{"find", "patient"}},
		{"find date bad", []string{"find", "date", "99"}},
		{"remove no id", []string{"remove"}},
		{"remove bad id", []string{"remove", "abc"}},
		{"serve extra arg", []string{"serve", "extra"}},
		{"list extra arg", []string{"list", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Point at a closed port so nothing reaches a real server.
			args := append(tt.args, "--server", "http://127.0.0.1:1")
			if _, err := executeCommand(args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestVisitFromArgs(t *testing.T) {
	v, err := visitFromArgs([]string{"7", "09010110", "12345678934", " Adam Nadobny "})
	if err != nil {
		t.Fatalf("visitFromArgs: %v", err)
	}
	if v.VisitID != 7 || v.VisitDate != 109010110 || v.PatientID != "12345678934" || v.DoctorName != "Adam Nadobny" {
		t.Errorf("visit = %+v", v)
	}
}

func TestParseDateArg(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12123008", 112123008, false},
		{"12123020", 112123020, false},
		{"", 0, true},
		{"abc", 0, true},
		{"99", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDateArg(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDateArg(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && int64(got) != tt.want {
			t.Errorf("parseDateArg(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
