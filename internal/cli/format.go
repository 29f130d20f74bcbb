package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/evcraddock/clinic-visits/internal/client"
	"github.com/evcraddock/clinic-visits/internal/visit"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatVisit renders one visit on a single line.
func formatVisit(v visit.Visit) string {
	return fmt.Sprintf("Visit id: %d, Visit date: %s, Patient id: %s, Patient name: %s, Doctor's name: %s",
		v.VisitID, v.VisitDate, v.PatientID, v.PatientName, v.DoctorName)
}

// printVisitLines prints visits one per paragraph.
func printVisitLines(w io.Writer, visits []visit.Visit) {
	if len(visits) == 0 {
		fmt.Fprintln(w, "No visits booked.")
		return
	}
	for _, v := range visits {
		fmt.Fprintf(w, "%s\n\n", formatVisit(v))
	}
}

// printVisitTable prints visits as a formatted table.
func printVisitTable(out io.Writer, visits []visit.Visit) error {
	if len(visits) == 0 {
		fmt.Fprintln(out, "No visits found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tDATE\tPATIENT ID\tPATIENT\tDOCTOR"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t----------\t-------\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, v := range visits {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			v.VisitID, v.VisitDate, v.PatientID, truncate(v.PatientName, 30), v.DoctorName); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d visits\n", len(visits))
	return nil
}

// printVisits prints visits in the format chosen by --format.
func printVisits(w io.Writer, visits []visit.Visit) error {
	if isJSON() {
		if visits == nil {
			visits = []visit.Visit{}
		}
		return printJSON(w, visits)
	}
	return printVisitTable(w, visits)
}

// printMessage prints a server confirmation in the format chosen by --format.
func printMessage(w io.Writer, msg string) error {
	if isJSON() {
		return printJSON(w, map[string]string{"message": msg})
	}
	fmt.Fprintln(w, msg)
	return nil
}

// rejection returns the server's explanation when err is an API answer.
func rejection(err error) (string, bool) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
