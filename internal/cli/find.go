package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/clinic-visits/internal/visit"
)

func newFindCmd() *cobra.Command {
	var sel struct {
		date, patient, name, doctor string
	}

	cmd := &cobra.Command{
		Use:   "find <mode> [value]",
		Short: "Find visits",
		Long: `Find visits by one of the search modes.

Modes:
  id <visit_id>         a single visit
  patient <patient_id>  every visit of a patient
  doctor <name>         every visit with a doctor
  date <YYMMDDHH>       every visit on that day, any hour
  selected              the visit matching --date, --patient, --name and --doctor

Examples:
  cv find doctor "Adam Nadobny"
  cv find date 12123008
  cv find selected --date 12123012 --patient 12345678934 --name "Jan Kowalski" --doctor "Marzena Borowik"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := visit.ParseMode(args[0])
			if err != nil {
				return err
			}

			var value string
			if len(args) == 2 {
				value = strings.TrimSpace(args[1])
			}

			l := visit.Lookup{Mode: mode}
			switch mode {
			case visit.ModeID:
				if l.VisitID, err = strconv.ParseInt(value, 10, 64); err != nil {
					return fmt.Errorf("invalid visit ID: %q", value)
				}
			case visit.ModePatient:
				l.PatientID = value
			case visit.ModeDoctor:
				l.DoctorName = value
			case visit.ModeDate:
				if l.VisitDate, err = parseDateArg(value); err != nil {
					return err
				}
			case visit.ModeSelected:
				if l.VisitDate, err = parseDateArg(sel.date); err != nil {
					return err
				}
				l.PatientID = sel.patient
				l.PatientName = sel.name
				l.DoctorName = sel.doctor
			}
			if value == "" && mode != visit.ModeAll && mode != visit.ModeSelected {
				return fmt.Errorf("mode %s needs a value", mode)
			}

			visits, err := newAPIClient().Find(cmd.Context(), l)
			if err != nil {
				return err
			}
			return printVisits(cmd.OutOrStdout(), visits)
		},
	}

	cmd.Flags().StringVar(&sel.date, "date", "", "visit date (YYMMDDHH) for selected")
	cmd.Flags().StringVar(&sel.patient, "patient", "", "patient id for selected")
	cmd.Flags().StringVar(&sel.name, "name", "", "patient name for selected")
	cmd.Flags().StringVar(&sel.doctor, "doctor", "", "doctor name for selected")

	return cmd
}

// parseDateArg reads a YYMMDDHH date for a search. Only the format is
// checked; opening hours do not matter for a day search.
func parseDateArg(s string) (visit.Date, error) {
	n, err := strconv.ParseInt("1"+strings.TrimSpace(s), 10, 64)
	if err != nil || strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("invalid date %q: want YYMMDDHH", s)
	}
	if err := visit.CheckDateFormat(n); err != nil {
		return 0, err
	}
	return visit.Date(n), nil
}
