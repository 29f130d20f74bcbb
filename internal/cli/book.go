package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/clinic-visits/internal/visit"
)

func newBookCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "book <visit_id> <date> <patient_id> <doctor>",
		Short: "Book a visit",
		Long: `Book a visit with a doctor.

Date format: YYMMDDHH (the clinic is open 8-18)
Patient id: 11 digits

Examples:
  cv book 7 12123012 12345678934 "Marzena Borowik" --name "Jan Kowalski"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := visitFromArgs(args)
			if err != nil {
				return err
			}
			v.PatientName = name

			msg, err := newAPIClient().Create(cmd.Context(), v)
			if err != nil {
				return err
			}
			return printMessage(cmd.OutOrStdout(), msg)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "patient name and surname")

	return cmd
}

// visitFromArgs parses <visit_id> <date> <patient_id> <doctor> and checks
// the fields that can be checked without the server.
func visitFromArgs(args []string) (visit.Visit, error) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return visit.Visit{}, fmt.Errorf("invalid visit ID: %s", args[0])
	}

	date, err := visit.ParseDateInput(args[1])
	if err != nil {
		return visit.Visit{}, err
	}

	patientID, err := visit.ValidatePatientID(args[2])
	if err != nil {
		return visit.Visit{}, err
	}

	return visit.Visit{
		VisitID:    id,
		VisitDate:  date,
		PatientID:  patientID,
		DoctorName: strings.TrimSpace(args[3]),
	}, nil
}
