package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/clinic-visits/internal/visit"
)

// sampleVisits is a small demo data set. Visit 2 falls outside opening
// hours and is rejected by the server.
var sampleVisits = []visit.Visit{
	{VisitID: 1, VisitDate: 112123012, PatientID: "12345678934", PatientName: "Jan Kowalski", DoctorName: "Marzena Borowik"},
	{VisitID: 2, VisitDate: 111121107, PatientID: "98765432134", PatientName: "Jan Kowalski", DoctorName: "Stanislaw Nowak"},
	{VisitID: 3, VisitDate: 122102208, PatientID: "24682333156", PatientName: "Marcelina Doborowska", DoctorName: "Adam Nadobny"},
	{VisitID: 4, VisitDate: 114090909, PatientID: "31415928624", PatientName: "Przemek Wolinski", DoctorName: "Piotr Krzyszczak"},
	{VisitID: 5, VisitDate: 122040412, PatientID: "11111111143", PatientName: "Jan Buczek", DoctorName: "Marzena Borowik"},
	{VisitID: 6, VisitDate: 112080816, PatientID: "12345678934", PatientName: "Jan Kowalski", DoctorName: "Adam Nadobny"},
}

type seedResult struct {
	VisitID int64  `json:"visit_id"`
	Booked  bool   `json:"booked"`
	Message string `json:"message"`
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Book a set of sample visits",
		Long:  "Post six sample visits to the server and report what happened to each one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()

			results := make([]seedResult, 0, len(sampleVisits))
			for _, v := range sampleVisits {
				msg, err := c.Create(cmd.Context(), v)
				if err != nil {
					reason, ok := rejection(err)
					if !ok {
						return err
					}
					results = append(results, seedResult{VisitID: v.VisitID, Message: reason})
					continue
				}
				results = append(results, seedResult{VisitID: v.VisitID, Booked: true, Message: msg})
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d: %s\n", r.VisitID, r.Message)
			}
			return nil
		},
	}
}
