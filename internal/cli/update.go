package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var (
		name  string
		newID int64
	)

	cmd := &cobra.Command{
		Use:   "update <visit_id> <date> <patient_id> <doctor>",
		Short: "Replace a booked visit",
		Long: `Replace every field of a booked visit.

Use --new-id to move the visit to another ID.

Examples:
  cv update 7 12123014 12345678934 "Adam Nadobny" --name "Jan Kowalski"
  cv update 7 12123014 12345678934 "Adam Nadobny" --new-id 8`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid visit ID: %s", args[0])
			}

			if cmd.Flags().Changed("new-id") {
				args = append([]string{strconv.FormatInt(newID, 10)}, args[1:]...)
			}
			v, err := visitFromArgs(args)
			if err != nil {
				return err
			}
			v.PatientName = name

			msg, err := newAPIClient().Update(cmd.Context(), target, v)
			if err != nil {
				return err
			}
			return printMessage(cmd.OutOrStdout(), msg)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "patient name and surname")
	cmd.Flags().Int64Var(&newID, "new-id", 0, "new visit ID")

	return cmd
}
