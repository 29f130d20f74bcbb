package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all visits",
		Long:  "List every booked visit in booking order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			visits, err := newAPIClient().ListAll(cmd.Context())
			if err != nil {
				return err
			}
			return printVisits(cmd.OutOrStdout(), visits)
		},
	}
}
