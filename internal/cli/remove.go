package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <visit_id>",
		Short: "Cancel a visit",
		Long:  "Cancel one booked visit by its ID.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid visit ID: %s", args[0])
			}

			if _, err := newAPIClient().Delete(cmd.Context(), id); err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"visit_id": id,
					"removed":  true,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Visit #%d removed.\n", id)
			return nil
		},
	}
}
