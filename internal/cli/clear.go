package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Cancel every visit",
		Long:  "Delete all booked visits. Asks for confirmation unless --yes is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				answer, err := p.ask("Delete all visits? [y/n]: ")
				if err != nil || strings.ToLower(answer) != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
					return nil
				}
			}

			n, err := newAPIClient().DeleteAll(cmd.Context())
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"deleted": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "All visits deleted (%d removed).\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}
