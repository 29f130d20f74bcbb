package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/clinic-visits/internal/client"
	"github.com/evcraddock/clinic-visits/internal/visit"
)

func newDoctorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctors",
		Short: "List available doctors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := newAPIClient().Doctors(cmd.Context())
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), names)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Available doctors")
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, ", "))
			return nil
		},
	}
}

// serverRoster asks the server for its roster and falls back to the local
// one when the server cannot answer.
func serverRoster(ctx context.Context, c *client.Client) visit.Roster {
	names, err := c.Doctors(ctx)
	if err != nil || len(names) == 0 {
		return localRoster()
	}
	return visit.NewRoster(names)
}
