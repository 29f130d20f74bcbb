package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Long:  "Shows which server the CLI talks to and whether it and its database are reachable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := newAPIClient()

			serverURL := flagServer
			if serverURL == "" {
				serverURL = getServerURL()
			}
			fmt.Fprintf(out, "Server:  %s\n", serverURL)

			if err := c.Health(cmd.Context()); err != nil {
				if msg, ok := rejection(err); ok {
					fmt.Fprintf(out, "Status:  ✗ unhealthy (%s)\n", msg)
					return nil
				}
				fmt.Fprintf(out, "Status:  ✗ cannot reach server (%v)\n", err)
				return nil
			}
			fmt.Fprintln(out, "Status:  ✓ connected")
			return nil
		},
	}
}
