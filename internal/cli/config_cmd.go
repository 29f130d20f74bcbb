package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var (
		serverURL string
		doctors   []string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI settings",
		Long: `Show or change the CLI settings stored in ~/.config/cv/config.yaml.

Examples:
  cv config
  cv config --server-url http://clinic:5000
  cv config --doctors "Adam Nadobny,Jan Kowalski"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("server-url") {
				cfg.ServerURL = strings.TrimSpace(serverURL)
				changed = true
			}
			if cmd.Flags().Changed("doctors") {
				cfg.Doctors = localRosterNames(doctors)
				changed = true
			}
			if changed {
				if err := saveConfig(cfg); err != nil {
					return err
				}
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), cfg)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server:  %s\n", getServerURL())
			fmt.Fprintf(out, "Doctors: %s\n", strings.Join(localRoster().Names(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server-url", "", "API server URL to store")
	cmd.Flags().StringSliceVar(&doctors, "doctors", nil, "doctor roster used when the server cannot be reached")

	return cmd
}

func localRosterNames(names []string) []string {
	var out []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
