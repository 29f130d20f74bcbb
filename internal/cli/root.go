// Package cli defines the cobra command tree for cv.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/clinic-visits/internal/client"
)

var (
	flagFormat string
	flagDB     string
	flagConfig string
	flagServer string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cv",
		Short:         "Book and look up clinic visits",
		Long:          "A clinic appointment service. Run the API server with 'cv serve' and book, find and cancel visits from the other commands or the interactive menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path for serve (default: ~/.config/cv/visits.db)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "server config file for serve (default: ./cv.yaml)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (overrides CV_SERVER_URL and config)")

	root.AddCommand(
		newServeCmd(),
		newBookCmd(),
		newListCmd(),
		newFindCmd(),
		newUpdateCmd(),
		newRemoveCmd(),
		newClearCmd(),
		newSeedCmd(),
		newMenuCmd(),
		newDoctorsCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the visits API.
func newAPIClient() *client.Client {
	if flagServer != "" {
		return client.New(flagServer)
	}
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
