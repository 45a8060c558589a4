package cli

import "github.com/spf13/cobra"

type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func newVersionCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the tmr version and build details",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			printVersion(app)
		},
	}
}
