package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jaa/terminal-timer/internal/config"
	"github.com/jaa/terminal-timer/internal/duration"
	"github.com/jaa/terminal-timer/internal/exitcode"
	"github.com/spf13/cobra"
)

type profileListing struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Seconds  uint64 `json:"seconds"`
}

func newProfilesCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured timer profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}
			if err := config.Validate(cfg); err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}

			listings := make([]profileListing, 0, len(cfg.Profiles))
			for _, profile := range cfg.Profiles {
				spec, parseErr := duration.Parse(profile.Duration)
				if parseErr != nil {
					return withExitCode(exitcode.InvalidConfig, fmt.Errorf("profile %q: %w", profile.Name, parseErr))
				}
				listings = append(listings, profileListing{
					Name:     profile.Name,
					Duration: profile.Duration,
					Seconds:  spec.Seconds(),
				})
			}

			if app.Opts.JSON {
				encoder := json.NewEncoder(app.IO.Out)
				if encodeErr := encoder.Encode(listings); encodeErr != nil {
					return withExitCode(exitcode.RuntimeFailure, encodeErr)
				}
				return nil
			}

			if len(listings) == 0 {
				fmt.Fprintln(app.IO.Out, "No profiles configured. Run 'tmr init' to create a starter config.")
				return nil
			}
			for _, listing := range listings {
				fmt.Fprintf(app.IO.Out, "%s: %s (%ds)\n", listing.Name, listing.Duration, listing.Seconds)
			}
			return nil
		},
	}
}
