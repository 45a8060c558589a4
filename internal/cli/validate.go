package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jaa/terminal-timer/internal/config"
	"github.com/jaa/terminal-timer/internal/exitcode"
	"github.com/spf13/cobra"
)

func newValidateCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file for schema and profile problems",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(app)
		},
	}
}

func runValidate(app *AppContext) error {
	cfg, err := loadConfig(app)
	if err != nil {
		return withExitCode(exitcode.InvalidConfig, err)
	}
	if err := config.Validate(cfg); err != nil {
		return withExitCode(exitcode.InvalidConfig, err)
	}

	if app.Opts.JSON {
		encoded, err := json.Marshal(struct {
			Valid bool `json:"valid"`
		}{Valid: true})
		if err != nil {
			return withExitCode(exitcode.RuntimeFailure, err)
		}
		fmt.Fprintln(app.IO.Out, string(encoded))
		return nil
	}

	fmt.Fprintf(app.IO.Out, "Config is valid. %d profile(s) defined.\n", len(cfg.Profiles))
	return nil
}
