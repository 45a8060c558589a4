package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jaa/terminal-timer/internal/doctor"
	"github.com/jaa/terminal-timer/internal/exitcode"
	"github.com/spf13/cobra"
)

func newDoctorCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config and terminal readiness",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDoctor(app)
		},
	}
}

func runDoctor(app *AppContext) error {
	cfg, err := loadConfig(app)
	if err != nil {
		return withExitCode(exitcode.InvalidConfig, err)
	}

	report := doctor.NewChecker().Check(cfg)
	if app.Opts.JSON {
		encoded, err := json.Marshal(report)
		if err != nil {
			return withExitCode(exitcode.RuntimeFailure, err)
		}
		fmt.Fprintln(app.IO.Out, string(encoded))
	} else {
		printDoctorReport(app.IO.Out, report)
	}

	if report.HasErrors() {
		return withExitCode(exitcode.InvalidConfig, fmt.Errorf("doctor found %d error(s)", report.ErrorCount()))
	}
	return nil
}

func printDoctorReport(out io.Writer, report doctor.Report) {
	checks := append([]doctor.Check{}, report.Checks...)
	sort.SliceStable(checks, func(i, j int) bool {
		return checks[i].Name < checks[j].Name
	})
	for _, check := range checks {
		fmt.Fprintf(out, "[%s] %s: %s\n", check.Severity, check.Name, check.Message)
	}
}
