package cli

import (
	"fmt"
	"os"

	"github.com/jaa/terminal-timer/internal/exitcode"
	"github.com/spf13/cobra"
)

func Execute(build BuildInfo, streams IOStreams) int {
	if wd, err := os.Getwd(); err == nil {
		if envErr := applyEnvFiles(wd, os.Environ(), os.Setenv); envErr != nil {
			fmt.Fprintln(streams.ErrOut, "WARN:", envErr)
		}
	}

	app := &AppContext{Build: build, IO: streams}
	err := newRootCommand(app).Execute()
	if err == nil {
		return exitcode.Success
	}
	fmt.Fprintln(streams.ErrOut, "ERROR:", err)
	return mapExitCode(err)
}

func newRootCommand(app *AppContext) *cobra.Command {
	showVersion := false

	root := &cobra.Command{
		Use:   "tmr [duration|profile]",
		Short: "Count down a duration with a live terminal progress bar",
		Long:  "tmr is a terminal countdown timer. It takes a compact duration (1h30m, 90s, 45) or the name of a profile from its config and counts down to zero.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return withExitCode(exitcode.InvalidUsage, fmt.Errorf("unknown option: %s", args[1]))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion(app)
				return nil
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return runTimer(app, cmd, args[0])
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	defaultConfigPath := os.Getenv("TMR_CONFIG")
	root.PersistentFlags().StringVarP(&app.Opts.ConfigPath, "config", "c", defaultConfigPath, "Config file to use")
	root.PersistentFlags().BoolVar(&app.Opts.JSON, "json", false, "Emit newline-delimited JSON events")
	root.PersistentFlags().BoolVarP(&app.Opts.Quiet, "quiet", "q", false, "Suppress countdown rendering")
	root.PersistentFlags().BoolVar(&app.Opts.NoColor, "no-color", false, "Turn off ANSI colors")
	root.PersistentFlags().BoolVar(&app.Opts.NoInput, "no-input", false, "Never prompt for input")
	root.Flags().BoolVar(&app.Opts.NoBell, "no-bell", false, "Skip the audible alert on completion")
	root.Flags().StringVar(&app.Opts.Progress, "progress", "auto", "Progress rendering mode: auto, always, or never")
	root.Flags().BoolVar(&showVersion, "version", false, "Print version and exit")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(exitcode.InvalidUsage, err)
	})

	root.AddCommand(newInitCommand(app))
	root.AddCommand(newValidateCommand(app))
	root.AddCommand(newDoctorCommand(app))
	root.AddCommand(newProfilesCommand(app))
	root.AddCommand(newVersionCommand(app))

	return root
}

func printVersion(app *AppContext) {
	fmt.Fprintf(app.IO.Out, "tmr version %s\ncommit: %s\nbuild_date: %s\n",
		orDefault(app.Build.Version, "dev"),
		orDefault(app.Build.Commit, "unknown"),
		orDefault(app.Build.Date, "unknown"))
}

func orDefault(value string, alt string) string {
	if value == "" {
		return alt
	}
	return value
}
