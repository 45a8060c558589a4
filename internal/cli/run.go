package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"

	"github.com/jaa/terminal-timer/internal/config"
	"github.com/jaa/terminal-timer/internal/countdown"
	"github.com/jaa/terminal-timer/internal/duration"
	"github.com/jaa/terminal-timer/internal/exitcode"
	"github.com/jaa/terminal-timer/internal/output"
	"github.com/jaa/terminal-timer/internal/term"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func runTimer(app *AppContext, cmd *cobra.Command, token string) error {
	flagMode, err := parseProgressMode(app.Opts.Progress)
	if err != nil {
		return withExitCode(exitcode.InvalidUsage, err)
	}

	cfg, err := loadConfig(app)
	if err != nil {
		return withExitCode(exitcode.InvalidConfig, err)
	}
	if err := config.Validate(cfg); err != nil {
		return withExitCode(exitcode.InvalidConfig, err)
	}

	// A token starting with a digit is a literal duration; anything else
	// names a profile. Profile names starting with a digit are unreachable.
	profileName := ""
	durationText := token
	if token != "" && (token[0] < '0' || token[0] > '9') {
		profile, resolveErr := config.Resolve(cfg, token)
		if resolveErr != nil {
			return withExitCode(exitcode.InvalidConfig, resolveErr)
		}
		profileName = profile.Name
		durationText = profile.Duration
	}

	spec, err := duration.Parse(durationText)
	if err != nil {
		return withExitCode(exitcode.InvalidDuration, err)
	}

	progressMode := cfg.Defaults.Progress
	if cmd.Flags().Changed("progress") {
		progressMode = flagMode
	}
	bell := cfg.Defaults.Bell
	if app.Opts.NoBell {
		bell = false
	}

	renderDst := io.Writer(app.IO.Out)
	var emitter output.EventEmitter
	if app.Opts.JSON {
		emitter = output.NewJSONEmitter(app.IO.Out)
		renderDst = app.IO.ErrOut
	}
	if app.Opts.Quiet {
		renderDst = io.Discard
	}

	interactive := term.IsTerminal(renderDst)
	switch progressMode {
	case config.ProgressAlways:
		interactive = true
	case config.ProgressNever:
		interactive = false
	}
	terminal := term.NewWithOptions(renderDst, term.Options{
		Interactive: interactive,
		Colors:      interactive && !app.Opts.NoColor && !termenv.EnvNoColor(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), cancelSignals...)
	defer stop()

	timer := countdown.New(terminal, emitter)
	timer.Profile = profileName
	timer.Bell = bell
	if _, err := timer.Run(ctx, spec); err != nil {
		return withExitCode(exitcode.RuntimeFailure, err)
	}
	return nil
}

func parseProgressMode(raw string) (config.ProgressMode, error) {
	mode := strings.TrimSpace(strings.ToLower(raw))
	switch mode {
	case "", string(config.ProgressAuto):
		return config.ProgressAuto, nil
	case string(config.ProgressAlways), string(config.ProgressNever):
		return config.ProgressMode(mode), nil
	default:
		return "", fmt.Errorf("invalid --progress mode %q (expected: auto, always, never)", raw)
	}
}
