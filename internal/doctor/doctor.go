package doctor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jaa/terminal-timer/internal/config"
	"github.com/jaa/terminal-timer/internal/duration"
	"github.com/jaa/terminal-timer/internal/term"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

type Check struct {
	Severity Severity `json:"severity"`
	Name     string   `json:"name"`
	Message  string   `json:"message"`
}

type Report struct {
	Checks []Check `json:"checks"`
}

func (r Report) HasErrors() bool {
	for _, check := range r.Checks {
		if check.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r Report) ErrorCount() int {
	count := 0
	for _, check := range r.Checks {
		if check.Severity == SeverityError {
			count++
		}
	}
	return count
}

type Checker struct {
	Getenv         func(string) string
	Interactive    func() bool
	Width          func() int
	UserConfigPath func() (string, error)
	Stat           func(string) (os.FileInfo, error)
}

func NewChecker() *Checker {
	terminal := term.New(os.Stdout)
	return &Checker{
		Getenv:         os.Getenv,
		Interactive:    terminal.Interactive,
		Width:          terminal.Width,
		UserConfigPath: config.UserConfigPath,
		Stat:           os.Stat,
	}
}

func (c *Checker) Check(cfg config.Config) Report {
	report := Report{Checks: []Check{}}

	if path, err := c.UserConfigPath(); err != nil {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityWarn,
			Name:     "config",
			Message:  fmt.Sprintf("user config path could not be resolved: %v", err),
		})
	} else if _, statErr := c.Stat(path); statErr == nil {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityInfo,
			Name:     "config",
			Message:  fmt.Sprintf("user config found at %s", path),
		})
	} else {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityInfo,
			Name:     "config",
			Message:  fmt.Sprintf("no user config at %s (run 'tmr init' to create one)", path),
		})
	}

	if err := config.Validate(cfg); err != nil {
		var validationErr *config.ValidationError
		if errors.As(err, &validationErr) {
			for _, problem := range validationErr.Problems {
				report.Checks = append(report.Checks, Check{
					Severity: SeverityError,
					Name:     "config",
					Message:  problem,
				})
			}
		} else {
			report.Checks = append(report.Checks, Check{
				Severity: SeverityError,
				Name:     "config",
				Message:  err.Error(),
			})
		}
	} else {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityInfo,
			Name:     "config",
			Message:  "config is valid",
		})
	}

	if len(cfg.Profiles) == 0 {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityWarn,
			Name:     "profiles",
			Message:  "no profiles configured",
		})
	}
	for _, profile := range cfg.Profiles {
		spec, err := duration.Parse(profile.Duration)
		if err != nil {
			continue
		}
		report.Checks = append(report.Checks, Check{
			Severity: SeverityInfo,
			Name:     "profiles",
			Message:  fmt.Sprintf("profile %q resolves to %ds", profile.Name, spec.Seconds()),
		})
	}

	if c.Interactive() {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityInfo,
			Name:     "terminal",
			Message:  "stdout is a terminal; in-place rendering enabled",
		})

		width := c.Width()
		barWidth := width - 15
		if barWidth > 30 {
			barWidth = 30
		}
		if barWidth <= 0 {
			report.Checks = append(report.Checks, Check{
				Severity: SeverityWarn,
				Name:     "terminal",
				Message:  fmt.Sprintf("width %d leaves no room for the progress bar", width),
			})
		} else {
			report.Checks = append(report.Checks, Check{
				Severity: SeverityInfo,
				Name:     "terminal",
				Message:  fmt.Sprintf("width %d columns (progress bar %d cells)", width, barWidth),
			})
		}
	} else {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityWarn,
			Name:     "terminal",
			Message:  "stdout is not a terminal; countdown will run without in-place rendering",
		})
	}

	switch termEnv := strings.TrimSpace(c.Getenv("TERM")); termEnv {
	case "":
		report.Checks = append(report.Checks, Check{
			Severity: SeverityWarn,
			Name:     "terminal",
			Message:  "TERM is not set; escape sequences may not be interpreted",
		})
	case "dumb":
		report.Checks = append(report.Checks, Check{
			Severity: SeverityWarn,
			Name:     "terminal",
			Message:  "TERM=dumb; escape sequences may not be interpreted",
		})
	default:
		report.Checks = append(report.Checks, Check{
			Severity: SeverityInfo,
			Name:     "terminal",
			Message:  fmt.Sprintf("TERM=%s", termEnv),
		})
	}

	if strings.TrimSpace(c.Getenv("NO_COLOR")) != "" {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityInfo,
			Name:     "terminal",
			Message:  "NO_COLOR is set; bar colors disabled",
		})
	}

	return report
}
