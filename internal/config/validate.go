package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jaa/terminal-timer/internal/duration"
)

var profileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid config"
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

func Validate(cfg Config) error {
	problems := []string{}

	if cfg.Version != 1 {
		problems = append(problems, "version must be 1")
	}

	switch cfg.Defaults.Progress {
	case ProgressAuto, ProgressAlways, ProgressNever:
	default:
		problems = append(problems, fmt.Sprintf("defaults.progress must be auto, always, or never, got %q", cfg.Defaults.Progress))
	}

	seenNames := map[string]struct{}{}
	for _, profile := range cfg.Profiles {
		if strings.TrimSpace(profile.Name) == "" {
			problems = append(problems, "profile.name must not be empty")
		} else {
			if !profileNamePattern.MatchString(profile.Name) {
				problems = append(problems, fmt.Sprintf("profile %q has invalid name format", profile.Name))
			}
			// a digit-leading name is unreachable: the timer argument dispatches as a literal duration
			if profile.Name[0] >= '0' && profile.Name[0] <= '9' {
				problems = append(problems, fmt.Sprintf("profile %q must not start with a digit", profile.Name))
			}
			if _, exists := seenNames[profile.Name]; exists {
				problems = append(problems, fmt.Sprintf("duplicate profile name %q", profile.Name))
			}
			seenNames[profile.Name] = struct{}{}
		}

		if strings.TrimSpace(profile.Duration) == "" {
			problems = append(problems, fmt.Sprintf("profile %q duration must be set", profile.Name))
		} else if _, err := duration.Parse(profile.Duration); err != nil {
			problems = append(problems, fmt.Sprintf("profile %q has invalid duration: %v", profile.Name, err))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
