package config

import (
	"errors"
	"fmt"
)

var ErrNoProfiles = errors.New("config defines no profiles")

type ProfileNotFoundError struct {
	Name string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("no profile named %q", e.Name)
}

func Resolve(cfg Config, name string) (Profile, error) {
	if len(cfg.Profiles) == 0 {
		return Profile{}, ErrNoProfiles
	}
	for _, profile := range cfg.Profiles {
		if profile.Name == name {
			return profile, nil
		}
	}
	return Profile{}, &ProfileNotFoundError{Name: name}
}
