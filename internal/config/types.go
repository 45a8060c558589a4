package config

type ProgressMode string

const (
	ProgressAuto   ProgressMode = "auto"
	ProgressAlways ProgressMode = "always"
	ProgressNever  ProgressMode = "never"
)

type Config struct {
	Version  int       `yaml:"version"`
	Defaults Defaults  `yaml:"defaults"`
	Profiles []Profile `yaml:"profiles"`
}

type Defaults struct {
	Bell     bool         `yaml:"bell"`
	Progress ProgressMode `yaml:"progress"`
}

type Profile struct {
	Name     string `yaml:"name"`
	Duration string `yaml:"duration"`
}

func DefaultConfig() Config {
	return Config{
		Version: 1,
		Defaults: Defaults{
			Bell:     true,
			Progress: ProgressAuto,
		},
		Profiles: []Profile{},
	}
}
