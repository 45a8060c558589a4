package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type LoadOptions struct {
	ExplicitPath string
	WorkingDir   string
	Env          map[string]string
}

type fileConfig struct {
	Version  *int           `yaml:"version"`
	Defaults fileDefaults   `yaml:"defaults"`
	Profiles *[]fileProfile `yaml:"profiles"`
}

type fileDefaults struct {
	Bell     *bool   `yaml:"bell"`
	Progress *string `yaml:"progress"`
}

type fileProfile struct {
	Name     string `yaml:"name"`
	Duration string `yaml:"duration"`
}

func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	cwd := opts.WorkingDir
	if strings.TrimSpace(cwd) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cwd = wd
	}

	env := opts.Env
	if env == nil {
		env = osEnvMap()
	}

	if explicit := strings.TrimSpace(opts.ExplicitPath); explicit != "" {
		if err := mergeFile(&cfg, explicit, true); err != nil {
			return Config{}, err
		}
	} else {
		userPath, err := UserConfigPath()
		if err != nil {
			return Config{}, err
		}
		if err := mergeFile(&cfg, userPath, false); err != nil {
			return Config{}, err
		}

		if err := mergeFile(&cfg, ProjectConfigPath(cwd), false); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Config{}, err
	}

	normalize(&cfg)
	return cfg, nil
}

func mergeFile(cfg *Config, path string, required bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file does not exist: %s", path)
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Version != nil {
		cfg.Version = *fc.Version
	}
	if fc.Defaults.Bell != nil {
		cfg.Defaults.Bell = *fc.Defaults.Bell
	}
	if fc.Defaults.Progress != nil {
		cfg.Defaults.Progress = ProgressMode(strings.TrimSpace(*fc.Defaults.Progress))
	}

	if fc.Profiles != nil {
		cfg.Profiles = make([]Profile, 0, len(*fc.Profiles))
		for _, fp := range *fc.Profiles {
			cfg.Profiles = append(cfg.Profiles, Profile{
				Name:     strings.TrimSpace(fp.Name),
				Duration: strings.TrimSpace(fp.Duration),
			})
		}
	}

	return nil
}

func applyEnvOverrides(cfg *Config, env map[string]string) error {
	if value := strings.TrimSpace(env["TMR_BELL"]); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid TMR_BELL value %q: %w", value, err)
		}
		cfg.Defaults.Bell = parsed
	}
	if value := strings.TrimSpace(env["TMR_PROGRESS"]); value != "" {
		mode := ProgressMode(value)
		switch mode {
		case ProgressAuto, ProgressAlways, ProgressNever:
		default:
			return fmt.Errorf("invalid TMR_PROGRESS value %q: must be auto, always, or never", value)
		}
		cfg.Defaults.Progress = mode
	}
	return nil
}

func normalize(cfg *Config) {
	if strings.TrimSpace(string(cfg.Defaults.Progress)) == "" {
		cfg.Defaults.Progress = ProgressAuto
	}
}

func osEnvMap() map[string]string {
	result := map[string]string{}
	for _, pair := range os.Environ() {
		pieces := strings.SplitN(pair, "=", 2)
		if len(pieces) == 2 {
			result[pieces[0]] = pieces[1]
		}
	}
	return result
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", dir, err)
	}
	return nil
}
