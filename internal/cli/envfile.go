package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var envKeyRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func applyEnvFiles(cwd string, environ []string, setenv func(string, string) error) error {
	if strings.TrimSpace(cwd) == "" {
		return nil
	}
	if setenv == nil {
		return fmt.Errorf("setenv is required")
	}

	protected := make(map[string]struct{}, len(environ))
	for _, pair := range environ {
		if name, _, found := strings.Cut(pair, "="); found {
			protected[name] = struct{}{}
		}
	}

	for _, name := range []string{".env", ".env.local"} {
		if err := mergeEnvFile(filepath.Join(cwd, name), protected, setenv); err != nil {
			return err
		}
	}
	return nil
}

func mergeEnvFile(path string, protected map[string]struct{}, setenv func(string, string) error) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		name, value, ok, parseErr := splitEnvLine(scanner.Text())
		if parseErr != nil {
			return fmt.Errorf("%s line %d: %w", path, line, parseErr)
		}
		if !ok {
			continue
		}
		if _, fromProcess := protected[name]; fromProcess {
			continue
		}
		if err := setenv(name, value); err != nil {
			return fmt.Errorf("set %s from %s: %w", name, path, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func splitEnvLine(raw string) (string, string, bool, error) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false, nil
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	name, rest, found := strings.Cut(line, "=")
	if !found {
		return "", "", false, fmt.Errorf("missing '=' separator")
	}
	name = strings.TrimSpace(name)
	if !envKeyRe.MatchString(name) {
		return "", "", false, fmt.Errorf("bad variable name %q", name)
	}

	value, err := decodeEnvValue(name, strings.TrimSpace(rest))
	if err != nil {
		return "", "", false, err
	}
	return name, value, true, nil
}

func decodeEnvValue(name, value string) (string, error) {
	if len(value) < 2 {
		return value, nil
	}
	switch {
	case value[0] == '"' && value[len(value)-1] == '"':
		decoded, err := strconv.Unquote(value)
		if err != nil {
			return "", fmt.Errorf("bad quoted value for %q", name)
		}
		return decoded, nil
	case value[0] == '\'' && value[len(value)-1] == '\'':
		return value[1 : len(value)-1], nil
	}
	return value, nil
}
