package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jaa/terminal-timer/internal/config"
	"github.com/mattn/go-isatty"
)

func loadConfig(app *AppContext) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve working directory: %w", err)
	}

	explicit, err := config.ExpandPath(strings.TrimSpace(app.Opts.ConfigPath))
	if err != nil {
		return config.Config{}, err
	}

	return config.Load(config.LoadOptions{
		ExplicitPath: explicit,
		WorkingDir:   wd,
	})
}

func isTTY(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
