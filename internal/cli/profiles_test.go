package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaa/terminal-timer/internal/exitcode"
)

func TestProfilesListsResolvedSeconds(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	configPath := writeTimerConfig(t, tmp)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"profiles", "--config", configPath})

	if err := root.Execute(); err != nil {
		t.Fatalf("profiles failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "instant: 0s (0s)") {
		t.Fatalf("expected instant profile line, got: %s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "tea: 3m (180s)") {
		t.Fatalf("expected tea profile line, got: %s", stdout.String())
	}
}

func TestProfilesJSONOutput(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	configPath := writeTimerConfig(t, tmp)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"profiles", "--config", configPath, "--json"})

	if err := root.Execute(); err != nil {
		t.Fatalf("profiles --json failed: %v", err)
	}

	var listings []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &listings); err != nil {
		t.Fatalf("unmarshal listings: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 profiles, got %d: %s", len(listings), stdout.String())
	}
	if listings[1]["name"] != "tea" || listings[1]["seconds"] != float64(180) {
		t.Fatalf("unexpected tea listing: %+v", listings[1])
	}
}

func TestProfilesWithoutAnyConfigured(t *testing.T) {
	isolateConfig(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"profiles"})

	if err := root.Execute(); err != nil {
		t.Fatalf("profiles failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "No profiles configured") {
		t.Fatalf("expected empty-profiles notice, got: %s", stdout.String())
	}
}

func TestProfilesRejectsInvalidConfig(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	configPath := filepath.Join(tmp, "config.yaml")
	payload := `version: 1
profiles:
  - name: "tea"
    duration: "nonsense"
`
	if err := os.WriteFile(configPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"profiles", "--config", configPath})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected invalid config error")
	}
	if got := mapExitCode(err); got != exitcode.InvalidConfig {
		t.Fatalf("mapExitCode() = %d, want %d", got, exitcode.InvalidConfig)
	}
}
