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

func writeTimerConfig(t *testing.T, dir string) string {
	t.Helper()
	configPath := filepath.Join(dir, "config.yaml")
	payload := `version: 1
defaults:
  bell: true
  progress: auto
profiles:
  - name: "instant"
    duration: "0s"
  - name: "tea"
    duration: "3m"
`
	if err := os.WriteFile(configPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func TestRunLiteralDurationCompletes(t *testing.T) {
	isolateConfig(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"0"})

	if err := root.Execute(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout.String() != "Finished!\n" {
		t.Fatalf("expected completion notice, got: %q", stdout.String())
	}
	if stderr.String() != "" {
		t.Fatalf("expected empty stderr, got: %q", stderr.String())
	}
}

func TestRunProfileCompletes(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	configPath := writeTimerConfig(t, tmp)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"instant", "--config", configPath})

	if err := root.Execute(); err != nil {
		t.Fatalf("profile run failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Finished!") {
		t.Fatalf("expected completion notice, got: %q", stdout.String())
	}
}

func TestRunJSONEmitsLifecycleEvents(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	configPath := writeTimerConfig(t, tmp)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"instant", "--config", configPath, "--json"})

	if err := root.Execute(); err != nil {
		t.Fatalf("json run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 json events, got: %q", stdout.String())
	}

	first := map[string]any{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal first event: %v", err)
	}
	if first["event"] != "timer_started" {
		t.Fatalf("expected timer_started, got %v", first["event"])
	}
	if first["profile"] != "instant" {
		t.Fatalf("expected profile in event, got %v", first["profile"])
	}

	last := map[string]any{}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatalf("unmarshal last event: %v", err)
	}
	if last["event"] != "timer_finished" {
		t.Fatalf("expected final event timer_finished, got %v", last["event"])
	}

	if !strings.Contains(stderr.String(), "Finished!") {
		t.Fatalf("expected rendering on stderr in json mode, got: %q", stderr.String())
	}
}

func TestRunQuietSuppressesRendering(t *testing.T) {
	isolateConfig(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"0", "--quiet"})

	if err := root.Execute(); err != nil {
		t.Fatalf("quiet run failed: %v", err)
	}
	if stdout.String() != "" {
		t.Fatalf("expected no output in quiet mode, got: %q", stdout.String())
	}
}

func TestRunProgressAlwaysForcesRendering(t *testing.T) {
	isolateConfig(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"0", "--progress", "always"})

	if err := root.Execute(); err != nil {
		t.Fatalf("forced-progress run failed: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "\x1b[?25l") {
		t.Fatalf("expected hide-cursor sequence, got: %q", out)
	}
	if !strings.Contains(out, "Finished!") {
		t.Fatalf("expected completion notice, got: %q", out)
	}
	if got := strings.Count(out, "\a"); got != 2 {
		t.Fatalf("expected progress-clear and bell, got %d BEL in %q", got, out)
	}
}

func TestRunNoBellSkipsAlert(t *testing.T) {
	isolateConfig(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"0", "--progress", "always", "--no-bell"})

	if err := root.Execute(); err != nil {
		t.Fatalf("no-bell run failed: %v", err)
	}
	if got := strings.Count(stdout.String(), "\a"); got != 1 {
		t.Fatalf("expected only the progress-clear BEL, got %d in %q", got, stdout.String())
	}
}

func TestRunProgressModeFromEnv(t *testing.T) {
	isolateConfig(t)
	t.Setenv("TMR_PROGRESS", "always")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"0"})

	if err := root.Execute(); err != nil {
		t.Fatalf("env-progress run failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "\x1b[?25l") {
		t.Fatalf("expected TMR_PROGRESS=always to force rendering, got: %q", stdout.String())
	}
}

func TestRunUnknownProfile(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	configPath := writeTimerConfig(t, tmp)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"nosuch", "--config", configPath})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected unknown profile error")
	}
	if !strings.Contains(err.Error(), `no profile named "nosuch"`) {
		t.Fatalf("expected profile lookup message, got: %v", err)
	}
	if got := mapExitCode(err); got != exitcode.InvalidConfig {
		t.Fatalf("mapExitCode() = %d, want %d", got, exitcode.InvalidConfig)
	}
}

func TestRunProfileWithoutProfiles(t *testing.T) {
	isolateConfig(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"tea"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected no-profiles error")
	}
	if !strings.Contains(err.Error(), "no profiles") {
		t.Fatalf("expected no-profiles message, got: %v", err)
	}
	if got := mapExitCode(err); got != exitcode.InvalidConfig {
		t.Fatalf("mapExitCode() = %d, want %d", got, exitcode.InvalidConfig)
	}
}

func TestRunInvalidDuration(t *testing.T) {
	isolateConfig(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"5x"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected invalid duration error")
	}
	if !strings.Contains(err.Error(), "invalid character") {
		t.Fatalf("expected parse message, got: %v", err)
	}
	if got := mapExitCode(err); got != exitcode.InvalidDuration {
		t.Fatalf("mapExitCode() = %d, want %d", got, exitcode.InvalidDuration)
	}
}

func TestRunInvalidProgressMode(t *testing.T) {
	isolateConfig(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"0", "--progress", "sometimes"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected invalid progress mode error")
	}
	if !strings.Contains(err.Error(), "invalid --progress mode") {
		t.Fatalf("expected progress mode guidance, got: %v", err)
	}
	if got := mapExitCode(err); got != exitcode.InvalidUsage {
		t.Fatalf("mapExitCode() = %d, want %d", got, exitcode.InvalidUsage)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	isolateConfig(t)
	tmp := t.TempDir()
	configPath := filepath.Join(tmp, "config.yaml")
	payload := `version: 2
profiles:
  - name: "tea"
    duration: "3m"
`
	if err := os.WriteFile(configPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := newTestApp(stdout, stderr)
	root := newRootCommand(app)
	root.SetArgs([]string{"tea", "--config", configPath})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected invalid config error")
	}
	if !strings.Contains(err.Error(), "version must be 1") {
		t.Fatalf("expected validation problem, got: %v", err)
	}
	if got := mapExitCode(err); got != exitcode.InvalidConfig {
		t.Fatalf("mapExitCode() = %d, want %d", got, exitcode.InvalidConfig)
	}
}
