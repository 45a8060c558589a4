package countdown

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jaa/terminal-timer/internal/duration"
	"github.com/jaa/terminal-timer/internal/output"
)

const redrawInterval = 16 * time.Millisecond

type Terminal interface {
	io.Writer
	Interactive() bool
	Width() int
	CursorPrevLine()
	ClearLine()
	SetCursorVisible(visible bool)
	ForegroundRGB(r, g, b uint8) string
	ForegroundReset() string
	ReportProgress(percent int)
	ClearProgressReport()
	Beep()
	Flush() error
}

type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "running"
	}
}

type Timer struct {
	Term    Terminal
	Emitter output.EventEmitter
	Profile string
	Bell    bool
	Now     func() time.Time
	Sleep   func(time.Duration)
}

func New(term Terminal, emitter output.EventEmitter) *Timer {
	if emitter == nil {
		emitter = noOpEmitter{}
	}
	return &Timer{
		Term:    term,
		Emitter: emitter,
		Bell:    true,
		Now:     time.Now,
		Sleep:   time.Sleep,
	}
}

type noOpEmitter struct{}

func (noOpEmitter) Emit(event output.Event) error {
	return nil
}

func (t *Timer) Run(ctx context.Context, spec duration.Spec) (Status, error) {
	if t.Now == nil {
		t.Now = time.Now
	}
	if t.Sleep == nil {
		t.Sleep = time.Sleep
	}

	total := spec.Duration()
	start := t.Now()
	end := start.Add(total)

	_ = t.Emitter.Emit(output.Event{
		Timestamp: start,
		Level:     output.LevelInfo,
		Event:     output.EventTimerStarted,
		Profile:   t.Profile,
		Message:   fmt.Sprintf("timer started for %s", spec),
		Details: output.Details{
			"duration_seconds": spec.Seconds(),
		},
	})

	t.Term.SetCursorVisible(false)
	defer func() {
		t.Term.SetCursorVisible(true)
		_ = t.Term.Flush()
	}()

	if t.Term.Interactive() {
		fmt.Fprintln(t.Term)
	}

	lastUpdate := t.Now()
	for {
		select {
		case <-ctx.Done():
			return t.interrupted(start)
		default:
		}

		now := t.Now()
		if now.After(end) {
			break
		}

		if sinceLast := now.Sub(lastUpdate); sinceLast < redrawInterval {
			t.Sleep(redrawInterval - sinceLast)
			continue
		}

		if t.Term.Interactive() {
			t.renderFrame(now, start, end, total)
			if err := t.Term.Flush(); err != nil {
				return StatusRunning, fmt.Errorf("flush terminal output: %w", err)
			}
		}
		lastUpdate = now
	}

	return t.completed(start)
}

func (t *Timer) interrupted(start time.Time) (Status, error) {
	t.Term.ClearLine()
	t.Term.SetCursorVisible(true)
	fmt.Fprintln(t.Term, "Exiting early!")
	if err := t.Term.Flush(); err != nil {
		return StatusRunning, fmt.Errorf("flush terminal output: %w", err)
	}

	now := t.Now()
	_ = t.Emitter.Emit(output.Event{
		Timestamp: now,
		Level:     output.LevelWarn,
		Event:     output.EventTimerInterrupted,
		Profile:   t.Profile,
		Message:   "timer interrupted",
		Details: output.Details{
			"elapsed_seconds": int64(now.Sub(start).Seconds()),
		},
	})
	return StatusInterrupted, nil
}

func (t *Timer) completed(start time.Time) (Status, error) {
	t.Term.CursorPrevLine()
	t.Term.ClearLine()
	t.Term.ClearProgressReport()
	if t.Bell {
		t.Term.Beep()
	}
	t.Term.SetCursorVisible(true)
	fmt.Fprintln(t.Term, "Finished!")
	t.Term.ClearLine()
	if err := t.Term.Flush(); err != nil {
		return StatusRunning, fmt.Errorf("flush terminal output: %w", err)
	}

	now := t.Now()
	_ = t.Emitter.Emit(output.Event{
		Timestamp: now,
		Level:     output.LevelInfo,
		Event:     output.EventTimerFinished,
		Profile:   t.Profile,
		Message:   "timer finished",
		Details: output.Details{
			"elapsed_seconds": int64(now.Sub(start).Seconds()),
		},
	})
	return StatusCompleted, nil
}
