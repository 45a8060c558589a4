package output

import "time"

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type EventName string

const (
	EventTimerStarted     EventName = "timer_started"
	EventTimerFinished    EventName = "timer_finished"
	EventTimerInterrupted EventName = "timer_interrupted"
)

type Details map[string]any

type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Event     EventName `json:"event"`
	Profile   string    `json:"profile,omitempty"`
	Message   string    `json:"message"`
	Details   Details   `json:"details,omitempty"`
}
