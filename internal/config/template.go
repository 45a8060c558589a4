package config

func DefaultTemplate() string {
	return `version: 1
defaults:
  bell: true
  progress: auto
profiles:
  - name: "tea"
    duration: "3m"
  - name: "pomodoro"
    duration: "25m"
  - name: "break"
    duration: "5m"
`
}
