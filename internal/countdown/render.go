package countdown

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	maxBarWidth  = 30
	barCellFull  = '█'
	barCellEmpty = '▒'
)

var (
	gradientStart = colorful.Color{R: 90.0 / 255.0, G: 105.0 / 255.0, B: 237.0 / 255.0}
	gradientEnd   = colorful.Color{R: 123.0 / 255.0, G: 90.0 / 255.0, B: 237.0 / 255.0}
)

func (t *Timer) renderFrame(now, start, end time.Time, total time.Duration) {
	barWidth := barWidthFor(t.Term.Width())
	progress := float64(now.Sub(start).Milliseconds()) / float64(total.Milliseconds())
	progressWidth := int(math.Round(progress * float64(barWidth)))
	percent := int(math.Round(progress * 100))

	t.Term.CursorPrevLine()
	t.Term.ClearLine()
	fmt.Fprintf(t.Term, "%s - %s\n", now.Format("3:04pm"), formatRemaining(end.Sub(now)))

	t.Term.ClearLine()
	io.WriteString(t.Term, renderBar(t.Term, barWidth, progressWidth, percent))
	t.Term.ReportProgress(percent)
}

func barWidthFor(columns int) int {
	width := columns - 15
	if width > maxBarWidth {
		return maxBarWidth
	}
	if width < 0 {
		return 0
	}
	return width
}

func renderBar(term Terminal, barWidth, progressWidth, percent int) string {
	var bar strings.Builder
	for i := 0; i < progressWidth; i++ {
		blend := gradientStart.BlendRgb(gradientEnd, float64(i)/float64(barWidth))
		r, g, b := blend.RGB255()
		bar.WriteString(term.ForegroundRGB(r, g, b))
		bar.WriteRune(barCellFull)
	}

	bar.WriteString(term.ForegroundRGB(100, 100, 100))
	for i := progressWidth; i < barWidth; i++ {
		bar.WriteRune(barCellEmpty)
	}
	bar.WriteString(term.ForegroundReset())
	fmt.Fprintf(&bar, "  %d%%", percent)
	return bar.String()
}

func formatRemaining(remaining time.Duration) string {
	seconds := remaining.Seconds()

	var sb strings.Builder
	if hours := math.Floor(seconds / 3600); hours > 0 {
		fmt.Fprintf(&sb, "%dh", int64(hours))
	}
	if minutes := math.Floor(math.Mod(seconds, 3600) / 60); minutes > 0 {
		fmt.Fprintf(&sb, "%dm", int64(minutes))
	}
	fmt.Fprintf(&sb, "%ds", int64(math.Floor(math.Mod(seconds, 60))))
	return sb.String()
}
