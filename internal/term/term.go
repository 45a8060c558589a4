package term

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

const DefaultWidth = 80

type Options struct {
	Interactive bool
	Colors      bool
}

type Terminal struct {
	out          *bufio.Writer
	file         *os.File
	interactive  bool
	colors       bool
	cursorHidden bool
}

func New(dst io.Writer) *Terminal {
	interactive := IsTerminal(dst)
	return NewWithOptions(dst, Options{
		Interactive: interactive,
		Colors:      interactive && !termenv.EnvNoColor(),
	})
}

func NewWithOptions(dst io.Writer, opts Options) *Terminal {
	t := &Terminal{
		out:         bufio.NewWriter(dst),
		interactive: opts.Interactive,
		colors:      opts.Colors,
	}
	if file, ok := dst.(*os.File); ok {
		t.file = file
	}
	return t
}

func IsTerminal(dst io.Writer) bool {
	file, ok := dst.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *Terminal) Interactive() bool {
	return t.interactive
}

func (t *Terminal) Width() int {
	if t.file == nil {
		return DefaultWidth
	}
	width, _, err := xterm.GetSize(int(t.file.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

func (t *Terminal) CursorPrevLine() {
	if !t.interactive {
		return
	}
	t.out.WriteString(termenv.CSI + "F")
}

func (t *Terminal) ClearLine() {
	if !t.interactive {
		return
	}
	t.out.WriteString("\r" + termenv.CSI + termenv.EraseEntireLineSeq)
}

func (t *Terminal) SetCursorVisible(visible bool) {
	if !t.interactive {
		return
	}
	if visible == !t.cursorHidden {
		return
	}
	if visible {
		t.out.WriteString(termenv.CSI + termenv.ShowCursorSeq)
	} else {
		t.out.WriteString(termenv.CSI + termenv.HideCursorSeq)
	}
	t.cursorHidden = !visible
}

func (t *Terminal) ForegroundRGB(r, g, b uint8) string {
	if !t.colors {
		return ""
	}
	return termenv.CSI + fmt.Sprintf("%s;2;%d;%d;%d", termenv.Foreground, r, g, b) + "m"
}

func (t *Terminal) ForegroundReset() string {
	if !t.colors {
		return ""
	}
	return termenv.CSI + "39m"
}

func (t *Terminal) ReportProgress(percent int) {
	if !t.interactive {
		return
	}
	fmt.Fprintf(t.out, "%s9;4;1;%d%c", termenv.OSC, percent, termenv.BEL)
}

func (t *Terminal) ClearProgressReport() {
	if !t.interactive {
		return
	}
	fmt.Fprintf(t.out, "%s9;4;0;0%c", termenv.OSC, termenv.BEL)
}

func (t *Terminal) Beep() {
	if !t.interactive {
		return
	}
	t.out.WriteByte(termenv.BEL)
}

func (t *Terminal) Flush() error {
	return t.out.Flush()
}
