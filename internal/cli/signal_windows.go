//go:build windows

package cli

import "os"

var cancelSignals = []os.Signal{os.Interrupt}
