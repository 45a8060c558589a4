//go:build !windows

package cli

import (
	"os"
	"syscall"
)

var cancelSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
