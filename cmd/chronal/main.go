// Command chronal runs, checks and decodes programs for the six-register
// time travel device.
package main

import (
	"log/slog"
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	atexit.Register(func() {
		slog.Debug("Exit")
	})

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
