// Package ipplog owns the single structured logger the interpreter
// uses for diagnostics — loader summaries, per-instruction trace, and
// the final error line before the process exits. It is deliberately
// silent by default: IPPcode23's only contract-checked output is
// whatever WRITE sends to stdout, so this logger writes to stderr and
// starts at a level that produces nothing on the golden path.
package ipplog

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// Log returns the package-level logger, creating it on first use at
// warn level (quiet unless something is actually wrong).
func Log() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	})
	return logger
}

// SetVerbose raises the logger to debug level, enabling the loader
// summary and per-instruction trace lines. Wired from the --verbose
// CLI flag; mirrors the original interpreter's DEBUG=1 environment
// toggle that dumped frame state after every step (see
// original_source/runtime.py), expressed here as leveled logging
// instead of an env var and unconditional prints.
func SetVerbose(v bool) {
	if v {
		Log().SetLevel(logrus.DebugLevel)
	}
}
