// Package step implements the narrow, single-purpose orchestration
// units command handlers sequence: each wraps one adapter call or a
// small fixed group of remote-action/SSH calls, returns the callee's
// error unchanged, and logs step enter/exit.
package step

import "github.com/go-logr/logr"

func logEnter(logger logr.Logger, name string, keysAndValues ...any) {
	logger.Info("step starting", append([]any{"step", name}, keysAndValues...)...)
}

func logExit(logger logr.Logger, name string, keysAndValues ...any) {
	logger.Info("step finished", append([]any{"step", name}, keysAndValues...)...)
}
