package logging

import (
	"time"

	"github.com/google/uuid"
)

// Track logs a bound command invocation at debug and returns a finisher that
// logs the outcome and hands err back unchanged, so call sites can write
//
//	done := logging.Track(a.log, "read_file", "path", path)
//	return done(err)
func Track(l Logger, command string, args ...any) func(err error) error {
	if l == nil {
		l = Nop()
	}
	scoped := With(l, "command", command, "requestID", uuid.NewString())
	scoped.Debug("command invoked", args...)
	started := time.Now()
	return func(err error) error {
		elapsed := time.Since(started)
		if err != nil {
			fields := append(append([]any{}, args...), "elapsed", elapsed, "error", err)
			scoped.Warn("command failed", fields...)
			return err
		}
		scoped.Debug("command completed", "elapsed", elapsed)
		return nil
	}
}
