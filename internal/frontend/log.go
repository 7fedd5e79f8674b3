package frontend

import "log"

// Logger is the orchestrator's pluggable print/log sink (SPEC_FULL.md
// §9.2, §11 "Pluggable print/log function" redesign flag): threaded
// through Frontend and internal/rpc's server constructor instead of
// reaching for a process-global logger, matching the teacher's own
// choice not to pull in a structured-logging library (no zerolog/zap/
// logrus anywhere in the corpus) while still not hardcoding stderr.
type Logger interface {
	Printf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// stdLogger wraps log.Default(), the zero-value Frontend's Logger.
type stdLogger struct{ *log.Logger }

func (l stdLogger) Printf(format string, args ...interface{}) { l.Logger.Printf(format, args...) }
func (l stdLogger) Errorf(format string, args ...interface{}) { l.Logger.Printf("error: "+format, args...) }

// NewStdLogger wraps log.Default() as a Logger.
func NewStdLogger() Logger { return stdLogger{log.Default()} }
