package vtmux

// Logger is the pluggable log sink spec §7/§9 calls for, replacing varargs
// logging with a typed interface. Parse-reject and unrecognized-sequence
// paths call Warnf or Debugf every time they are hit; repeated messages from
// one call site are not suppressed. Nothing in the core ever surfaces an
// error to the host program through this interface.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// NopLogger discards everything. It is the default when no Logger option is
// supplied.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Warnf(string, ...any)  {}
