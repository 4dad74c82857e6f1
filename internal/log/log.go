package log

// Kv is a helper type for structured logging key-value pairs.
type Kv = map[string]any

// Logger is the interface that the loggers used by the library must implement.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
	WithValues(values map[string]any) Logger
}

// Noop logger doesn't log anything.
const Noop = noop(0)

type noop int

var _ Logger = Noop

func (n noop) Infof(string, ...any)            {}
func (n noop) Warningf(string, ...any)         {}
func (n noop) Errorf(string, ...any)           {}
func (n noop) Debugf(string, ...any)           {}
func (n noop) WithValues(map[string]any) Logger { return n }
