package apierror

import (
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// Sink records a labelled diagnostic value for developers.
type Sink interface {
	Record(label string, value any)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(label string, value any)

// Record calls f(label, value).
func (f SinkFunc) Record(label string, value any) {
	f(label, value)
}

// Discard is a Sink that drops every record.
var Discard Sink = SinkFunc(func(string, any) {})

// SlogSink returns a Sink that logs each record at error level with the
// label as message. A nil logger means slog.Default().
func SlogSink(logger *slog.Logger) Sink {
	return SinkFunc(func(label string, value any) {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		if _, isErr := value.(error); isErr {
			if _, ok := usableError(value); !ok {
				value = fmt.Sprint(value)
			}
		}
		l.Error(label, "error", value)
	})
}

// SentrySink returns a Sink that forwards records to a Sentry hub.
// Errors are captured as exceptions, other values as messages. The label is
// attached as the "title" tag. A nil hub means sentry.CurrentHub().
func SentrySink(hub *sentry.Hub) Sink {
	return SinkFunc(func(label string, value any) {
		h := hub
		if h == nil {
			h = sentry.CurrentHub()
		}
		h.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("title", label)
			if err, ok := usableError(value); ok {
				h.CaptureException(err)
				return
			}
			h.CaptureMessage(fmt.Sprintf("%s: %v", label, value))
		})
	})
}

type multiSink []Sink

// MultiSink returns a Sink that records to every sink, in order.
// Nil sinks are skipped.
func MultiSink(sinks ...Sink) Sink {
	m := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m multiSink) Record(label string, value any) {
	for _, s := range m {
		s.Record(label, value)
	}
}
