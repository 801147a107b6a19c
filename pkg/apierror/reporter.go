package apierror

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/feedback/pkg/notify"
)

// DefaultTitle is the toast title used when none is supplied.
const DefaultTitle = "Something went wrong"

// Reporter logs caught errors and surfaces them as error toasts.
type Reporter struct {
	sink     Sink
	notifier *notify.Notifier
}

// New returns a Reporter writing to sink and notifying through n.
// A nil sink discards diagnostics; a nil n discards toasts.
func New(sink Sink, n *notify.Notifier) *Reporter {
	if sink == nil {
		sink = Discard
	}
	if n == nil {
		n = notify.New(nil)
	}
	return &Reporter{sink: sink, notifier: n}
}

// Report reports err under DefaultTitle.
func (r *Reporter) Report(err any) {
	r.ReportTitle(err, DefaultTitle)
}

// ReportTitle records (title, err) on the sink, then shows one error toast
// with title and the description derived from err. An empty title means
// DefaultTitle.
//
// Panics from the sink or the toaster are not recovered.
func (r *Reporter) ReportTitle(err any, title string) {
	r.report(err, title)
}

// ReportContext is ReportTitle that also marks the span in ctx as failed.
// An error value is recorded as is; any other value is recorded as an
// error carrying the toast description.
func (r *Reporter) ReportContext(ctx context.Context, err any, title string) {
	title, description := r.report(err, title)

	recorded, ok := usableError(err)
	if !ok {
		recorded = stderrors.New(description)
	}

	span := trace.SpanFromContext(ctx)
	span.RecordError(recorded)
	span.SetStatus(codes.Error, description)
	span.SetAttributes(attribute.String("feedback.title", title))
}

func (r *Reporter) report(err any, title string) (string, string) {
	if title == "" {
		title = DefaultTitle
	}

	r.sink.Record(title, err)

	description := Describe(err)
	r.notifier.Error(notify.Options{
		Title:       title,
		Description: description,
	})
	return title, description
}
