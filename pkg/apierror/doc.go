// Package apierror is the terminal handler for already-caught API errors.
//
// A Reporter records the error on a diagnostic Sink and shows a destructive
// toast through a notify.Notifier. It never returns or rethrows:
//
//	rep := apierror.New(apierror.SlogSink(logger), notify.New(toast.FromEmitter(ctx)))
//
//	if err := api.SaveProject(p); err != nil {
//	    rep.ReportTitle(err, "Save failed")
//	    return
//	}
//
// The toast description is the error's message when the value has one and
// FallbackDescription otherwise. See Message for which values count as
// having a message.
package apierror
