// Package notify is the notification facade over a toast.Toaster.
//
// Four severities are offered. Only Error changes the presentation; Success,
// Info and Warning forward the same way and share the default styling.
//
//	n := notify.New(toast.FromEmitter(ctx))
//	n.Success(notify.Options{Title: "Saved"})
//	n.Error(notify.Options{Title: "Save failed", Description: err.Error()})
package notify

import "github.com/vango-dev/feedback/pkg/toast"

// Options is the title and optional description of a notification.
// An empty Description is forwarded as omitted.
type Options struct {
	Title       string
	Description string
}

// Notifier forwards notifications to a toast.Toaster.
// It holds no state besides the toaster and is safe for concurrent use
// whenever the toaster is.
type Notifier struct {
	toaster toast.Toaster
}

// New returns a Notifier that forwards to t.
// A nil t drops every notification.
func New(t toast.Toaster) *Notifier {
	if t == nil {
		t = toast.Discard
	}
	return &Notifier{toaster: t}
}

// Success shows a toast with default styling.
//
//	n.Success(notify.Options{Title: "Changes saved"})
func (n *Notifier) Success(opts Options) {
	n.show(toast.VariantDefault, opts)
}

// Error shows a destructive toast.
//
//	n.Error(notify.Options{Title: "Failed to delete item"})
func (n *Notifier) Error(opts Options) {
	n.show(toast.VariantDestructive, opts)
}

// Info shows a toast with default styling.
func (n *Notifier) Info(opts Options) {
	n.show(toast.VariantDefault, opts)
}

// Warning shows a toast with default styling.
func (n *Notifier) Warning(opts Options) {
	n.show(toast.VariantDefault, opts)
}

func (n *Notifier) show(variant toast.Variant, opts Options) {
	n.toaster.Toast(toast.Toast{
		Variant:     variant,
		Title:       opts.Title,
		Description: opts.Description,
	})
}
