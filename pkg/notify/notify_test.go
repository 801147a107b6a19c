package notify_test

import (
	"testing"

	"github.com/vango-dev/feedback/pkg/notify"
	"github.com/vango-dev/feedback/pkg/toast"
)

// recorder captures toasts for verification.
type recorder struct {
	toasts []toast.Toast
}

func (r *recorder) Toast(t toast.Toast) {
	r.toasts = append(r.toasts, t)
}

func TestSeverities(t *testing.T) {
	tests := []struct {
		name        string
		call        func(n *notify.Notifier, opts notify.Options)
		wantVariant toast.Variant
	}{
		{"success", (*notify.Notifier).Success, toast.VariantDefault},
		{"error", (*notify.Notifier).Error, toast.VariantDestructive},
		{"info", (*notify.Notifier).Info, toast.VariantDefault},
		{"warning", (*notify.Notifier).Warning, toast.VariantDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			n := notify.New(rec)

			tt.call(n, notify.Options{Title: "Title", Description: "Body"})

			if len(rec.toasts) != 1 {
				t.Fatalf("expected 1 toast, got %d", len(rec.toasts))
			}
			got := rec.toasts[0]
			if got.Variant != tt.wantVariant {
				t.Errorf("Variant = %q, want %q", got.Variant, tt.wantVariant)
			}
			if got.Title != "Title" {
				t.Errorf("Title = %q, want %q", got.Title, "Title")
			}
			if got.Description != "Body" {
				t.Errorf("Description = %q, want %q", got.Description, "Body")
			}
		})
	}
}

func TestSuccessWithoutDescription(t *testing.T) {
	rec := &recorder{}

	notify.New(rec).Success(notify.Options{Title: "Saved"})

	want := toast.Toast{Title: "Saved"}
	if len(rec.toasts) != 1 || rec.toasts[0] != want {
		t.Errorf("got %+v, want [%+v]", rec.toasts, want)
	}
}

func TestNilToaster(t *testing.T) {
	n := notify.New(nil)
	n.Success(notify.Options{Title: "dropped"})
	n.Error(notify.Options{Title: "dropped"})
}
