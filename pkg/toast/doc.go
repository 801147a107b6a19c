// Package toast defines the toast capability used by the feedback packages.
//
// A toast is a transient UI notification with a title, an optional
// description and an optional variant. The only variant with a meaning of
// its own is "destructive", which clients render with error styling.
//
// # Delivery
//
// Vango keeps a persistent WebSocket per session, so toasts are not carried
// in flash cookies. A Toaster built with FromEmitter dispatches each toast as
// a "vango:toast" custom event through the session context:
//
//	func DeleteProject(ctx server.Ctx, id int) error {
//	    t := toast.FromEmitter(ctx)
//	    t.Toast(toast.Toast{Title: "Project deleted"})
//	    return nil
//	}
//
// The client listens for the event and renders it with any toast library:
//
//	window.addEventListener("vango:toast", (e) => {
//	    const { variant, title, description } = e.detail;
//	    showToast({ variant, title, description });
//	});
//
// Toasters compose: Multi fans out, Discard drops, and ToasterFunc adapts a
// plain function.
package toast
