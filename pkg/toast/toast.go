package toast

// EventName is the event name dispatched for toasts.
// Client-side code should listen for this event.
const EventName = "vango:toast"

// Variant selects how the client presents a toast.
type Variant string

const (
	// VariantDefault carries no variant field on the wire.
	VariantDefault Variant = ""

	// VariantDestructive marks an error toast.
	VariantDestructive Variant = "destructive"
)

// Toast is the record handed to a Toaster.
//
// An empty Variant or Description is omitted when encoded.
type Toast struct {
	Variant     Variant `json:"variant,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
}

// Destructive reports whether the toast uses error styling.
func (t Toast) Destructive() bool {
	return t.Variant == VariantDestructive
}

// Toaster renders toasts. Implementations must not retain t.
type Toaster interface {
	Toast(t Toast)
}

// ToasterFunc adapts a function to the Toaster interface.
type ToasterFunc func(t Toast)

// Toast calls f(t).
func (f ToasterFunc) Toast(t Toast) {
	f(t)
}

// Discard is a Toaster that drops every toast.
var Discard Toaster = ToasterFunc(func(Toast) {})

// Emitter dispatches custom events to a client.
// server.Ctx satisfies it.
type Emitter interface {
	Emit(name string, data any)
}

type emitterToaster struct {
	emitter Emitter
}

// FromEmitter returns a Toaster that emits each toast as an EventName event.
//
// The client receives a CustomEvent with:
//   - event.type = "vango:toast"
//   - event.detail = { variant?: "destructive", title: "...", description?: "..." }
func FromEmitter(e Emitter) Toaster {
	if e == nil {
		return Discard
	}
	return &emitterToaster{emitter: e}
}

func (t *emitterToaster) Toast(msg Toast) {
	t.emitter.Emit(EventName, msg)
}

type multiToaster []Toaster

// Multi returns a Toaster that forwards each toast to every toaster, in order.
// Nil toasters are skipped.
func Multi(toasters ...Toaster) Toaster {
	m := make(multiToaster, 0, len(toasters))
	for _, t := range toasters {
		if t != nil {
			m = append(m, t)
		}
	}
	return m
}

func (m multiToaster) Toast(t Toast) {
	for _, next := range m {
		next.Toast(t)
	}
}
