package apierror

// FallbackDescription is shown when the caught value has no message.
const FallbackDescription = "Unexpected error occurred"

// Messager is implemented by values that carry a human-readable message
// distinct from their Error() text.
type Messager interface {
	Message() string
}

// Message extracts the human-readable message of a caught value.
//
// In priority order:
//   - a Messager yields Message()
//   - an error yields Error()
//   - a decoded JSON object (map[string]any) yields its "message" member
//     when that member is a string
//   - a map[string]string yields its "message" entry
//
// Anything else, nil included, has no message. So has a typed nil pointer
// whose method panics.
func Message(err any) (string, bool) {
	switch v := err.(type) {
	case nil:
		return "", false
	case Messager:
		return call(v.Message)
	case error:
		return call(v.Error)
	case map[string]any:
		msg, ok := v["message"].(string)
		return msg, ok
	case map[string]string:
		msg, ok := v["message"]
		return msg, ok
	default:
		return "", false
	}
}

// Describe returns the message of err, or FallbackDescription.
func Describe(err any) string {
	if msg, ok := Message(err); ok {
		return msg
	}
	return FallbackDescription
}

// call returns fn(), or no message when fn panics. A nil pointer stored in
// an interface reaches here as a non-nil value.
func call(fn func() string) (msg string, ok bool) {
	defer func() {
		if recover() != nil {
			msg, ok = "", false
		}
	}()
	return fn(), true
}

// usableError returns value as an error when its Error method can be
// called without panicking.
func usableError(value any) (error, bool) {
	e, ok := value.(error)
	if !ok || e == nil {
		return nil, false
	}
	if _, ok := call(e.Error); !ok {
		return nil, false
	}
	return e, true
}
