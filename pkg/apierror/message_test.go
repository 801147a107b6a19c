package apierror

import (
	"errors"
	"testing"

	ferrors "github.com/vango-dev/feedback/internal/errors"
)

type apiError struct {
	code    string
	message string
}

func (e *apiError) Error() string   { return e.code + ": " + e.message }
func (e *apiError) Message() string { return e.message }

// nilSafe handles a nil receiver itself.
type nilSafe struct{}

func (e *nilSafe) Error() string {
	if e == nil {
		return "no value"
	}
	return "value"
}

type plain struct {
	Message string
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    any
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"error", errors.New("Network timeout"), "Network timeout", true},
		{"messager wins over Error()", &apiError{code: "E409", message: "Conflict"}, "Conflict", true},
		{"json object", map[string]any{"message": "Quota exceeded"}, "Quota exceeded", true},
		{"json object non-string message", map[string]any{"message": 42}, "", false},
		{"json object without message", map[string]any{"error": "nope"}, "", false},
		{"string map", map[string]string{"message": "Bad request"}, "Bad request", true},
		{"plain string", "boom", "", false},
		{"number", 500, "", false},
		{"struct field is not a capability", plain{Message: "hidden"}, "", false},
		{"empty message is still a message", errors.New(""), "", true},
		{"typed nil messager", (*apiError)(nil), "", false},
		{"typed nil error", (*ferrors.Error)(nil), "", false},
		{"nil-safe receiver", (*nilSafe)(nil), "no value", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Message(tt.err)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Message(%#v) = (%q, %v), want (%q, %v)", tt.err, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(nil); got != FallbackDescription {
		t.Errorf("Describe(nil) = %q, want %q", got, FallbackDescription)
	}
	if got := Describe("just a string"); got != FallbackDescription {
		t.Errorf("Describe(string) = %q, want %q", got, FallbackDescription)
	}
	if got := Describe(errors.New("disk full")); got != "disk full" {
		t.Errorf("Describe(error) = %q, want %q", got, "disk full")
	}
}

func TestDescribeTypedNil(t *testing.T) {
	var e *ferrors.Error
	if got := Describe(e); got != FallbackDescription {
		t.Errorf("Describe(typed nil) = %q, want %q", got, FallbackDescription)
	}
}
