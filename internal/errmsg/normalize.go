package errmsg

import (
	"encoding/json"
	"fmt"
)

// UnknownError is shown when a value can be neither read nor serialized.
const UnknownError = "Unknown error"

// messager is satisfied by error-like values that expose their message
// without implementing error.
type messager interface {
	Message() string
}

// Normalize converts an arbitrary failure value to display text.
//
// Values carrying a message (error, Message() string) yield the message.
// Text values (string, fmt.Stringer) yield themselves. Anything else is
// serialized as JSON; when that fails the result is UnknownError.
// Normalize never panics.
func Normalize(v any) (s string) {
	defer func() {
		// typed-nil receivers and broken Error/String methods
		if r := recover(); r != nil {
			s = UnknownError
		}
	}()

	switch e := v.(type) {
	case error:
		return e.Error()
	case messager:
		return e.Message()
	case string:
		return e
	case fmt.Stringer:
		return e.String()
	}

	b, err := json.Marshal(v)
	if err != nil {
		return UnknownError
	}
	return string(b)
}
