package validation

// Error is a rejected-input error. Validators run before any write, so a
// validation failure never leaves partial state behind.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fail(message string) error {
	return &Error{Message: message}
}
