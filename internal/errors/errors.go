// Package errors provides domain-specific sentinel errors for the bot.
// Use errors.Is() to check these errors in your code.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCommand indicates an admin command that could not be parsed.
	ErrInvalidCommand = errors.New("invalid admin command")

	// ErrMissingField indicates a required request field is absent.
	ErrMissingField = errors.New("missing required field")
)

// SendError represents a failure while calling the WhatsApp send-message API.
type SendError struct {
	Recipient string
	Err       error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send message to %s: %v", e.Recipient, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// NewSendError creates a new send error.
func NewSendError(recipient string, err error) *SendError {
	return &SendError{Recipient: recipient, Err: err}
}
