package discord

import (
	"errors"
	"fmt"
)

// Configuration errors returned by [New]. A sink must be given exactly one delivery target, and a bot target must come
// with a scheduler to hand its sends to.
var (
	// ErrNoTarget is returned when neither a bot session nor a webhook URL is configured.
	ErrNoTarget = errors.New("discord: either a bot session or a webhook URL must be provided")
	// ErrBothTargets is returned when both a bot session and a webhook URL are configured.
	ErrBothTargets = errors.New("discord: cannot provide both a bot session and a webhook URL")
	// ErrNoScheduler is returned when a bot session is configured without a scheduler.
	ErrNoScheduler = errors.New("discord: a bot session requires a scheduler")
)

// StatusError is the error returned by [WebhookClient.Send] when the webhook endpoint responds with a non-2xx status
// code. It carries the status code, the status line, and the response body.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Error implements the error interface for StatusError.
func (err *StatusError) Error() string {
	return fmt.Sprintf("webhook request failed with status %s: %s", err.Status, err.Body)
}

// Is reports whether the target is a StatusError, regardless of its fields. This allows checking for any status error
// with errors.Is(err, &StatusError{}).
func (err *StatusError) Is(target error) bool {
	_, ok := target.(*StatusError)

	return ok
}
