package lead

import "errors"

var (
	// ErrTransport is a submission failure detected before any response arrived.
	ErrTransport = errors.New("lead transport failure")
	// ErrPersistence wraps store failures.
	ErrPersistence = errors.New("lead persistence failure")
	// ErrRouting wraps recipient selection and notification failures.
	ErrRouting = errors.New("lead routing failure")
	// ErrRejected is returned when an acknowledging router reports an error envelope.
	ErrRejected = errors.New("lead rejected by router")
)
