package supervisor

import "errors"

// Start failures. Every one of these is recoverable: the caller surfaces the
// message as a single log line and the application keeps running.
var (
	// ErrAlreadyRunning is returned when a managed process already exists
	// for this profile. A second process is rejected, not queued.
	ErrAlreadyRunning = errors.New("command is already running")

	// ErrEmptyCommand is returned when tokenizing yields zero tokens.
	ErrEmptyCommand = errors.New("command is empty")

	// ErrCredentialCancelled is returned when the user dismisses the
	// password prompt. No process is created.
	ErrCredentialCancelled = errors.New("sudo password prompt cancelled")
)

// ParseError reports malformed shell-style quoting or escaping in the
// command line.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "command parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SpawnError reports that the OS refused to create the process (missing
// executable, permission denied, ...).
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return "failed to start command: " + e.Err.Error()
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
