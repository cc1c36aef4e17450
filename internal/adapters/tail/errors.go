package tail

import "fmt"

// OpenError reports a failure to open or stat the log file at session start.
// The supervisor retries after its backoff.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ReadError reports an I/O failure mid-stream. It ends the session; rotation
// and truncation are not errors and end the session cleanly instead.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
