package capability

import "fmt"

// Result is the structured outcome of a capability execution. OK is the
// explicit success flag the registry's retry logic keys on.
type Result struct {
	// OK reports whether the execution succeeded.
	OK bool

	// Data carries the capability's payload on success.
	Data map[string]any

	// Error is a human-readable failure message when OK is false.
	Error string

	// TotalAttempts is how many times the handler ran, set by the registry.
	TotalAttempts int

	// RetriesExhausted is true when every allowed attempt failed,
	// set by the registry.
	RetriesExhausted bool
}

// Ok builds a success result with the given payload.
func Ok(data map[string]any) *Result {
	return &Result{OK: true, Data: data}
}

// Failf builds a failure result with a formatted message.
func Failf(format string, args ...any) *Result {
	return &Result{OK: false, Error: fmt.Sprintf(format, args...)}
}
