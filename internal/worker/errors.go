// internal/worker/errors.go
package worker

import (
    "errors"
    "fmt"
    "strings"
)

// ErrUnknownWorker indicates a worker ID with no registry entry.
var ErrUnknownWorker = errors.New("unknown worker")

// SpawnError indicates the worker executable could not be started at all.
type SpawnError struct {
    Worker string
    Err    error
}

func (e *SpawnError) Error() string {
    return fmt.Sprintf("failed to start worker %s: %v", e.Worker, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExecutionError indicates a worker exited with a non-zero status. Stderr
// carries whatever diagnostic text the worker wrote.
type ExecutionError struct {
    Worker   string
    ExitCode int
    Stderr   string
}

func (e *ExecutionError) Error() string {
    msg := fmt.Sprintf("worker %s exited with status %d", e.Worker, e.ExitCode)
    if detail := strings.TrimSpace(e.Stderr); detail != "" {
        msg += ": " + detail
    }
    return msg
}

// NoJSONError indicates the worker produced no line that could be a JSON
// payload.
type NoJSONError struct {
    Worker string
}

func (e *NoJSONError) Error() string {
    return fmt.Sprintf("worker %s produced no JSON output", e.Worker)
}

// ParseError indicates the candidate JSON line failed to parse.
type ParseError struct {
    Worker string
    Err    error
}

func (e *ParseError) Error() string {
    return fmt.Sprintf("worker %s produced malformed JSON: %v", e.Worker, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DomainError carries a failure the worker itself reported via its
// success/error response fields.
type DomainError struct {
    Message string
}

func (e *DomainError) Error() string { return e.Message }
